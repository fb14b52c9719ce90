package kernel

import (
	"errors"
	"fmt"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

const (
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0
)

var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError("geo point must be created via NewGeoPoint")

// GeoPoint is a WGS84 coordinate of a shipping address.
type GeoPoint struct { //nolint:recvcheck // setters need pointer receivers
	latitude  float64
	longitude float64
	guard     guard.ConstructorGuard
}

// NewGeoPoint validates both coordinates and reports every range violation.
//
// Example:
//
//	loc, err := kernel.NewGeoPoint(52.52, 13.405)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(loc) // GeoPoint(52.520000,13.405000)
func NewGeoPoint(latitude, longitude float64) (GeoPoint, error) {
	p := GeoPoint{guard: guard.NewConstructorGuard()}

	if err := errors.Join(p.setLatitude(latitude), p.setLongitude(longitude)); err != nil {
		return GeoPoint{}, err
	}

	return p, nil
}

// Validate ensures the point was built through NewGeoPoint.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

// Latitude returns degrees north.
func (p GeoPoint) Latitude() float64 {
	return p.latitude
}

// Longitude returns degrees east.
func (p GeoPoint) Longitude() float64 {
	return p.longitude
}

// String formats the point with six decimals.
func (p GeoPoint) String() string {
	return fmt.Sprintf("GeoPoint(%.6f,%.6f)", p.latitude, p.longitude)
}

// IsEqual compares both coordinates exactly.
func (p GeoPoint) IsEqual(other GeoPoint) bool {
	return p.latitude == other.latitude && p.longitude == other.longitude
}

func (p *GeoPoint) setLatitude(v float64) error {
	if v < MinLatitude || v > MaxLatitude {
		return errs.NewValueIsOutOfRangeError("latitude", v, MinLatitude, MaxLatitude)
	}
	p.latitude = v
	return nil
}

func (p *GeoPoint) setLongitude(v float64) error {
	if v < MinLongitude || v > MaxLongitude {
		return errs.NewValueIsOutOfRangeError("longitude", v, MinLongitude, MaxLongitude)
	}
	p.longitude = v
	return nil
}
