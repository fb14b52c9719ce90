package order

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrShippingInfoIsNotConstructed = errs.NewValueIsRequiredError("shipping info must be created via NewShippingInfo")

// ShippingInfo is where the order goes. It does not change after creation.
type ShippingInfo struct {
	address  string
	phone    string
	location kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewShippingInfo trims address and phone and requires both.
func NewShippingInfo(address, phone string, location kernel.GeoPoint) (ShippingInfo, error) {
	s := ShippingInfo{
		address:  strings.TrimSpace(address),
		phone:    strings.TrimSpace(phone),
		location: location,
		guard:    guard.NewConstructorGuard(),
	}

	var errList []error
	if s.address == "" {
		errList = append(errList, errs.NewValueIsRequiredError("address"))
	}
	if s.phone == "" {
		errList = append(errList, errs.NewValueIsRequiredError("phone"))
	}
	if err := location.Validate(); err != nil {
		errList = append(errList, err)
	}
	if err := errors.Join(errList...); err != nil {
		return ShippingInfo{}, err
	}
	return s, nil
}

// Validate ensures the value was built through NewShippingInfo.
func (s ShippingInfo) Validate() error {
	return s.guard.Validate(ErrShippingInfoIsNotConstructed)
}

// Address returns the trimmed street address.
func (s ShippingInfo) Address() string {
	return s.address
}

// Phone returns the contact number.
func (s ShippingInfo) Phone() string {
	return s.phone
}

// Location returns the delivery coordinates.
func (s ShippingInfo) Location() kernel.GeoPoint {
	return s.location
}
