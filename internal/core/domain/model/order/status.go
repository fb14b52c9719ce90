package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
//	Processing ─> Prepared ─> Shipped ─> Out for Delivery ─> Delivered
//	     └──────────────────────────┴──────────────────────> Cancelled
//
// Admins may jump to any status; agents are restricted to AgentStatuses.
type Status int

const (
	// Unknown catches uninitialized values.
	Unknown Status = iota
	Processing
	Prepared
	Shipped
	OutForDelivery
	Delivered
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "Unknown",
		Processing:     "Processing",
		Prepared:       "Prepared",
		Shipped:        "Shipped",
		OutForDelivery: "Out for Delivery",
		Delivered:      "Delivered",
		Cancelled:      "Cancelled",
	}
}

// AgentStatuses are the only targets a delivery agent may set.
func AgentStatuses() []Status {
	return []Status{Prepared, Shipped, OutForDelivery}
}

// AllStatuses lists every valid status in lifecycle order.
func AllStatuses() []Status {
	return []Status{Processing, Prepared, Shipped, OutForDelivery, Delivered, Cancelled}
}

// ParseStatus maps the persisted and wire form back to a Status.
func ParseStatus(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if status != Unknown && str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if s <= Unknown || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name, or "Unknown".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no transition is defined out of s.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// IsAgentSettable reports whether a delivery agent may move an order to s.
func (s Status) IsAgentSettable() bool {
	return s == Prepared || s == Shipped || s == OutForDelivery
}

// MarshalText writes the wire name, for example "OutForDelivery".
func (s Status) MarshalText() ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return []byte(s.String()), nil
}

// UnmarshalText accepts the names produced by MarshalText.
func (s *Status) UnmarshalText(b []byte) error {
	parsed, err := ParseStatus(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
