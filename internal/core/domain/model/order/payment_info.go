package order

import (
	"errors"

	"fulfillment/internal/pkg/errs"
)

// PaymentInfo is the reference handed over by the payment provider. The core
// stores it and never interprets the status.
type PaymentInfo struct {
	externalRef string
	status      string
}

// NewPaymentInfo requires both the provider reference and its status.
func NewPaymentInfo(externalRef, status string) (PaymentInfo, error) {
	var refErr, statusErr error
	if externalRef == "" {
		refErr = errs.NewValueIsRequiredError("payment reference")
	}
	if status == "" {
		statusErr = errs.NewValueIsRequiredError("payment status")
	}
	if err := errors.Join(refErr, statusErr); err != nil {
		return PaymentInfo{}, err
	}
	return PaymentInfo{externalRef: externalRef, status: status}, nil
}

// ExternalRef returns the provider reference.
func (p PaymentInfo) ExternalRef() string {
	return p.externalRef
}

// Status returns the provider status verbatim.
func (p PaymentInfo) Status() string {
	return p.status
}
