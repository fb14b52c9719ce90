package order

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// Pricing is the price breakdown fixed when the order is placed.
type Pricing struct {
	items    kernel.Money
	tax      kernel.Money
	shipping kernel.Money
	total    kernel.Money
}

// ComputePricing sums the item subtotals and adds tax and shipping.
func ComputePricing(items []Item, tax, shipping kernel.Money) (Pricing, error) {
	if err := errors.Join(
		wrapRequired("tax price", tax.Validate()),
		wrapRequired("shipping price", shipping.Validate()),
	); err != nil {
		return Pricing{}, err
	}

	sum := kernel.ZeroMoney()
	for _, it := range items {
		sum = sum.Add(it.Subtotal())
	}
	return Pricing{
		items:    sum,
		tax:      tax,
		shipping: shipping,
		total:    sum.Add(tax).Add(shipping),
	}, nil
}

// RestorePricing rebuilds stored amounts without recomputing them.
func RestorePricing(items, tax, shipping, total kernel.Money) Pricing {
	return Pricing{items: items, tax: tax, shipping: shipping, total: total}
}

// ItemPrice returns the sum of item subtotals.
func (p Pricing) ItemPrice() kernel.Money {
	return p.items
}

// TaxPrice returns the tax charged.
func (p Pricing) TaxPrice() kernel.Money {
	return p.tax
}

// ShippingPrice returns the shipping fee.
func (p Pricing) ShippingPrice() kernel.Money {
	return p.shipping
}

// TotalPrice returns items plus tax plus shipping.
func (p Pricing) TotalPrice() kernel.Money {
	return p.total
}

func wrapRequired(param string, err error) error {
	if err == nil {
		return nil
	}
	return errs.NewValueIsRequiredErrorWithCause(param, err)
}
