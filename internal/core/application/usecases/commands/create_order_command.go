package commands

import (
	"errors"
	"slices"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errs.NewValueIsRequiredError(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand places a new order for the acting customer.
//
// Example:
//
//	item, _ := order.NewItem(productID, "Espresso beans", kernel.MustMoney("24.90"), 2, "beans.png")
//	cmd, err := NewCreateOrderCommand(actor, []order.Item{item}, shipping, payment, tax, shippingPrice)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	o, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	actor         services.Actor
	items         []order.Item
	shipping      order.ShippingInfo
	payment       order.PaymentInfo
	taxPrice      kernel.Money
	shippingPrice kernel.Money

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand assigns the new order ID up front and validates the
// actor, items and shipping details in one pass.
func NewCreateOrderCommand(
	actor services.Actor,
	items []order.Item,
	shipping order.ShippingInfo,
	payment order.PaymentInfo,
	taxPrice, shippingPrice kernel.Money,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		orderID:       kernel.NewUUID(),
		payment:       payment,
		taxPrice:      taxPrice,
		shippingPrice: shippingPrice,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setItems(items),
		cmd.setShipping(shipping),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was built through NewCreateOrderCommand.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the ID the new order will be stored under.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the ordering customer.
func (c CreateOrderCommand) Actor() services.Actor {
	return c.actor
}

// Items returns a copy of the order lines.
func (c CreateOrderCommand) Items() []order.Item {
	return slices.Clone(c.items)
}

// Shipping returns the delivery address.
func (c CreateOrderCommand) Shipping() order.ShippingInfo {
	return c.shipping
}

// Payment returns the payment reference.
func (c CreateOrderCommand) Payment() order.PaymentInfo {
	return c.payment
}

// TaxPrice returns the tax charged on the order.
func (c CreateOrderCommand) TaxPrice() kernel.Money {
	return c.taxPrice
}

// ShippingPrice returns the shipping fee.
func (c CreateOrderCommand) ShippingPrice() kernel.Money {
	return c.shippingPrice
}

func (c *CreateOrderCommand) setActor(actor services.Actor) error {
	if err := actor.ID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("actor", err)
	}
	c.actor = actor
	return nil
}

func (c *CreateOrderCommand) setItems(items []order.Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	c.items = slices.Clone(items)
	return nil
}

func (c *CreateOrderCommand) setShipping(shipping order.ShippingInfo) error {
	if err := shipping.Validate(); err != nil {
		return err
	}
	c.shipping = shipping
	return nil
}
