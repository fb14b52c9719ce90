package order

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrItemIsNotConstructed = errs.NewValueIsRequiredError("item must be created via NewItem")

// Item is one purchased line. Its price is captured at creation and never
// looked up again.
type Item struct {
	productID kernel.UUID
	name      string
	unitPrice kernel.Money
	quantity  int
	imageRef  string

	guard guard.ConstructorGuard
}

// NewItem validates a single order line. Quantity must be between 1 and
// MaxItemQuantity.
//
// Example:
//
//	item, err := order.NewItem(productID, "Espresso beans", kernel.MustMoney("24.90"), 2, "beans.png")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(item.Subtotal()) // 49.80
func NewItem(productID kernel.UUID, name string, unitPrice kernel.Money, quantity int, imageRef string) (Item, error) {
	it := Item{
		name:     strings.TrimSpace(name),
		imageRef: imageRef,
		guard:    guard.NewConstructorGuard(),
	}

	var nameErr error
	if it.name == "" {
		nameErr = errs.NewValueIsRequiredError("item name")
	}

	if err := errors.Join(
		it.setProductID(productID),
		nameErr,
		it.setUnitPrice(unitPrice),
		it.setQuantity(quantity),
	); err != nil {
		return Item{}, err
	}
	return it, nil
}

// Validate ensures the item was built through NewItem.
func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

// ProductID returns the catalog product.
func (i Item) ProductID() kernel.UUID {
	return i.productID
}

// Name returns the product name at order time.
func (i Item) Name() string {
	return i.name
}

// UnitPrice returns the price of one unit at order time.
func (i Item) UnitPrice() kernel.Money {
	return i.unitPrice
}

// Quantity returns the ordered units.
func (i Item) Quantity() int {
	return i.quantity
}

// ImageRef returns the product image reference, possibly empty.
func (i Item) ImageRef() string {
	return i.imageRef
}

// Subtotal is unit price times quantity.
func (i Item) Subtotal() kernel.Money {
	return i.unitPrice.Times(i.quantity)
}

func (i *Item) setProductID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("product", err)
	}
	i.productID = id
	return nil
}

func (i *Item) setUnitPrice(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("unit price", err)
	}
	i.unitPrice = price
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity < 1 || quantity > MaxItemQuantity {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, MaxItemQuantity)
	}
	i.quantity = quantity
	return nil
}
