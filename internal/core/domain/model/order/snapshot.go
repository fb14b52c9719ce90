package order

import (
	"errors"
	"slices"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

// Snapshot is the flat, storage-facing form of an Order. Adapters map their
// rows into a Snapshot and call RestoreOrder; they never touch Order fields.
type Snapshot struct {
	ID                    kernel.UUID
	CustomerID            kernel.UUID
	Items                 []Item
	Shipping              ShippingInfo
	Payment               PaymentInfo
	Pricing               Pricing
	Status                Status
	AssignedTo            *kernel.UUID
	AssignedAt            *time.Time
	CompletionRequested   bool
	CompletionRequestedAt *time.Time
	Notes                 []DeliveryNote
	PaidAt                time.Time
	CreatedAt             time.Time
	DeliveredAt           *time.Time
	Version               int
}

// RestoreOrder rebuilds an order from storage. Stored prices are kept as they
// are and quantity limits are not re-checked.
func RestoreOrder(s Snapshot) (*Order, error) {
	if err := errors.Join(
		s.ID.Validate(),
		s.CustomerID.Validate(),
		s.Shipping.Validate(),
		s.Status.Validate(),
	); err != nil {
		return nil, err
	}

	return &Order{
		id:                    s.ID,
		customerID:            s.CustomerID,
		items:                 slices.Clone(s.Items),
		shipping:              s.Shipping,
		payment:               s.Payment,
		pricing:               s.Pricing,
		status:                s.Status,
		assignedTo:            copyPtr(s.AssignedTo),
		assignedAt:            copyPtr(s.AssignedAt),
		completionRequested:   s.CompletionRequested,
		completionRequestedAt: copyPtr(s.CompletionRequestedAt),
		notes:                 slices.Clone(s.Notes),
		paidAt:                s.PaidAt,
		createdAt:             s.CreatedAt,
		deliveredAt:           copyPtr(s.DeliveredAt),
		version:               s.Version,
		guard:                 guard.NewConstructorGuard(),
	}, nil
}

// Snapshot returns a deep copy of the order state.
func (o *Order) Snapshot() Snapshot {
	return Snapshot{
		ID:                    o.id,
		CustomerID:            o.customerID,
		Items:                 slices.Clone(o.items),
		Shipping:              o.shipping,
		Payment:               o.payment,
		Pricing:               o.pricing,
		Status:                o.status,
		AssignedTo:            copyPtr(o.assignedTo),
		AssignedAt:            copyPtr(o.assignedAt),
		CompletionRequested:   o.completionRequested,
		CompletionRequestedAt: copyPtr(o.completionRequestedAt),
		Notes:                 slices.Clone(o.notes),
		PaidAt:                o.paidAt,
		CreatedAt:             o.createdAt,
		DeliveredAt:           copyPtr(o.deliveredAt),
		Version:               o.version,
	}
}

// RestoreItem rebuilds a stored line without the quantity limit, which applies
// at creation only.
func RestoreItem(productID kernel.UUID, name string, unitPrice kernel.Money, quantity int, imageRef string) Item {
	return Item{
		productID: productID,
		name:      name,
		unitPrice: unitPrice,
		quantity:  quantity,
		imageRef:  imageRef,
		guard:     guard.NewConstructorGuard(),
	}
}

// RestoreShippingInfo rebuilds stored shipping info.
func RestoreShippingInfo(address, phone string, location kernel.GeoPoint) ShippingInfo {
	return ShippingInfo{address: address, phone: phone, location: location, guard: guard.NewConstructorGuard()}
}

// RestorePaymentInfo rebuilds stored payment info.
func RestorePaymentInfo(externalRef, status string) PaymentInfo {
	return PaymentInfo{externalRef: externalRef, status: status}
}

// RestoreDeliveryNote rebuilds a stored note without trimming it.
func RestoreDeliveryNote(text string, author kernel.UUID, at time.Time) DeliveryNote {
	return DeliveryNote{text: text, author: author, at: at}
}

func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// MarkPersisted records the version a repository just stored.
func (o *Order) MarkPersisted(version int) {
	o.version = version
}
