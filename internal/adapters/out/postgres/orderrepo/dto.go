// Package orderrepo maps order aggregates to the orders table. Items and
// delivery notes are stored as JSON columns since they are always read and
// written together with their order.
package orderrepo

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is one row of the orders table. Version backs the conditional
// writes in GormOrderRepository.
type OrderDTO struct {
	ID                    uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CustomerID            uuid.UUID       `gorm:"type:uuid;index;not null"`
	Items                 []ItemDTO       `gorm:"type:jsonb;serializer:json;not null"`
	Shipping              ShippingDTO     `gorm:"embedded;embeddedPrefix:shipping_"`
	Payment               PaymentDTO      `gorm:"embedded;embeddedPrefix:payment_"`
	ItemPrice             decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	TaxPrice              decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	ShippingPrice         decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	TotalPrice            decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Status                string          `gorm:"type:varchar(32);index;not null"`
	AssignedTo            *uuid.UUID      `gorm:"type:uuid;index"`
	AssignedAt            *time.Time
	CompletionRequested   bool `gorm:"index;not null;default:false"`
	CompletionRequestedAt *time.Time
	Notes                 []NoteDTO `gorm:"type:jsonb;serializer:json;not null"`
	PaidAt                time.Time
	CreatedAt             time.Time `gorm:"index"`
	DeliveredAt           *time.Time
	Version               int `gorm:"not null"`
}

// TableName overrides the GORM table name.
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO is one element of the items JSON column.
type ItemDTO struct {
	ProductID uuid.UUID       `json:"productId"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
	ImageRef  string          `json:"imageRef,omitempty"`
}

// ShippingDTO is embedded into the order row with a shipping_ prefix.
type ShippingDTO struct {
	Address   string
	Phone     string
	Latitude  float64
	Longitude float64
}

// PaymentDTO is embedded into the order row with a payment_ prefix.
type PaymentDTO struct {
	ExternalRef string
	Status      string
}

// NoteDTO is one element of the notes JSON column.
type NoteDTO struct {
	Text   string    `json:"text"`
	Author uuid.UUID `json:"author"`
	At     time.Time `json:"at"`
}

func fromDomain(o *order.Order) OrderDTO {
	snap := o.Snapshot()

	items := make([]ItemDTO, 0, len(snap.Items))
	for _, it := range snap.Items {
		items = append(items, ItemDTO{
			ProductID: it.ProductID().Bytes(),
			Name:      it.Name(),
			UnitPrice: it.UnitPrice().Decimal(),
			Quantity:  it.Quantity(),
			ImageRef:  it.ImageRef(),
		})
	}

	notes := make([]NoteDTO, 0, len(snap.Notes))
	for _, n := range snap.Notes {
		notes = append(notes, NoteDTO{Text: n.Text(), Author: n.Author().Bytes(), At: n.At()})
	}

	var assignedTo *uuid.UUID
	if snap.AssignedTo != nil {
		raw := snap.AssignedTo.Bytes()
		assignedTo = &raw
	}

	return OrderDTO{
		ID:         snap.ID.Bytes(),
		CustomerID: snap.CustomerID.Bytes(),
		Items:      items,
		Shipping: ShippingDTO{
			Address:   snap.Shipping.Address(),
			Phone:     snap.Shipping.Phone(),
			Latitude:  snap.Shipping.Location().Latitude(),
			Longitude: snap.Shipping.Location().Longitude(),
		},
		Payment: PaymentDTO{
			ExternalRef: snap.Payment.ExternalRef(),
			Status:      snap.Payment.Status(),
		},
		ItemPrice:             snap.Pricing.ItemPrice().Decimal(),
		TaxPrice:              snap.Pricing.TaxPrice().Decimal(),
		ShippingPrice:         snap.Pricing.ShippingPrice().Decimal(),
		TotalPrice:            snap.Pricing.TotalPrice().Decimal(),
		Status:                snap.Status.String(),
		AssignedTo:            assignedTo,
		AssignedAt:            snap.AssignedAt,
		CompletionRequested:   snap.CompletionRequested,
		CompletionRequestedAt: snap.CompletionRequestedAt,
		Notes:                 notes,
		PaidAt:                snap.PaidAt,
		CreatedAt:             snap.CreatedAt,
		DeliveredAt:           snap.DeliveredAt,
		Version:               snap.Version,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	var assignedTo *kernel.UUID
	if dto.AssignedTo != nil {
		agentID, agentErr := kernel.UUIDFromBytes(dto.AssignedTo[:])
		if agentErr != nil {
			return nil, agentErr
		}
		assignedTo = &agentID
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	location, err := kernel.NewGeoPoint(dto.Shipping.Latitude, dto.Shipping.Longitude)
	if err != nil {
		return nil, err
	}

	items, err := itemsToDomain(dto.Items)
	if err != nil {
		return nil, err
	}
	notes, err := notesToDomain(dto.Notes)
	if err != nil {
		return nil, err
	}
	pricing, err := pricingToDomain(dto)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.Snapshot{
		ID:                    id,
		CustomerID:            customerID,
		Items:                 items,
		Shipping:              order.RestoreShippingInfo(dto.Shipping.Address, dto.Shipping.Phone, location),
		Payment:               order.RestorePaymentInfo(dto.Payment.ExternalRef, dto.Payment.Status),
		Pricing:               pricing,
		Status:                status,
		AssignedTo:            assignedTo,
		AssignedAt:            utcPtr(dto.AssignedAt),
		CompletionRequested:   dto.CompletionRequested,
		CompletionRequestedAt: utcPtr(dto.CompletionRequestedAt),
		Notes:                 notes,
		PaidAt:                dto.PaidAt.UTC(),
		CreatedAt:             dto.CreatedAt.UTC(),
		DeliveredAt:           utcPtr(dto.DeliveredAt),
		Version:               dto.Version,
	})
}

func itemsToDomain(dtos []ItemDTO) ([]order.Item, error) {
	items := make([]order.Item, 0, len(dtos))
	for _, d := range dtos {
		productID, err := kernel.UUIDFromBytes(d.ProductID[:])
		if err != nil {
			return nil, err
		}
		price, err := kernel.NewMoney(d.UnitPrice)
		if err != nil {
			return nil, err
		}
		items = append(items, order.RestoreItem(productID, d.Name, price, d.Quantity, d.ImageRef))
	}
	return items, nil
}

func notesToDomain(dtos []NoteDTO) ([]order.DeliveryNote, error) {
	notes := make([]order.DeliveryNote, 0, len(dtos))
	for _, d := range dtos {
		author, err := kernel.UUIDFromBytes(d.Author[:])
		if err != nil {
			return nil, err
		}
		notes = append(notes, order.RestoreDeliveryNote(d.Text, author, d.At.UTC()))
	}
	return notes, nil
}

func pricingToDomain(dto OrderDTO) (order.Pricing, error) {
	items, itemsErr := kernel.NewMoney(dto.ItemPrice)
	tax, taxErr := kernel.NewMoney(dto.TaxPrice)
	shipping, shippingErr := kernel.NewMoney(dto.ShippingPrice)
	total, totalErr := kernel.NewMoney(dto.TotalPrice)
	if err := errors.Join(itemsErr, taxErr, shippingErr, totalErr); err != nil {
		return order.Pricing{}, err
	}
	return order.RestorePricing(items, tax, shipping, total), nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}

func statusStrings(statuses []order.Status) []string {
	out := make([]string, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, s.String())
	}
	return out
}
