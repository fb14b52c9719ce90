package http

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

// Request bodies. Prices arrive as JSON numbers.
type (
	ShippingInfo struct {
		Address   string  `json:"address"`
		PhoneNo   string  `json:"phoneNo"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	}

	PaymentInfo struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}

	OrderItemRequest struct {
		Product  openapi_types.UUID `json:"product"`
		Name     string             `json:"name"`
		Price    decimal.Decimal    `json:"price"`
		Quantity int                `json:"quantity"`
		Image    string             `json:"image"`
	}

	CreateOrderRequest struct {
		ShippingInfo  ShippingInfo       `json:"shippingInfo"`
		OrderItems    []OrderItemRequest `json:"orderItems"`
		PaymentInfo   PaymentInfo        `json:"paymentInfo"`
		TaxPrice      decimal.Decimal    `json:"taxPrice"`
		ShippingPrice decimal.Decimal    `json:"shippingPrice"`
	}

	StatusRequest struct {
		Status string `json:"status"`
	}

	AssignRequest struct {
		AgentID openapi_types.UUID `json:"agentId"`
	}

	NoteRequest struct {
		Note string `json:"note"`
	}
)

// Response bodies. Money is rendered as a two-decimal string.
type (
	OrderItem struct {
		Product  string `json:"product"`
		Name     string `json:"name"`
		Price    string `json:"price"`
		Quantity int    `json:"quantity"`
		Image    string `json:"image,omitempty"`
	}

	DeliveryNote struct {
		Note    string    `json:"note"`
		AddedBy string    `json:"addedBy"`
		AddedAt time.Time `json:"addedAt"`
	}

	Order struct {
		ID                    openapi_types.UUID `json:"id"`
		User                  openapi_types.UUID `json:"user"`
		ShippingInfo          ShippingInfo       `json:"shippingInfo"`
		OrderItems            []OrderItem        `json:"orderItems"`
		PaymentInfo           PaymentInfo        `json:"paymentInfo"`
		ItemPrice             string             `json:"itemPrice"`
		TaxPrice              string             `json:"taxPrice"`
		ShippingPrice         string             `json:"shippingPrice"`
		TotalPrice            string             `json:"totalPrice"`
		OrderStatus           string             `json:"orderStatus"`
		AssignedTo            *string            `json:"assignedTo,omitempty"`
		AssignedAt            *time.Time         `json:"assignedAt,omitempty"`
		CompletionRequested   bool               `json:"completionRequested"`
		CompletionRequestedAt *time.Time         `json:"completionRequestedAt,omitempty"`
		DeliveryNotes         []DeliveryNote     `json:"deliveryNotes"`
		PaidAt                time.Time          `json:"paidAt"`
		CreatedAt             time.Time          `json:"createdAt"`
		DeliveredAt           *time.Time         `json:"deliveredAt,omitempty"`
	}

	OrderResponse struct {
		Success bool  `json:"success"`
		Order   Order `json:"order"`
	}

	OrdersResponse struct {
		Success     bool    `json:"success"`
		Orders      []Order `json:"orders"`
		TotalAmount *string `json:"totalAmount,omitempty"`
	}

	MessageResponse struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
)

func (r CreateOrderRequest) toDomain() ([]order.Item, order.ShippingInfo, order.PaymentInfo, kernel.Money, kernel.Money, error) {
	var (
		shipping order.ShippingInfo
		payment  order.PaymentInfo
		tax      kernel.Money
		ship     kernel.Money
	)

	items := make([]order.Item, 0, len(r.OrderItems))
	var itemErrs error
	for _, it := range r.OrderItems {
		item, err := it.toDomain()
		if err != nil {
			itemErrs = errors.Join(itemErrs, err)
			continue
		}
		items = append(items, item)
	}
	if itemErrs != nil {
		return nil, shipping, payment, tax, ship, itemErrs
	}

	location, err := kernel.NewGeoPoint(r.ShippingInfo.Latitude, r.ShippingInfo.Longitude)
	if err != nil {
		return nil, shipping, payment, tax, ship, err
	}
	if shipping, err = order.NewShippingInfo(r.ShippingInfo.Address, r.ShippingInfo.PhoneNo, location); err != nil {
		return nil, shipping, payment, tax, ship, err
	}
	if payment, err = order.NewPaymentInfo(r.PaymentInfo.ID, r.PaymentInfo.Status); err != nil {
		return nil, shipping, payment, tax, ship, err
	}
	if tax, err = kernel.NewMoney(r.TaxPrice); err != nil {
		return nil, shipping, payment, tax, ship, errs.NewValueIsInvalidErrorWithCause("taxPrice", err)
	}
	if ship, err = kernel.NewMoney(r.ShippingPrice); err != nil {
		return nil, shipping, payment, tax, ship, errs.NewValueIsInvalidErrorWithCause("shippingPrice", err)
	}
	return items, shipping, payment, tax, ship, nil
}

func (r OrderItemRequest) toDomain() (order.Item, error) {
	productID, err := kernel.UUIDFromBytes(r.Product[:])
	if err != nil {
		return order.Item{}, errs.NewValueIsInvalidErrorWithCause("product", err)
	}
	price, err := kernel.NewMoney(r.Price)
	if err != nil {
		return order.Item{}, errs.NewValueIsInvalidErrorWithCause("price", err)
	}
	return order.NewItem(productID, r.Name, price, r.Quantity, r.Image)
}

func toOrder(o *order.Order) Order {
	shipping := o.ShippingInfo()
	pricing := o.Pricing()

	items := make([]OrderItem, 0, len(o.Items()))
	for _, it := range o.Items() {
		items = append(items, OrderItem{
			Product:  it.ProductID().String(),
			Name:     it.Name(),
			Price:    it.UnitPrice().String(),
			Quantity: it.Quantity(),
			Image:    it.ImageRef(),
		})
	}

	notes := make([]DeliveryNote, 0, len(o.Notes()))
	for _, n := range o.Notes() {
		notes = append(notes, DeliveryNote{Note: n.Text(), AddedBy: n.Author().String(), AddedAt: n.At()})
	}

	res := Order{
		ID:   o.ID().Bytes(),
		User: o.CustomerID().Bytes(),
		ShippingInfo: ShippingInfo{
			Address:   shipping.Address(),
			PhoneNo:   shipping.Phone(),
			Latitude:  shipping.Location().Latitude(),
			Longitude: shipping.Location().Longitude(),
		},
		OrderItems:            items,
		PaymentInfo:           PaymentInfo{ID: o.PaymentInfo().ExternalRef(), Status: o.PaymentInfo().Status()},
		ItemPrice:             pricing.ItemPrice().String(),
		TaxPrice:              pricing.TaxPrice().String(),
		ShippingPrice:         pricing.ShippingPrice().String(),
		TotalPrice:            pricing.TotalPrice().String(),
		OrderStatus:           o.Status().String(),
		AssignedAt:            o.AssignedAt(),
		CompletionRequested:   o.CompletionRequested(),
		CompletionRequestedAt: o.CompletionRequestedAt(),
		DeliveryNotes:         notes,
		PaidAt:                o.PaidAt(),
		CreatedAt:             o.CreatedAt(),
		DeliveredAt:           o.DeliveredAt(),
	}
	if agent := o.AssignedTo(); agent != nil {
		s := agent.String()
		res.AssignedTo = &s
	}
	return res
}

func toOrders(list []*order.Order) []Order {
	res := make([]Order, 0, len(list))
	for _, o := range list {
		res = append(res, toOrder(o))
	}
	return res
}
