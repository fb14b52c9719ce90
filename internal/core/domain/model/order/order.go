package order

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// Order is the aggregate root tracking one customer purchase through
// fulfillment.
//
// Order follows these invariants:
//   - Items, shipping info, payment info and pricing never change after creation
//   - assignedTo and assignedAt are set at most once
//   - completionRequested is true only while the order awaits confirmation
//   - deliveredAt is set exactly once, on the transition to Delivered
//   - Notes only grow, up to the cap passed to AddNote
//
// version is owned by the repository; it is read on load and compared on save.
type Order struct {
	id         kernel.UUID
	customerID kernel.UUID

	items    []Item
	shipping ShippingInfo
	payment  PaymentInfo
	pricing  Pricing

	status Status

	assignedTo *kernel.UUID
	assignedAt *time.Time

	completionRequested   bool
	completionRequestedAt *time.Time

	notes []DeliveryNote

	paidAt      time.Time
	createdAt   time.Time
	deliveredAt *time.Time

	version int

	guard guard.ConstructorGuard
}

// NewOrder places an order in Processing. Stock must already be reserved by the
// caller; pricing is computed here from the items and the given tax and
// shipping amounts.
func NewOrder(
	id, customerID kernel.UUID,
	items []Item,
	shipping ShippingInfo,
	payment PaymentInfo,
	taxPrice, shippingPrice kernel.Money,
	at time.Time,
) (*Order, error) {
	o := &Order{
		status:    Processing,
		payment:   payment,
		paidAt:    at,
		createdAt: at,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomer(customerID),
		o.setItems(items),
		o.setShipping(shipping),
	); err != nil {
		return nil, err
	}

	pricing, err := ComputePricing(o.items, taxPrice, shippingPrice)
	if err != nil {
		return nil, err
	}
	o.pricing = pricing

	return o, nil
}

// Validate ensures the order was built through NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order identity.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the customer who placed the order.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// Items returns a copy of the order lines.
func (o *Order) Items() []Item {
	return slices.Clone(o.items)
}

// ShippingInfo returns the delivery address.
func (o *Order) ShippingInfo() ShippingInfo {
	return o.shipping
}

// PaymentInfo returns the payment reference.
func (o *Order) PaymentInfo() PaymentInfo {
	return o.payment
}

// Pricing returns the price breakdown fixed at creation.
func (o *Order) Pricing() Pricing {
	return o.pricing
}

// Status returns the current lifecycle state.
func (o *Order) Status() Status {
	return o.status
}

// AssignedTo returns the agent holding the order, or nil.
func (o *Order) AssignedTo() *kernel.UUID {
	return o.assignedTo
}

// AssignedAt returns when the agent took the order, or nil.
func (o *Order) AssignedAt() *time.Time {
	return o.assignedAt
}

// IsAssigned reports whether any agent holds the order.
func (o *Order) IsAssigned() bool {
	return o.assignedTo != nil
}

// IsAssignedTo reports whether agentID holds the order.
//
// Example:
//
//	_ = o.Assign(agentID, time.Now())
//	o.IsAssignedTo(agentID)         // true
//	o.IsAssignedTo(kernel.NewUUID()) // false
func (o *Order) IsAssignedTo(agentID kernel.UUID) bool {
	return o.assignedTo != nil && o.assignedTo.IsEqual(agentID)
}

// CompletionRequested reports whether the agent is waiting for an admin to
// confirm delivery. It is never true on a terminal order.
func (o *Order) CompletionRequested() bool {
	return o.completionRequested
}

// CompletionRequestedAt returns when completion was last requested, or nil.
func (o *Order) CompletionRequestedAt() *time.Time {
	return o.completionRequestedAt
}

// Notes returns a copy of the delivery notes, oldest first.
func (o *Order) Notes() []DeliveryNote {
	return slices.Clone(o.notes)
}

// PaidAt returns when payment was captured.
func (o *Order) PaidAt() time.Time {
	return o.paidAt
}

// CreatedAt returns when the order was placed.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// DeliveredAt returns when the order reached Delivered, or nil.
func (o *Order) DeliveredAt() *time.Time {
	return o.deliveredAt
}

// Version is the stored revision the aggregate was loaded at. It is 0 until
// the order is first persisted.
func (o *Order) Version() int {
	return o.version
}

// SetStatus is the admin transition: any valid status except out of a
// terminal state. Moving to Delivered stamps deliveredAt, and entering either
// terminal state clears a pending completion request.
func (o *Order) SetStatus(status Status, at time.Time) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if o.status.IsTerminal() {
		return terminalError(o.status)
	}

	o.status = status
	if status == Delivered {
		o.markDelivered(at)
	}
	if status.IsTerminal() {
		o.closeCompletionRequest()
	}
	return nil
}

// AdvanceDeliveryStatus is the agent transition. The three agent statuses
// carry no ordering among themselves.
func (o *Order) AdvanceDeliveryStatus(agentID kernel.UUID, status Status) error {
	if !status.IsAgentSettable() {
		return fmt.Errorf("%w: got %s", ErrInvalidStatusForRole, status)
	}
	if err := o.ensureAssignedTo(agentID); err != nil {
		return err
	}
	if o.status.IsTerminal() {
		return terminalError(o.status)
	}

	o.status = status
	return nil
}

// Assign gives the order to agentID. It is used both when an admin assigns
// and when an agent accepts; the caller has already checked that agentID is an
// active delivery agent.
func (o *Order) Assign(agentID kernel.UUID, at time.Time) error {
	if err := agentID.Validate(); err != nil {
		return err
	}
	if o.assignedTo != nil {
		return ErrAlreadyAssigned
	}
	if o.status.IsTerminal() {
		return terminalError(o.status)
	}

	o.assignedTo = &agentID
	o.assignedAt = &at
	return nil
}

// RequestCompletion is the first half of the completion handshake.
func (o *Order) RequestCompletion(agentID kernel.UUID, at time.Time) error {
	if err := o.ensureAssignedTo(agentID); err != nil {
		return err
	}
	if o.status.IsTerminal() {
		return terminalError(o.status)
	}
	if o.completionRequested {
		return ErrDuplicateCompletionRequest
	}

	o.completionRequested = true
	o.completionRequestedAt = &at
	return nil
}

// ConfirmDelivery is the second half of the completion handshake.
func (o *Order) ConfirmDelivery(at time.Time) error {
	if o.status.IsTerminal() {
		return terminalError(o.status)
	}
	if !o.completionRequested {
		return ErrNoPendingCompletionRequest
	}

	o.status = Delivered
	o.markDelivered(at)
	return nil
}

// AddNote appends a note by the assigned agent. maxNotes <= 0 falls back to
// DefaultMaxDeliveryNotes.
func (o *Order) AddNote(agentID kernel.UUID, text string, at time.Time, maxNotes int) error {
	if err := o.ensureAssignedTo(agentID); err != nil {
		return err
	}
	note, err := NewDeliveryNote(text, agentID, at)
	if err != nil {
		return err
	}
	if maxNotes <= 0 {
		maxNotes = DefaultMaxDeliveryNotes
	}
	if len(o.notes) >= maxNotes {
		return ErrNoteLimitReached
	}

	o.notes = append(o.notes, note)
	return nil
}

// EnsureDeletable allows deletion of delivered orders only.
func (o *Order) EnsureDeletable() error {
	if o.status != Delivered {
		return fmt.Errorf("%w: status is %s", ErrOrderNotDeletable, o.status)
	}
	return nil
}

func (o *Order) ensureAssignedTo(agentID kernel.UUID) error {
	if !o.IsAssignedTo(agentID) {
		return ErrNotAssignedToActor
	}
	return nil
}

func (o *Order) markDelivered(at time.Time) {
	if o.deliveredAt == nil {
		o.deliveredAt = &at
	}
	o.closeCompletionRequest()
}

// closeCompletionRequest drops a pending request once the order is terminal;
// nothing is left for an admin to confirm.
func (o *Order) closeCompletionRequest() {
	o.completionRequested = false
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomer(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customer", err)
	}
	o.customerID = id
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for i, it := range items {
		if err := it.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("items[%d]", i), err)
		}
	}
	o.items = slices.Clone(items)
	return nil
}

func (o *Order) setShipping(s ShippingInfo) error {
	if err := s.Validate(); err != nil {
		return err
	}
	o.shipping = s
	return nil
}
