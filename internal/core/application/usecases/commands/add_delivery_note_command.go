package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// MaxNoteLength bounds a single delivery note.
const MaxNoteLength = 1000

var ErrAddDeliveryNoteCommandIsNotConstructed = errs.NewValueIsRequiredError(
	"AddDeliveryNoteCommand must be created via NewAddDeliveryNoteCommand constructor",
)

// AddDeliveryNoteCommand appends a free-text note written by the assigned agent.
// The text is trimmed and limited to MaxNoteLength runes.
type AddDeliveryNoteCommand struct { //nolint:recvcheck //using for validation
	orderRef
	text string

	guard guard.ConstructorGuard
}

// NewAddDeliveryNoteCommand validates the actor, the order ID and the note text
// together, joining every problem into one error.
func NewAddDeliveryNoteCommand(actor services.Actor, orderID kernel.UUID, text string) (AddDeliveryNoteCommand, error) {
	ref, refErr := newOrderRef(actor, orderID)

	text = strings.TrimSpace(text)
	var textErr error
	switch {
	case text == "":
		textErr = errs.NewValueIsRequiredError("note")
	case len([]rune(text)) > MaxNoteLength:
		textErr = errs.NewValueIsOutOfRangeError("note length", len([]rune(text)), 1, MaxNoteLength)
	}

	if err := errors.Join(refErr, textErr); err != nil {
		return AddDeliveryNoteCommand{}, err
	}

	return AddDeliveryNoteCommand{orderRef: ref, text: text, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was built through its constructor.
func (c AddDeliveryNoteCommand) Validate() error {
	return c.guard.Validate(ErrAddDeliveryNoteCommandIsNotConstructed)
}

// Text returns the trimmed note.
func (c AddDeliveryNoteCommand) Text() string {
	return c.text
}
