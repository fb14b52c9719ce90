package order

import (
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// DefaultMaxDeliveryNotes bounds the notes kept on a single order.
const DefaultMaxDeliveryNotes = 50

// DeliveryNote is an entry in the append-only log kept by the assigned agent.
type DeliveryNote struct {
	text   string
	author kernel.UUID
	at     time.Time
}

// NewDeliveryNote trims text and requires it to be non-empty.
func NewDeliveryNote(text string, author kernel.UUID, at time.Time) (DeliveryNote, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return DeliveryNote{}, errs.NewValueIsRequiredError("note")
	}
	if err := author.Validate(); err != nil {
		return DeliveryNote{}, err
	}
	return DeliveryNote{text: text, author: author, at: at}, nil
}

// Text returns the note body.
func (n DeliveryNote) Text() string {
	return n.text
}

// Author returns the agent who wrote the note.
func (n DeliveryNote) Author() kernel.UUID {
	return n.author
}

// At returns when the note was written.
func (n DeliveryNote) At() time.Time {
	return n.at
}
