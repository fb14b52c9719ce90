package commands

import (
	"time"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrRemindOverdueCompletionsCommandIsNotConstructed = errs.NewValueIsRequiredError(
	"RemindOverdueCompletionsCommand must be created via NewRemindOverdueCompletionsCommand constructor",
)

// RemindOverdueCompletionsCommand tells admins about completion requests that
// have waited longer than olderThan.
type RemindOverdueCompletionsCommand struct {
	olderThan time.Duration

	guard guard.ConstructorGuard
}

// NewRemindOverdueCompletionsCommand requires a positive age threshold.
func NewRemindOverdueCompletionsCommand(olderThan time.Duration) (RemindOverdueCompletionsCommand, error) {
	if olderThan <= 0 {
		return RemindOverdueCompletionsCommand{}, errs.NewValueIsOutOfRangeError("olderThan", olderThan, "1ns", "unbounded")
	}
	return RemindOverdueCompletionsCommand{olderThan: olderThan, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was built through its constructor.
func (c RemindOverdueCompletionsCommand) Validate() error {
	return c.guard.Validate(ErrRemindOverdueCompletionsCommandIsNotConstructed)
}

// OlderThan returns the age after which a request counts as overdue.
func (c RemindOverdueCompletionsCommand) OlderThan() time.Duration {
	return c.olderThan
}
