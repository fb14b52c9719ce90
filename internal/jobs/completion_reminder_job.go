package jobs

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// OverdueCompletionsHandler is satisfied by
// *commands.RemindOverdueCompletionsCommandHandler.
type OverdueCompletionsHandler interface {
	Handle(ctx context.Context, cmd commands.RemindOverdueCompletionsCommand) (int, error)
}

// CompletionReminderJob periodically reminds admins of completion requests
// nobody has confirmed yet.
type CompletionReminderJob struct {
	handler   OverdueCompletionsHandler
	schedule  string
	olderThan time.Duration
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewCompletionReminderJob runs on schedule, a cron spec with a seconds field.
func NewCompletionReminderJob(
	handler OverdueCompletionsHandler,
	schedule string,
	olderThan time.Duration,
	logger *slog.Logger,
) *CompletionReminderJob {
	return &CompletionReminderJob{
		handler:   handler,
		schedule:  schedule,
		olderThan: olderThan,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "completion_reminder_job"),
	}
}

// Start schedules the reminder and starts the cron runner. An invalid schedule
// or threshold is returned before anything runs.
func (j *CompletionReminderJob) Start() error {
	cmd, err := commands.NewRemindOverdueCompletionsCommand(j.olderThan)
	if err != nil {
		return err
	}

	if _, err = j.cron.AddFunc(j.schedule, func() { j.Run(context.Background(), cmd) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Completion reminder job started",
		"schedule", j.schedule, "older_than", j.olderThan.String())
	return nil
}

// Run performs one reminder pass.
func (j *CompletionReminderJob) Run(ctx context.Context, cmd commands.RemindOverdueCompletionsCommand) {
	count, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Completion reminder job failed", "error", err)
		return
	}
	if count > 0 {
		j.logger.InfoContext(ctx, "Overdue completion requests reported", "count", count)
	}
}

// Stop waits for a running pass to finish.
func (j *CompletionReminderJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Completion reminder job stopped")
}
