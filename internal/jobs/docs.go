// Package jobs provides scheduled background tasks built on
// github.com/robfig/cron/v3.
//
// CompletionReminderJob looks for completion requests older than a
// configured age and notifies admins about each one. It runs on
// COMPLETION_REMINDER_SCHEDULE, a six-field cron spec with seconds:
//
//	jobManager := jobs.NewJobManager(
//		jobs.NewCompletionReminderJob(handler, "0 */10 * * * *", 2*time.Hour, logger),
//	)
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// A failed pass is logged and retried on the next tick.
package jobs
