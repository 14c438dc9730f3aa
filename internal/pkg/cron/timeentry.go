package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/chronopay/payroll-backend-go/internal/domain/timeentry"
)

// closeOpenEntriesAt is the cutoff written into entries the end-of-day job
// closes.
const closeOpenEntriesAt = "23:00:00"

type TimeEntryJobs struct {
	ledgerService timeentry.Service
}

func NewTimeEntryJobs(ledgerService timeentry.Service) *TimeEntryJobs {
	return &TimeEntryJobs{
		ledgerService: ledgerService,
	}
}

func (j *TimeEntryJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("close_open_time_entries", 1*time.Hour, j.CloseOpenEntries)
}

// CloseOpenEntries closes every entry still open for today, using the same
// elapsed-hours formula as a manual clock-out.
func (j *TimeEntryJobs) CloseOpenEntries(ctx context.Context) error {
	// Only run at end of day (23:00-23:59 UTC)
	if time.Now().UTC().Hour() != 23 {
		return nil
	}

	slog.Info("Cron: Starting close open time entries job")

	result, err := j.ledgerService.BulkCloseOpenToday(ctx, closeOpenEntriesAt)
	if err != nil {
		return err
	}

	slog.Info("Cron: Closed open time entries", "count", result.Closed, "date", result.Date)
	return nil
}
