package timeentry

import (
	"context"
	"time"
)

// Filter narrows Query results. Nil fields match everything.
type Filter struct {
	EmployeeID *string
	DateFrom   *time.Time
	DateTo     *time.Time
	Status     *Status
}

type Repository interface {
	// Create inserts a new entry. The storage layer enforces at most one
	// open entry per employee per date; a violation surfaces as
	// ErrAlreadyClockedIn.
	Create(ctx context.Context, entry TimeEntry) (TimeEntry, error)

	GetByID(ctx context.Context, id string) (TimeEntry, error)

	// GetOpenByEmployeeAndDate returns nil when no open entry exists.
	GetOpenByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*TimeEntry, error)

	// ListOpenByDate returns every open entry for the given date.
	ListOpenByDate(ctx context.Context, date time.Time) ([]TimeEntry, error)

	Update(ctx context.Context, entry TimeEntry) error
	Delete(ctx context.Context, id string) error
	Query(ctx context.Context, filter Filter) ([]TimeEntry, error)
}
