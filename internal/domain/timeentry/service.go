package timeentry

import "context"

// Service is the clock-state ledger: it owns the open/closed lifecycle of a
// time entry and the elapsed-hours computation.
type Service interface {
	// ClockIn opens an entry for the employee on the given date. Fails with
	// ErrAlreadyClockedIn when an open entry already exists for that day.
	ClockIn(ctx context.Context, req ClockInRequest) (EntryResponse, error)

	// ClockOut closes the open entry for the employee and date, computing
	// total hours at minutes resolution. Fails with ErrNoOpenEntry when
	// nothing is open.
	ClockOut(ctx context.Context, req ClockOutRequest) (EntryResponse, error)

	// BulkCloseOpenToday closes every open entry dated today in a single
	// transaction and reports how many were closed. Entries for other dates
	// are untouched.
	BulkCloseOpenToday(ctx context.Context, at string) (BulkCloseResponse, error)

	CreateEntry(ctx context.Context, req CreateEntryRequest) (EntryResponse, error)
	UpdateEntry(ctx context.Context, req UpdateEntryRequest) (EntryResponse, error)
	DeleteEntry(ctx context.Context, id string) error
	GetEntry(ctx context.Context, id string) (EntryResponse, error)
	ListEntries(ctx context.Context, filter ListEntriesFilter) ([]EntryResponse, error)
}
