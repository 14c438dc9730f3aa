package timeentry

import "errors"

var (
	// Clock state conflicts
	ErrAlreadyClockedIn = errors.New("employee already has an open entry for this date")
	ErrNoOpenEntry      = errors.New("no open entry found for this employee and date")

	// Validation
	ErrClockOutBeforeClockIn = errors.New("clock-out is earlier than clock-in; entries must not cross midnight")

	ErrTimeEntryNotFound = errors.New("time entry not found")
)
