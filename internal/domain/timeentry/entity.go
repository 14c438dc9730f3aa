package timeentry

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusOpen   Status = "Open"
	StatusClosed Status = "Closed"
)

// TimeEntry is one clock event for one employee on one day.
// Invariant: Status is Closed iff both clocks are set; TotalHours is zero
// while Open.
type TimeEntry struct {
	ID         string
	EmployeeID string
	EntryDate  time.Time
	ClockIn    *TimeOfDay
	ClockOut   *TimeOfDay
	TotalHours decimal.Decimal
	Status     Status
	Notes      *string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Joined fields
	EmployeeName *string
}

// Recompute derives TotalHours and Status from the clock fields, applying
// the same formula clock-out uses. Entries missing either clock stay Open
// with zero hours.
func (e *TimeEntry) Recompute() {
	if e.ClockIn != nil && e.ClockOut != nil {
		e.TotalHours = HoursBetween(*e.ClockIn, *e.ClockOut)
		e.Status = StatusClosed
		return
	}
	e.TotalHours = decimal.Zero
	e.Status = StatusOpen
}

func (e TimeEntry) IsOpen() bool {
	return e.Status == StatusOpen
}
