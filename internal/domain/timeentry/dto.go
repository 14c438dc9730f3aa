package timeentry

import (
	"github.com/chronopay/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type ClockInRequest struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date,omitempty"` // defaults to today
	Time       string `json:"time,omitempty"` // defaults to now
}

func (r *ClockInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if r.Date != "" {
		if _, ok := validator.IsValidDate(r.Date); !ok {
			errs = append(errs, validator.ValidationError{Field: "date", Message: "date must be in YYYY-MM-DD format"})
		}
	}
	if r.Time != "" && !validator.IsValidClockTime(r.Time) {
		errs = append(errs, validator.ValidationError{Field: "time", Message: "time must be in HH:MM:SS format"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ClockOutRequest struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date,omitempty"`
	Time       string `json:"time,omitempty"`
}

func (r *ClockOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if r.Date != "" {
		if _, ok := validator.IsValidDate(r.Date); !ok {
			errs = append(errs, validator.ValidationError{Field: "date", Message: "date must be in YYYY-MM-DD format"})
		}
	}
	if r.Time != "" && !validator.IsValidClockTime(r.Time) {
		errs = append(errs, validator.ValidationError{Field: "time", Message: "time must be in HH:MM:SS format"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// CreateEntryRequest covers manual entry. Either clock may be omitted; the
// entry then stays Open with zero hours.
type CreateEntryRequest struct {
	EmployeeID string  `json:"employee_id"`
	EntryDate  string  `json:"entry_date"`
	ClockIn    *string `json:"clock_in,omitempty"`
	ClockOut   *string `json:"clock_out,omitempty"`
	Notes      *string `json:"notes,omitempty"`
}

func (r *CreateEntryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if _, ok := validator.IsValidDate(r.EntryDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "entry_date", Message: "entry_date must be in YYYY-MM-DD format"})
	}
	if r.ClockIn != nil && !validator.IsValidClockTime(*r.ClockIn) {
		errs = append(errs, validator.ValidationError{Field: "clock_in", Message: "clock_in must be in HH:MM:SS format"})
	}
	if r.ClockOut != nil && !validator.IsValidClockTime(*r.ClockOut) {
		errs = append(errs, validator.ValidationError{Field: "clock_out", Message: "clock_out must be in HH:MM:SS format"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEntryRequest struct {
	ID         string  `json:"-"`
	EmployeeID string  `json:"employee_id"`
	EntryDate  string  `json:"entry_date"`
	ClockIn    *string `json:"clock_in,omitempty"`
	ClockOut   *string `json:"clock_out,omitempty"`
	Notes      *string `json:"notes,omitempty"`
}

func (r *UpdateEntryRequest) Validate() error {
	create := CreateEntryRequest{
		EmployeeID: r.EmployeeID,
		EntryDate:  r.EntryDate,
		ClockIn:    r.ClockIn,
		ClockOut:   r.ClockOut,
	}
	return create.Validate()
}

type ListEntriesFilter struct {
	EmployeeID string
	DateFrom   string
	DateTo     string
	Status     string
}

type EntryResponse struct {
	ID           string          `json:"id"`
	EmployeeID   string          `json:"employee_id"`
	EmployeeName *string         `json:"employee_name,omitempty"`
	EntryDate    string          `json:"entry_date"`
	ClockIn      *string         `json:"clock_in"`
	ClockOut     *string         `json:"clock_out"`
	TotalHours   decimal.Decimal `json:"total_hours"`
	Status       string          `json:"status"`
	Notes        *string         `json:"notes,omitempty"`
}

type BulkCloseResponse struct {
	Closed int    `json:"closed"`
	Date   string `json:"date"`
	Time   string `json:"time"`
}
