package payroll

import (
	"github.com/chronopay/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type StartPayRunRequest struct {
	Month string `json:"month"` // "2006-01"
}

func (r *StartPayRunRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Month) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "month is required"})
	} else if _, ok := validator.IsValidMonth(r.Month); !ok {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "month must be in YYYY-MM format"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreateRecordRequest struct {
	EmployeeID     string           `json:"employee_id"`
	PayPeriodStart string           `json:"pay_period_start"`
	PayPeriodEnd   string           `json:"pay_period_end"`
	RegularHours   decimal.Decimal  `json:"regular_hours"`
	OvertimeHours  decimal.Decimal  `json:"overtime_hours"`
	GrossPay       decimal.Decimal  `json:"gross_pay"`
	Taxes          decimal.Decimal  `json:"taxes"`
	Deductions     *decimal.Decimal `json:"deductions,omitempty"`
	Status         string           `json:"status,omitempty"`
	Notes          *string          `json:"notes,omitempty"`
}

func (r *CreateRecordRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	start, startOK := validator.IsValidDate(r.PayPeriodStart)
	if !startOK {
		errs = append(errs, validator.ValidationError{Field: "pay_period_start", Message: "pay_period_start must be in YYYY-MM-DD format"})
	}
	end, endOK := validator.IsValidDate(r.PayPeriodEnd)
	if !endOK {
		errs = append(errs, validator.ValidationError{Field: "pay_period_end", Message: "pay_period_end must be in YYYY-MM-DD format"})
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "pay_period_end", Message: "pay_period_end must not be before pay_period_start"})
	}
	if r.RegularHours.IsNegative() || r.OvertimeHours.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "hours", Message: "hours must not be negative"})
	}
	if r.Status != "" && !validator.IsInSlice(r.Status, ValidStatuses()) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "status must be one of draft, pending, approved, paid"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateRecordRequest carries the editable fields of a record. Net pay is not
// among them: it is always re-derived from gross, taxes and deductions.
type UpdateRecordRequest struct {
	ID            string           `json:"-"`
	RegularHours  *decimal.Decimal `json:"regular_hours,omitempty"`
	OvertimeHours *decimal.Decimal `json:"overtime_hours,omitempty"`
	GrossPay      *decimal.Decimal `json:"gross_pay,omitempty"`
	Taxes         *decimal.Decimal `json:"taxes,omitempty"`
	Deductions    *decimal.Decimal `json:"deductions,omitempty"`
	Status        *string          `json:"status,omitempty"`
	Notes         *string          `json:"notes,omitempty"`
}

func (r *UpdateRecordRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "id is required"})
	}
	if r.Status != nil && !validator.IsInSlice(*r.Status, ValidStatuses()) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "status must be one of draft, pending, approved, paid"})
	}
	for field, d := range map[string]*decimal.Decimal{
		"regular_hours":  r.RegularHours,
		"overtime_hours": r.OvertimeHours,
		"gross_pay":      r.GrossPay,
		"taxes":          r.Taxes,
		"deductions":     r.Deductions,
	} {
		if d != nil && d.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: field, Message: field + " must not be negative"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListRecordsFilter struct {
	EmployeeID string
	PeriodFrom string
	PeriodTo   string
	Status     string
}

type RecordResponse struct {
	ID             string          `json:"id"`
	EmployeeID     string          `json:"employee_id"`
	EmployeeName   *string         `json:"employee_name,omitempty"`
	PayPeriodStart string          `json:"pay_period_start"`
	PayPeriodEnd   string          `json:"pay_period_end"`
	RegularHours   decimal.Decimal `json:"regular_hours"`
	OvertimeHours  decimal.Decimal `json:"overtime_hours"`
	GrossPay       decimal.Decimal `json:"gross_pay"`
	Taxes          decimal.Decimal `json:"taxes"`
	Deductions     decimal.Decimal `json:"deductions"`
	NetPay         decimal.Decimal `json:"net_pay"`
	Status         string          `json:"status"`
	Notes          *string         `json:"notes,omitempty"`
}

type PayRunResponse struct {
	Month          string `json:"month"`
	PayPeriodStart string `json:"pay_period_start"`
	PayPeriodEnd   string `json:"pay_period_end"`
	RecordsCreated int    `json:"records_created"`
}
