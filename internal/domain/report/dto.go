package report

import (
	"time"

	"github.com/chronopay/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type GroupBy string

const (
	GroupDaily   GroupBy = "daily"
	GroupMonthly GroupBy = "monthly"
)

// PeriodRequest parametrizes a report: a closed [start, end] date range plus
// a grouping granularity. Transient; never persisted.
type PeriodRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	GroupBy   string `json:"group_by,omitempty"` // daily|monthly, defaults to monthly
}

func (r *PeriodRequest) Validate() error {
	var errs validator.ValidationErrors

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date must be in YYYY-MM-DD format"})
	}
	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must be in YYYY-MM-DD format"})
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must not be before start_date"})
	}
	if r.GroupBy != "" && r.GroupBy != string(GroupDaily) && r.GroupBy != string(GroupMonthly) {
		errs = append(errs, validator.ValidationError{Field: "group_by", Message: "group_by must be daily or monthly"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Period returns the parsed range and granularity. Call after Validate.
func (r *PeriodRequest) Period() (start, end time.Time, groupBy GroupBy) {
	start, _ = validator.IsValidDate(r.StartDate)
	end, _ = validator.IsValidDate(r.EndDate)
	groupBy = GroupMonthly
	if r.GroupBy == string(GroupDaily) {
		groupBy = GroupDaily
	}
	return start, end, groupBy
}

// ========================================
// COMPENSATION REPORT
// ========================================

type CompensationSummary struct {
	TotalEmployees    int             `json:"total_employees"`
	TotalHours        decimal.Decimal `json:"total_hours"`
	TotalCompensation decimal.Decimal `json:"total_compensation"`
	AverageHourlyRate decimal.Decimal `json:"average_hourly_rate"`
}

type CompensationEmployee struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Position      string          `json:"position"`
	Department    string          `json:"department"`
	HourlyRate    decimal.Decimal `json:"hourly_rate"`
	DaysWorked    int             `json:"days_worked"`
	TotalHours    decimal.Decimal `json:"total_hours"`
	RegularHours  decimal.Decimal `json:"regular_hours"`
	OvertimeHours decimal.Decimal `json:"overtime_hours"`
	RegularPay    decimal.Decimal `json:"regular_pay"`
	OvertimePay   decimal.Decimal `json:"overtime_pay"`
	GrossPay      decimal.Decimal `json:"gross_pay"`
	Deductions    decimal.Decimal `json:"deductions"`
	NetPay        decimal.Decimal `json:"net_pay"`
	AvgDailyHours decimal.Decimal `json:"avg_daily_hours"`
}

type CompensationReport struct {
	Summary   CompensationSummary    `json:"summary"`
	Employees []CompensationEmployee `json:"employees"`
}

// ========================================
// PAYROLL SUMMARY REPORT
// ========================================

type PayrollSummaryTotals struct {
	Records    int             `json:"records"`
	GrossPay   decimal.Decimal `json:"gross_pay"`
	Taxes      decimal.Decimal `json:"taxes"`
	Deductions decimal.Decimal `json:"deductions"`
	NetPay     decimal.Decimal `json:"net_pay"`
}

type PayrollSummaryRow struct {
	Period     string          `json:"period"` // "2006-01-02" daily, "2006-01" monthly
	Records    int             `json:"records"`
	GrossPay   decimal.Decimal `json:"gross_pay"`
	Taxes      decimal.Decimal `json:"taxes"`
	Deductions decimal.Decimal `json:"deductions"`
	NetPay     decimal.Decimal `json:"net_pay"`
}

type PayrollSummaryReport struct {
	Totals PayrollSummaryTotals `json:"totals"`
	Rows   []PayrollSummaryRow  `json:"rows"`
}

// ========================================
// TIME & ATTENDANCE REPORT
// ========================================

type TimeAttendanceTotals struct {
	Employees int             `json:"employees"`
	Hours     decimal.Decimal `json:"hours"`
	Days      int             `json:"days"`
}

type TimeAttendanceRow struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Department    string          `json:"department"`
	Position      string          `json:"position"`
	TotalHours    decimal.Decimal `json:"total_hours"`
	DaysWorked    int             `json:"days_worked"`
	AvgDailyHours decimal.Decimal `json:"avg_daily_hours"`
}

type TimeAttendanceReport struct {
	Totals TimeAttendanceTotals `json:"totals"`
	Rows   []TimeAttendanceRow  `json:"rows"`
}
