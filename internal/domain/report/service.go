package report

import "context"

// Service aggregates time entries and payroll records into period reports.
// All three reads are idempotent; none mutates stored data.
type Service interface {
	CompensationReport(ctx context.Context, req PeriodRequest) (CompensationReport, error)
	PayrollSummaryReport(ctx context.Context, req PeriodRequest) (PayrollSummaryReport, error)
	TimeAttendanceReport(ctx context.Context, req PeriodRequest) (TimeAttendanceReport, error)
}
