package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/chronopay/payroll-backend-go/internal/domain/employee"
	"github.com/chronopay/payroll-backend-go/internal/domain/payroll"
	"github.com/chronopay/payroll-backend-go/internal/domain/report"
	"github.com/chronopay/payroll-backend-go/internal/domain/timeentry"
	"github.com/chronopay/payroll-backend-go/internal/pkg/paycalc"
	"github.com/shopspring/decimal"
)

// ReportServiceImpl aggregates over the storage contract in memory. Report
// ranges are bounded (a payroll period), so row counts stay small and the
// decimal sums stay exact.
type ReportServiceImpl struct {
	employeeRepo employee.Repository
	entryRepo    timeentry.Repository
	payrollRepo  payroll.Repository
}

func NewReportService(
	employeeRepo employee.Repository,
	entryRepo timeentry.Repository,
	payrollRepo payroll.Repository,
) report.Service {
	return &ReportServiceImpl{
		employeeRepo: employeeRepo,
		entryRepo:    entryRepo,
		payrollRepo:  payrollRepo,
	}
}

// employeeHours is the per-employee accumulation of closed entries.
type employeeHours struct {
	total   decimal.Decimal
	entries int
	days    map[string]struct{}
}

// avgEntryHours is the mean over non-zero entries. Days with several entries
// weigh by entry, not by day.
func (h *employeeHours) avgEntryHours() decimal.Decimal {
	if h.entries == 0 {
		return decimal.Zero
	}
	return h.total.Div(decimal.NewFromInt(int64(h.entries)))
}

// closedHoursByEmployee sums closed-entry hours per employee over the range.
// Zero-hour entries count toward neither days worked nor the entry mean.
func (s *ReportServiceImpl) closedHoursByEmployee(ctx context.Context, start, end time.Time) (map[string]*employeeHours, error) {
	status := timeentry.StatusClosed
	entries, err := s.entryRepo.Query(ctx, timeentry.Filter{
		DateFrom: &start,
		DateTo:   &end,
		Status:   &status,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query time entries: %w", err)
	}

	byEmployee := make(map[string]*employeeHours)
	for _, entry := range entries {
		acc, ok := byEmployee[entry.EmployeeID]
		if !ok {
			acc = &employeeHours{total: decimal.Zero, days: make(map[string]struct{})}
			byEmployee[entry.EmployeeID] = acc
		}
		acc.total = acc.total.Add(entry.TotalHours)
		if entry.TotalHours.IsPositive() {
			acc.entries++
			acc.days[entry.EntryDate.Format("2006-01-02")] = struct{}{}
		}
	}
	return byEmployee, nil
}

func (s *ReportServiceImpl) activeEmployees(ctx context.Context) ([]employee.Employee, error) {
	status := employee.StatusActive
	employees, err := s.employeeRepo.List(ctx, employee.ListFilter{Status: &status})
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	sort.Slice(employees, func(i, j int) bool { return employees[i].Name < employees[j].Name })
	return employees, nil
}

// CompensationReport implements report.Service. Every active employee gets a
// row, zero-valued when no closed entries fall in the range; pay is derived
// from the hours split and the employee's rate, while deductions come from
// the period's payroll records. An empty roster yields an empty report.
func (s *ReportServiceImpl) CompensationReport(ctx context.Context, req report.PeriodRequest) (report.CompensationReport, error) {
	if err := req.Validate(); err != nil {
		return report.CompensationReport{}, err
	}
	start, end, _ := req.Period()

	employees, err := s.activeEmployees(ctx)
	if err != nil {
		return report.CompensationReport{}, err
	}

	hoursByEmployee, err := s.closedHoursByEmployee(ctx, start, end)
	if err != nil {
		return report.CompensationReport{}, err
	}

	payrollRecords, err := s.payrollRepo.Query(ctx, payroll.Filter{
		PeriodFrom: &start,
		PeriodTo:   &end,
	})
	if err != nil {
		return report.CompensationReport{}, fmt.Errorf("failed to query payroll records: %w", err)
	}
	deductionsByEmployee := make(map[string]decimal.Decimal)
	for _, rec := range payrollRecords {
		deductionsByEmployee[rec.EmployeeID] = deductionsByEmployee[rec.EmployeeID].Add(rec.Deductions)
	}

	out := report.CompensationReport{Employees: []report.CompensationEmployee{}}
	totalHours := decimal.Zero
	totalCompensation := decimal.Zero

	for _, emp := range employees {
		acc, ok := hoursByEmployee[emp.ID]
		if !ok {
			acc = &employeeHours{total: decimal.Zero}
		}

		split := paycalc.SplitHours(acc.total)
		breakdown := paycalc.Compute(split, emp.HourlyRate, nil)
		deductions := deductionsByEmployee[emp.ID]
		daysWorked := len(acc.days)

		out.Employees = append(out.Employees, report.CompensationEmployee{
			ID:            emp.ID,
			Name:          emp.Name,
			Position:      emp.Position,
			Department:    emp.Department,
			HourlyRate:    paycalc.Round2(emp.HourlyRate),
			DaysWorked:    daysWorked,
			TotalHours:    paycalc.Round2(acc.total),
			RegularHours:  paycalc.Round2(split.Regular),
			OvertimeHours: paycalc.Round2(split.Overtime),
			RegularPay:    paycalc.Round2(breakdown.RegularPay),
			OvertimePay:   paycalc.Round2(breakdown.OvertimePay),
			GrossPay:      paycalc.Round2(breakdown.GrossPay),
			Deductions:    paycalc.Round2(deductions),
			NetPay:        paycalc.Round2(breakdown.GrossPay.Sub(deductions)),
			AvgDailyHours: paycalc.Round2(acc.avgEntryHours()),
		})

		totalHours = totalHours.Add(acc.total)
		totalCompensation = totalCompensation.Add(breakdown.GrossPay)
	}

	avgRate := decimal.Zero
	if totalHours.IsPositive() {
		avgRate = totalCompensation.Div(totalHours)
	}
	out.Summary = report.CompensationSummary{
		TotalEmployees:    len(out.Employees),
		TotalHours:        paycalc.Round2(totalHours),
		TotalCompensation: paycalc.Round2(totalCompensation),
		AverageHourlyRate: paycalc.Round2(avgRate),
	}

	return out, nil
}

// PayrollSummaryReport implements report.Service. Records bucket by their
// pay-period start, daily or monthly; buckets ascend.
func (s *ReportServiceImpl) PayrollSummaryReport(ctx context.Context, req report.PeriodRequest) (report.PayrollSummaryReport, error) {
	if err := req.Validate(); err != nil {
		return report.PayrollSummaryReport{}, err
	}
	start, end, groupBy := req.Period()

	records, err := s.payrollRepo.Query(ctx, payroll.Filter{
		PeriodFrom: &start,
		PeriodTo:   &end,
	})
	if err != nil {
		return report.PayrollSummaryReport{}, fmt.Errorf("failed to query payroll records: %w", err)
	}

	layout := "2006-01"
	if groupBy == report.GroupDaily {
		layout = "2006-01-02"
	}

	buckets := make(map[string]*report.PayrollSummaryRow)
	totals := report.PayrollSummaryTotals{
		GrossPay:   decimal.Zero,
		Taxes:      decimal.Zero,
		Deductions: decimal.Zero,
		NetPay:     decimal.Zero,
	}

	for _, rec := range records {
		key := rec.PayPeriodStart.Format(layout)
		row, ok := buckets[key]
		if !ok {
			row = &report.PayrollSummaryRow{
				Period:     key,
				GrossPay:   decimal.Zero,
				Taxes:      decimal.Zero,
				Deductions: decimal.Zero,
				NetPay:     decimal.Zero,
			}
			buckets[key] = row
		}
		row.Records++
		row.GrossPay = row.GrossPay.Add(rec.GrossPay)
		row.Taxes = row.Taxes.Add(rec.Taxes)
		row.Deductions = row.Deductions.Add(rec.Deductions)
		row.NetPay = row.NetPay.Add(rec.NetPay)

		totals.Records++
		totals.GrossPay = totals.GrossPay.Add(rec.GrossPay)
		totals.Taxes = totals.Taxes.Add(rec.Taxes)
		totals.Deductions = totals.Deductions.Add(rec.Deductions)
		totals.NetPay = totals.NetPay.Add(rec.NetPay)
	}

	keys := make([]string, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	rows := make([]report.PayrollSummaryRow, 0, len(keys))
	for _, key := range keys {
		row := buckets[key]
		row.GrossPay = paycalc.Round2(row.GrossPay)
		row.Taxes = paycalc.Round2(row.Taxes)
		row.Deductions = paycalc.Round2(row.Deductions)
		row.NetPay = paycalc.Round2(row.NetPay)
		rows = append(rows, *row)
	}

	totals.GrossPay = paycalc.Round2(totals.GrossPay)
	totals.Taxes = paycalc.Round2(totals.Taxes)
	totals.Deductions = paycalc.Round2(totals.Deductions)
	totals.NetPay = paycalc.Round2(totals.NetPay)

	return report.PayrollSummaryReport{Totals: totals, Rows: rows}, nil
}

// TimeAttendanceReport implements report.Service. Every active employee gets
// a row, zero-valued when no closed entries fall in the range.
func (s *ReportServiceImpl) TimeAttendanceReport(ctx context.Context, req report.PeriodRequest) (report.TimeAttendanceReport, error) {
	if err := req.Validate(); err != nil {
		return report.TimeAttendanceReport{}, err
	}
	start, end, _ := req.Period()

	employees, err := s.activeEmployees(ctx)
	if err != nil {
		return report.TimeAttendanceReport{}, err
	}

	hoursByEmployee, err := s.closedHoursByEmployee(ctx, start, end)
	if err != nil {
		return report.TimeAttendanceReport{}, err
	}

	out := report.TimeAttendanceReport{Rows: []report.TimeAttendanceRow{}}
	out.Totals.Hours = decimal.Zero

	for _, emp := range employees {
		acc, ok := hoursByEmployee[emp.ID]
		if !ok {
			acc = &employeeHours{total: decimal.Zero}
		}

		daysWorked := len(acc.days)
		out.Rows = append(out.Rows, report.TimeAttendanceRow{
			ID:            emp.ID,
			Name:          emp.Name,
			Department:    emp.Department,
			Position:      emp.Position,
			TotalHours:    paycalc.Round2(acc.total),
			DaysWorked:    daysWorked,
			AvgDailyHours: paycalc.Round2(acc.avgEntryHours()),
		})

		out.Totals.Employees++
		out.Totals.Hours = out.Totals.Hours.Add(acc.total)
		out.Totals.Days += daysWorked
	}
	out.Totals.Hours = paycalc.Round2(out.Totals.Hours)

	return out, nil
}
