package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/brianvoe/gofakeit"
	"github.com/chronopay/payroll-backend-go/internal/domain/employee"
	"github.com/chronopay/payroll-backend-go/internal/domain/payroll"
	"github.com/chronopay/payroll-backend-go/internal/domain/timeentry"
	"github.com/chronopay/payroll-backend-go/internal/pkg/database"
	"github.com/chronopay/payroll-backend-go/internal/pkg/paycalc"
	"github.com/chronopay/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

const rosterSize = 5

var departments = []string{"Engineering", "Sales", "Finance", "Operations", "Human Resources"}

// Request bounds the demo data: weekday time entries plus one payroll record
// per employee over the closed [StartDate, EndDate] range.
type Request struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (r *Request) Validate() error {
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

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type Result struct {
	EmployeesCreated int `json:"employees_created"`
	EntriesCreated   int `json:"entries_created"`
	PayrollsCreated  int `json:"payrolls_created"`
}

type Service interface {
	// SeedDemoData populates demo employees, closed weekday time entries and
	// one approved payroll record per employee for the range. Existing rows
	// are left alone, so repeated invocations only fill gaps. Reports never
	// trigger this; it is always an explicit call.
	SeedDemoData(ctx context.Context, req Request) (Result, error)
}

type SeedServiceImpl struct {
	employeeRepo employee.Repository
	entryRepo    timeentry.Repository
	payrollRepo  payroll.Repository
	tx           database.TxManager
}

func NewSeedService(
	employeeRepo employee.Repository,
	entryRepo timeentry.Repository,
	payrollRepo payroll.Repository,
	tx database.TxManager,
) Service {
	if tx == nil {
		tx = database.NoopTxManager{}
	}
	return &SeedServiceImpl{
		employeeRepo: employeeRepo,
		entryRepo:    entryRepo,
		payrollRepo:  payrollRepo,
		tx:           tx,
	}
}

func (s *SeedServiceImpl) SeedDemoData(ctx context.Context, req Request) (Result, error) {
	if err := req.Validate(); err != nil {
		return Result{}, err
	}
	start, _ := validator.IsValidDate(req.StartDate)
	end, _ := validator.IsValidDate(req.EndDate)

	var result Result
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		roster, created, err := s.ensureRoster(ctx)
		if err != nil {
			return err
		}
		result.EmployeesCreated = created

		for _, emp := range roster {
			entries, hours, err := s.seedEntries(ctx, emp, start, end)
			if err != nil {
				return err
			}
			result.EntriesCreated += entries

			inserted, err := s.seedPayroll(ctx, emp, start, end, hours)
			if err != nil {
				return err
			}
			if inserted {
				result.PayrollsCreated++
			}
		}
		return nil
	})
	if err != nil {
		return Result{}, fmt.Errorf("demo seeding failed: %w", err)
	}

	slog.Info("Demo data seeded",
		"employees_created", result.EmployeesCreated,
		"entries_created", result.EntriesCreated,
		"payrolls_created", result.PayrollsCreated)

	return result, nil
}

// ensureRoster tops the active roster up to five employees with generated
// names and rates.
func (s *SeedServiceImpl) ensureRoster(ctx context.Context) ([]employee.Employee, int, error) {
	status := employee.StatusActive
	roster, err := s.employeeRepo.List(ctx, employee.ListFilter{Status: &status})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list employees: %w", err)
	}

	created := 0
	for len(roster) < rosterSize {
		emp := employee.Employee{
			Name:       gofakeit.Name(),
			Position:   gofakeit.JobTitle(),
			Department: departments[gofakeit.Number(0, len(departments)-1)],
			HourlyRate: decimal.NewFromFloat(gofakeit.Price(15, 45)).Round(2),
			Status:     employee.StatusActive,
			HireDate:   time.Now().UTC().AddDate(-1, 0, 0),
		}
		inserted, err := s.employeeRepo.Create(ctx, emp)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to create demo employee: %w", err)
		}
		roster = append(roster, inserted)
		created++
	}

	if len(roster) > rosterSize {
		roster = roster[:rosterSize]
	}
	return roster, created, nil
}

// seedEntries writes one closed entry per weekday the employee has none,
// starting 08:00 with a 7 to 9.5 hour shift in quarter-hour steps. Returns
// the count written and the employee's total closed hours over the range,
// existing entries included.
func (s *SeedServiceImpl) seedEntries(ctx context.Context, emp employee.Employee, start, end time.Time) (int, decimal.Decimal, error) {
	existing, err := s.entryRepo.Query(ctx, timeentry.Filter{
		EmployeeID: &emp.ID,
		DateFrom:   &start,
		DateTo:     &end,
	})
	if err != nil {
		return 0, decimal.Zero, fmt.Errorf("failed to query existing entries: %w", err)
	}

	haveDate := make(map[string]struct{}, len(existing))
	totalHours := decimal.Zero
	for _, e := range existing {
		haveDate[e.EntryDate.Format("2006-01-02")] = struct{}{}
		if e.Status == timeentry.StatusClosed {
			totalHours = totalHours.Add(e.TotalHours)
		}
	}

	created := 0
	for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
		if date.Weekday() == time.Saturday || date.Weekday() == time.Sunday {
			continue
		}
		if _, ok := haveDate[date.Format("2006-01-02")]; ok {
			continue
		}

		// 7h plus 0 to 10 quarter hours.
		shiftMinutes := 7*60 + 15*gofakeit.Number(0, 10)
		clockIn := timeentry.TimeOfDay{Hour: 8}
		outMinutes := 8*60 + shiftMinutes
		clockOut := timeentry.TimeOfDay{Hour: outMinutes / 60, Minute: outMinutes % 60}

		entry := timeentry.TimeEntry{
			EmployeeID: emp.ID,
			EntryDate:  date,
			ClockIn:    &clockIn,
			ClockOut:   &clockOut,
		}
		entry.Recompute()

		if _, err := s.entryRepo.Create(ctx, entry); err != nil {
			return 0, decimal.Zero, fmt.Errorf("failed to create demo entry: %w", err)
		}
		created++
		totalHours = totalHours.Add(entry.TotalHours)
	}

	return created, totalHours, nil
}

// seedPayroll derives one approved record for the range from the employee's
// total hours via the standard formulas. The idempotency key skips employees
// that already have a record for the period.
func (s *SeedServiceImpl) seedPayroll(ctx context.Context, emp employee.Employee, start, end time.Time, totalHours decimal.Decimal) (bool, error) {
	breakdown := paycalc.ComputeFromTotal(totalHours, emp.HourlyRate, nil)
	split := paycalc.SplitHours(totalHours)

	// Round each stored amount, then derive net from the rounded figures so
	// the net-pay invariant holds on what is persisted.
	gross := paycalc.Round2(breakdown.GrossPay)
	taxes := paycalc.Round2(breakdown.Taxes)
	deductions := paycalc.Round2(breakdown.Deductions)

	inserted, err := s.payrollRepo.CreateIfAbsent(ctx, payroll.Record{
		EmployeeID:     emp.ID,
		PayPeriodStart: start,
		PayPeriodEnd:   end,
		RegularHours:   paycalc.Round2(split.Regular),
		OvertimeHours:  paycalc.Round2(split.Overtime),
		GrossPay:       gross,
		Taxes:          taxes,
		Deductions:     deductions,
		NetPay:         gross.Sub(taxes).Sub(deductions),
		Status:         payroll.StatusApproved,
	})
	if err != nil {
		return false, fmt.Errorf("failed to create demo payroll record: %w", err)
	}
	return inserted, nil
}
