package payroll

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/chronopay/payroll-backend-go/internal/domain/employee"
	"github.com/chronopay/payroll-backend-go/internal/domain/payroll"
	"github.com/chronopay/payroll-backend-go/internal/pkg/database"
	"github.com/chronopay/payroll-backend-go/internal/pkg/paycalc"
	"github.com/chronopay/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type PayrollServiceImpl struct {
	payrollRepo  payroll.Repository
	employeeRepo employee.Repository
	tx           database.TxManager
}

func NewPayrollService(
	payrollRepo payroll.Repository,
	employeeRepo employee.Repository,
	tx database.TxManager,
) payroll.Service {
	if tx == nil {
		tx = database.NoopTxManager{}
	}
	return &PayrollServiceImpl{
		payrollRepo:  payrollRepo,
		employeeRepo: employeeRepo,
		tx:           tx,
	}
}

// StartPayRun implements payroll.Service. Seeds one pending zero-valued
// record for every employee on the roster, active or not, covering the
// month's period. A later edit or recompute fills the amounts in. The
// whole run is one transaction, and the (employee, period) idempotency key
// makes re-invocation create only the records that are missing.
func (s *PayrollServiceImpl) StartPayRun(ctx context.Context, req payroll.StartPayRunRequest) (payroll.PayRunResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayRunResponse{}, err
	}

	month, _ := validator.IsValidMonth(req.Month)
	periodStart := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	periodEnd := periodStart.AddDate(0, 1, -1)

	employees, err := s.employeeRepo.List(ctx, employee.ListFilter{})
	if err != nil {
		return payroll.PayRunResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	created := 0
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		for _, emp := range employees {
			record := payroll.Record{
				EmployeeID:     emp.ID,
				PayPeriodStart: periodStart,
				PayPeriodEnd:   periodEnd,
				RegularHours:   decimal.Zero,
				OvertimeHours:  decimal.Zero,
				GrossPay:       decimal.Zero,
				Taxes:          decimal.Zero,
				Deductions:     decimal.Zero,
				NetPay:         decimal.Zero,
				Status:         payroll.StatusPending,
			}
			inserted, err := s.payrollRepo.CreateIfAbsent(ctx, record)
			if err != nil {
				return fmt.Errorf("failed to insert payroll record for employee %s: %w", emp.ID, err)
			}
			if inserted {
				created++
			}
		}
		return nil
	})
	if err != nil {
		return payroll.PayRunResponse{}, err
	}

	slog.Info("Pay run completed", "month", req.Month, "records_created", created)

	return payroll.PayRunResponse{
		Month:          req.Month,
		PayPeriodStart: periodStart.Format("2006-01-02"),
		PayPeriodEnd:   periodEnd.Format("2006-01-02"),
		RecordsCreated: created,
	}, nil
}

// CreateRecord implements payroll.Service. A record supplied with hours but
// no gross amount is priced from the employee's hourly rate; an explicitly
// supplied deductions value overrides the statutory formula.
func (s *PayrollServiceImpl) CreateRecord(ctx context.Context, req payroll.CreateRecordRequest) (payroll.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.RecordResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return payroll.RecordResponse{}, err
	}

	periodStart, _ := validator.IsValidDate(req.PayPeriodStart)
	periodEnd, _ := validator.IsValidDate(req.PayPeriodEnd)

	status := payroll.StatusDraft
	if req.Status != "" {
		status = payroll.Status(req.Status)
	}

	record := payroll.Record{
		EmployeeID:     emp.ID,
		PayPeriodStart: periodStart,
		PayPeriodEnd:   periodEnd,
		RegularHours:   req.RegularHours,
		OvertimeHours:  req.OvertimeHours,
		GrossPay:       req.GrossPay,
		Taxes:          req.Taxes,
		Status:         status,
		Notes:          req.Notes,
	}
	if req.Deductions != nil {
		record.Deductions = *req.Deductions
	}

	s.derive(&record, emp.HourlyRate, req.Deductions)

	created, err := s.payrollRepo.Create(ctx, record)
	if err != nil {
		return payroll.RecordResponse{}, err
	}
	if created.EmployeeName == nil {
		created.EmployeeName = &emp.Name
	}

	return mapToRecordResponse(created), nil
}

// UpdateRecord implements payroll.Service.
func (s *PayrollServiceImpl) UpdateRecord(ctx context.Context, req payroll.UpdateRecordRequest) (payroll.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.RecordResponse{}, err
	}

	record, err := s.payrollRepo.GetByID(ctx, req.ID)
	if err != nil {
		return payroll.RecordResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, record.EmployeeID)
	if err != nil {
		return payroll.RecordResponse{}, err
	}

	if req.RegularHours != nil {
		record.RegularHours = *req.RegularHours
	}
	if req.OvertimeHours != nil {
		record.OvertimeHours = *req.OvertimeHours
	}
	if req.GrossPay != nil {
		record.GrossPay = *req.GrossPay
	}
	if req.Taxes != nil {
		record.Taxes = *req.Taxes
	}
	if req.Deductions != nil {
		record.Deductions = *req.Deductions
	}
	if req.Status != nil {
		record.Status = payroll.Status(*req.Status)
	}
	if req.Notes != nil {
		record.Notes = req.Notes
	}

	hoursEdited := req.RegularHours != nil || req.OvertimeHours != nil
	if hoursEdited && req.GrossPay == nil {
		// Force a reprice from the employee's rate.
		record.GrossPay = decimal.Zero
	}
	s.derive(&record, emp.HourlyRate, req.Deductions)

	if err := s.payrollRepo.Update(ctx, record); err != nil {
		return payroll.RecordResponse{}, err
	}
	if record.EmployeeName == nil {
		record.EmployeeName = &emp.Name
	}

	return mapToRecordResponse(record), nil
}

// derive fills the monetary fields. When gross is zero but hours are
// present, the full breakdown is recomputed from the hourly rate; otherwise
// the supplied amounts stand and only the net-pay invariant is enforced.
func (s *PayrollServiceImpl) derive(record *payroll.Record, hourlyRate decimal.Decimal, deductionOverride *decimal.Decimal) {
	hasHours := record.RegularHours.IsPositive() || record.OvertimeHours.IsPositive()

	if record.GrossPay.IsZero() && hasHours {
		breakdown := paycalc.Compute(paycalc.HoursSplit{
			Regular:  record.RegularHours,
			Overtime: record.OvertimeHours,
		}, hourlyRate, deductionOverride)

		record.GrossPay = paycalc.Round2(breakdown.GrossPay)
		record.Taxes = paycalc.Round2(breakdown.Taxes)
		record.Deductions = paycalc.Round2(breakdown.Deductions)
	}

	record.NetPay = record.GrossPay.Sub(record.Taxes).Sub(record.Deductions)
}

// UpdateStatus implements payroll.Service.
func (s *PayrollServiceImpl) UpdateStatus(ctx context.Context, id string, status string) error {
	if validator.IsEmpty(id) {
		return validator.ValidationErrors{{Field: "id", Message: "id is required"}}
	}
	if !validator.IsInSlice(status, payroll.ValidStatuses()) {
		return payroll.ErrInvalidStatus
	}
	return s.payrollRepo.UpdateStatus(ctx, id, payroll.Status(status))
}

// DeleteRecord implements payroll.Service.
func (s *PayrollServiceImpl) DeleteRecord(ctx context.Context, id string) error {
	if validator.IsEmpty(id) {
		return validator.ValidationErrors{{Field: "id", Message: "id is required"}}
	}
	return s.payrollRepo.Delete(ctx, id)
}

// GetRecord implements payroll.Service.
func (s *PayrollServiceImpl) GetRecord(ctx context.Context, id string) (payroll.RecordResponse, error) {
	record, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return payroll.RecordResponse{}, err
	}
	return mapToRecordResponse(record), nil
}

// ListRecords implements payroll.Service.
func (s *PayrollServiceImpl) ListRecords(ctx context.Context, filter payroll.ListRecordsFilter) ([]payroll.RecordResponse, error) {
	repoFilter, err := buildFilter(filter)
	if err != nil {
		return nil, err
	}

	records, err := s.payrollRepo.Query(ctx, repoFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]payroll.RecordResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, mapToRecordResponse(rec))
	}
	return responses, nil
}

func buildFilter(filter payroll.ListRecordsFilter) (payroll.Filter, error) {
	var errs validator.ValidationErrors
	var out payroll.Filter

	if filter.EmployeeID != "" {
		id := filter.EmployeeID
		out.EmployeeID = &id
	}
	if filter.PeriodFrom != "" {
		d, ok := validator.IsValidDate(filter.PeriodFrom)
		if !ok {
			errs = append(errs, validator.ValidationError{Field: "period_from", Message: "period_from must be in YYYY-MM-DD format"})
		} else {
			out.PeriodFrom = &d
		}
	}
	if filter.PeriodTo != "" {
		d, ok := validator.IsValidDate(filter.PeriodTo)
		if !ok {
			errs = append(errs, validator.ValidationError{Field: "period_to", Message: "period_to must be in YYYY-MM-DD format"})
		} else {
			out.PeriodTo = &d
		}
	}
	if filter.Status != "" {
		if !validator.IsInSlice(filter.Status, payroll.ValidStatuses()) {
			errs = append(errs, validator.ValidationError{Field: "status", Message: "status must be one of draft, pending, approved, paid"})
		} else {
			status := payroll.Status(filter.Status)
			out.Status = &status
		}
	}

	if len(errs) > 0 {
		return payroll.Filter{}, errs
	}
	return out, nil
}

func mapToRecordResponse(r payroll.Record) payroll.RecordResponse {
	return payroll.RecordResponse{
		ID:             r.ID,
		EmployeeID:     r.EmployeeID,
		EmployeeName:   r.EmployeeName,
		PayPeriodStart: r.PayPeriodStart.Format("2006-01-02"),
		PayPeriodEnd:   r.PayPeriodEnd.Format("2006-01-02"),
		RegularHours:   paycalc.Round2(r.RegularHours),
		OvertimeHours:  paycalc.Round2(r.OvertimeHours),
		GrossPay:       paycalc.Round2(r.GrossPay),
		Taxes:          paycalc.Round2(r.Taxes),
		Deductions:     paycalc.Round2(r.Deductions),
		NetPay:         paycalc.Round2(r.NetPay),
		Status:         string(r.Status),
		Notes:          r.Notes,
	}
}
