package payroll

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/chronopay/payroll-backend-go/internal/domain/employee"
	"github.com/chronopay/payroll-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
	order     []string
}

func newFakeEmployeeRepo(emps ...employee.Employee) *fakeEmployeeRepo {
	repo := &fakeEmployeeRepo{employees: make(map[string]employee.Employee)}
	for _, e := range emps {
		repo.employees[e.ID] = e
		repo.order = append(repo.order, e.ID)
	}
	return repo
}

func (r *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	emp, ok := r.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (r *fakeEmployeeRepo) List(_ context.Context, filter employee.ListFilter) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, id := range r.order {
		e := r.employees[id]
		if filter.Status != nil && e.Status != *filter.Status {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (r *fakeEmployeeRepo) Create(_ context.Context, emp employee.Employee) (employee.Employee, error) {
	r.employees[emp.ID] = emp
	r.order = append(r.order, emp.ID)
	return emp, nil
}

func (r *fakeEmployeeRepo) Update(_ context.Context, emp employee.Employee) error {
	if _, ok := r.employees[emp.ID]; !ok {
		return employee.ErrEmployeeNotFound
	}
	r.employees[emp.ID] = emp
	return nil
}

func (r *fakeEmployeeRepo) SetStatus(_ context.Context, id string, status employee.Status) error {
	emp, ok := r.employees[id]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	emp.Status = status
	r.employees[id] = emp
	return nil
}

type fakePayrollRepo struct {
	records map[string]payroll.Record
	nextID  int
}

func newFakePayrollRepo() *fakePayrollRepo {
	return &fakePayrollRepo{records: make(map[string]payroll.Record)}
}

func (r *fakePayrollRepo) Create(_ context.Context, record payroll.Record) (payroll.Record, error) {
	r.nextID++
	record.ID = fmt.Sprintf("pay-%d", r.nextID)
	r.records[record.ID] = record
	return record, nil
}

func (r *fakePayrollRepo) CreateIfAbsent(_ context.Context, record payroll.Record) (bool, error) {
	for _, existing := range r.records {
		if existing.EmployeeID == record.EmployeeID &&
			existing.PayPeriodStart.Equal(record.PayPeriodStart) &&
			existing.PayPeriodEnd.Equal(record.PayPeriodEnd) {
			return false, nil
		}
	}
	r.nextID++
	record.ID = fmt.Sprintf("pay-%d", r.nextID)
	r.records[record.ID] = record
	return true, nil
}

func (r *fakePayrollRepo) GetByID(_ context.Context, id string) (payroll.Record, error) {
	record, ok := r.records[id]
	if !ok {
		return payroll.Record{}, payroll.ErrRecordNotFound
	}
	return record, nil
}

func (r *fakePayrollRepo) Update(_ context.Context, record payroll.Record) error {
	if _, ok := r.records[record.ID]; !ok {
		return payroll.ErrRecordNotFound
	}
	r.records[record.ID] = record
	return nil
}

func (r *fakePayrollRepo) UpdateStatus(_ context.Context, id string, status payroll.Status) error {
	record, ok := r.records[id]
	if !ok {
		return payroll.ErrRecordNotFound
	}
	record.Status = status
	r.records[id] = record
	return nil
}

func (r *fakePayrollRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.records[id]; !ok {
		return payroll.ErrRecordNotFound
	}
	delete(r.records, id)
	return nil
}

func (r *fakePayrollRepo) Query(_ context.Context, filter payroll.Filter) ([]payroll.Record, error) {
	var out []payroll.Record
	for _, rec := range r.records {
		if filter.EmployeeID != nil && rec.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.PeriodFrom != nil && rec.PayPeriodStart.Before(*filter.PeriodFrom) {
			continue
		}
		if filter.PeriodTo != nil && rec.PayPeriodEnd.After(*filter.PeriodTo) {
			continue
		}
		if filter.Status != nil && rec.Status != *filter.Status {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func rosterOf(active, inactive int) []employee.Employee {
	var emps []employee.Employee
	for i := 0; i < active; i++ {
		emps = append(emps, employee.Employee{
			ID:         fmt.Sprintf("active-%d", i+1),
			Name:       fmt.Sprintf("Active %d", i+1),
			HourlyRate: decimal.NewFromInt(20),
			Status:     employee.StatusActive,
		})
	}
	for i := 0; i < inactive; i++ {
		emps = append(emps, employee.Employee{
			ID:         fmt.Sprintf("inactive-%d", i+1),
			Name:       fmt.Sprintf("Inactive %d", i+1),
			HourlyRate: decimal.NewFromInt(18),
			Status:     employee.StatusInactive,
		})
	}
	return emps
}

func TestStartPayRunCoversWholeRoster(t *testing.T) {
	payrollRepo := newFakePayrollRepo()
	employeeRepo := newFakeEmployeeRepo(rosterOf(5, 2)...)
	svc := NewPayrollService(payrollRepo, employeeRepo, nil)

	resp, err := svc.StartPayRun(context.Background(), payroll.StartPayRunRequest{Month: "2024-06"})
	require.NoError(t, err)

	assert.Equal(t, 7, resp.RecordsCreated)
	assert.Equal(t, "2024-06-01", resp.PayPeriodStart)
	assert.Equal(t, "2024-06-30", resp.PayPeriodEnd)
	require.Len(t, payrollRepo.records, 7)

	for _, rec := range payrollRepo.records {
		assert.Equal(t, payroll.StatusPending, rec.Status)
		assert.True(t, rec.GrossPay.IsZero())
		assert.True(t, rec.NetPay.IsZero())
		assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), rec.PayPeriodStart)
		assert.Equal(t, time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC), rec.PayPeriodEnd)
	}
}

func TestStartPayRunIsIdempotent(t *testing.T) {
	payrollRepo := newFakePayrollRepo()
	employeeRepo := newFakeEmployeeRepo(rosterOf(3, 0)...)
	svc := NewPayrollService(payrollRepo, employeeRepo, nil)
	ctx := context.Background()

	first, err := svc.StartPayRun(ctx, payroll.StartPayRunRequest{Month: "2024-06"})
	require.NoError(t, err)
	assert.Equal(t, 3, first.RecordsCreated)

	second, err := svc.StartPayRun(ctx, payroll.StartPayRunRequest{Month: "2024-06"})
	require.NoError(t, err)
	assert.Equal(t, 0, second.RecordsCreated)
	assert.Len(t, payrollRepo.records, 3)
}

func TestStartPayRunRejectsBadMonth(t *testing.T) {
	svc := NewPayrollService(newFakePayrollRepo(), newFakeEmployeeRepo(), nil)

	_, err := svc.StartPayRun(context.Background(), payroll.StartPayRunRequest{Month: "June 2024"})
	assert.Error(t, err)
}

func TestCreateRecordPricesFromHours(t *testing.T) {
	payrollRepo := newFakePayrollRepo()
	employeeRepo := newFakeEmployeeRepo(employee.Employee{
		ID: "emp-1", Name: "Maria Santos", HourlyRate: decimal.NewFromInt(20), Status: employee.StatusActive,
	})
	svc := NewPayrollService(payrollRepo, employeeRepo, nil)

	resp, err := svc.CreateRecord(context.Background(), payroll.CreateRecordRequest{
		EmployeeID:     "emp-1",
		PayPeriodStart: "2024-06-01",
		PayPeriodEnd:   "2024-06-30",
		RegularHours:   decimal.NewFromInt(40),
		OvertimeHours:  decimal.NewFromInt(5),
	})
	require.NoError(t, err)

	// 40h at 20 plus 5h at 30: gross 950, 10% tax, 9% statutory deductions.
	assert.Equal(t, "950", resp.GrossPay.String())
	assert.Equal(t, "95", resp.Taxes.String())
	assert.Equal(t, "85.5", resp.Deductions.String())
	assert.Equal(t, "769.5", resp.NetPay.String())
	assert.Equal(t, "draft", resp.Status)
}

func TestCreateRecordDeductionOverride(t *testing.T) {
	employeeRepo := newFakeEmployeeRepo(employee.Employee{
		ID: "emp-1", Name: "Maria Santos", HourlyRate: decimal.NewFromInt(20), Status: employee.StatusActive,
	})
	svc := NewPayrollService(newFakePayrollRepo(), employeeRepo, nil)

	override := decimal.NewFromInt(50)
	resp, err := svc.CreateRecord(context.Background(), payroll.CreateRecordRequest{
		EmployeeID:     "emp-1",
		PayPeriodStart: "2024-06-01",
		PayPeriodEnd:   "2024-06-30",
		RegularHours:   decimal.NewFromInt(40),
		OvertimeHours:  decimal.NewFromInt(5),
		Deductions:     &override,
	})
	require.NoError(t, err)

	assert.Equal(t, "50", resp.Deductions.String())
	assert.Equal(t, "805", resp.NetPay.String())
}

func TestCreateRecordKeepsExplicitAmounts(t *testing.T) {
	employeeRepo := newFakeEmployeeRepo(employee.Employee{
		ID: "emp-1", Name: "Maria Santos", HourlyRate: decimal.NewFromInt(20), Status: employee.StatusActive,
	})
	svc := NewPayrollService(newFakePayrollRepo(), employeeRepo, nil)

	resp, err := svc.CreateRecord(context.Background(), payroll.CreateRecordRequest{
		EmployeeID:     "emp-1",
		PayPeriodStart: "2024-06-01",
		PayPeriodEnd:   "2024-06-30",
		RegularHours:   decimal.NewFromInt(40),
		GrossPay:       decimal.NewFromInt(1000),
		Taxes:          decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	assert.Equal(t, "1000", resp.GrossPay.String())
	assert.Equal(t, "100", resp.Taxes.String())
	assert.Equal(t, "900", resp.NetPay.String())
}

func TestCreateRecordUnknownEmployee(t *testing.T) {
	svc := NewPayrollService(newFakePayrollRepo(), newFakeEmployeeRepo(), nil)

	_, err := svc.CreateRecord(context.Background(), payroll.CreateRecordRequest{
		EmployeeID:     "missing",
		PayPeriodStart: "2024-06-01",
		PayPeriodEnd:   "2024-06-30",
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestUpdateRecordRepricesWhenHoursEdited(t *testing.T) {
	payrollRepo := newFakePayrollRepo()
	employeeRepo := newFakeEmployeeRepo(employee.Employee{
		ID: "emp-1", Name: "Maria Santos", HourlyRate: decimal.NewFromInt(20), Status: employee.StatusActive,
	})
	svc := NewPayrollService(payrollRepo, employeeRepo, nil)
	ctx := context.Background()

	run, err := svc.StartPayRun(ctx, payroll.StartPayRunRequest{Month: "2024-06"})
	require.NoError(t, err)
	require.Equal(t, 1, run.RecordsCreated)

	var id string
	for recordID := range payrollRepo.records {
		id = recordID
	}

	regular := decimal.NewFromInt(40)
	overtime := decimal.NewFromInt(5)
	resp, err := svc.UpdateRecord(ctx, payroll.UpdateRecordRequest{
		ID:            id,
		RegularHours:  &regular,
		OvertimeHours: &overtime,
	})
	require.NoError(t, err)

	assert.Equal(t, "950", resp.GrossPay.String())
	assert.Equal(t, "95", resp.Taxes.String())
	assert.Equal(t, "85.5", resp.Deductions.String())
	assert.Equal(t, "769.5", resp.NetPay.String())
}

func TestUpdateRecordStatusAndNotes(t *testing.T) {
	payrollRepo := newFakePayrollRepo()
	employeeRepo := newFakeEmployeeRepo(employee.Employee{
		ID: "emp-1", Name: "Maria Santos", HourlyRate: decimal.NewFromInt(20), Status: employee.StatusActive,
	})
	svc := NewPayrollService(payrollRepo, employeeRepo, nil)
	ctx := context.Background()

	created, err := svc.CreateRecord(ctx, payroll.CreateRecordRequest{
		EmployeeID:     "emp-1",
		PayPeriodStart: "2024-06-01",
		PayPeriodEnd:   "2024-06-30",
		RegularHours:   decimal.NewFromInt(40),
	})
	require.NoError(t, err)

	status := "approved"
	notes := "reviewed"
	resp, err := svc.UpdateRecord(ctx, payroll.UpdateRecordRequest{
		ID:     created.ID,
		Status: &status,
		Notes:  &notes,
	})
	require.NoError(t, err)

	assert.Equal(t, "approved", resp.Status)
	require.NotNil(t, resp.Notes)
	assert.Equal(t, "reviewed", *resp.Notes)
	// Amounts untouched by a metadata-only edit.
	assert.Equal(t, created.GrossPay.String(), resp.GrossPay.String())
	assert.Equal(t, created.NetPay.String(), resp.NetPay.String())
}

func TestUpdateRecordRederivesNetFromAmounts(t *testing.T) {
	payrollRepo := newFakePayrollRepo()
	employeeRepo := newFakeEmployeeRepo(employee.Employee{
		ID: "emp-1", Name: "Maria Santos", HourlyRate: decimal.NewFromInt(20), Status: employee.StatusActive,
	})
	svc := NewPayrollService(payrollRepo, employeeRepo, nil)
	ctx := context.Background()

	created, err := svc.CreateRecord(ctx, payroll.CreateRecordRequest{
		EmployeeID:     "emp-1",
		PayPeriodStart: "2024-06-01",
		PayPeriodEnd:   "2024-06-30",
		RegularHours:   decimal.NewFromInt(40),
	})
	require.NoError(t, err)

	gross := decimal.NewFromInt(1000)
	taxes := decimal.NewFromInt(100)
	deductions := decimal.NewFromInt(50)
	resp, err := svc.UpdateRecord(ctx, payroll.UpdateRecordRequest{
		ID:         created.ID,
		GrossPay:   &gross,
		Taxes:      &taxes,
		Deductions: &deductions,
	})
	require.NoError(t, err)

	// Net pay is derived, never taken from the request.
	assert.Equal(t, "850", resp.NetPay.String())
}

func TestUpdateStatusValidation(t *testing.T) {
	payrollRepo := newFakePayrollRepo()
	svc := NewPayrollService(payrollRepo, newFakeEmployeeRepo(), nil)
	ctx := context.Background()

	err := svc.UpdateStatus(ctx, "pay-1", "archived")
	assert.ErrorIs(t, err, payroll.ErrInvalidStatus)

	err = svc.UpdateStatus(ctx, "pay-1", "paid")
	assert.ErrorIs(t, err, payroll.ErrRecordNotFound)
}

func TestListRecordsFilterValidation(t *testing.T) {
	svc := NewPayrollService(newFakePayrollRepo(), newFakeEmployeeRepo(), nil)

	_, err := svc.ListRecords(context.Background(), payroll.ListRecordsFilter{PeriodFrom: "06/01/2024"})
	assert.Error(t, err)

	_, err = svc.ListRecords(context.Background(), payroll.ListRecordsFilter{Status: "done"})
	assert.Error(t, err)
}
