package employee

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/chronopay/payroll-backend-go/internal/domain/employee"
	"github.com/chronopay/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
	nextID    int
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{employees: make(map[string]employee.Employee)}
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
	for _, emp := range r.employees {
		if filter.Status != nil && emp.Status != *filter.Status {
			continue
		}
		out = append(out, emp)
	}
	return out, nil
}

func (r *fakeEmployeeRepo) Create(_ context.Context, emp employee.Employee) (employee.Employee, error) {
	r.nextID++
	emp.ID = fmt.Sprintf("emp-%d", r.nextID)
	r.employees[emp.ID] = emp
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

func TestCreateEmployeeDefaultsToActive(t *testing.T) {
	svc := NewEmployeeService(newFakeEmployeeRepo())

	resp, err := svc.Create(context.Background(), employee.CreateEmployeeRequest{
		Name:       "Maria Santos",
		Position:   "Developer",
		HourlyRate: decimal.RequireFromString("20.5"),
		HireDate:   "2023-01-16",
	})
	require.NoError(t, err)

	assert.Equal(t, string(employee.StatusActive), resp.Status)
	assert.Equal(t, "20.5", resp.HourlyRate.String())
	assert.Equal(t, "2023-01-16", resp.HireDate)
}

func TestCreateEmployeeRejectsNegativeRate(t *testing.T) {
	repo := newFakeEmployeeRepo()
	svc := NewEmployeeService(repo)

	_, err := svc.Create(context.Background(), employee.CreateEmployeeRequest{
		Name:       "Maria Santos",
		HourlyRate: decimal.NewFromInt(-1),
		HireDate:   "2023-01-16",
	})
	require.Error(t, err)

	var validationErrs validator.ValidationErrors
	require.True(t, errors.As(err, &validationErrs))
	assert.Contains(t, validationErrs.ToMap(), "hourly_rate")
	assert.Empty(t, repo.employees)
}

func TestUpdateEmployeeRejectsNegativeRate(t *testing.T) {
	repo := newFakeEmployeeRepo()
	svc := NewEmployeeService(repo)

	created, err := svc.Create(context.Background(), employee.CreateEmployeeRequest{
		Name:       "Maria Santos",
		HourlyRate: decimal.NewFromInt(20),
		HireDate:   "2023-01-16",
	})
	require.NoError(t, err)

	bad := decimal.NewFromInt(-5)
	_, err = svc.Update(context.Background(), employee.UpdateEmployeeRequest{
		ID:         created.ID,
		HourlyRate: &bad,
	})

	var validationErrs validator.ValidationErrors
	require.True(t, errors.As(err, &validationErrs))
	assert.Contains(t, validationErrs.ToMap(), "hourly_rate")
	assert.Equal(t, "20", repo.employees[created.ID].HourlyRate.String())
}

func TestListRejectsUnknownStatus(t *testing.T) {
	svc := NewEmployeeService(newFakeEmployeeRepo())

	_, err := svc.List(context.Background(), "Fired")

	var validationErrs validator.ValidationErrors
	require.True(t, errors.As(err, &validationErrs))
}

func TestDeactivateThenReactivate(t *testing.T) {
	repo := newFakeEmployeeRepo()
	svc := NewEmployeeService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, employee.CreateEmployeeRequest{
		Name:       "Juan Cruz",
		HourlyRate: decimal.NewFromInt(18),
		HireDate:   "2022-05-02",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Deactivate(ctx, created.ID))
	assert.Equal(t, employee.StatusInactive, repo.employees[created.ID].Status)

	require.NoError(t, svc.Reactivate(ctx, created.ID))
	assert.Equal(t, employee.StatusActive, repo.employees[created.ID].Status)
}
