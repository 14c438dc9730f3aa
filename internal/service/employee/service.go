package employee

import (
	"context"

	"github.com/chronopay/payroll-backend-go/internal/domain/employee"
	"github.com/chronopay/payroll-backend-go/internal/pkg/paycalc"
	"github.com/chronopay/payroll-backend-go/internal/pkg/validator"
)

type EmployeeServiceImpl struct {
	employeeRepo employee.Repository
}

func NewEmployeeService(employeeRepo employee.Repository) employee.Service {
	return &EmployeeServiceImpl{employeeRepo: employeeRepo}
}

// List implements employee.Service. An empty status returns the whole roster.
func (s *EmployeeServiceImpl) List(ctx context.Context, status string) ([]employee.EmployeeResponse, error) {
	var filter employee.ListFilter
	if status != "" {
		if !validator.IsInSlice(status, []string{string(employee.StatusActive), string(employee.StatusInactive)}) {
			return nil, validator.ValidationErrors{
				{Field: "status", Message: "status must be Active or Inactive"},
			}
		}
		st := employee.Status(status)
		filter.Status = &st
	}

	employees, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, mapToEmployeeResponse(emp))
	}
	return responses, nil
}

// Get implements employee.Service.
func (s *EmployeeServiceImpl) Get(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return mapToEmployeeResponse(emp), nil
}

// Create implements employee.Service.
func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	hireDate, _ := validator.IsValidDate(req.HireDate)
	emp := employee.Employee{
		Name:       req.Name,
		Position:   req.Position,
		Department: req.Department,
		HourlyRate: req.HourlyRate,
		Status:     employee.StatusActive,
		HireDate:   hireDate,
	}

	created, err := s.employeeRepo.Create(ctx, emp)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return mapToEmployeeResponse(created), nil
}

// Update implements employee.Service.
func (s *EmployeeServiceImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if req.Name != nil {
		emp.Name = *req.Name
	}
	if req.Position != nil {
		emp.Position = *req.Position
	}
	if req.Department != nil {
		emp.Department = *req.Department
	}
	if req.HourlyRate != nil {
		emp.HourlyRate = *req.HourlyRate
	}

	if err := s.employeeRepo.Update(ctx, emp); err != nil {
		return employee.EmployeeResponse{}, err
	}
	return mapToEmployeeResponse(emp), nil
}

// Deactivate implements employee.Service. Historical time entries and payroll
// records are left untouched.
func (s *EmployeeServiceImpl) Deactivate(ctx context.Context, id string) error {
	if validator.IsEmpty(id) {
		return validator.ValidationErrors{{Field: "id", Message: "id is required"}}
	}
	return s.employeeRepo.SetStatus(ctx, id, employee.StatusInactive)
}

// Reactivate implements employee.Service.
func (s *EmployeeServiceImpl) Reactivate(ctx context.Context, id string) error {
	if validator.IsEmpty(id) {
		return validator.ValidationErrors{{Field: "id", Message: "id is required"}}
	}
	return s.employeeRepo.SetStatus(ctx, id, employee.StatusActive)
}

func mapToEmployeeResponse(emp employee.Employee) employee.EmployeeResponse {
	return employee.EmployeeResponse{
		ID:         emp.ID,
		Name:       emp.Name,
		Position:   emp.Position,
		Department: emp.Department,
		HourlyRate: paycalc.Round2(emp.HourlyRate),
		Status:     string(emp.Status),
		HireDate:   emp.HireDate.Format("2006-01-02"),
	}
}
