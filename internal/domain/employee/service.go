package employee

import "context"

// Service is the thin roster-management surface. The computation core only
// reads employees; mutation exists for administration and test fixtures.
type Service interface {
	List(ctx context.Context, status string) ([]EmployeeResponse, error)
	Get(ctx context.Context, id string) (EmployeeResponse, error)
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	Update(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Deactivate(ctx context.Context, id string) error
	Reactivate(ctx context.Context, id string) error
}
