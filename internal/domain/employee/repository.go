package employee

import "context"

// ListFilter narrows List results. A nil Status returns every employee.
type ListFilter struct {
	Status *Status
}

type Repository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	List(ctx context.Context, filter ListFilter) ([]Employee, error)
	Create(ctx context.Context, emp Employee) (Employee, error)
	Update(ctx context.Context, emp Employee) error
	SetStatus(ctx context.Context, id string, status Status) error
}
