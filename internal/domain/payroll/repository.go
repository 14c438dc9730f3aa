package payroll

import (
	"context"
	"time"
)

// Filter narrows Query results. Period bounds filter on the record's pay
// period: PeriodFrom against pay_period_start, PeriodTo against
// pay_period_end. Nil fields match everything.
type Filter struct {
	EmployeeID *string
	PeriodFrom *time.Time
	PeriodTo   *time.Time
	Status     *Status
}

type Repository interface {
	Create(ctx context.Context, record Record) (Record, error)

	// CreateIfAbsent inserts unless a record already exists for the same
	// employee and pay period (the idempotency key). Reports whether a row
	// was actually written.
	CreateIfAbsent(ctx context.Context, record Record) (bool, error)

	GetByID(ctx context.Context, id string) (Record, error)
	Update(ctx context.Context, record Record) error
	UpdateStatus(ctx context.Context, id string, status Status) error
	Delete(ctx context.Context, id string) error
	Query(ctx context.Context, filter Filter) ([]Record, error)
}
