package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusActive   Status = "Active"
	StatusInactive Status = "Inactive"
)

type Employee struct {
	ID         string
	Name       string
	Position   string
	Department string
	HourlyRate decimal.Decimal
	Status     Status
	HireDate   time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (e Employee) IsActive() bool {
	return e.Status == StatusActive
}
