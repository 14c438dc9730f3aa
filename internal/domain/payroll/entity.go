package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusDraft    Status = "draft"
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusPaid     Status = "paid"
)

func ValidStatuses() []string {
	return []string{string(StatusDraft), string(StatusPending), string(StatusApproved), string(StatusPaid)}
}

// Record covers one employee over one pay period.
// Invariant, enforced by the calculator: NetPay = GrossPay - Taxes - Deductions.
type Record struct {
	ID             string
	EmployeeID     string
	PayPeriodStart time.Time
	PayPeriodEnd   time.Time
	RegularHours   decimal.Decimal
	OvertimeHours  decimal.Decimal
	GrossPay       decimal.Decimal
	Taxes          decimal.Decimal
	Deductions     decimal.Decimal
	NetPay         decimal.Decimal
	Status         Status
	Notes          *string
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Joined fields
	EmployeeName *string
}
