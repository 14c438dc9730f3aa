// Package paycalc computes hour splits and pay amounts for a pay period.
// All arithmetic is decimal; callers round to two digits at display or
// storage boundaries only.
package paycalc

import "github.com/shopspring/decimal"

// Statutory rates and the overtime policy. Single set of constants; there is
// no per-jurisdiction configuration.
var (
	// OvertimeThresholdHours is applied per reporting period regardless of
	// its length (daily and monthly periods share the same 40-hour line).
	OvertimeThresholdHours = decimal.NewFromInt(40)

	// OvertimeMultiplier is the time-and-a-half factor for overtime pay.
	OvertimeMultiplier = decimal.RequireFromString("1.5")

	// TaxRate is withheld from gross pay.
	TaxRate = decimal.RequireFromString("0.10")

	// Statutory contribution buckets, reported individually and summed into
	// the deductions figure.
	SSSRate        = decimal.RequireFromString("0.045")
	PhilHealthRate = decimal.RequireFromString("0.025")
	PagIBIGRate    = decimal.RequireFromString("0.02")
)

// HoursSplit is the regular/overtime division of a period's worked hours.
type HoursSplit struct {
	Regular  decimal.Decimal
	Overtime decimal.Decimal
}

// SplitHours divides total worked hours at the overtime threshold.
// Negative totals are treated as zero.
func SplitHours(total decimal.Decimal) HoursSplit {
	if total.IsNegative() {
		total = decimal.Zero
	}
	if total.LessThanOrEqual(OvertimeThresholdHours) {
		return HoursSplit{Regular: total, Overtime: decimal.Zero}
	}
	return HoursSplit{
		Regular:  OvertimeThresholdHours,
		Overtime: total.Sub(OvertimeThresholdHours),
	}
}

// Breakdown is the full pay derivation for one employee over one period.
type Breakdown struct {
	RegularPay  decimal.Decimal
	OvertimePay decimal.Decimal
	GrossPay    decimal.Decimal
	Taxes       decimal.Decimal
	SSS         decimal.Decimal
	PhilHealth  decimal.Decimal
	PagIBIG     decimal.Decimal
	Deductions  decimal.Decimal
	NetPay      decimal.Decimal
}

// Compute derives gross pay, taxes, statutory deductions and net pay from an
// hours split and an hourly rate. A non-nil deductionOverride replaces the
// formula-derived deductions total (the per-bucket figures still reflect the
// formula, matching how overridden records are displayed).
func Compute(hours HoursSplit, hourlyRate decimal.Decimal, deductionOverride *decimal.Decimal) Breakdown {
	regularPay := hours.Regular.Mul(hourlyRate)
	overtimePay := hours.Overtime.Mul(hourlyRate).Mul(OvertimeMultiplier)
	gross := regularPay.Add(overtimePay)

	taxes := gross.Mul(TaxRate)
	sss := gross.Mul(SSSRate)
	philHealth := gross.Mul(PhilHealthRate)
	pagIBIG := gross.Mul(PagIBIGRate)

	deductions := sss.Add(philHealth).Add(pagIBIG)
	if deductionOverride != nil {
		deductions = *deductionOverride
	}

	return Breakdown{
		RegularPay:  regularPay,
		OvertimePay: overtimePay,
		GrossPay:    gross,
		Taxes:       taxes,
		SSS:         sss,
		PhilHealth:  philHealth,
		PagIBIG:     pagIBIG,
		Deductions:  deductions,
		NetPay:      gross.Sub(taxes).Sub(deductions),
	}
}

// ComputeFromTotal is Compute over an unsplit hours total.
func ComputeFromTotal(totalHours, hourlyRate decimal.Decimal, deductionOverride *decimal.Decimal) Breakdown {
	return Compute(SplitHours(totalHours), hourlyRate, deductionOverride)
}

// Round2 rounds a monetary or hours value to two fractional digits. Used at
// the point of storage and display, never on intermediates.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
