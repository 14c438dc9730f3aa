package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/chronopay/payroll-backend-go/internal/domain/payroll"
	"github.com/chronopay/payroll-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.Repository {
	return &payrollRepository{db: db}
}

const payrollColumns = `
	p.id, p.employee_id, p.pay_period_start, p.pay_period_end,
	p.regular_hours, p.overtime_hours, p.gross_pay, p.taxes, p.deductions, p.net_pay,
	p.status, p.notes, p.created_at, p.updated_at,
	e.name AS employee_name`

func scanPayrollRecord(row pgx.Row) (payroll.Record, error) {
	var rec payroll.Record
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.PayPeriodStart, &rec.PayPeriodEnd,
		&rec.RegularHours, &rec.OvertimeHours, &rec.GrossPay, &rec.Taxes, &rec.Deductions, &rec.NetPay,
		&rec.Status, &rec.Notes, &rec.CreatedAt, &rec.UpdatedAt,
		&rec.EmployeeName,
	)
	return rec, err
}

const insertPayrollQuery = `
	INSERT INTO payrolls (id, employee_id, pay_period_start, pay_period_end,
		regular_hours, overtime_hours, gross_pay, taxes, deductions, net_pay, status, notes)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

func (r *payrollRepository) Create(ctx context.Context, record payroll.Record) (payroll.Record, error) {
	q := GetQuerier(ctx, r.db)

	if record.ID == "" {
		record.ID = uuid.NewString()
	}

	err := q.QueryRow(ctx, insertPayrollQuery+` RETURNING created_at, updated_at`,
		record.ID, record.EmployeeID, record.PayPeriodStart, record.PayPeriodEnd,
		record.RegularHours, record.OvertimeHours, record.GrossPay, record.Taxes,
		record.Deductions, record.NetPay, record.Status, record.Notes,
	).Scan(&record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		return payroll.Record{}, fmt.Errorf("failed to create payroll record: %w", err)
	}

	return record, nil
}

// CreateIfAbsent relies on the (employee_id, pay_period_start, pay_period_end)
// unique key: conflicting inserts are silently skipped so a pay run can be
// re-invoked without duplicating records.
func (r *payrollRepository) CreateIfAbsent(ctx context.Context, record payroll.Record) (bool, error) {
	q := GetQuerier(ctx, r.db)

	if record.ID == "" {
		record.ID = uuid.NewString()
	}

	query := insertPayrollQuery + `
	ON CONFLICT (employee_id, pay_period_start, pay_period_end) DO NOTHING`

	tag, err := q.Exec(ctx, query,
		record.ID, record.EmployeeID, record.PayPeriodStart, record.PayPeriodEnd,
		record.RegularHours, record.OvertimeHours, record.GrossPay, record.Taxes,
		record.Deductions, record.NetPay, record.Status, record.Notes,
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert payroll record: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

func (r *payrollRepository) GetByID(ctx context.Context, id string) (payroll.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM payrolls p
		LEFT JOIN employees e ON e.id = p.employee_id
		WHERE p.id = $1
	`, payrollColumns)

	rec, err := scanPayrollRecord(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Record{}, payroll.ErrRecordNotFound
		}
		return payroll.Record{}, fmt.Errorf("failed to get payroll record: %w", err)
	}

	return rec, nil
}

func (r *payrollRepository) Update(ctx context.Context, record payroll.Record) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payrolls
		SET regular_hours = $2, overtime_hours = $3, gross_pay = $4, taxes = $5,
		    deductions = $6, net_pay = $7, status = $8, notes = $9, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		record.ID, record.RegularHours, record.OvertimeHours, record.GrossPay,
		record.Taxes, record.Deductions, record.NetPay, record.Status, record.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to update payroll record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrRecordNotFound
	}

	return nil
}

func (r *payrollRepository) UpdateStatus(ctx context.Context, id string, status payroll.Status) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE payrolls SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("failed to update payroll status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrRecordNotFound
	}

	return nil
}

func (r *payrollRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM payrolls WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete payroll record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrRecordNotFound
	}

	return nil
}

func (r *payrollRepository) Query(ctx context.Context, filter payroll.Filter) ([]payroll.Record, error) {
	q := GetQuerier(ctx, r.db)

	var conditions []string
	var args []interface{}
	if filter.EmployeeID != nil {
		args = append(args, *filter.EmployeeID)
		conditions = append(conditions, fmt.Sprintf("p.employee_id = $%d", len(args)))
	}
	if filter.PeriodFrom != nil {
		args = append(args, *filter.PeriodFrom)
		conditions = append(conditions, fmt.Sprintf("p.pay_period_start >= $%d", len(args)))
	}
	if filter.PeriodTo != nil {
		args = append(args, *filter.PeriodTo)
		conditions = append(conditions, fmt.Sprintf("p.pay_period_end <= $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("p.status = $%d", len(args)))
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM payrolls p
		LEFT JOIN employees e ON e.id = p.employee_id
	`, payrollColumns)
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY p.pay_period_start ASC, e.name ASC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query payroll records: %w", err)
	}
	defer rows.Close()

	var records []payroll.Record
	for rows.Next() {
		rec, err := scanPayrollRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return records, nil
}
