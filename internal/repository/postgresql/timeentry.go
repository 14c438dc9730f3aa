package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/chronopay/payroll-backend-go/internal/domain/timeentry"
	"github.com/chronopay/payroll-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Backs the atomic check-and-insert for clock-in: at most one open entry per
// employee per date, enforced by a partial unique index.
const openEntryConstraint = "uq_time_entries_open"

type timeEntryRepository struct {
	db *database.DB
}

func NewTimeEntryRepository(db *database.DB) timeentry.Repository {
	return &timeEntryRepository{db: db}
}

const timeEntryColumns = `
	t.id, t.employee_id, t.entry_date, t.clock_in::text, t.clock_out::text,
	t.total_hours, t.status, t.notes, t.created_at, t.updated_at,
	e.name AS employee_name`

func clockToString(t *timeentry.TimeOfDay) *string {
	if t == nil {
		return nil
	}
	s := t.String()
	return &s
}

func clockFromString(s *string) (*timeentry.TimeOfDay, error) {
	if s == nil {
		return nil, nil
	}
	tod, err := timeentry.ParseTimeOfDay(*s)
	if err != nil {
		return nil, err
	}
	return &tod, nil
}

func scanTimeEntry(row pgx.Row) (timeentry.TimeEntry, error) {
	var entry timeentry.TimeEntry
	var clockIn, clockOut *string

	err := row.Scan(
		&entry.ID, &entry.EmployeeID, &entry.EntryDate, &clockIn, &clockOut,
		&entry.TotalHours, &entry.Status, &entry.Notes,
		&entry.CreatedAt, &entry.UpdatedAt,
		&entry.EmployeeName,
	)
	if err != nil {
		return timeentry.TimeEntry{}, err
	}

	if entry.ClockIn, err = clockFromString(clockIn); err != nil {
		return timeentry.TimeEntry{}, fmt.Errorf("failed to parse clock_in: %w", err)
	}
	if entry.ClockOut, err = clockFromString(clockOut); err != nil {
		return timeentry.TimeEntry{}, fmt.Errorf("failed to parse clock_out: %w", err)
	}

	return entry, nil
}

func (r *timeEntryRepository) Create(ctx context.Context, entry timeentry.TimeEntry) (timeentry.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}

	query := `
		INSERT INTO time_entries (id, employee_id, entry_date, clock_in, clock_out, total_hours, status, notes)
		VALUES ($1, $2, $3, $4::time, $5::time, $6, $7, $8)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		entry.ID, entry.EmployeeID, entry.EntryDate,
		clockToString(entry.ClockIn), clockToString(entry.ClockOut),
		entry.TotalHours, entry.Status, entry.Notes,
	).Scan(&entry.CreatedAt, &entry.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == openEntryConstraint {
			return timeentry.TimeEntry{}, timeentry.ErrAlreadyClockedIn
		}
		return timeentry.TimeEntry{}, fmt.Errorf("failed to create time entry: %w", err)
	}

	return entry, nil
}

func (r *timeEntryRepository) GetByID(ctx context.Context, id string) (timeentry.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM time_entries t
		LEFT JOIN employees e ON e.id = t.employee_id
		WHERE t.id = $1
	`, timeEntryColumns)

	entry, err := scanTimeEntry(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return timeentry.TimeEntry{}, timeentry.ErrTimeEntryNotFound
		}
		return timeentry.TimeEntry{}, fmt.Errorf("failed to get time entry: %w", err)
	}

	return entry, nil
}

func (r *timeEntryRepository) GetOpenByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*timeentry.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM time_entries t
		LEFT JOIN employees e ON e.id = t.employee_id
		WHERE t.employee_id = $1
		  AND t.entry_date = $2
		  AND t.clock_out IS NULL
		LIMIT 1
	`, timeEntryColumns)

	entry, err := scanTimeEntry(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get open time entry: %w", err)
	}

	return &entry, nil
}

func (r *timeEntryRepository) ListOpenByDate(ctx context.Context, date time.Time) ([]timeentry.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM time_entries t
		LEFT JOIN employees e ON e.id = t.employee_id
		WHERE t.entry_date = $1
		  AND t.clock_out IS NULL
		  AND t.status = 'Open'
		ORDER BY t.created_at ASC
	`, timeEntryColumns)

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list open time entries: %w", err)
	}
	defer rows.Close()

	return collectTimeEntries(rows)
}

func (r *timeEntryRepository) Update(ctx context.Context, entry timeentry.TimeEntry) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE time_entries
		SET employee_id = $2, entry_date = $3, clock_in = $4::time, clock_out = $5::time,
		    total_hours = $6, status = $7, notes = $8, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		entry.ID, entry.EmployeeID, entry.EntryDate,
		clockToString(entry.ClockIn), clockToString(entry.ClockOut),
		entry.TotalHours, entry.Status, entry.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to update time entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return timeentry.ErrTimeEntryNotFound
	}

	return nil
}

func (r *timeEntryRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM time_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete time entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return timeentry.ErrTimeEntryNotFound
	}

	return nil
}

func (r *timeEntryRepository) Query(ctx context.Context, filter timeentry.Filter) ([]timeentry.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	var conditions []string
	var args []interface{}
	if filter.EmployeeID != nil {
		args = append(args, *filter.EmployeeID)
		conditions = append(conditions, fmt.Sprintf("t.employee_id = $%d", len(args)))
	}
	if filter.DateFrom != nil {
		args = append(args, *filter.DateFrom)
		conditions = append(conditions, fmt.Sprintf("t.entry_date >= $%d", len(args)))
	}
	if filter.DateTo != nil {
		args = append(args, *filter.DateTo)
		conditions = append(conditions, fmt.Sprintf("t.entry_date <= $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("t.status = $%d", len(args)))
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM time_entries t
		LEFT JOIN employees e ON e.id = t.employee_id
	`, timeEntryColumns)
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY t.entry_date DESC, e.name ASC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query time entries: %w", err)
	}
	defer rows.Close()

	return collectTimeEntries(rows)
}

func collectTimeEntries(rows pgx.Rows) ([]timeentry.TimeEntry, error) {
	var entries []timeentry.TimeEntry
	for rows.Next() {
		entry, err := scanTimeEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan time entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return entries, nil
}
