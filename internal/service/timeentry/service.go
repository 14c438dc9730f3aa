package timeentry

import (
	"context"
	"fmt"
	"time"

	"github.com/chronopay/payroll-backend-go/internal/domain/employee"
	"github.com/chronopay/payroll-backend-go/internal/domain/timeentry"
	"github.com/chronopay/payroll-backend-go/internal/pkg/database"
	"github.com/chronopay/payroll-backend-go/internal/pkg/paycalc"
	"github.com/chronopay/payroll-backend-go/internal/pkg/validator"
)

// Clock provides the current time; injected so tests can pin "today".
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

type LedgerServiceImpl struct {
	entryRepo    timeentry.Repository
	employeeRepo employee.Repository
	tx           database.TxManager
	clock        Clock
}

func NewLedgerService(
	entryRepo timeentry.Repository,
	employeeRepo employee.Repository,
	tx database.TxManager,
	clock Clock,
) timeentry.Service {
	if tx == nil {
		tx = database.NoopTxManager{}
	}
	if clock == nil {
		clock = realClock{}
	}
	return &LedgerServiceImpl{
		entryRepo:    entryRepo,
		employeeRepo: employeeRepo,
		tx:           tx,
		clock:        clock,
	}
}

// dateOnly strips the time component so entry dates compare as calendar days.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *LedgerServiceImpl) resolveDate(raw string) time.Time {
	if raw == "" {
		return dateOnly(s.clock.Now())
	}
	d, _ := validator.IsValidDate(raw)
	return dateOnly(d)
}

func (s *LedgerServiceImpl) resolveTime(raw string) (timeentry.TimeOfDay, error) {
	if raw == "" {
		now := s.clock.Now()
		return timeentry.TimeOfDay{Hour: now.Hour(), Minute: now.Minute(), Second: now.Second()}, nil
	}
	return timeentry.ParseTimeOfDay(raw)
}

// ClockIn implements timeentry.Service.
func (s *LedgerServiceImpl) ClockIn(ctx context.Context, req timeentry.ClockInRequest) (timeentry.EntryResponse, error) {
	if err := req.Validate(); err != nil {
		return timeentry.EntryResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return timeentry.EntryResponse{}, err
	}

	date := s.resolveDate(req.Date)
	at, err := s.resolveTime(req.Time)
	if err != nil {
		return timeentry.EntryResponse{}, err
	}

	open, err := s.entryRepo.GetOpenByEmployeeAndDate(ctx, emp.ID, date)
	if err != nil {
		return timeentry.EntryResponse{}, fmt.Errorf("failed to check for open entry: %w", err)
	}
	if open != nil {
		return timeentry.EntryResponse{}, timeentry.ErrAlreadyClockedIn
	}

	entry := timeentry.TimeEntry{
		EmployeeID: emp.ID,
		EntryDate:  date,
		ClockIn:    &at,
		Status:     timeentry.StatusOpen,
	}

	// The storage layer's open-entry constraint backstops the check above,
	// so two concurrent clock-ins cannot both slip through.
	created, err := s.entryRepo.Create(ctx, entry)
	if err != nil {
		return timeentry.EntryResponse{}, err
	}
	if created.EmployeeName == nil {
		created.EmployeeName = &emp.Name
	}

	return mapToEntryResponse(created), nil
}

// ClockOut implements timeentry.Service.
func (s *LedgerServiceImpl) ClockOut(ctx context.Context, req timeentry.ClockOutRequest) (timeentry.EntryResponse, error) {
	if err := req.Validate(); err != nil {
		return timeentry.EntryResponse{}, err
	}

	date := s.resolveDate(req.Date)
	at, err := s.resolveTime(req.Time)
	if err != nil {
		return timeentry.EntryResponse{}, err
	}

	open, err := s.entryRepo.GetOpenByEmployeeAndDate(ctx, req.EmployeeID, date)
	if err != nil {
		return timeentry.EntryResponse{}, fmt.Errorf("failed to find open entry: %w", err)
	}
	if open == nil {
		return timeentry.EntryResponse{}, timeentry.ErrNoOpenEntry
	}

	if open.ClockIn != nil && at.Before(*open.ClockIn) {
		return timeentry.EntryResponse{}, timeentry.ErrClockOutBeforeClockIn
	}

	open.ClockOut = &at
	open.Recompute()

	if err := s.entryRepo.Update(ctx, *open); err != nil {
		return timeentry.EntryResponse{}, err
	}

	return mapToEntryResponse(*open), nil
}

// BulkCloseOpenToday implements timeentry.Service. End-of-day cleanup: every
// open entry dated today is closed with the same elapsed-time formula
// clock-out uses, inside one transaction. Entries without a recorded
// clock-in, or whose clock-in lies after the cutoff, are left open.
func (s *LedgerServiceImpl) BulkCloseOpenToday(ctx context.Context, at string) (timeentry.BulkCloseResponse, error) {
	if at != "" && !validator.IsValidClockTime(at) {
		return timeentry.BulkCloseResponse{}, validator.ValidationErrors{
			{Field: "time", Message: "time must be in HH:MM:SS format"},
		}
	}

	today := dateOnly(s.clock.Now())
	cutoff, err := s.resolveTime(at)
	if err != nil {
		return timeentry.BulkCloseResponse{}, err
	}

	closed := 0
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		entries, err := s.entryRepo.ListOpenByDate(ctx, today)
		if err != nil {
			return err
		}

		for _, entry := range entries {
			if entry.ClockIn == nil || cutoff.Before(*entry.ClockIn) {
				continue
			}
			out := cutoff
			entry.ClockOut = &out
			entry.Recompute()
			if err := s.entryRepo.Update(ctx, entry); err != nil {
				return err
			}
			closed++
		}
		return nil
	})
	if err != nil {
		return timeentry.BulkCloseResponse{}, fmt.Errorf("bulk clock-out failed: %w", err)
	}

	return timeentry.BulkCloseResponse{
		Closed: closed,
		Date:   today.Format("2006-01-02"),
		Time:   cutoff.String(),
	}, nil
}

// CreateEntry implements timeentry.Service. Manual entry: either clock may
// be absent, leaving the entry open.
func (s *LedgerServiceImpl) CreateEntry(ctx context.Context, req timeentry.CreateEntryRequest) (timeentry.EntryResponse, error) {
	if err := req.Validate(); err != nil {
		return timeentry.EntryResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return timeentry.EntryResponse{}, err
	}

	entry := timeentry.TimeEntry{
		EmployeeID: emp.ID,
		EntryDate:  s.resolveDate(req.EntryDate),
		Notes:      req.Notes,
	}
	if entry.ClockIn, entry.ClockOut, err = parseClockPair(req.ClockIn, req.ClockOut); err != nil {
		return timeentry.EntryResponse{}, err
	}
	entry.Recompute()

	created, err := s.entryRepo.Create(ctx, entry)
	if err != nil {
		return timeentry.EntryResponse{}, err
	}
	if created.EmployeeName == nil {
		created.EmployeeName = &emp.Name
	}

	return mapToEntryResponse(created), nil
}

// UpdateEntry implements timeentry.Service. Recomputes hours and status from
// the edited clocks, identically to clock-out.
func (s *LedgerServiceImpl) UpdateEntry(ctx context.Context, req timeentry.UpdateEntryRequest) (timeentry.EntryResponse, error) {
	if err := req.Validate(); err != nil {
		return timeentry.EntryResponse{}, err
	}

	entry, err := s.entryRepo.GetByID(ctx, req.ID)
	if err != nil {
		return timeentry.EntryResponse{}, err
	}

	if req.EmployeeID != entry.EmployeeID {
		if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
			return timeentry.EntryResponse{}, err
		}
		entry.EmployeeID = req.EmployeeID
	}

	entry.EntryDate = s.resolveDate(req.EntryDate)
	entry.Notes = req.Notes
	if entry.ClockIn, entry.ClockOut, err = parseClockPair(req.ClockIn, req.ClockOut); err != nil {
		return timeentry.EntryResponse{}, err
	}
	entry.Recompute()

	if err := s.entryRepo.Update(ctx, entry); err != nil {
		return timeentry.EntryResponse{}, err
	}

	return mapToEntryResponse(entry), nil
}

// DeleteEntry implements timeentry.Service.
func (s *LedgerServiceImpl) DeleteEntry(ctx context.Context, id string) error {
	if validator.IsEmpty(id) {
		return validator.ValidationErrors{{Field: "id", Message: "id is required"}}
	}
	return s.entryRepo.Delete(ctx, id)
}

// GetEntry implements timeentry.Service.
func (s *LedgerServiceImpl) GetEntry(ctx context.Context, id string) (timeentry.EntryResponse, error) {
	entry, err := s.entryRepo.GetByID(ctx, id)
	if err != nil {
		return timeentry.EntryResponse{}, err
	}
	return mapToEntryResponse(entry), nil
}

// ListEntries implements timeentry.Service.
func (s *LedgerServiceImpl) ListEntries(ctx context.Context, filter timeentry.ListEntriesFilter) ([]timeentry.EntryResponse, error) {
	repoFilter, err := buildFilter(filter)
	if err != nil {
		return nil, err
	}

	entries, err := s.entryRepo.Query(ctx, repoFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]timeentry.EntryResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, mapToEntryResponse(entry))
	}
	return responses, nil
}

func buildFilter(filter timeentry.ListEntriesFilter) (timeentry.Filter, error) {
	var errs validator.ValidationErrors
	var out timeentry.Filter

	if filter.EmployeeID != "" {
		id := filter.EmployeeID
		out.EmployeeID = &id
	}
	if filter.DateFrom != "" {
		d, ok := validator.IsValidDate(filter.DateFrom)
		if !ok {
			errs = append(errs, validator.ValidationError{Field: "date_from", Message: "date_from must be in YYYY-MM-DD format"})
		} else {
			from := dateOnly(d)
			out.DateFrom = &from
		}
	}
	if filter.DateTo != "" {
		d, ok := validator.IsValidDate(filter.DateTo)
		if !ok {
			errs = append(errs, validator.ValidationError{Field: "date_to", Message: "date_to must be in YYYY-MM-DD format"})
		} else {
			to := dateOnly(d)
			out.DateTo = &to
		}
	}
	if filter.Status != "" {
		if !validator.IsInSlice(filter.Status, []string{string(timeentry.StatusOpen), string(timeentry.StatusClosed)}) {
			errs = append(errs, validator.ValidationError{Field: "status", Message: "status must be Open or Closed"})
		} else {
			status := timeentry.Status(filter.Status)
			out.Status = &status
		}
	}

	if len(errs) > 0 {
		return timeentry.Filter{}, errs
	}
	return out, nil
}

func parseClockPair(in, out *string) (*timeentry.TimeOfDay, *timeentry.TimeOfDay, error) {
	var clockIn, clockOut *timeentry.TimeOfDay

	if in != nil {
		t, err := timeentry.ParseTimeOfDay(*in)
		if err != nil {
			return nil, nil, err
		}
		clockIn = &t
	}
	if out != nil {
		t, err := timeentry.ParseTimeOfDay(*out)
		if err != nil {
			return nil, nil, err
		}
		clockOut = &t
	}
	if clockIn != nil && clockOut != nil && clockOut.Before(*clockIn) {
		return nil, nil, timeentry.ErrClockOutBeforeClockIn
	}

	return clockIn, clockOut, nil
}

func mapToEntryResponse(entry timeentry.TimeEntry) timeentry.EntryResponse {
	var clockIn, clockOut *string
	if entry.ClockIn != nil {
		s := entry.ClockIn.String()
		clockIn = &s
	}
	if entry.ClockOut != nil {
		s := entry.ClockOut.String()
		clockOut = &s
	}

	return timeentry.EntryResponse{
		ID:           entry.ID,
		EmployeeID:   entry.EmployeeID,
		EmployeeName: entry.EmployeeName,
		EntryDate:    entry.EntryDate.Format("2006-01-02"),
		ClockIn:      clockIn,
		ClockOut:     clockOut,
		TotalHours:   paycalc.Round2(entry.TotalHours),
		Status:       string(entry.Status),
		Notes:        entry.Notes,
	}
}
