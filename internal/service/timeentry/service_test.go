package timeentry

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/chronopay/payroll-backend-go/internal/domain/employee"
	"github.com/chronopay/payroll-backend-go/internal/domain/timeentry"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClock struct {
	now time.Time
}

func (c stubClock) Now() time.Time { return c.now }

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func newFakeEmployeeRepo(emps ...employee.Employee) *fakeEmployeeRepo {
	repo := &fakeEmployeeRepo{employees: make(map[string]employee.Employee)}
	for _, e := range emps {
		repo.employees[e.ID] = e
	}
	return repo
}

func (r *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	emp, ok := r.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (r *fakeEmployeeRepo) List(_ context.Context, filter employee.ListFilter) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range r.employees {
		if filter.Status != nil && e.Status != *filter.Status {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (r *fakeEmployeeRepo) Create(_ context.Context, emp employee.Employee) (employee.Employee, error) {
	r.employees[emp.ID] = emp
	return emp, nil
}

func (r *fakeEmployeeRepo) Update(_ context.Context, emp employee.Employee) error {
	if _, ok := r.employees[emp.ID]; !ok {
		return employee.ErrEmployeeNotFound
	}
	r.employees[emp.ID] = emp
	return nil
}

func (r *fakeEmployeeRepo) SetStatus(_ context.Context, id string, status employee.Status) error {
	emp, ok := r.employees[id]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	emp.Status = status
	r.employees[id] = emp
	return nil
}

type fakeEntryRepo struct {
	entries map[string]timeentry.TimeEntry
	nextID  int
}

func newFakeEntryRepo() *fakeEntryRepo {
	return &fakeEntryRepo{entries: make(map[string]timeentry.TimeEntry)}
}

func (r *fakeEntryRepo) Create(_ context.Context, entry timeentry.TimeEntry) (timeentry.TimeEntry, error) {
	for _, e := range r.entries {
		if e.EmployeeID == entry.EmployeeID && e.EntryDate.Equal(entry.EntryDate) && e.ClockOut == nil {
			return timeentry.TimeEntry{}, timeentry.ErrAlreadyClockedIn
		}
	}
	r.nextID++
	entry.ID = fmt.Sprintf("entry-%d", r.nextID)
	r.entries[entry.ID] = entry
	return entry, nil
}

func (r *fakeEntryRepo) GetByID(_ context.Context, id string) (timeentry.TimeEntry, error) {
	entry, ok := r.entries[id]
	if !ok {
		return timeentry.TimeEntry{}, timeentry.ErrTimeEntryNotFound
	}
	return entry, nil
}

func (r *fakeEntryRepo) GetOpenByEmployeeAndDate(_ context.Context, employeeID string, date time.Time) (*timeentry.TimeEntry, error) {
	for _, e := range r.entries {
		if e.EmployeeID == employeeID && e.EntryDate.Equal(date) && e.ClockOut == nil {
			entry := e
			return &entry, nil
		}
	}
	return nil, nil
}

func (r *fakeEntryRepo) ListOpenByDate(_ context.Context, date time.Time) ([]timeentry.TimeEntry, error) {
	var out []timeentry.TimeEntry
	for _, e := range r.entries {
		if e.EntryDate.Equal(date) && e.ClockOut == nil {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeEntryRepo) Update(_ context.Context, entry timeentry.TimeEntry) error {
	if _, ok := r.entries[entry.ID]; !ok {
		return timeentry.ErrTimeEntryNotFound
	}
	r.entries[entry.ID] = entry
	return nil
}

func (r *fakeEntryRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.entries[id]; !ok {
		return timeentry.ErrTimeEntryNotFound
	}
	delete(r.entries, id)
	return nil
}

func (r *fakeEntryRepo) Query(_ context.Context, filter timeentry.Filter) ([]timeentry.TimeEntry, error) {
	var out []timeentry.TimeEntry
	for _, e := range r.entries {
		if filter.EmployeeID != nil && e.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.DateFrom != nil && e.EntryDate.Before(*filter.DateFrom) {
			continue
		}
		if filter.DateTo != nil && e.EntryDate.After(*filter.DateTo) {
			continue
		}
		if filter.Status != nil && e.Status != *filter.Status {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func testEmployee() employee.Employee {
	return employee.Employee{
		ID:         "emp-1",
		Name:       "Maria Santos",
		Position:   "Developer",
		Department: "Engineering",
		HourlyRate: decimal.NewFromInt(20),
		Status:     employee.StatusActive,
	}
}

func newTestService(entryRepo *fakeEntryRepo, employeeRepo *fakeEmployeeRepo, now time.Time) timeentry.Service {
	return NewLedgerService(entryRepo, employeeRepo, nil, stubClock{now: now})
}

func TestClockInThenClockOut(t *testing.T) {
	entryRepo := newFakeEntryRepo()
	employeeRepo := newFakeEmployeeRepo(testEmployee())
	svc := newTestService(entryRepo, employeeRepo, time.Date(2024, 6, 3, 7, 30, 0, 0, time.UTC))
	ctx := context.Background()

	in, err := svc.ClockIn(ctx, timeentry.ClockInRequest{
		EmployeeID: "emp-1",
		Date:       "2024-06-03",
		Time:       "08:00:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "Open", in.Status)
	require.NotNil(t, in.ClockIn)
	assert.Equal(t, "08:00:00", *in.ClockIn)
	assert.Nil(t, in.ClockOut)
	assert.True(t, in.TotalHours.IsZero())

	out, err := svc.ClockOut(ctx, timeentry.ClockOutRequest{
		EmployeeID: "emp-1",
		Date:       "2024-06-03",
		Time:       "17:00:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "Closed", out.Status)
	require.NotNil(t, out.ClockOut)
	assert.Equal(t, "17:00:00", *out.ClockOut)
	assert.Equal(t, "9", out.TotalHours.String())
}

func TestClockInTwiceSameDayConflicts(t *testing.T) {
	entryRepo := newFakeEntryRepo()
	employeeRepo := newFakeEmployeeRepo(testEmployee())
	svc := newTestService(entryRepo, employeeRepo, time.Date(2024, 6, 3, 8, 0, 0, 0, time.UTC))
	ctx := context.Background()

	_, err := svc.ClockIn(ctx, timeentry.ClockInRequest{EmployeeID: "emp-1", Date: "2024-06-03", Time: "08:00:00"})
	require.NoError(t, err)

	_, err = svc.ClockIn(ctx, timeentry.ClockInRequest{EmployeeID: "emp-1", Date: "2024-06-03", Time: "09:00:00"})
	assert.ErrorIs(t, err, timeentry.ErrAlreadyClockedIn)
}

func TestClockInUnknownEmployee(t *testing.T) {
	svc := newTestService(newFakeEntryRepo(), newFakeEmployeeRepo(), time.Date(2024, 6, 3, 8, 0, 0, 0, time.UTC))

	_, err := svc.ClockIn(context.Background(), timeentry.ClockInRequest{EmployeeID: "missing", Date: "2024-06-03"})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestClockOutWithoutOpenEntry(t *testing.T) {
	svc := newTestService(newFakeEntryRepo(), newFakeEmployeeRepo(testEmployee()), time.Date(2024, 6, 3, 17, 0, 0, 0, time.UTC))

	_, err := svc.ClockOut(context.Background(), timeentry.ClockOutRequest{EmployeeID: "emp-1", Date: "2024-06-03", Time: "17:00:00"})
	assert.ErrorIs(t, err, timeentry.ErrNoOpenEntry)
}

func TestClockOutBeforeClockInRejected(t *testing.T) {
	entryRepo := newFakeEntryRepo()
	svc := newTestService(entryRepo, newFakeEmployeeRepo(testEmployee()), time.Date(2024, 6, 3, 8, 0, 0, 0, time.UTC))
	ctx := context.Background()

	_, err := svc.ClockIn(ctx, timeentry.ClockInRequest{EmployeeID: "emp-1", Date: "2024-06-03", Time: "09:00:00"})
	require.NoError(t, err)

	_, err = svc.ClockOut(ctx, timeentry.ClockOutRequest{EmployeeID: "emp-1", Date: "2024-06-03", Time: "08:30:00"})
	assert.ErrorIs(t, err, timeentry.ErrClockOutBeforeClockIn)
}

func TestClockInDefaultsToClockNow(t *testing.T) {
	entryRepo := newFakeEntryRepo()
	svc := newTestService(entryRepo, newFakeEmployeeRepo(testEmployee()), time.Date(2024, 6, 3, 8, 15, 30, 0, time.UTC))

	in, err := svc.ClockIn(context.Background(), timeentry.ClockInRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)
	assert.Equal(t, "2024-06-03", in.EntryDate)
	require.NotNil(t, in.ClockIn)
	assert.Equal(t, "08:15:30", *in.ClockIn)
}

func TestBulkCloseOpenToday(t *testing.T) {
	entryRepo := newFakeEntryRepo()
	employeeRepo := newFakeEmployeeRepo(testEmployee())
	now := time.Date(2024, 6, 3, 18, 0, 0, 0, time.UTC)
	today := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	svc := newTestService(entryRepo, employeeRepo, now)
	ctx := context.Background()

	morning := timeentry.TimeOfDay{Hour: 8}
	late := timeentry.TimeOfDay{Hour: 21}
	entryRepo.entries["a"] = timeentry.TimeEntry{
		ID: "a", EmployeeID: "emp-1", EntryDate: today,
		ClockIn: &morning, Status: timeentry.StatusOpen,
	}
	// Clock-in after the cutoff: must stay open.
	entryRepo.entries["b"] = timeentry.TimeEntry{
		ID: "b", EmployeeID: "emp-2", EntryDate: today,
		ClockIn: &late, Status: timeentry.StatusOpen,
	}
	// No clock-in recorded: must stay open.
	entryRepo.entries["c"] = timeentry.TimeEntry{
		ID: "c", EmployeeID: "emp-3", EntryDate: today,
		Status: timeentry.StatusOpen,
	}

	resp, err := svc.BulkCloseOpenToday(ctx, "18:00:00")
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Closed)
	assert.Equal(t, "2024-06-03", resp.Date)
	assert.Equal(t, "18:00:00", resp.Time)

	closed := entryRepo.entries["a"]
	assert.Equal(t, timeentry.StatusClosed, closed.Status)
	require.NotNil(t, closed.ClockOut)
	assert.Equal(t, "18:00:00", closed.ClockOut.String())
	assert.Equal(t, "10", closed.TotalHours.String())

	assert.Equal(t, timeentry.StatusOpen, entryRepo.entries["b"].Status)
	assert.Equal(t, timeentry.StatusOpen, entryRepo.entries["c"].Status)
}

func TestCreateEntryWithoutClockOutStaysOpen(t *testing.T) {
	entryRepo := newFakeEntryRepo()
	svc := newTestService(entryRepo, newFakeEmployeeRepo(testEmployee()), time.Date(2024, 6, 3, 8, 0, 0, 0, time.UTC))

	in := "08:00"
	resp, err := svc.CreateEntry(context.Background(), timeentry.CreateEntryRequest{
		EmployeeID: "emp-1",
		EntryDate:  "2024-06-03",
		ClockIn:    &in,
	})
	require.NoError(t, err)
	assert.Equal(t, "Open", resp.Status)
	assert.True(t, resp.TotalHours.IsZero())
}

func TestUpdateEntryRecomputesHours(t *testing.T) {
	entryRepo := newFakeEntryRepo()
	employeeRepo := newFakeEmployeeRepo(testEmployee())
	svc := newTestService(entryRepo, employeeRepo, time.Date(2024, 6, 3, 8, 0, 0, 0, time.UTC))
	ctx := context.Background()

	in, out := "08:00:00", "12:00:00"
	created, err := svc.CreateEntry(ctx, timeentry.CreateEntryRequest{
		EmployeeID: "emp-1",
		EntryDate:  "2024-06-03",
		ClockIn:    &in,
		ClockOut:   &out,
	})
	require.NoError(t, err)
	assert.Equal(t, "4", created.TotalHours.String())

	newOut := "17:30:00"
	updated, err := svc.UpdateEntry(ctx, timeentry.UpdateEntryRequest{
		ID:         created.ID,
		EmployeeID: "emp-1",
		EntryDate:  "2024-06-03",
		ClockIn:    &in,
		ClockOut:   &newOut,
	})
	require.NoError(t, err)
	assert.Equal(t, "9.5", updated.TotalHours.String())
	assert.Equal(t, "Closed", updated.Status)
}

func TestUpdateEntryRejectsInvertedClocks(t *testing.T) {
	entryRepo := newFakeEntryRepo()
	svc := newTestService(entryRepo, newFakeEmployeeRepo(testEmployee()), time.Date(2024, 6, 3, 8, 0, 0, 0, time.UTC))
	ctx := context.Background()

	in := "08:00:00"
	created, err := svc.CreateEntry(ctx, timeentry.CreateEntryRequest{
		EmployeeID: "emp-1", EntryDate: "2024-06-03", ClockIn: &in,
	})
	require.NoError(t, err)

	badOut := "07:00:00"
	_, err = svc.UpdateEntry(ctx, timeentry.UpdateEntryRequest{
		ID: created.ID, EmployeeID: "emp-1", EntryDate: "2024-06-03",
		ClockIn: &in, ClockOut: &badOut,
	})
	assert.ErrorIs(t, err, timeentry.ErrClockOutBeforeClockIn)
}

func TestListEntriesFilterValidation(t *testing.T) {
	svc := newTestService(newFakeEntryRepo(), newFakeEmployeeRepo(), time.Date(2024, 6, 3, 8, 0, 0, 0, time.UTC))

	_, err := svc.ListEntries(context.Background(), timeentry.ListEntriesFilter{DateFrom: "03-06-2024"})
	assert.Error(t, err)

	_, err = svc.ListEntries(context.Background(), timeentry.ListEntriesFilter{Status: "Pending"})
	assert.Error(t, err)
}

func TestMinutesResolutionElapsedHours(t *testing.T) {
	entryRepo := newFakeEntryRepo()
	svc := newTestService(entryRepo, newFakeEmployeeRepo(testEmployee()), time.Date(2024, 6, 3, 8, 0, 0, 0, time.UTC))
	ctx := context.Background()

	// Seconds are ignored: 08:00:45 to 16:15:10 is 8h15m.
	in, out := "08:00:45", "16:15:10"
	created, err := svc.CreateEntry(ctx, timeentry.CreateEntryRequest{
		EmployeeID: "emp-1", EntryDate: "2024-06-03", ClockIn: &in, ClockOut: &out,
	})
	require.NoError(t, err)
	assert.Equal(t, "8.25", created.TotalHours.String())
}
