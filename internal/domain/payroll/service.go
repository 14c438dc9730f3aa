package payroll

import "context"

type Service interface {
	// StartPayRun seeds one pending zero-valued record per employee for the
	// month's pay period, inside a single transaction. Employees that
	// already have a record for the period are skipped, so re-invoking for
	// the same month is safe. Returns the count of records created.
	StartPayRun(ctx context.Context, req StartPayRunRequest) (PayRunResponse, error)

	CreateRecord(ctx context.Context, req CreateRecordRequest) (RecordResponse, error)

	// UpdateRecord applies field edits. When hours are supplied without a
	// gross amount, pay is recomputed from the employee's hourly rate; a
	// supplied deductions value overrides the statutory formula.
	UpdateRecord(ctx context.Context, req UpdateRecordRequest) (RecordResponse, error)

	UpdateStatus(ctx context.Context, id string, status string) error
	DeleteRecord(ctx context.Context, id string) error
	GetRecord(ctx context.Context, id string) (RecordResponse, error)
	ListRecords(ctx context.Context, filter ListRecordsFilter) ([]RecordResponse, error)
}
