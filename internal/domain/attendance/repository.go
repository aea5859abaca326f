package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access for attendance records.
type AttendanceRepository interface {
	// UpsertClockIn inserts or overwrites the clock-in half of the record
	// keyed by (employee_id, date). The uniqueness invariant is enforced by
	// the database constraint, so a concurrent double clock-in can never
	// produce two rows.
	UpsertClockIn(ctx context.Context, record Attendance) (Attendance, error)

	// SetClockOut fills the clock-out half of an existing record.
	SetClockOut(ctx context.Context, record Attendance) (Attendance, error)

	// GetByEmployeeAndDate retrieves the record for one employee on one
	// local work day. Returns nil when no record exists.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)

	GetByID(ctx context.Context, id string) (Attendance, error)

	// List retrieves records across employees (manager/admin view).
	List(ctx context.Context, filter ListFilter) ([]Attendance, int64, error)

	// ListByEmployee retrieves one employee's records.
	ListByEmployee(ctx context.Context, employeeID string, filter MyListFilter) ([]Attendance, int64, error)

	// UpdateStatus reclassifies a record; used by the nightly job.
	UpdateStatus(ctx context.Context, id string, status Status) error

	// InsertAbsences creates absent records dated `date` for every employee
	// id that has no record on that date. Returns the number inserted.
	InsertAbsences(ctx context.Context, employeeIDs []string, date time.Time) (int64, error)
}
