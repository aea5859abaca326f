package attendance

import "context"

// AttendanceService defines business logic for attendance operations.
type AttendanceService interface {
	// ClockIn records the start of the work day for the authenticated
	// employee: geofence check, selfie upload, upsert by (employee, date).
	ClockIn(ctx context.Context, req ClockInRequest) (AttendanceResponse, error)

	// ClockOut records the end of the work day. Rejected when no clock-in
	// exists for today.
	ClockOut(ctx context.Context, req ClockOutRequest) (AttendanceResponse, error)

	// GetMyAttendance retrieves records for the authenticated employee.
	GetMyAttendance(ctx context.Context, filter MyListFilter) (ListAttendanceResponse, error)

	// ListAttendance retrieves records with filters (admin/manager).
	ListAttendance(ctx context.Context, filter ListFilter) (ListAttendanceResponse, error)

	// GetAttendance retrieves a single record by ID.
	GetAttendance(ctx context.Context, id string) (AttendanceResponse, error)
}
