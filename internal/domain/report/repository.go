package report

import "context"

type ReportRepository interface {
	// AttendanceSummaries aggregates attendance rows per employee over
	// an inclusive date range. Filtering to one employee is optional.
	AttendanceSummaries(ctx context.Context, startDate, endDate string, employeeID *string) ([]EmployeeAttendanceSummary, error)
}
