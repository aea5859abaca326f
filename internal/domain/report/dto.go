package report

import (
	"github.com/arketra-labs/workforce-backend-go/internal/pkg/validator"
)

type AttendanceReportFilter struct {
	StartDate  string
	EndDate    string
	EmployeeID *string
}

func (f *AttendanceReportFilter) Validate() error {
	var errs validator.ValidationErrors

	start, startOK := validator.IsValidDate(f.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}
	end, endOK := validator.IsValidDate(f.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}
	if startOK && endOK {
		if end.Before(start) {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date cannot be before start_date",
			})
		}
	}
	if f.EmployeeID != nil && !validator.IsValidUUID(*f.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a valid uuid",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// StatusCounts breaks a date range down by attendance status.
type StatusCounts struct {
	Present        int64 `json:"present"`
	Absent         int64 `json:"absent"`
	Late           int64 `json:"late"`
	EarlyDeparture int64 `json:"early_departure"`
}

type EmployeeAttendanceSummary struct {
	EmployeeID   string       `json:"employee_id"`
	EmployeeName string       `json:"employee_name"`
	Counts       StatusCounts `json:"counts"`
	TotalDays    int64        `json:"total_days"`
}

type AttendanceReportResponse struct {
	StartDate string                      `json:"start_date"`
	EndDate   string                      `json:"end_date"`
	Totals    StatusCounts                `json:"totals"`
	Employees []EmployeeAttendanceSummary `json:"employees"`
}

type LeadPipelineResponse struct {
	New       int64 `json:"new"`
	Contacted int64 `json:"contacted"`
	Qualified int64 `json:"qualified"`
	Won       int64 `json:"won"`
	Lost      int64 `json:"lost"`
	Total     int64 `json:"total"`
}
