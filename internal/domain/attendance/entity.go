package attendance

import "time"

// Status of a day's attendance record. ClockIn/ClockOut only ever produce
// "present"; the other values are assigned by the nightly classification
// job, never by the recording operations themselves.
type Status string

const (
	StatusPresent        Status = "present"
	StatusAbsent         Status = "absent"
	StatusLate           Status = "late"
	StatusEarlyDeparture Status = "early_departure"
)

// Attendance is one employee's record for one calendar date; the
// (EmployeeID, Date) pair is unique. Date is the local work day, the
// clock timestamps are absolute UTC instants.
type Attendance struct {
	ID         string
	EmployeeID string
	Date       time.Time

	ClockIn           *time.Time
	ClockOut          *time.Time
	Status            Status
	ClockInLatitude   *float64
	ClockInLongitude  *float64
	ClockInSelfieURL  *string
	ClockOutLatitude  *float64
	ClockOutLongitude *float64
	ClockOutSelfieURL *string
	Notes             *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO / Join
	EmployeeName *string
}
