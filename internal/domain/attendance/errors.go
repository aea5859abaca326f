package attendance

import "errors"

// Attendance domain errors
var (
	ErrNotClockedIn      = errors.New("you have not clocked in today")
	ErrAlreadyClockedOut = errors.New("you have already clocked out today")
	ErrOutsideGeofence   = errors.New("you are outside the allowed radius of your work site")

	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrUnauthorized       = errors.New("unauthorized to access this attendance record")
	ErrPersistenceFailed  = errors.New("failed to save attendance record")
)
