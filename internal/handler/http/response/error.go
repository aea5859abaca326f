package response

import (
	"errors"
	"net/http"

	"github.com/arketra-labs/workforce-backend-go/internal/domain/attendance"
	"github.com/arketra-labs/workforce-backend-go/internal/domain/auth"
	"github.com/arketra-labs/workforce-backend-go/internal/domain/chat"
	"github.com/arketra-labs/workforce-backend-go/internal/domain/employee"
	"github.com/arketra-labs/workforce-backend-go/internal/domain/lead"
	"github.com/arketra-labs/workforce-backend-go/internal/domain/report"
	"github.com/arketra-labs/workforce-backend-go/internal/domain/user"
	"github.com/arketra-labs/workforce-backend-go/internal/domain/worksite"
	"github.com/arketra-labs/workforce-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or missing token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrOAuthStateMismatch):
		Unauthorized(w, "OAuth state mismatch")
	case errors.Is(err, auth.ErrEmailNotVerified):
		Forbidden(w, "Google account email not verified")

	// User / roles
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")
	case errors.Is(err, user.ErrManagerAccessRequired):
		Forbidden(w, "Manager access required")

	// Employee
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeInactive):
		Forbidden(w, "Employee account is deactivated")

	// Work site
	case errors.Is(err, worksite.ErrWorkSiteNotFound):
		NotFound(w, "Work site not found")
	case errors.Is(err, worksite.ErrWorkSiteInUse):
		Conflict(w, "Work site still has assigned employees")

	// Attendance
	case errors.Is(err, attendance.ErrNotClockedIn):
		Conflict(w, "You have not clocked in today")
	case errors.Is(err, attendance.ErrAlreadyClockedOut):
		Conflict(w, "You have already clocked out today")
	case errors.Is(err, attendance.ErrOutsideGeofence):
		Forbidden(w, "You are outside the allowed radius of your work site")
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrUnauthorized):
		Forbidden(w, "Not allowed to access this attendance record")
	case errors.Is(err, attendance.ErrPersistenceFailed):
		InternalServerError(w, "Failed to save attendance record")

	// Lead
	case errors.Is(err, lead.ErrLeadNotFound):
		NotFound(w, "Lead not found")
	case errors.Is(err, lead.ErrInvalidStatusTransition):
		Conflict(w, "Invalid lead status transition")
	case errors.Is(err, lead.ErrLeadAccessDenied):
		Forbidden(w, "Lead belongs to another sales rep")

	// Chat
	case errors.Is(err, chat.ErrRecipientNotFound):
		NotFound(w, "Recipient not found")
	case errors.Is(err, chat.ErrEmptyMessage):
		BadRequest(w, "Message body cannot be empty", nil)
	case errors.Is(err, chat.ErrSelfMessage):
		BadRequest(w, "Cannot send a message to yourself", nil)

	// Report
	case errors.Is(err, report.ErrReportAccessDenied):
		Forbidden(w, "Reports require manager access")

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
