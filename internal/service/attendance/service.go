package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/arketra-labs/workforce-backend-go/internal/domain/attendance"
	"github.com/arketra-labs/workforce-backend-go/internal/domain/employee"
	"github.com/arketra-labs/workforce-backend-go/internal/domain/worksite"
	"github.com/arketra-labs/workforce-backend-go/internal/pkg/geo"
	"github.com/arketra-labs/workforce-backend-go/internal/pkg/jwt"
	"github.com/arketra-labs/workforce-backend-go/internal/pkg/observability"
	"github.com/arketra-labs/workforce-backend-go/internal/service/file"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	employee.EmployeeRepository
	worksite.WorkSiteRepository
	fileService file.FileService
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	workSiteRepo worksite.WorkSiteRepository,
	fileService file.FileService,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		EmployeeRepository:   employeeRepo,
		WorkSiteRepository:   workSiteRepo,
		fileService:          fileService,
	}
}

// workDay truncates an instant to its local calendar date.
func workDay(t time.Time) time.Time {
	local := t.Local()
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// checkFence rejects the coordinate when the employee has an assigned work
// site and the coordinate falls outside its radius. No site means no
// enforcement.
func (a *AttendanceServiceImpl) checkFence(ctx context.Context, employeeID string, lat, lng float64) error {
	site, err := a.WorkSiteRepository.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return fmt.Errorf("failed to get work site: %w", err)
	}
	if site == nil {
		return nil
	}

	verdict := geo.Validate(&geo.Coordinate{Latitude: lat, Longitude: lng}, site.Fence())
	if !verdict.WithinFence {
		observability.GeofenceRejections.Inc()
		return attendance.ErrOutsideGeofence
	}
	return nil
}

// ClockIn implements attendance.AttendanceService. A repeated clock-in on
// the same day overwrites the earlier record rather than erroring.
func (a *AttendanceServiceImpl) ClockIn(ctx context.Context, req attendance.ClockInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if claims.EmployeeID == "" {
		return attendance.AttendanceResponse{}, attendance.ErrUnauthorized
	}

	emp, err := a.EmployeeRepository.GetByID(ctx, claims.EmployeeID)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}
	if !emp.Active {
		return attendance.AttendanceResponse{}, employee.ErrEmployeeInactive
	}

	if err := a.checkFence(ctx, emp.ID, req.Latitude, req.Longitude); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	// Location is validated before the selfie is stored, so a rejected
	// attempt never leaves an orphaned object behind.
	selfieURL, err := a.fileService.UploadSelfie(ctx, emp.ID, "clock_in", req.File, req.FileHeader.Filename)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to upload selfie: %w", err)
	}

	now := time.Now().UTC()
	record := attendance.Attendance{
		EmployeeID:       emp.ID,
		Date:             workDay(now),
		ClockIn:          &now,
		Status:           attendance.StatusPresent,
		ClockInLatitude:  &req.Latitude,
		ClockInLongitude: &req.Longitude,
		ClockInSelfieURL: &selfieURL,
		Notes:            req.Notes,
	}

	saved, err := a.AttendanceRepository.UpsertClockIn(ctx, record)
	if err != nil {
		return attendance.AttendanceResponse{}, attendance.ErrPersistenceFailed
	}

	observability.ClockEvents.WithLabelValues("clock_in").Inc()
	return attendance.ToResponse(saved), nil
}

// ClockOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockOut(ctx context.Context, req attendance.ClockOutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if claims.EmployeeID == "" {
		return attendance.AttendanceResponse{}, attendance.ErrUnauthorized
	}

	now := time.Now().UTC()
	today, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, claims.EmployeeID, workDay(now))
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if today == nil || today.ClockIn == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNotClockedIn
	}
	if today.ClockOut != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyClockedOut
	}

	if err := a.checkFence(ctx, claims.EmployeeID, req.Latitude, req.Longitude); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	var selfieURL *string
	if req.File != nil && req.FileHeader != nil {
		url, err := a.fileService.UploadSelfie(ctx, claims.EmployeeID, "clock_out", req.File, req.FileHeader.Filename)
		if err != nil {
			return attendance.AttendanceResponse{}, fmt.Errorf("failed to upload selfie: %w", err)
		}
		selfieURL = &url
	}

	today.ClockOut = &now
	today.ClockOutLatitude = &req.Latitude
	today.ClockOutLongitude = &req.Longitude
	today.ClockOutSelfieURL = selfieURL
	if req.Notes != nil {
		today.Notes = req.Notes
	}

	saved, err := a.AttendanceRepository.SetClockOut(ctx, *today)
	if err != nil {
		return attendance.AttendanceResponse{}, attendance.ErrPersistenceFailed
	}

	observability.ClockEvents.WithLabelValues("clock_out").Inc()
	return attendance.ToResponse(saved), nil
}

// GetMyAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetMyAttendance(ctx context.Context, filter attendance.MyListFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}
	if claims.EmployeeID == "" {
		return attendance.ListAttendanceResponse{}, attendance.ErrUnauthorized
	}

	records, total, err := a.AttendanceRepository.ListByEmployee(ctx, claims.EmployeeID, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	return buildListResponse(records, total, filter.Page, filter.Limit), nil
}

// ListAttendance implements attendance.AttendanceService. Manager and admin
// only.
func (a *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.ListFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}
	if !claims.IsManager() {
		return attendance.ListAttendanceResponse{}, attendance.ErrUnauthorized
	}

	records, total, err := a.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	return buildListResponse(records, total, filter.Page, filter.Limit), nil
}

// GetAttendance implements attendance.AttendanceService. Employees may only
// read their own records.
func (a *AttendanceServiceImpl) GetAttendance(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record, err := a.AttendanceRepository.GetByID(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if !claims.IsManager() && record.EmployeeID != claims.EmployeeID {
		return attendance.AttendanceResponse{}, attendance.ErrUnauthorized
	}

	return attendance.ToResponse(record), nil
}

func buildListResponse(records []attendance.Attendance, total int64, page, limit int) attendance.ListAttendanceResponse {
	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, attendance.ToResponse(r))
	}
	return attendance.ListAttendanceResponse{
		Attendances: responses,
		TotalItems:  total,
		Page:        page,
		Limit:       limit,
	}
}
