package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/arketra-labs/workforce-backend-go/internal/domain/attendance"
	"github.com/arketra-labs/workforce-backend-go/internal/domain/employee"
	"github.com/arketra-labs/workforce-backend-go/internal/domain/worksite"
)

// ClassificationJob is the nightly batch that settles the previous work
// day: employees without a record are marked absent, and present records
// are reclassified as late or early_departure against their site's
// schedule. The job is idempotent, so re-runs are harmless.
type ClassificationJob struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	workSiteRepo   worksite.WorkSiteRepository
}

func NewClassificationJob(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	workSiteRepo worksite.WorkSiteRepository,
) *ClassificationJob {
	return &ClassificationJob{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		workSiteRepo:   workSiteRepo,
	}
}

// Run settles the day before the current one.
func (j *ClassificationJob) Run(ctx context.Context) error {
	yesterday := workDay(time.Now().AddDate(0, 0, -1))
	return j.RunForDate(ctx, yesterday)
}

// RunForDate settles one specific day.
func (j *ClassificationJob) RunForDate(ctx context.Context, date time.Time) error {
	ids, err := j.employeeRepo.ListActiveIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list active employees: %w", err)
	}

	inserted, err := j.attendanceRepo.InsertAbsences(ctx, ids, date)
	if err != nil {
		return fmt.Errorf("failed to insert absences: %w", err)
	}
	if inserted > 0 {
		slog.Info("marked employees absent", "date", date.Format("2006-01-02"), "count", inserted)
	}

	var reclassified int
	for _, id := range ids {
		changed, err := j.classifyEmployee(ctx, id, date)
		if err != nil {
			slog.Error("failed to classify attendance", "employee_id", id, "error", err)
			continue
		}
		if changed {
			reclassified++
		}
	}
	if reclassified > 0 {
		slog.Info("reclassified attendance records", "date", date.Format("2006-01-02"), "count", reclassified)
	}

	return nil
}

func (j *ClassificationJob) classifyEmployee(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	record, err := j.attendanceRepo.GetByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		return false, err
	}
	if record == nil || record.ClockIn == nil {
		// Absent rows were already inserted above.
		return false, nil
	}

	site, err := j.workSiteRepo.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return false, err
	}
	if site == nil {
		// No schedule to measure against.
		return false, nil
	}

	status := classify(*record, *site, date)
	if status == record.Status {
		return false, nil
	}

	if err := j.attendanceRepo.UpdateStatus(ctx, record.ID, status); err != nil {
		return false, err
	}
	return true, nil
}

// classify derives the settled status of a clocked-in record from the
// site's schedule. Late wins over early departure when both apply.
func classify(record attendance.Attendance, site worksite.WorkSite, date time.Time) attendance.Status {
	startsAt, err := scheduleInstant(site.WorkStartsAt, date)
	if err != nil {
		return record.Status
	}
	endsAt, err := scheduleInstant(site.WorkEndsAt, date)
	if err != nil {
		return record.Status
	}

	graceLimit := startsAt.Add(time.Duration(site.GraceMinutes) * time.Minute)
	if record.ClockIn.After(graceLimit) {
		return attendance.StatusLate
	}

	if record.ClockOut != nil && record.ClockOut.Before(endsAt) {
		return attendance.StatusEarlyDeparture
	}

	return attendance.StatusPresent
}

// scheduleInstant anchors a "HH:MM" wall-clock string on the given date in
// server-local time.
func scheduleInstant(clock string, date time.Time) (time.Time, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid schedule time %q: %w", clock, err)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, time.Local), nil
}
