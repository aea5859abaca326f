package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/arketra-labs/workforce-backend-go/internal/domain/attendance"
	"github.com/arketra-labs/workforce-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

// UpsertClockIn implements attendance.AttendanceRepository. A repeated
// clock-in on the same day overwrites the earlier one; the unique constraint
// on (employee_id, date) guarantees a single row even under concurrency.
func (r *attendanceRepository) UpsertClockIn(ctx context.Context, record attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendances (
			employee_id, date, clock_in, status,
			clock_in_latitude, clock_in_longitude, clock_in_selfie_url, notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (employee_id, date) DO UPDATE SET
			clock_in = EXCLUDED.clock_in,
			status = EXCLUDED.status,
			clock_in_latitude = EXCLUDED.clock_in_latitude,
			clock_in_longitude = EXCLUDED.clock_in_longitude,
			clock_in_selfie_url = EXCLUDED.clock_in_selfie_url,
			notes = EXCLUDED.notes,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		record.EmployeeID, record.Date, record.ClockIn, record.Status,
		record.ClockInLatitude, record.ClockInLongitude, record.ClockInSelfieURL, record.Notes,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to upsert clock-in: %w", err)
	}

	return record, nil
}

// SetClockOut implements attendance.AttendanceRepository.
func (r *attendanceRepository) SetClockOut(ctx context.Context, record attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances
		SET clock_out = $2,
			clock_out_latitude = $3,
			clock_out_longitude = $4,
			clock_out_selfie_url = $5,
			notes = COALESCE($6, notes),
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		record.ID, record.ClockOut,
		record.ClockOutLatitude, record.ClockOutLongitude, record.ClockOutSelfieURL,
		record.Notes,
	).Scan(&record.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to set clock-out: %w", err)
	}

	return record, nil
}

const attendanceColumns = `
	a.id, a.employee_id, a.date, a.clock_in, a.clock_out, a.status,
	a.clock_in_latitude, a.clock_in_longitude, a.clock_in_selfie_url,
	a.clock_out_latitude, a.clock_out_longitude, a.clock_out_selfie_url,
	a.notes, a.created_at, a.updated_at
`

func scanAttendance(row pgx.Row, withName bool) (attendance.Attendance, error) {
	var att attendance.Attendance
	dest := []interface{}{
		&att.ID, &att.EmployeeID, &att.Date, &att.ClockIn, &att.ClockOut, &att.Status,
		&att.ClockInLatitude, &att.ClockInLongitude, &att.ClockInSelfieURL,
		&att.ClockOutLatitude, &att.ClockOutLongitude, &att.ClockOutSelfieURL,
		&att.Notes, &att.CreatedAt, &att.UpdatedAt,
	}
	if withName {
		dest = append(dest, &att.EmployeeName)
	}
	err := row.Scan(dest...)
	return att, err
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		WHERE a.employee_id = $1 AND a.date = $2
		LIMIT 1
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date), false)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance by employee and date: %w", err)
	}

	return &att, nil
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `, e.full_name AS employee_name
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		WHERE a.id = $1
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, id), true)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance by id: %w", err)
	}

	return att, nil
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepository) List(ctx context.Context, filter attendance.ListFilter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argPos := 1

	if filter.EmployeeID != nil {
		conditions = append(conditions, fmt.Sprintf("a.employee_id = $%d", argPos))
		args = append(args, *filter.EmployeeID)
		argPos++
	}
	conditions, args, argPos = appendDateConditions(conditions, args, argPos, filter.Date, filter.StartDate, filter.EndDate)
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("a.status = $%d", argPos))
		args = append(args, *filter.Status)
		argPos++
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := `SELECT COUNT(*) FROM attendances a WHERE ` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s, e.full_name AS employee_name
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		WHERE %s
		ORDER BY a.date DESC, e.full_name ASC
		LIMIT $%d OFFSET $%d
	`, attendanceColumns, where, argPos, argPos+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	records, err := collectAttendances(rows, true)
	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

// ListByEmployee implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListByEmployee(ctx context.Context, employeeID string, filter attendance.MyListFilter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"a.employee_id = $1"}
	args := []interface{}{employeeID}
	argPos := 2

	conditions, args, argPos = appendDateConditions(conditions, args, argPos, filter.Date, filter.StartDate, filter.EndDate)
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("a.status = $%d", argPos))
		args = append(args, *filter.Status)
		argPos++
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := `SELECT COUNT(*) FROM attendances a WHERE ` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM attendances a
		WHERE %s
		ORDER BY a.date DESC
		LIMIT $%d OFFSET $%d
	`, attendanceColumns, where, argPos, argPos+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	records, err := collectAttendances(rows, false)
	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

// UpdateStatus implements attendance.AttendanceRepository.
func (r *attendanceRepository) UpdateStatus(ctx context.Context, id string, status attendance.Status) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE attendances SET status = $2, updated_at = NOW() WHERE id = $1`,
		id, status,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

// InsertAbsences implements attendance.AttendanceRepository. Employees that
// already have a record on the date are skipped by the conflict clause.
func (r *attendanceRepository) InsertAbsences(ctx context.Context, employeeIDs []string, date time.Time) (int64, error) {
	if len(employeeIDs) == 0 {
		return 0, nil
	}
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendances (employee_id, date, status)
		SELECT unnest($1::uuid[]), $2, $3
		ON CONFLICT (employee_id, date) DO NOTHING
	`

	tag, err := q.Exec(ctx, query, employeeIDs, date, attendance.StatusAbsent)
	if err != nil {
		return 0, fmt.Errorf("failed to insert absences: %w", err)
	}

	return tag.RowsAffected(), nil
}

func appendDateConditions(conditions []string, args []interface{}, argPos int, date, startDate, endDate *string) ([]string, []interface{}, int) {
	if date != nil {
		conditions = append(conditions, fmt.Sprintf("a.date = $%d", argPos))
		args = append(args, *date)
		argPos++
	}
	if startDate != nil {
		conditions = append(conditions, fmt.Sprintf("a.date >= $%d", argPos))
		args = append(args, *startDate)
		argPos++
	}
	if endDate != nil {
		conditions = append(conditions, fmt.Sprintf("a.date <= $%d", argPos))
		args = append(args, *endDate)
		argPos++
	}
	return conditions, args, argPos
}

func collectAttendances(rows pgx.Rows, withName bool) ([]attendance.Attendance, error) {
	var records []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows, withName)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, att)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendances: %w", err)
	}
	return records, nil
}
