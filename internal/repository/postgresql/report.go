package postgresql

import (
	"context"
	"fmt"

	"github.com/arketra-labs/workforce-backend-go/internal/domain/report"
	"github.com/arketra-labs/workforce-backend-go/internal/pkg/database"
)

type reportRepository struct {
	db *database.DB
}

func NewReportRepository(db *database.DB) report.ReportRepository {
	return &reportRepository{db: db}
}

// AttendanceSummaries implements report.ReportRepository.
func (r *reportRepository) AttendanceSummaries(ctx context.Context, startDate, endDate string, employeeID *string) ([]report.EmployeeAttendanceSummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT e.id, e.full_name,
			COUNT(*) FILTER (WHERE a.status = 'present') AS present,
			COUNT(*) FILTER (WHERE a.status = 'absent') AS absent,
			COUNT(*) FILTER (WHERE a.status = 'late') AS late,
			COUNT(*) FILTER (WHERE a.status = 'early_departure') AS early_departure,
			COUNT(*) AS total_days
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		WHERE a.date >= $1 AND a.date <= $2
		  AND ($3::uuid IS NULL OR a.employee_id = $3)
		GROUP BY e.id, e.full_name
		ORDER BY e.full_name ASC
	`

	rows, err := q.Query(ctx, query, startDate, endDate, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate attendance summaries: %w", err)
	}
	defer rows.Close()

	var summaries []report.EmployeeAttendanceSummary
	for rows.Next() {
		var s report.EmployeeAttendanceSummary
		if err := rows.Scan(
			&s.EmployeeID, &s.EmployeeName,
			&s.Counts.Present, &s.Counts.Absent, &s.Counts.Late, &s.Counts.EarlyDeparture,
			&s.TotalDays,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attendance summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance summaries: %w", err)
	}

	return summaries, nil
}
