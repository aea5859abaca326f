package report

import (
	"context"
	"fmt"

	"github.com/arketra-labs/workforce-backend-go/internal/domain/lead"
	"github.com/arketra-labs/workforce-backend-go/internal/domain/report"
	"github.com/arketra-labs/workforce-backend-go/internal/pkg/jwt"
)

type ReportServiceImpl struct {
	report.ReportRepository
	lead.LeadRepository
}

func NewReportService(reportRepo report.ReportRepository, leadRepo lead.LeadRepository) report.ReportService {
	return &ReportServiceImpl{
		ReportRepository: reportRepo,
		LeadRepository:   leadRepo,
	}
}

// AttendanceReport implements report.ReportService. Manager and admin only;
// output is plain JSON aggregates, rendering is the client's concern.
func (s *ReportServiceImpl) AttendanceReport(ctx context.Context, filter report.AttendanceReportFilter) (report.AttendanceReportResponse, error) {
	if err := filter.Validate(); err != nil {
		return report.AttendanceReportResponse{}, err
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return report.AttendanceReportResponse{}, err
	}
	if !claims.IsManager() {
		return report.AttendanceReportResponse{}, report.ErrReportAccessDenied
	}

	summaries, err := s.ReportRepository.AttendanceSummaries(ctx, filter.StartDate, filter.EndDate, filter.EmployeeID)
	if err != nil {
		return report.AttendanceReportResponse{}, fmt.Errorf("failed to build attendance report: %w", err)
	}

	var totals report.StatusCounts
	for _, summary := range summaries {
		totals.Present += summary.Counts.Present
		totals.Absent += summary.Counts.Absent
		totals.Late += summary.Counts.Late
		totals.EarlyDeparture += summary.Counts.EarlyDeparture
	}

	if summaries == nil {
		summaries = []report.EmployeeAttendanceSummary{}
	}

	return report.AttendanceReportResponse{
		StartDate: filter.StartDate,
		EndDate:   filter.EndDate,
		Totals:    totals,
		Employees: summaries,
	}, nil
}

// LeadPipeline implements report.ReportService.
func (s *ReportServiceImpl) LeadPipeline(ctx context.Context) (report.LeadPipelineResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return report.LeadPipelineResponse{}, err
	}
	if !claims.IsManager() {
		return report.LeadPipelineResponse{}, report.ErrReportAccessDenied
	}

	counts, err := s.LeadRepository.CountByStatus(ctx)
	if err != nil {
		return report.LeadPipelineResponse{}, fmt.Errorf("failed to count leads: %w", err)
	}

	resp := report.LeadPipelineResponse{
		New:       counts[lead.StatusNew],
		Contacted: counts[lead.StatusContacted],
		Qualified: counts[lead.StatusQualified],
		Won:       counts[lead.StatusWon],
		Lost:      counts[lead.StatusLost],
	}
	resp.Total = resp.New + resp.Contacted + resp.Qualified + resp.Won + resp.Lost
	return resp, nil
}
