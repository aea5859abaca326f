package report

import "context"

type ReportService interface {
	AttendanceReport(ctx context.Context, filter AttendanceReportFilter) (AttendanceReportResponse, error)
	LeadPipeline(ctx context.Context) (LeadPipelineResponse, error)
}
