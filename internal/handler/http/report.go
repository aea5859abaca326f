package http

import (
	"net/http"

	"github.com/arketra-labs/workforce-backend-go/internal/domain/report"
	"github.com/arketra-labs/workforce-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	Attendance(w http.ResponseWriter, r *http.Request)
	LeadPipeline(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// Attendance implements ReportHandler.
func (h *reportHandlerImpl) Attendance(w http.ResponseWriter, r *http.Request) {
	filter := report.AttendanceReportFilter{
		StartDate:  r.URL.Query().Get("start_date"),
		EndDate:    r.URL.Query().Get("end_date"),
		EmployeeID: queryString(r, "employee_id"),
	}

	result, err := h.reportService.AttendanceReport(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// LeadPipeline implements ReportHandler.
func (h *reportHandlerImpl) LeadPipeline(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.LeadPipeline(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
