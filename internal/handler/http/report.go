package http

import (
	"net/http"

	"github.com/chronopay/payroll-backend-go/internal/domain/report"
	"github.com/chronopay/payroll-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	Compensation(w http.ResponseWriter, r *http.Request)
	PayrollSummary(w http.ResponseWriter, r *http.Request)
	TimeAttendance(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.Service
}

func NewReportHandler(reportService report.Service) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

func periodFromQuery(r *http.Request) report.PeriodRequest {
	return report.PeriodRequest{
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
		GroupBy:   r.URL.Query().Get("group_by"),
	}
}

// Compensation implements ReportHandler.
func (h *reportHandlerImpl) Compensation(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.CompensationReport(r.Context(), periodFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// PayrollSummary implements ReportHandler.
func (h *reportHandlerImpl) PayrollSummary(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.PayrollSummaryReport(r.Context(), periodFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// TimeAttendance implements ReportHandler.
func (h *reportHandlerImpl) TimeAttendance(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.TimeAttendanceReport(r.Context(), periodFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
