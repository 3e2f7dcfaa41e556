package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/agent-hours-go/internal/domain/report"
	"github.com/cmlabs-hris/agent-hours-go/internal/domain/session"
	"github.com/cmlabs-hris/agent-hours-go/internal/handler/http/response"
)

type ReportHandler interface {
	// Generate returns the report rows together with an inline download link
	Generate(w http.ResponseWriter, r *http.Request)

	// Export streams the report workbook as an attachment
	Export(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	sessionService session.SessionService
}

func NewReportHandler(sessionService session.SessionService) ReportHandler {
	return &reportHandlerImpl{
		sessionService: sessionService,
	}
}

// Generate handles POST /sessions/{id}/reports
func (h *reportHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	var req report.GenerateReportRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request body", nil)
			return
		}
	}

	result, err := h.sessionService.GenerateReport(r.Context(), pathParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Export handles GET /sessions/{id}/reports/export
func (h *reportHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := report.GenerateReportRequest{
		Manager:   q.Get("manager"),
		StartDate: q.Get("start_date"),
		EndDate:   q.Get("end_date"),
	}

	file, err := h.sessionService.ExportReport(r.Context(), pathParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, file.Filename, file.ContentType, file.Content)
}
