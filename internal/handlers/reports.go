package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"gert-backend/internal/services"
)

// ReportHandler serves stored reports by their public report token. The
// token is an unguessable UUID, so these endpoints need no auth.
type ReportHandler struct {
	assessmentService *services.AssessmentService
	reportService     *services.ReportService
}

func NewReportHandler(assessmentService *services.AssessmentService, reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{assessmentService: assessmentService, reportService: reportService}
}

// GetResult returns the raw scored report as JSON.
func (h *ReportHandler) GetResult(w http.ResponseWriter, r *http.Request) {
	result, err := h.assessmentService.GetResult(r.Context(), chi.URLParam(r, "report_token"))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// PublicReport renders the respondent-facing HTML report.
func (h *ReportHandler) PublicReport(w http.ResponseWriter, r *http.Request) {
	h.renderHTML(w, r, services.ReportKindRespondent)
}

// ReportByKind renders either report view. Unknown kinds fall back to the
// respondent view.
func (h *ReportHandler) ReportByKind(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")
	if kind != services.ReportKindClient {
		kind = services.ReportKindRespondent
	}
	h.renderHTML(w, r, kind)
}

func (h *ReportHandler) renderHTML(w http.ResponseWriter, r *http.Request, kind string) {
	result, err := h.assessmentService.GetResult(r.Context(), chi.URLParam(r, "report_token"))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	html, err := h.reportService.Render(result.ReportData, kind)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(html))
}
