package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/harshajxn/gecf-knowledge-insight/internal/domain"
	"github.com/harshajxn/gecf-knowledge-insight/internal/observability"
	"github.com/harshajxn/gecf-knowledge-insight/internal/report"
)

const reportFileName = "GECF_News_Report.pdf"

// ReportHandler handles PDF report generation requests.
type ReportHandler struct {
	logger     *observability.Logger
	compositor *report.Compositor
}

// NewReportHandler creates a new report handler.
func NewReportHandler(logger *observability.Logger, compositor *report.Compositor) *ReportHandler {
	return &ReportHandler{logger: logger, compositor: compositor}
}

// Generate renders the posted entries into a downloadable PDF.
func (h *ReportHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var entries []domain.ReportEntry
	if err := json.NewDecoder(r.Body).Decode(&entries); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	pdfBytes, err := h.compositor.Compose(entries)
	if err != nil {
		if kind, ok := domain.KindOf(err); ok && kind == domain.KindValidation {
			h.writeError(w, http.StatusBadRequest, "no reports selected", err.Error())
			return
		}
		h.logger.Error().Err(err).Msg("Report generation failed")
		h.writeError(w, http.StatusInternalServerError, "report generation failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+reportFileName+`"`)
	w.Write(pdfBytes)
}

func (h *ReportHandler) writeError(w http.ResponseWriter, status int, message, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	resp := map[string]string{
		"error":   message,
		"message": message,
	}
	if detail != "" {
		resp["detail"] = detail
	}
	json.NewEncoder(w).Encode(resp)
}
