// Package handlers provides HTTP handlers for the insight API.
package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/harshajxn/gecf-knowledge-insight/internal/batch"
	"github.com/harshajxn/gecf-knowledge-insight/internal/domain"
	"github.com/harshajxn/gecf-knowledge-insight/internal/observability"
	"github.com/harshajxn/gecf-knowledge-insight/internal/stats"
)

// multipartMemoryLimit is the in-memory buffer before multipart parts spill
// to disk, not the upload cap.
const multipartMemoryLimit = 32 << 20

// DocumentsHandler handles document upload and processing requests.
type DocumentsHandler struct {
	logger         *observability.Logger
	orchestrator   *batch.Orchestrator
	tracker        *stats.Tracker
	maxUploadBytes int64
}

// NewDocumentsHandler creates a new document processing handler.
func NewDocumentsHandler(logger *observability.Logger, orchestrator *batch.Orchestrator, tracker *stats.Tracker, maxUploadBytes int64) *DocumentsHandler {
	return &DocumentsHandler{
		logger:         logger,
		orchestrator:   orchestrator,
		tracker:        tracker,
		maxUploadBytes: maxUploadBytes,
	}
}

// DocumentDTO is the per-file response record.
type DocumentDTO struct {
	FileName           string   `json:"fileName"`
	Heading            string   `json:"heading"`
	Source             string   `json:"source"`
	CountriesFound     []string `json:"countriesFound"`
	CountriesMentioned []string `json:"countriesMentioned"`
	Images             []string `json:"images"`
	Summary            string   `json:"summary"`
}

// Process accepts a multipart batch under the "files" field and returns one
// record per file, in upload order.
func (h *DocumentsHandler) Process(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		h.writeError(w, http.StatusBadRequest, "could not parse multipart form", err.Error())
		return
	}
	defer r.MultipartForm.RemoveAll()

	parts := r.MultipartForm.File["files"]
	uploads := make([]batch.Upload, 0, len(parts))
	for _, part := range parts {
		f, err := part.Open()
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "could not read uploaded file", err.Error())
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "could not read uploaded file", err.Error())
			return
		}
		uploads = append(uploads, batch.Upload{FileName: part.Filename, Data: data})
	}

	records, err := h.orchestrator.Run(r.Context(), uploads)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid upload batch", err.Error())
		return
	}

	if h.tracker != nil {
		h.tracker.RecordUpload(len(records))
	}

	resp := make([]DocumentDTO, len(records))
	for i, rec := range records {
		resp[i] = toDTO(rec)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func toDTO(rec domain.DocumentRecord) DocumentDTO {
	return DocumentDTO{
		FileName:           rec.FileName,
		Heading:            rec.Heading,
		Source:             rec.Source,
		CountriesFound:     rec.CountriesFound,
		CountriesMentioned: rec.CountriesMentioned,
		Images:             rec.Images,
		Summary:            rec.Summary.Display(),
	}
}

func (h *DocumentsHandler) writeError(w http.ResponseWriter, status int, message, detail string) {
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
