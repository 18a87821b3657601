package handlers

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/harshajxn/gecf-knowledge-insight/internal/stats"
)

// SystemHandler serves health and usage-statistics endpoints.
type SystemHandler struct {
	tracker   *stats.Tracker
	tempDir   string
	keyLoaded bool
}

// NewSystemHandler creates a new system handler. keyLoaded reports whether an
// LLM API key was configured at startup.
func NewSystemHandler(tracker *stats.Tracker, tempDir string, keyLoaded bool) *SystemHandler {
	return &SystemHandler{tracker: tracker, tempDir: tempDir, keyLoaded: keyLoaded}
}

// Health reports service liveness plus its two startup dependencies: the LLM
// key and a writable temp directory.
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{
		"status":           "healthy",
		"service":          "gecf-knowledge-insight",
		"groq_api_key_set": h.keyLoaded,
		"tmp_writable":     h.tempWritable(),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// Stats returns the usage counter snapshot.
func (h *SystemHandler) Stats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.tracker.Snapshot())
}

func (h *SystemHandler) tempWritable() bool {
	probe := filepath.Join(h.tempDir, "insight-probe-"+uuid.NewString())
	if err := os.WriteFile(probe, []byte("ok"), 0o600); err != nil {
		return false
	}
	os.Remove(probe)
	return true
}
