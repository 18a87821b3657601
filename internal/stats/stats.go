// Package stats keeps lightweight usage counters persisted to a JSON file.
// Recording is best effort: a failed write is logged and never surfaces to
// request handling.
package stats

import (
	"encoding/json"
	"os"
	"sync"
	"time"

	"github.com/harshajxn/gecf-knowledge-insight/internal/observability"
)

const recentUploadLimit = 10

// DayCount aggregates activity for one calendar day.
type DayCount struct {
	Visits  int `json:"visits"`
	Uploads int `json:"uploads"`
}

// UploadEvent records one processed batch.
type UploadEvent struct {
	Timestamp time.Time `json:"timestamp"`
	FileCount int       `json:"fileCount"`
}

// Snapshot is the persisted and served counter state.
type Snapshot struct {
	TotalVisits   int                 `json:"totalVisits"`
	TotalUploads  int                 `json:"totalUploads"`
	Daily         map[string]DayCount `json:"daily"`
	RecentUploads []UploadEvent       `json:"recentUploads"`
}

// Tracker serializes counter updates and mirrors them to disk.
type Tracker struct {
	mu     sync.Mutex
	state  Snapshot
	path   string
	logger *observability.Logger
}

// NewTracker loads existing counters from path when present. A missing or
// unreadable file starts the counters from zero.
func NewTracker(path string, logger *observability.Logger) *Tracker {
	t := &Tracker{
		path:   path,
		logger: logger.WithComponent("stats"),
		state: Snapshot{
			Daily:         map[string]DayCount{},
			RecentUploads: []UploadEvent{},
		},
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			t.logger.Warn().Str("path", path).Err(err).Msg("Could not read stats file, starting fresh")
		}
		return t
	}
	var loaded Snapshot
	if err := json.Unmarshal(data, &loaded); err != nil {
		t.logger.Warn().Str("path", path).Err(err).Msg("Stats file is corrupt, starting fresh")
		return t
	}
	if loaded.Daily == nil {
		loaded.Daily = map[string]DayCount{}
	}
	if loaded.RecentUploads == nil {
		loaded.RecentUploads = []UploadEvent{}
	}
	t.state = loaded
	return t
}

// RecordVisit counts one page visit.
func (t *Tracker) RecordVisit() {
	t.recordVisitAt(time.Now())
}

// recordVisitAt reads the event time once so a call straddling midnight
// cannot split across two daily buckets.
func (t *Tracker) recordVisitAt(now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.state.TotalVisits++
	day := t.state.Daily[dayKey(now)]
	day.Visits++
	t.state.Daily[dayKey(now)] = day
	t.persistLocked()
}

// RecordUpload counts one processed batch of fileCount documents.
func (t *Tracker) RecordUpload(fileCount int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := time.Now()
	t.state.TotalUploads++
	day := t.state.Daily[dayKey(now)]
	day.Uploads++
	t.state.Daily[dayKey(now)] = day

	t.state.RecentUploads = append(t.state.RecentUploads, UploadEvent{
		Timestamp: now,
		FileCount: fileCount,
	})
	if len(t.state.RecentUploads) > recentUploadLimit {
		t.state.RecentUploads = t.state.RecentUploads[len(t.state.RecentUploads)-recentUploadLimit:]
	}
	t.persistLocked()
}

// Snapshot returns a copy of the current counters.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := Snapshot{
		TotalVisits:   t.state.TotalVisits,
		TotalUploads:  t.state.TotalUploads,
		Daily:         make(map[string]DayCount, len(t.state.Daily)),
		RecentUploads: append([]UploadEvent{}, t.state.RecentUploads...),
	}
	for k, v := range t.state.Daily {
		out.Daily[k] = v
	}
	return out
}

func (t *Tracker) persistLocked() {
	data, err := json.MarshalIndent(t.state, "", "  ")
	if err != nil {
		t.logger.Warn().Err(err).Msg("Could not encode stats")
		return
	}
	if err := os.WriteFile(t.path, data, 0o644); err != nil {
		t.logger.Warn().Str("path", t.path).Err(err).Msg("Could not write stats file")
	}
}

func dayKey(tm time.Time) string {
	return tm.Format("2006-01-02")
}
