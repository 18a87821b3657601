package stats

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harshajxn/gecf-knowledge-insight/internal/observability"
)

func trackerAt(t *testing.T, path string) *Tracker {
	t.Helper()
	return NewTracker(path, observability.Nop())
}

func TestTracker_CountsAndPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "usage.json")
	tr := trackerAt(t, path)

	tr.RecordVisit()
	tr.RecordVisit()
	tr.RecordUpload(3)

	snap := tr.Snapshot()
	assert.Equal(t, 2, snap.TotalVisits)
	assert.Equal(t, 1, snap.TotalUploads)

	today := time.Now().Format("2006-01-02")
	assert.Equal(t, 2, snap.Daily[today].Visits)
	assert.Equal(t, 1, snap.Daily[today].Uploads)
	require.Len(t, snap.RecentUploads, 1)
	assert.Equal(t, 3, snap.RecentUploads[0].FileCount)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var persisted Snapshot
	require.NoError(t, json.Unmarshal(data, &persisted))
	assert.Equal(t, 2, persisted.TotalVisits)
}

func TestTracker_ReloadsState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "usage.json")

	first := trackerAt(t, path)
	first.RecordVisit()
	first.RecordUpload(1)

	second := trackerAt(t, path)
	snap := second.Snapshot()
	assert.Equal(t, 1, snap.TotalVisits)
	assert.Equal(t, 1, snap.TotalUploads)
}

func TestTracker_RecentUploadsCapped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "usage.json")
	tr := trackerAt(t, path)

	for i := 1; i <= 15; i++ {
		tr.RecordUpload(i)
	}

	snap := tr.Snapshot()
	require.Len(t, snap.RecentUploads, 10)
	assert.Equal(t, 6, snap.RecentUploads[0].FileCount)
	assert.Equal(t, 15, snap.RecentUploads[9].FileCount)
}

func TestTracker_VisitBucketMatchesEventTime(t *testing.T) {
	path := filepath.Join(t.TempDir(), "usage.json")
	tr := trackerAt(t, path)

	// A visit just before midnight lands entirely in that day's bucket.
	lateNight := time.Date(2026, 8, 30, 23, 59, 59, 999_000_000, time.Local)
	tr.recordVisitAt(lateNight)

	snap := tr.Snapshot()
	assert.Equal(t, 1, snap.Daily["2026-08-30"].Visits)
	assert.NotContains(t, snap.Daily, "2026-08-31")
}

func TestTracker_CorruptFileStartsFresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "usage.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	tr := trackerAt(t, path)
	snap := tr.Snapshot()
	assert.Zero(t, snap.TotalVisits)
	assert.NotNil(t, snap.Daily)
}

func TestTracker_UnwritablePathDoesNotBlockRecording(t *testing.T) {
	tr := trackerAt(t, filepath.Join(t.TempDir(), "missing-dir", "usage.json"))

	tr.RecordVisit()
	assert.Equal(t, 1, tr.Snapshot().TotalVisits)
}

func TestTracker_ConcurrentRecording(t *testing.T) {
	path := filepath.Join(t.TempDir(), "usage.json")
	tr := trackerAt(t, path)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tr.RecordVisit()
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, tr.Snapshot().TotalVisits)
}
