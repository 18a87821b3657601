package batch

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harshajxn/gecf-knowledge-insight/internal/domain"
	"github.com/harshajxn/gecf-knowledge-insight/internal/observability"
)

// stubProcessor records call order and yields a summary naming the file, so
// tests can check ordering independently of completion order.
type stubProcessor struct {
	mu       sync.Mutex
	seen     []string
	panicOn  string
	inFlight int
	maxSeen  int
}

func (p *stubProcessor) ProcessDocument(_ context.Context, fileName string, _ []byte) domain.DocumentRecord {
	p.mu.Lock()
	p.seen = append(p.seen, fileName)
	p.inFlight++
	if p.inFlight > p.maxSeen {
		p.maxSeen = p.inFlight
	}
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		p.inFlight--
		p.mu.Unlock()
	}()

	if fileName == p.panicOn {
		panic("boom")
	}
	return domain.DocumentRecord{
		FileName: fileName,
		Summary:  domain.OkSummary("summary of " + fileName),
	}
}

func uploads(names ...string) []Upload {
	ups := make([]Upload, len(names))
	for i, name := range names {
		ups[i] = Upload{FileName: name, Data: []byte("%PDF-1.4")}
	}
	return ups
}

func TestRun_PreservesInputOrder(t *testing.T) {
	proc := &stubProcessor{}
	orch := NewOrchestrator(proc, 4, observability.Nop())

	records, err := orch.Run(context.Background(), uploads("a.pdf", "b.pdf", "c.pdf", "d.pdf"))
	require.NoError(t, err)
	require.Len(t, records, 4)

	for i, name := range []string{"a.pdf", "b.pdf", "c.pdf", "d.pdf"} {
		assert.Equal(t, name, records[i].FileName)
		assert.Equal(t, "summary of "+name, records[i].Summary.Text)
	}
}

func TestRun_PanicIsolatedToOneFile(t *testing.T) {
	proc := &stubProcessor{panicOn: "bad.pdf"}
	orch := NewOrchestrator(proc, 2, observability.Nop())

	records, err := orch.Run(context.Background(), uploads("ok.pdf", "bad.pdf", "also-ok.pdf"))
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.False(t, records[0].Summary.Failed)
	assert.True(t, records[1].Summary.Failed)
	assert.True(t, strings.HasPrefix(records[1].Summary.Reason, "Error processing this document: "))
	assert.Equal(t, "bad.pdf", records[1].FileName)
	assert.False(t, records[2].Summary.Failed)
}

func TestRun_SerialWhenWorkersBelowOne(t *testing.T) {
	proc := &stubProcessor{}
	orch := NewOrchestrator(proc, 0, observability.Nop())

	_, err := orch.Run(context.Background(), uploads("a.pdf", "b.pdf", "c.pdf"))
	require.NoError(t, err)
	assert.Equal(t, 1, proc.maxSeen)
	assert.Equal(t, []string{"a.pdf", "b.pdf", "c.pdf"}, proc.seen)
}

func TestValidateBatch(t *testing.T) {
	assert.Error(t, ValidateBatch(nil))
	assert.Error(t, ValidateBatch([]Upload{}))

	err := ValidateBatch([]Upload{{FileName: "a.pdf"}, {FileName: ""}})
	require.Error(t, err)
	kind, ok := domain.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, domain.KindValidation, kind)

	assert.NoError(t, ValidateBatch(uploads("a.pdf")))
}
