// Package batch runs the per-document pipeline over a set of uploads with a
// bounded worker pool, preserving input order and isolating failures to the
// file that caused them.
package batch

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/harshajxn/gecf-knowledge-insight/internal/domain"
	"github.com/harshajxn/gecf-knowledge-insight/internal/observability"
)

// Upload is one named file handed to the orchestrator.
type Upload struct {
	FileName string
	Data     []byte
}

// Processor handles a single document end to end.
type Processor interface {
	ProcessDocument(ctx context.Context, fileName string, data []byte) domain.DocumentRecord
}

// Orchestrator fans uploads out over a bounded pool of workers.
type Orchestrator struct {
	processor Processor
	workers   int
	logger    *observability.Logger
}

// NewOrchestrator builds an orchestrator with the given concurrency. Values
// below 1 run the batch serially.
func NewOrchestrator(processor Processor, workers int, logger *observability.Logger) *Orchestrator {
	if workers < 1 {
		workers = 1
	}
	return &Orchestrator{
		processor: processor,
		workers:   workers,
		logger:    logger.WithComponent("batch"),
	}
}

// ValidateBatch rejects empty batches and uploads without a filename before
// any processing starts.
func ValidateBatch(uploads []Upload) error {
	if len(uploads) == 0 {
		return domain.ValidationError("no files provided", nil)
	}
	for i, up := range uploads {
		if up.FileName == "" {
			return domain.ValidationError(fmt.Sprintf("upload %d has no filename", i+1), nil)
		}
	}
	return nil
}

// Run processes every upload and returns one record per upload, in input
// order. A panic inside a single document's pipeline becomes that document's
// error record; the rest of the batch is unaffected.
func (o *Orchestrator) Run(ctx context.Context, uploads []Upload) ([]domain.DocumentRecord, error) {
	if err := ValidateBatch(uploads); err != nil {
		return nil, err
	}

	started := time.Now()
	o.logger.Info().Int("files", len(uploads)).Int("workers", o.workers).Msg("Batch started")

	records := make([]domain.DocumentRecord, len(uploads))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)
	for i, up := range uploads {
		i, up := i, up
		g.Go(func() error {
			records[i] = o.processOne(gctx, up)
			return nil
		})
	}
	// Workers never return errors; Wait only synchronizes completion.
	_ = g.Wait()

	o.logger.Info().
		Int("files", len(uploads)).
		Dur("elapsed", time.Since(started)).
		Msg("Batch finished")
	return records, nil
}

func (o *Orchestrator) processOne(ctx context.Context, up Upload) (record domain.DocumentRecord) {
	defer func() {
		if r := recover(); r != nil {
			o.logger.Error().Str("file", up.FileName).Str("panic", fmt.Sprint(r)).Msg("Document pipeline panicked")
			record = domain.ErrorRecord(up.FileName, fmt.Errorf("internal error: %v", r))
		}
	}()
	return o.processor.ProcessDocument(ctx, up.FileName, up.Data)
}
