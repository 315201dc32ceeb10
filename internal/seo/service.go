// Package seo drives metadata generation over an uploaded catalog: it
// partitions rows into batches, feeds them through the AI batch client one at
// a time, and keeps the run's row statuses and progress counters current.
package seo

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"autoseo/internal/ai"
	"autoseo/internal/config"
	"autoseo/internal/store"
	"autoseo/pkg/models"
)

var (
	// ErrNoRows is returned when an upload parses to zero product rows.
	ErrNoRows = errors.New("no product rows to process")
	// ErrRunInProgress is returned when a run is already being processed.
	ErrRunInProgress = errors.New("a run is already in progress")
)

// User-facing notices shown once, at run level, when a run halts.
const (
	QuotaNotice           = "Gemini quota exceeded. Since the Gemini quota is over, you should use the free ChatGPT API instead."
	RepeatedFailureNotice = "Processing paused due to multiple errors."
)

// BatchGenerator is the slice of the AI batch client the service depends on.
type BatchGenerator interface {
	GenerateBatch(ctx context.Context, products []models.ProductInput) ([]models.SeoOutput, error)
}

// BatchPolicy carries the orchestration knobs. Batches are sized Size,
// separated by InterBatchDelay; FailureStreakLimit consecutive batch failures
// halt the run.
type BatchPolicy struct {
	Size               int
	InterBatchDelay    time.Duration
	FailureStreakLimit int
}

// PolicyFromConfig extracts the orchestration knobs from the batch config.
// The retry knobs are owned by the batch client, not the service.
func PolicyFromConfig(cfg config.BatchConfig) BatchPolicy {
	return BatchPolicy{
		Size:               cfg.Size,
		InterBatchDelay:    cfg.InterBatchDelay,
		FailureStreakLimit: cfg.FailureStreakLimit,
	}
}

// Service runs generation over the single in-session run.
type Service struct {
	store  store.Store
	client BatchGenerator
	policy BatchPolicy
}

func NewService(st store.Store, client BatchGenerator, policy BatchPolicy) *Service {
	return &Service{store: st, client: client, policy: policy}
}

// Start installs a new run with every row pending and begins processing in a
// background goroutine. Returns a snapshot of the fresh run immediately.
// Fails if a run is currently being processed; a completed or halted run is
// replaced.
func (s *Service) Start(headers []string, products []models.ProductInput) (*models.Run, error) {
	if len(products) == 0 {
		return nil, ErrNoRows
	}

	// The store's Begin is the single admission point: check-and-install is
	// atomic there, so two concurrent uploads cannot both win.
	run := models.NewRun(headers, products)
	if err := s.store.Begin(run); err != nil {
		if errors.Is(err, store.ErrRunActive) {
			return nil, ErrRunInProgress
		}
		return nil, err
	}

	go s.process(context.Background(), run.ID, products)

	snapshot, _ := s.store.Current()
	return snapshot, nil
}

// Reset discards the current run. An in-flight generation loop is not
// interrupted mid-call; its next store write fails with ErrStaleRun and the
// loop exits, discarding the stale provider response.
func (s *Service) Reset() {
	s.store.Reset()
}

// process is the sequential batch loop. It recovers from panics and always
// leaves the run in a terminal state unless the run was reset underneath it.
func (s *Service) process(ctx context.Context, runID uuid.UUID, products []models.ProductInput) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("panic in generation loop", "error", r, "run_id", runID)
			_ = s.store.SetNotice(runID, "Processing stopped unexpectedly.")
			_ = s.store.SetState(runID, models.RunStateHalted)
		}
	}()

	total := len(products)
	consecutive := 0

	for _, span := range batchSpans(total, s.policy.Size) {
		// Status flips to processing before the provider call so polling
		// clients see the batch in flight.
		if err := s.store.MarkProcessing(runID, span.start, span.end); err != nil {
			return
		}

		results, err := s.client.GenerateBatch(ctx, products[span.start:span.end])
		if err != nil {
			var aiErr *ai.Error
			if !errors.As(err, &aiErr) {
				aiErr = &ai.Error{Kind: ai.KindOther, Message: err.Error(), Err: err}
			}

			// Error visibility must not wait for the pacing delay.
			if e := s.store.MarkFailed(runID, span.start, span.end, aiErr.DisplayMessage()); e != nil {
				return
			}

			if aiErr.Kind == ai.KindQuota {
				slog.Error("quota exhausted, halting run", "run_id", runID, "batch_start", span.start)
				_ = s.store.SetNotice(runID, QuotaNotice)
				_ = s.store.SetState(runID, models.RunStateHalted)
				return
			}

			consecutive++
			// Failed rows still count as processed: progress reflects
			// attempted items, which is what drives the progress bar.
			if e := s.store.SetProgress(runID, span.end, consecutive); e != nil {
				return
			}

			if consecutive >= s.policy.FailureStreakLimit {
				slog.Error("halting run after repeated batch failures",
					"run_id", runID, "consecutive_failures", consecutive)
				_ = s.store.SetNotice(runID, RepeatedFailureNotice)
				_ = s.store.SetState(runID, models.RunStateHalted)
				return
			}
		} else {
			if e := s.store.MergeResults(runID, span.start, results); e != nil {
				return
			}
			consecutive = 0
			if e := s.store.SetProgress(runID, span.end, consecutive); e != nil {
				return
			}
		}

		if span.end < total {
			select {
			case <-ctx.Done():
				return
			case <-time.After(s.policy.InterBatchDelay):
			}
		}
	}

	slog.Info("run completed", "run_id", runID, "total", total)
	_ = s.store.SetState(runID, models.RunStateCompleted)
}

// span is a half-open row range [start, end).
type span struct {
	start, end int
}

// batchSpans partitions total rows into contiguous order-preserving spans of
// at most size rows; the last span may be smaller.
func batchSpans(total, size int) []span {
	if total <= 0 || size <= 0 {
		return nil
	}
	spans := make([]span, 0, (total+size-1)/size)
	for start := 0; start < total; start += size {
		end := start + size
		if end > total {
			end = total
		}
		spans = append(spans, span{start: start, end: end})
	}
	return spans
}
