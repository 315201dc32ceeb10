// Package store holds the single in-session run. There is no durable
// storage: a new upload replaces the previous run wholesale.
package store

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"autoseo/pkg/models"
)

// ErrStaleRun is returned when a mutation targets a run that has been
// replaced or reset. A generation loop receiving it must stop silently; its
// results belong to an abandoned run.
var ErrStaleRun = errors.New("run no longer active")

// ErrRunActive is returned by Begin when the current run is still being
// processed. The caller must reset or wait for a terminal state first.
var ErrRunActive = errors.New("a run is still being processed")

// Store is the run access interface. Mutations are keyed by run ID so a
// late write from an abandoned generation loop can never touch a newer run.
// Implementations must be safe for concurrent use.
type Store interface {
	Begin(run *models.Run) error
	Current() (*models.Run, bool)
	Reset()

	MarkProcessing(runID uuid.UUID, start, end int) error
	MergeResults(runID uuid.UUID, start int, results []models.SeoOutput) error
	MarkFailed(runID uuid.UUID, start, end int, message string) error
	SetProgress(runID uuid.UUID, processed, consecutiveFailures int) error
	SetNotice(runID uuid.UUID, notice string) error
	SetState(runID uuid.UUID, state string) error
}

// MemoryStore implements Store with a mutex-guarded single run.
type MemoryStore struct {
	mu  sync.RWMutex
	run *models.Run
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Begin installs a new run, discarding a terminal previous one. The check
// and the install happen under one lock, so two concurrent uploads can never
// both start a run. A generation loop still holding the replaced run's ID
// keeps failing with ErrStaleRun and exits.
func (s *MemoryStore) Begin(run *models.Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.run != nil && s.run.State == models.RunStateRunning {
		return ErrRunActive
	}
	s.run = run
	return nil
}

// Current returns a snapshot of the active run. The row slice is copied so
// readers never observe a half-applied batch update; the embedded SeoOutput
// values are never mutated after merge and are shared.
func (s *MemoryStore) Current() (*models.Run, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.run == nil {
		return nil, false
	}
	snapshot := *s.run
	snapshot.Rows = make([]models.Row, len(s.run.Rows))
	copy(snapshot.Rows, s.run.Rows)
	return &snapshot, true
}

func (s *MemoryStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.run = nil
}

func (s *MemoryStore) MarkProcessing(runID uuid.UUID, start, end int) error {
	return s.update(runID, func(run *models.Run) {
		for i := start; i < end && i < len(run.Rows); i++ {
			run.Rows[i].Status = models.RowStatusProcessing
		}
	})
}

func (s *MemoryStore) MergeResults(runID uuid.UUID, start int, results []models.SeoOutput) error {
	return s.update(runID, func(run *models.Run) {
		for i, res := range results {
			idx := start + i
			if idx >= len(run.Rows) {
				break
			}
			seo := res
			run.Rows[idx].Seo = &seo
			run.Rows[idx].Status = models.RowStatusCompleted
			run.Rows[idx].ErrorMessage = ""
		}
	})
}

func (s *MemoryStore) MarkFailed(runID uuid.UUID, start, end int, message string) error {
	return s.update(runID, func(run *models.Run) {
		for i := start; i < end && i < len(run.Rows); i++ {
			run.Rows[i].Status = models.RowStatusError
			run.Rows[i].ErrorMessage = message
			run.Rows[i].Seo = nil
		}
	})
}

func (s *MemoryStore) SetProgress(runID uuid.UUID, processed, consecutiveFailures int) error {
	return s.update(runID, func(run *models.Run) {
		run.Processed = processed
		run.ConsecutiveFailures = consecutiveFailures
	})
}

func (s *MemoryStore) SetNotice(runID uuid.UUID, notice string) error {
	return s.update(runID, func(run *models.Run) {
		run.Notice = notice
	})
}

func (s *MemoryStore) SetState(runID uuid.UUID, state string) error {
	return s.update(runID, func(run *models.Run) {
		run.State = state
	})
}

func (s *MemoryStore) update(runID uuid.UUID, fn func(*models.Run)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.run == nil || s.run.ID != runID {
		return ErrStaleRun
	}
	fn(s.run)
	return nil
}

var _ Store = (*MemoryStore)(nil)
