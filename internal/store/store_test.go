package store

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"autoseo/pkg/models"
)

func twoRowRun() *models.Run {
	return models.NewRun([]string{models.NameColumn}, []models.ProductInput{
		{models.NameColumn: "alpha"},
		{models.NameColumn: "beta"},
	})
}

func TestMemoryStore_BeginAndCurrent(t *testing.T) {
	s := NewMemoryStore()

	if _, ok := s.Current(); ok {
		t.Fatal("expected no run before Begin")
	}

	run := twoRowRun()
	s.Begin(run)

	got, ok := s.Current()
	if !ok {
		t.Fatal("expected a run after Begin")
	}
	if got.ID != run.ID {
		t.Fatalf("run ID = %v, want %v", got.ID, run.ID)
	}
}

func TestMemoryStore_SnapshotIsolation(t *testing.T) {
	s := NewMemoryStore()
	run := twoRowRun()
	s.Begin(run)

	snapshot, _ := s.Current()
	if err := s.MarkFailed(run.ID, 0, 2, "boom"); err != nil {
		t.Fatalf("mark failed: %v", err)
	}

	// The earlier snapshot must not observe the mutation.
	if snapshot.Rows[0].Status != models.RowStatusPending {
		t.Fatalf("snapshot row mutated to %q", snapshot.Rows[0].Status)
	}
}

func TestMemoryStore_MergeResultsSetsCompleted(t *testing.T) {
	s := NewMemoryStore()
	run := twoRowRun()
	s.Begin(run)

	results := []models.SeoOutput{{MetaTitle: "a"}, {MetaTitle: "b"}}
	if err := s.MergeResults(run.ID, 0, results); err != nil {
		t.Fatalf("merge: %v", err)
	}

	got, _ := s.Current()
	for i, row := range got.Rows {
		if row.Status != models.RowStatusCompleted {
			t.Fatalf("row %d status = %q", i, row.Status)
		}
		if row.Seo == nil || row.ErrorMessage != "" {
			t.Fatalf("row %d violates completed invariant: seo=%v err=%q", i, row.Seo, row.ErrorMessage)
		}
	}
	if got.Rows[0].Seo.MetaTitle != "a" || got.Rows[1].Seo.MetaTitle != "b" {
		t.Fatal("results merged out of order")
	}
}

func TestMemoryStore_MarkFailedClearsResult(t *testing.T) {
	s := NewMemoryStore()
	run := twoRowRun()
	s.Begin(run)

	_ = s.MergeResults(run.ID, 0, []models.SeoOutput{{MetaTitle: "a"}})
	if err := s.MarkFailed(run.ID, 0, 1, "provider died"); err != nil {
		t.Fatalf("mark failed: %v", err)
	}

	got, _ := s.Current()
	row := got.Rows[0]
	if row.Status != models.RowStatusError || row.ErrorMessage != "provider died" || row.Seo != nil {
		t.Fatalf("row violates error invariant: %+v", row)
	}
}

func TestMemoryStore_BeginRejectsActiveRun(t *testing.T) {
	s := NewMemoryStore()
	first := twoRowRun()
	if err := s.Begin(first); err != nil {
		t.Fatalf("first begin: %v", err)
	}

	// The first run is still running; a second upload must lose.
	if err := s.Begin(twoRowRun()); !errors.Is(err, ErrRunActive) {
		t.Fatalf("err = %v, want ErrRunActive", err)
	}
	got, _ := s.Current()
	if got.ID != first.ID {
		t.Fatal("losing begin replaced the active run")
	}

	// A terminal run is replaced.
	if err := s.SetState(first.ID, models.RunStateHalted); err != nil {
		t.Fatalf("set state: %v", err)
	}
	if err := s.Begin(twoRowRun()); err != nil {
		t.Fatalf("begin after halt: %v", err)
	}
}

func TestMemoryStore_StaleRunGuard(t *testing.T) {
	s := NewMemoryStore()
	old := twoRowRun()
	if err := s.Begin(old); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if err := s.SetState(old.ID, models.RunStateCompleted); err != nil {
		t.Fatalf("set state: %v", err)
	}

	// A new upload replaces the finished run; writes keyed by the old ID
	// must fail.
	if err := s.Begin(twoRowRun()); err != nil {
		t.Fatalf("begin: %v", err)
	}

	if err := s.MarkProcessing(old.ID, 0, 1); !errors.Is(err, ErrStaleRun) {
		t.Fatalf("err = %v, want ErrStaleRun", err)
	}
	if err := s.SetState(old.ID, models.RunStateHalted); !errors.Is(err, ErrStaleRun) {
		t.Fatalf("err = %v, want ErrStaleRun", err)
	}

	// Reset clears everything; even the new ID is now stale.
	current, _ := s.Current()
	s.Reset()
	if err := s.SetProgress(current.ID, 1, 0); !errors.Is(err, ErrStaleRun) {
		t.Fatalf("err = %v, want ErrStaleRun", err)
	}
}

func TestMemoryStore_UnknownRunID(t *testing.T) {
	s := NewMemoryStore()
	s.Begin(twoRowRun())

	if err := s.SetNotice(uuid.New(), "nope"); !errors.Is(err, ErrStaleRun) {
		t.Fatalf("err = %v, want ErrStaleRun", err)
	}
}

func TestMemoryStore_RangeClamped(t *testing.T) {
	s := NewMemoryStore()
	run := twoRowRun()
	s.Begin(run)

	// Out-of-range spans must not panic.
	if err := s.MarkProcessing(run.ID, 1, 10); err != nil {
		t.Fatalf("mark processing: %v", err)
	}
	if err := s.MarkFailed(run.ID, 5, 10, "x"); err != nil {
		t.Fatalf("mark failed: %v", err)
	}

	got, _ := s.Current()
	if got.Rows[1].Status != models.RowStatusProcessing {
		t.Fatalf("row 1 status = %q", got.Rows[1].Status)
	}
}
