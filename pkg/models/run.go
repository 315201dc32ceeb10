package models

import (
	"time"

	"github.com/google/uuid"
)

// Run states. There is no explicit idle state: idle is the absence of a run.
// Halted is terminal and is only reached on quota exhaustion or a streak of
// consecutive batch failures.
const (
	RunStateRunning   = "running"
	RunStateCompleted = "completed"
	RunStateHalted    = "halted"
)

// Run is one generation run over an uploaded catalog. It aggregates the row
// sequence plus the progress counters shown to the user. A Run is created by
// NewRun with every row pending and is advanced only by the seo service;
// everything else reads snapshots.
type Run struct {
	ID                  uuid.UUID `json:"id"`
	State               string    `json:"state"`
	Headers             []string  `json:"headers"`
	Rows                []Row     `json:"rows"`
	Total               int       `json:"total"`
	Processed           int       `json:"processed"`
	ConsecutiveFailures int       `json:"consecutive_failures"`
	Notice              string    `json:"notice,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
}

// NewRun builds a running Run with one pending row per product. The header
// slice preserves the workbook's column order so exports are deterministic.
func NewRun(headers []string, products []ProductInput) *Run {
	rows := make([]Row, len(products))
	for i, p := range products {
		rows[i] = Row{Input: p, Status: RowStatusPending}
	}
	return &Run{
		ID:        uuid.New(),
		State:     RunStateRunning,
		Headers:   headers,
		Rows:      rows,
		Total:     len(products),
		CreatedAt: time.Now().UTC(),
	}
}
