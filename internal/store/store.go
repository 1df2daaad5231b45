// Package store persists analysis run history. Two backends implement the
// same interface: SQLite for local use and Postgres for shared deployments;
// the driver is chosen by configuration.
package store

import (
	"context"
	"encoding/json"
	"time"
)

// RunStatus tracks a run through its lifecycle.
type RunStatus string

const (
	RunStatusRunning  RunStatus = "running"
	RunStatusComplete RunStatus = "complete"
	RunStatusFailed   RunStatus = "failed"
)

// RunKind names the analysis an entry records.
type RunKind string

const (
	RunKindCluster  RunKind = "cluster"
	RunKindMoran    RunKind = "moran"
	RunKindHotspot  RunKind = "hotspot"
	RunKindAnalyze  RunKind = "analyze"
	RunKindOverlay  RunKind = "overlay"
	RunKindScenario RunKind = "scenario"
)

// Run is one recorded analysis invocation. Result holds the analysis
// output as JSON once the run completes.
type Run struct {
	ID         string          `json:"id"`
	Kind       RunKind         `json:"kind"`
	Status     RunStatus       `json:"status"`
	PointCount int             `json:"point_count"`
	Result     json.RawMessage `json:"result,omitempty"`
	Error      string          `json:"error,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// RunFilter specifies criteria for listing runs.
type RunFilter struct {
	Kind   RunKind   `json:"kind,omitempty"`
	Status RunStatus `json:"status,omitempty"`
	Limit  int       `json:"limit,omitempty"`
	Offset int       `json:"offset,omitempty"`
}

// Store defines the run-history persistence interface.
type Store interface {
	CreateRun(ctx context.Context, kind RunKind, pointCount int) (*Run, error)
	CompleteRun(ctx context.Context, runID string, result any) error
	FailRun(ctx context.Context, runID string, cause error) error
	GetRun(ctx context.Context, runID string) (*Run, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]Run, error)

	Migrate(ctx context.Context) error
	Close() error
}
