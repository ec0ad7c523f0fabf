// Package store persists solver run records.
//
// A [Run] captures one completed search: which instance was solved,
// with what seed and configuration, and the resulting summary. Two
// backends implement [Store]:
//   - memory: in-process storage for tests and single runs
//   - mongo: MongoDB-backed storage for experiment archives
//
// Run IDs are UUIDs generated by [NewRun], so records from different
// machines can be merged without collisions.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/MarquinhoCF/alwabp-solver/pkg/report"
)

// Sentinel errors for store operations.
var (
	// ErrNotFound is returned when a run record does not exist.
	ErrNotFound = errors.New("run not found")
)

// Run is one persisted solver execution.
type Run struct {
	ID           string         `json:"id" bson:"_id"`
	Instance     string         `json:"instance" bson:"instance"`
	InstanceHash string         `json:"instance_hash" bson:"instance_hash"`
	Seed         int64          `json:"seed" bson:"seed"`
	Summary      report.Summary `json:"summary" bson:"summary"`
	CreatedAt    time.Time      `json:"created_at" bson:"created_at"`
}

// NewRun creates a run record with a fresh UUID and timestamp.
func NewRun(instance, instanceHash string, seed int64, summary report.Summary) *Run {
	return &Run{
		ID:           uuid.NewString(),
		Instance:     instance,
		InstanceHash: instanceHash,
		Seed:         seed,
		Summary:      summary,
		CreatedAt:    time.Now().UTC(),
	}
}

// Store is the interface for run record backends.
type Store interface {
	// Insert stores a run record.
	Insert(ctx context.Context, run *Run) error

	// Get retrieves a run by ID. Returns [ErrNotFound] if it does not exist.
	Get(ctx context.Context, id string) (*Run, error)

	// List returns the most recent runs, newest first. A non-positive
	// limit returns all records.
	List(ctx context.Context, limit int) ([]*Run, error)

	// Delete removes a run. Deleting a missing run is not an error.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}
