// Package store persists computed layouts so clients can fetch them again
// by record id.
//
// Backends:
//   - [MemoryStore]: process-local map, for tests and single-instance servers
//   - [MongoStore]: MongoDB collection, for shared deployments
//
// Record ids are random UUIDs assigned on [NewRecord].
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	errs "github.com/matzehuels/bpmnlayout/pkg/errors"
	"github.com/matzehuels/bpmnlayout/pkg/graph"
)

// Record is a stored layout.
type Record struct {
	ID          string       `json:"id" bson:"_id"`
	ProcessID   string       `json:"process_id" bson:"process_id"`
	ProcessHash string       `json:"process_hash" bson:"process_hash"`
	CreatedAt   time.Time    `json:"created_at" bson:"created_at"`
	Layout      graph.Layout `json:"layout" bson:"layout"`
}

// NewRecord creates a record with a fresh id.
func NewRecord(processHash string, l graph.Layout) *Record {
	return &Record{
		ID:          uuid.NewString(),
		ProcessID:   l.ProcessID,
		ProcessHash: processHash,
		CreatedAt:   time.Now().UTC(),
		Layout:      l,
	}
}

// Store is the interface for layout storage backends.
type Store interface {
	// Put stores a record, replacing any record with the same id.
	Put(ctx context.Context, rec *Record) error

	// Get retrieves a record by id.
	// Returns an error with code LAYOUT_NOT_FOUND if it doesn't exist.
	Get(ctx context.Context, id string) (*Record, error)

	// Delete removes a record. Deleting a missing record is not an error.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}

func notFound(id string) error {
	return errs.New(errs.ErrCodeLayoutNotFound, "layout %s not found", id)
}

func validateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidInput, err, "invalid layout id %q", id)
	}
	return nil
}
