// Package storage persists computed layouts so they can be fetched again
// by ID.
//
// Backends implement [Store]:
//   - [MemoryStore]: in-process map for development and tests
//   - [FileStore]: one JSON file per record, for single-machine servers
//   - [MongoStore]: MongoDB collection with a TTL index, for production
//
// # Usage
//
//	rec := storage.NewRecord(layout, hierarchyHash, storage.DefaultTTL)
//	if err := store.Set(ctx, rec); err != nil {
//	    return err
//	}
//
//	rec, err := store.Get(ctx, id)
//	if err != nil {
//	    return err
//	}
//	if rec == nil {
//	    // Not found or expired
//	}
package storage

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/bubbletreemap/pkg/graph"
)

// DefaultTTL is how long stored layouts are kept.
const DefaultTTL = 7 * 24 * time.Hour

// Record is one stored layout.
type Record struct {
	ID            string       `json:"id" bson:"_id"`
	HierarchyHash string       `json:"hierarchy_hash" bson:"hierarchy_hash"`
	Layout        graph.Layout `json:"layout" bson:"layout"`
	CreatedAt     time.Time    `json:"created_at" bson:"created_at"`
	ExpiresAt     time.Time    `json:"expires_at" bson:"expires_at"` // Zero never expires
}

// NewRecord wraps a layout in a record with a fresh ID.
// A ttl of zero or less keeps the record forever.
func NewRecord(l graph.Layout, hierarchyHash string, ttl time.Duration) *Record {
	now := time.Now().UTC()
	rec := &Record{
		ID:            uuid.NewString(),
		HierarchyHash: hierarchyHash,
		Layout:        l,
		CreatedAt:     now,
	}
	if ttl > 0 {
		rec.ExpiresAt = now.Add(ttl)
	}
	return rec
}

// IsExpired returns true if the record has expired.
func (r *Record) IsExpired() bool {
	return !r.ExpiresAt.IsZero() && time.Now().After(r.ExpiresAt)
}

// Store is the interface for layout storage backends.
type Store interface {
	// Get retrieves a record by ID.
	// Returns nil, nil if the record doesn't exist or has expired.
	Get(ctx context.Context, id string) (*Record, error)

	// Set stores a record, replacing any record with the same ID.
	Set(ctx context.Context, rec *Record) error

	// Delete removes a record. Deleting a missing record is not an error.
	Delete(ctx context.Context, id string) error

	// Cleanup removes expired records (may be a no-op when the backend
	// expires them itself).
	Cleanup(ctx context.Context) error

	// Close releases backend resources.
	Close() error
}
