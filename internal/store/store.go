// Package store defines the persistence boundary for the calendar document.
package store

import (
	"context"

	"github.com/lfmartins/calendario/internal/model"
)

// Store reads and writes the calendar document as a whole. The contract is
// deliberately coarse: load the full document, write the full document. This
// keeps the backing mechanism (flat JSON file, Postgres row) swappable
// without touching repository logic.
type Store interface {
	// Load returns the current document. When no state exists yet it
	// returns the default empty document without creating anything.
	Load(ctx context.Context) (*model.Document, error)

	// Save overwrites the persisted document in full.
	Save(ctx context.Context, doc *model.Document) error

	// Lifecycle
	Close() error
}
