// Package calendar implements the CRUD operations on the calendar document.
package calendar

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/lfmartins/calendario/internal/model"
	"github.com/lfmartins/calendario/internal/store"
)

// ErrEventNotFound is returned when an update targets an id that is not in
// the document. Transport layers map this to 404.
var ErrEventNotFound = errors.New("evento não encontrado")

// Repository performs all document mutations. Every operation loads the
// document fresh from the store, mutates it, and writes it back in full.
// A single mutex serializes the load-mutate-save cycle so concurrent
// requests cannot race on id assignment or overwrite each other's writes.
type Repository struct {
	mu    sync.Mutex
	store store.Store
}

// New returns a Repository over the given store.
func New(s store.Store) *Repository {
	return &Repository{store: s}
}

// Document returns the full current document unchanged.
func (r *Repository) Document(ctx context.Context) (*model.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.store.Load(ctx)
}

// Config returns the config object, empty when none has been set.
func (r *Repository) Config(ctx context.Context) (map[string]any, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Config, nil
}

// SetConfig replaces the config object wholesale (no merge) and persists.
func (r *Repository) SetConfig(ctx context.Context, cfg map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.store.Load(ctx)
	if err != nil {
		return err
	}
	if cfg == nil {
		cfg = map[string]any{}
	}
	doc.Config = cfg
	return r.store.Save(ctx, doc)
}

// ListEvents returns all events in stored order.
func (r *Repository) ListEvents(ctx context.Context) ([]model.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Eventos, nil
}

// CreateEvent assigns the next id to the given fields, overwriting any
// caller-supplied id, appends the event and persists. The created event is
// returned with its assigned id.
func (r *Repository) CreateEvent(ctx context.Context, fields model.Event) (model.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	if fields == nil {
		fields = model.Event{}
	}
	fields.SetID(doc.NextEventID())
	doc.Eventos = append(doc.Eventos, fields)

	if err := r.store.Save(ctx, doc); err != nil {
		return nil, err
	}
	return fields, nil
}

// UpdateEvent replaces the first event whose id matches, wholesale. The id
// in the replacement is pinned to the given id regardless of the body. When
// no event matches, ErrEventNotFound is returned and nothing is written.
func (r *Repository) UpdateEvent(ctx context.Context, id int, fields model.Event) (model.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	for i, e := range doc.Eventos {
		if e.ID() != id {
			continue
		}
		if fields == nil {
			fields = model.Event{}
		}
		fields.SetID(id)
		doc.Eventos[i] = fields
		if err := r.store.Save(ctx, doc); err != nil {
			return nil, err
		}
		return fields, nil
	}

	return nil, fmt.Errorf("evento %d: %w", id, ErrEventNotFound)
}

// DeleteEvent removes every event whose id matches and persists. Deleting a
// non-existent id is not an error; the write still happens.
func (r *Repository) DeleteEvent(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.store.Load(ctx)
	if err != nil {
		return err
	}

	kept := doc.Eventos[:0]
	for _, e := range doc.Eventos {
		if e.ID() != id {
			kept = append(kept, e)
		}
	}
	doc.Eventos = kept

	return r.store.Save(ctx, doc)
}
