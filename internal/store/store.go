// Package store persists the three pipeline datasets between runs.
package store

import (
	"context"
	"fmt"

	"github.com/arcanaland/korkdex/internal/dex"
)

// Backend names accepted by Open.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Bucket names, shared by both backends.
const (
	BucketSpecies = "species"
	BucketCards   = "cards"
	BucketLayout  = "layout"
)

// Store reads and rewrites whole datasets. A dataset that was never saved
// reads as empty without error.
type Store interface {
	Species(ctx context.Context) ([]dex.SpeciesRecord, error)
	SaveSpecies(ctx context.Context, records []dex.SpeciesRecord) error

	Cards(ctx context.Context) ([]dex.CardRecord, error)
	SaveCards(ctx context.Context, records []dex.CardRecord) error

	Layout(ctx context.Context) ([]dex.SlotAssignment, error)
	SaveLayout(ctx context.Context, assignments []dex.SlotAssignment) error

	Close() error
}

// Open opens the store of the given backend inside dir. An empty backend
// selects BackendJSON.
func Open(backend, dir string) (Store, error) {
	switch backend {
	case "", BackendJSON:
		s, err := NewJSONStore(dir)
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendSQLite:
		s, err := NewSQLiteStore(SQLitePath(dir))
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", backend)
	}
}

// bucketStore is what a backend implements; typed access is layered on top.
type bucketStore interface {
	get(ctx context.Context, bucket string, target any) (bool, error)
	put(ctx context.Context, bucket string, value any) error
}

// typed adapts a bucketStore to the Store dataset methods.
type typed struct {
	b bucketStore
}

func (t typed) Species(ctx context.Context) ([]dex.SpeciesRecord, error) {
	var out []dex.SpeciesRecord
	_, err := t.b.get(ctx, BucketSpecies, &out)
	return out, err
}

func (t typed) SaveSpecies(ctx context.Context, records []dex.SpeciesRecord) error {
	return t.b.put(ctx, BucketSpecies, nonNil(records))
}

func (t typed) Cards(ctx context.Context) ([]dex.CardRecord, error) {
	var out []dex.CardRecord
	_, err := t.b.get(ctx, BucketCards, &out)
	return out, err
}

func (t typed) SaveCards(ctx context.Context, records []dex.CardRecord) error {
	return t.b.put(ctx, BucketCards, nonNil(records))
}

func (t typed) Layout(ctx context.Context) ([]dex.SlotAssignment, error) {
	var out []dex.SlotAssignment
	_, err := t.b.get(ctx, BucketLayout, &out)
	return out, err
}

func (t typed) SaveLayout(ctx context.Context, assignments []dex.SlotAssignment) error {
	return t.b.put(ctx, BucketLayout, nonNil(assignments))
}

// nonNil makes an empty dataset serialize as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
