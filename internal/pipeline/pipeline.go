// Package pipeline runs the three stages against a store: species fetch,
// card resolution and layout build.
package pipeline

import (
	"context"
	"fmt"

	"github.com/arcanaland/korkdex/internal/card"
	"github.com/arcanaland/korkdex/internal/dex"
	"github.com/arcanaland/korkdex/internal/layout"
	"github.com/arcanaland/korkdex/internal/logging"
	"github.com/arcanaland/korkdex/internal/species"
	"github.com/arcanaland/korkdex/internal/store"
)

// Options configures a Pipeline.
type Options struct {
	Tables    dex.Tables
	FachSize  int
	TraySize  int
	BatchSize int // Cards resolved per persisted batch, <= 0 resolves all at once
}

// Pipeline wires the stages to their sources and a store.
type Pipeline struct {
	store   store.Store
	species species.Source
	catalog card.Catalog
	opts    Options
}

// New creates a pipeline. src or catalog may be nil when only the stages
// not needing them are run.
func New(st store.Store, src species.Source, catalog card.Catalog, opts Options) *Pipeline {
	return &Pipeline{store: st, species: src, catalog: catalog, opts: opts}
}

// FetchSpecies collects species from..to and replaces the species dataset.
// Nothing is saved if any fetch fails.
func (p *Pipeline) FetchSpecies(ctx context.Context, from, to int) ([]dex.SpeciesRecord, error) {
	if p.species == nil {
		return nil, fmt.Errorf("no species source configured")
	}
	if last := p.opts.Tables.MaxNumber(); to > last {
		return nil, fmt.Errorf("national number %d is beyond the generation table, which ends at %d", to, last)
	}
	records, err := species.Collect(ctx, p.species, p.opts.Tables, from, to)
	if err != nil {
		return nil, err
	}
	if err := p.store.SaveSpecies(ctx, records); err != nil {
		return nil, fmt.Errorf("save species: %w", err)
	}
	logging.FromContext(ctx).Info().Int("records", len(records)).Msg("species saved")
	return records, nil
}

// BatchFunc is called after every persisted batch.
type BatchFunc func(res card.Result)

// ResolveCards resolves ids in batches of Options.BatchSize, persisting the
// card dataset after every batch. With all unset only one batch runs.
// onBatch sees each batch's own counters; the returned result counts
// Resolved over the whole call.
//
// When a card fails the cards resolved before it are still saved and the
// error is returned together with the result so far.
func (p *Pipeline) ResolveCards(ctx context.Context, ids []string, all bool, onBatch BatchFunc) (card.Result, error) {
	if p.catalog == nil {
		return card.Result{}, fmt.Errorf("no card catalog configured")
	}
	existing, err := p.store.Cards(ctx)
	if err != nil {
		return card.Result{}, fmt.Errorf("load cards: %w", err)
	}

	resolver := card.NewResolver(p.catalog, p.opts.Tables)
	total, skipped := 0, -1
	for {
		res, rerr := resolver.Resolve(ctx, ids, existing, p.opts.BatchSize)
		batch := res.Resolved
		total += batch
		if skipped < 0 {
			skipped = res.Skipped
		}
		run := res
		run.Resolved, run.Skipped = total, skipped

		if batch > 0 {
			if err := p.store.SaveCards(ctx, res.Records); err != nil {
				return run, fmt.Errorf("save cards: %w", err)
			}
		}
		if rerr != nil {
			return run, rerr
		}
		if onBatch != nil {
			onBatch(res)
		}
		if res.Done() || !all || batch == 0 {
			return run, nil
		}
		existing = res.Records
	}
}

// BuildLayout packs the stored species and cards and replaces the layout
// dataset.
func (p *Pipeline) BuildLayout(ctx context.Context) ([]dex.SlotAssignment, error) {
	sp, err := p.store.Species(ctx)
	if err != nil {
		return nil, fmt.Errorf("load species: %w", err)
	}
	if len(sp) == 0 {
		return nil, fmt.Errorf("species dataset is empty, run 'korkdex species fetch' first")
	}
	cards, err := p.store.Cards(ctx)
	if err != nil {
		return nil, fmt.Errorf("load cards: %w", err)
	}

	assignments := layout.Pack(sp, cards, p.opts.FachSize, p.opts.TraySize)
	if err := p.store.SaveLayout(ctx, assignments); err != nil {
		return nil, fmt.Errorf("save layout: %w", err)
	}
	trays := 0
	if n := len(assignments); n > 0 {
		trays = assignments[n-1].Tray + 1
	}
	logging.FromContext(ctx).Info().
		Int("species", len(sp)).
		Int("cards", len(cards)).
		Int("slots", len(assignments)).
		Int("trays", trays).
		Msg("layout built")
	return assignments, nil
}

// Run fetches species when the dataset is empty or refresh is set, resolves
// every card and builds the layout.
func (p *Pipeline) Run(ctx context.Context, ids []string, from, to int, refresh bool) ([]dex.SlotAssignment, error) {
	sp, err := p.store.Species(ctx)
	if err != nil {
		return nil, fmt.Errorf("load species: %w", err)
	}
	if refresh || len(sp) == 0 {
		if _, err := p.FetchSpecies(ctx, from, to); err != nil {
			return nil, err
		}
	}
	if _, err := p.ResolveCards(ctx, ids, true, nil); err != nil {
		return nil, err
	}
	return p.BuildLayout(ctx)
}
