package card

import (
	"context"
	"fmt"

	"github.com/arcanaland/korkdex/internal/dex"
	"github.com/arcanaland/korkdex/internal/logging"
)

// Catalog looks cards up by set code and collector number.
type Catalog interface {
	FetchCards(ctx context.Context, setCode, number string) ([]Card, error)
}

// Result is the outcome of one Resolve call.
type Result struct {
	// Records is the accumulator: the existing records followed by the ones
	// resolved in this call, in input order.
	Records []dex.CardRecord

	Resolved  int // New records appended by this call
	Skipped   int // Input IDs already present in the accumulator
	Remaining int // Unresolved IDs left for the next call
}

// Done reports whether every input ID is resolved.
func (r Result) Done() bool {
	return r.Remaining == 0
}

// Resolver turns owned card IDs into card records.
type Resolver struct {
	catalog Catalog
	tables  dex.Tables
}

// NewResolver creates a Resolver using tables for generation assignment.
// Pass the same tables the species were normalized with.
func NewResolver(catalog Catalog, tables dex.Tables) *Resolver {
	return &Resolver{catalog: catalog, tables: tables}
}

// Resolve resolves up to limit of the ids that existing does not cover yet
// (limit <= 0 means no limit). IDs already in existing are never looked up.
//
// If a card fails to resolve, Resolve stops and returns the accumulator with
// every card resolved before the failure together with a *ResolveError. The
// failing card is not added.
func (r *Resolver) Resolve(ctx context.Context, ids []string, existing []dex.CardRecord, limit int) (Result, error) {
	log := logging.FromContext(ctx)

	seen := make(map[string]bool, len(existing))
	for _, rec := range existing {
		seen[rec.CardID] = true
	}

	res := Result{Records: append([]dex.CardRecord(nil), existing...)}
	var pending []string
	for _, id := range ids {
		if seen[id] {
			res.Skipped++
			continue
		}
		seen[id] = true
		pending = append(pending, id)
	}

	batch := pending
	if limit > 0 && len(batch) > limit {
		batch = batch[:limit]
	}
	res.Remaining = len(pending)
	log.Info().Int("pending", len(pending)).Int("batch", len(batch)).Int("skipped", res.Skipped).Msg("resolving cards")

	for _, id := range batch {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		rec, err := r.resolveOne(ctx, id)
		if err != nil {
			log.Error().Err(err).Str("card_id", id).Msg("card resolution failed")
			return res, err
		}
		res.Records = append(res.Records, rec)
		res.Resolved++
		res.Remaining--
		log.Debug().Str("card_id", id).Str("name", rec.Name).Stringer("key", rec.Key()).Msg("resolved card")
	}
	return res, nil
}

func (r *Resolver) resolveOne(ctx context.Context, raw string) (dex.CardRecord, error) {
	id, err := ParseID(raw)
	if err != nil {
		return dex.CardRecord{}, &ResolveError{CardID: raw, Err: err}
	}

	matches, err := r.catalog.FetchCards(ctx, id.SetCode, id.Number)
	if err != nil {
		return dex.CardRecord{}, fmt.Errorf("look up %s: %w", raw, err)
	}
	switch len(matches) {
	case 1:
	case 0:
		return dex.CardRecord{}, &ResolveError{CardID: raw, SetCode: id.SetCode, Number: id.Number, Err: ErrCardNotFound}
	default:
		return dex.CardRecord{}, &ResolveError{CardID: raw, SetCode: id.SetCode, Number: id.Number, Matches: len(matches), Err: ErrAmbiguousCardLookup}
	}
	c := matches[0]

	switch len(c.NatDex) {
	case 1:
	case 0:
		return dex.CardRecord{}, &ResolveError{CardID: raw, Err: ErrNoNationalNumber}
	default:
		return dex.CardRecord{}, &ResolveError{CardID: raw, Matches: len(c.NatDex), Err: ErrMultiNationalNumber}
	}
	nr := c.NatDex[0]

	gen, ok := r.tables.RegionGeneration(c.Name)
	if !ok {
		if gen, ok = r.tables.GenerationFor(nr); !ok {
			return dex.CardRecord{}, &ResolveError{CardID: raw, Err: fmt.Errorf("%w %d", ErrNoGeneration, nr)}
		}
	}

	return dex.CardRecord{Name: c.Name, Nr: nr, Gen: gen, CardID: raw}, nil
}
