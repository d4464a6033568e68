// Package species turns raw species catalog entries into the ordered list of
// species records that reserve space in the layout.
package species

import (
	"context"
	"fmt"

	"github.com/arcanaland/korkdex/internal/dex"
	"github.com/arcanaland/korkdex/internal/logging"
)

// Variety is one named form of a species.
type Variety struct {
	Name      string
	IsDefault bool
}

// Entry is a raw species catalog entry: the primary species plus its forms.
type Entry struct {
	Nr        int
	Name      string
	Varieties []Variety
}

// Source fetches raw species entries by national number.
type Source interface {
	FetchSpecies(ctx context.Context, nr int) (Entry, error)
}

// Normalize converts raw entries into species records, in entry order and
// variety order. Excluded varieties and non-default varieties without a
// region token are dropped.
func Normalize(entries []Entry, tables dex.Tables) []dex.SpeciesRecord {
	var out []dex.SpeciesRecord
	for _, e := range entries {
		out = append(out, normalizeEntry(e, tables)...)
	}
	return out
}

func normalizeEntry(e Entry, tables dex.Tables) []dex.SpeciesRecord {
	gen, ok := tables.GenerationFor(e.Nr)
	if !ok {
		return nil
	}

	var out []dex.SpeciesRecord
	for _, v := range e.Varieties {
		name := dex.Fold(v.Name)
		if tables.Excluded(name) {
			continue
		}
		if v.IsDefault {
			out = append(out, dex.SpeciesRecord{Name: name, Nr: e.Nr, Gen: gen})
			continue
		}
		// A name with several region tokens gets one record per token.
		for _, regionGen := range tables.RegionMatches(name) {
			out = append(out, dex.SpeciesRecord{Name: name, Nr: e.Nr, Gen: regionGen})
		}
	}
	return out
}

// Collect fetches every national number in [from, to] in ascending order and
// normalizes the result. Any fetch failure aborts the pass.
func Collect(ctx context.Context, src Source, tables dex.Tables, from, to int) ([]dex.SpeciesRecord, error) {
	if from < 1 || to < from {
		return nil, fmt.Errorf("invalid species range %d-%d", from, to)
	}

	log := logging.FromContext(ctx)
	entries := make([]Entry, 0, to-from+1)
	for nr := from; nr <= to; nr++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		entry, err := src.FetchSpecies(ctx, nr)
		if err != nil {
			return nil, fmt.Errorf("fetch species %d: %w", nr, err)
		}
		entry.Nr = nr
		log.Debug().Int("nr", nr).Str("name", entry.Name).Int("varieties", len(entry.Varieties)).Msg("fetched species")
		entries = append(entries, entry)
	}

	records := Normalize(entries, tables)
	log.Info().Int("entries", len(entries)).Int("records", len(records)).Msg("normalized species")
	return records, nil
}
