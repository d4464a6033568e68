// Package stats computes collection completeness per generation.
package stats

import (
	"sort"

	"github.com/arcanaland/korkdex/internal/dex"
	"github.com/arcanaland/korkdex/internal/layout"
)

// Generation summarises one generation. Gen is zero on the totals row.
// Species counts distinct keys; Slots counts every record's slots.
type Generation struct {
	Gen          int     `json:"gen" yaml:"gen"`
	Species      int     `json:"species" yaml:"species"`
	Owned        int     `json:"owned" yaml:"owned"`
	Completeness float64 `json:"completeness" yaml:"completeness"` // Percent of species owned
	Cards        int     `json:"cards" yaml:"cards"`
	Slots        int     `json:"slots" yaml:"slots"`
}

// Bucket counts the species of a generation holding exactly Cards cards.
type Bucket struct {
	Gen     int `json:"gen" yaml:"gen"`
	Cards   int `json:"cards" yaml:"cards"`
	Species int `json:"species" yaml:"species"`
}

// Report is the result of Compute.
type Report struct {
	Generations []Generation `json:"generations" yaml:"generations"`
	Total       Generation   `json:"total" yaml:"total"`
	Unmatched   int          `json:"unmatched_cards" yaml:"unmatched_cards"` // Cards whose key matches no species
	Histogram   []Bucket     `json:"histogram" yaml:"histogram"`
}

// Compute builds the report for every generation in tables, in ascending
// order, including generations without any species.
func Compute(species []dex.SpeciesRecord, cards []dex.CardRecord, tables dex.Tables, fachSize int) Report {
	counts := layout.Counts(cards)

	gens := tables.Generations()
	byGen := make(map[int]*Generation, len(gens))
	rows := make([]Generation, len(gens))
	for i, g := range gens {
		rows[i].Gen = g
		byGen[g] = &rows[i]
	}

	hist := make(map[[2]int]int)
	known := make(map[dex.Key]bool, len(species))
	for _, s := range species {
		key := s.Key()
		row, ok := byGen[s.Gen]
		if !ok {
			rows = append(rows, Generation{Gen: s.Gen})
			byGen = reindex(rows)
			row = byGen[s.Gen]
		}
		n := counts[key]
		row.Slots += layout.SlotsNeeded(n, fachSize)
		// Records sharing a key are one species for completeness.
		if !known[key] {
			row.Species++
			row.Cards += n
			if n > 0 {
				row.Owned++
			}
			hist[[2]int{s.Gen, n}]++
		}
		known[key] = true
	}

	var r Report
	for key, n := range counts {
		if !known[key] {
			r.Unmatched += n
		}
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Gen < rows[j].Gen })
	for i := range rows {
		rows[i].Completeness = percent(rows[i].Owned, rows[i].Species)
		r.Total.Species += rows[i].Species
		r.Total.Owned += rows[i].Owned
		r.Total.Cards += rows[i].Cards
		r.Total.Slots += rows[i].Slots
	}
	r.Total.Completeness = percent(r.Total.Owned, r.Total.Species)
	r.Generations = rows

	for k, n := range hist {
		r.Histogram = append(r.Histogram, Bucket{Gen: k[0], Cards: k[1], Species: n})
	}
	sort.Slice(r.Histogram, func(i, j int) bool {
		a, b := r.Histogram[i], r.Histogram[j]
		if a.Gen != b.Gen {
			return a.Gen < b.Gen
		}
		return a.Cards < b.Cards
	})
	return r
}

func reindex(rows []Generation) map[int]*Generation {
	m := make(map[int]*Generation, len(rows))
	for i := range rows {
		m[rows[i].Gen] = &rows[i]
	}
	return m
}

func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) * 100 / float64(whole)
}
