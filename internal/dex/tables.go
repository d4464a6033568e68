package dex

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// MaxNationalNumber is the highest national number the default tables know.
const MaxNationalNumber = 1010

// GenerationRange maps an inclusive national number interval to a generation.
type GenerationRange struct {
	Start int `toml:"start" json:"start"`
	End   int `toml:"end" json:"end"`
	Gen   int `toml:"generation" json:"generation"`
}

// Region maps a variant name token to an override generation.
type Region struct {
	Token string `toml:"token" json:"token"`
	Gen   int    `toml:"generation" json:"generation"`
}

// Tables holds the ordered lookup tables used by both the species normalizer
// and the card resolver. Sharing one value between the two is what keeps
// species and card generations in agreement.
type Tables struct {
	Ranges     []GenerationRange
	Regions    []Region
	Exclusions []string
}

// DefaultRanges returns the national number intervals of generations 1-9.
func DefaultRanges() []GenerationRange {
	return []GenerationRange{
		{Start: 1, End: 151, Gen: 1},
		{Start: 152, End: 251, Gen: 2},
		{Start: 252, End: 386, Gen: 3},
		{Start: 387, End: 494, Gen: 4},
		{Start: 495, End: 649, Gen: 5},
		{Start: 650, End: 721, Gen: 6},
		{Start: 722, End: 809, Gen: 7},
		{Start: 810, End: 905, Gen: 8},
		{Start: 906, End: MaxNationalNumber, Gen: 9},
	}
}

// DefaultRegions returns the regional form tokens in match order.
func DefaultRegions() []Region {
	return []Region{
		{Token: "alola", Gen: 7},
		{Token: "galar", Gen: 8},
		{Token: "hisui", Gen: 8},
		{Token: "paldea", Gen: 9},
	}
}

// DefaultExclusions returns the variant name fragments that never get a slot.
func DefaultExclusions() []string {
	return []string{
		"-totem-",
		"pikachu-alola-cap",
		"tauros-paldea-blaze-breed",
		"tauros-paldea-aqua-breed",
		"darmanitan-galar-zen",
	}
}

// DefaultTables returns the built-in tables.
func DefaultTables() Tables {
	return Tables{
		Ranges:     DefaultRanges(),
		Regions:    DefaultRegions(),
		Exclusions: DefaultExclusions(),
	}
}

// GenerationFor returns the generation whose range contains nr.
func (t Tables) GenerationFor(nr int) (int, bool) {
	for _, r := range t.Ranges {
		if nr >= r.Start && nr <= r.End {
			return r.Gen, true
		}
	}
	return 0, false
}

// RegionGeneration returns the generation of the first region token found in
// name, checked in table order.
func (t Tables) RegionGeneration(name string) (int, bool) {
	folded := Fold(name)
	for _, r := range t.Regions {
		if strings.Contains(folded, r.Token) {
			return r.Gen, true
		}
	}
	return 0, false
}

// RegionMatches returns the generation of every region token found in name,
// in table order. A name carrying two tokens yields two generations.
func (t Tables) RegionMatches(name string) []int {
	folded := Fold(name)
	var gens []int
	for _, r := range t.Regions {
		if strings.Contains(folded, r.Token) {
			gens = append(gens, r.Gen)
		}
	}
	return gens
}

// Excluded reports whether name contains any exclusion fragment.
func (t Tables) Excluded(name string) bool {
	folded := Fold(name)
	for _, ex := range t.Exclusions {
		if strings.Contains(folded, ex) {
			return true
		}
	}
	return false
}

// MaxNumber returns the last national number covered by the range table.
func (t Tables) MaxNumber() int {
	last := 0
	for _, r := range t.Ranges {
		if r.End > last {
			last = r.End
		}
	}
	return last
}

// Generations returns every generation that appears in either table,
// ascending and without duplicates.
func (t Tables) Generations() []int {
	seen := make(map[int]bool)
	var gens []int
	add := func(g int) {
		if !seen[g] {
			seen[g] = true
			gens = append(gens, g)
		}
	}
	for _, r := range t.Ranges {
		add(r.Gen)
	}
	for _, r := range t.Regions {
		add(r.Gen)
	}
	sort.Ints(gens)
	return gens
}

// Validate checks that the range table is ascending and non-overlapping and
// that every region and exclusion entry is usable.
func (t Tables) Validate() error {
	var errs []error
	if len(t.Ranges) == 0 {
		errs = append(errs, errors.New("generation table is empty"))
	}
	for i, r := range t.Ranges {
		if r.Start <= 0 || r.End < r.Start {
			errs = append(errs, fmt.Errorf("generation range %d: invalid interval %d-%d", i, r.Start, r.End))
		}
		if r.Gen <= 0 {
			errs = append(errs, fmt.Errorf("generation range %d: generation must be positive", i))
		}
		if i > 0 && r.Start <= t.Ranges[i-1].End {
			errs = append(errs, fmt.Errorf("generation range %d: starts at %d inside previous range ending at %d",
				i, r.Start, t.Ranges[i-1].End))
		}
	}
	for i, r := range t.Regions {
		if strings.TrimSpace(r.Token) == "" {
			errs = append(errs, fmt.Errorf("region %d: empty token", i))
		} else if Fold(r.Token) != r.Token {
			errs = append(errs, fmt.Errorf("region %d: token %q must be lower case ascii", i, r.Token))
		}
		if r.Gen <= 0 {
			errs = append(errs, fmt.Errorf("region %q: generation must be positive", r.Token))
		}
	}
	for i, ex := range t.Exclusions {
		if strings.TrimSpace(ex) == "" {
			errs = append(errs, fmt.Errorf("exclusion %d: empty fragment", i))
		} else if Fold(ex) != ex {
			errs = append(errs, fmt.Errorf("exclusion %d: fragment %q must be lower case ascii", i, ex))
		}
	}
	return errors.Join(errs...)
}
