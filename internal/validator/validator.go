// Package validator checks the cached species, card and layout datasets
// against each other.
package validator

import (
	"fmt"

	"github.com/arcanaland/korkdex/internal/dex"
	"github.com/arcanaland/korkdex/internal/layout"
)

type ValidationResults struct {
	Errors   []string
	Warnings []string
}

// OK reports whether no errors were found. Warnings do not count.
func (r ValidationResults) OK() bool {
	return len(r.Errors) == 0
}

type Validator struct {
	Species  []dex.SpeciesRecord
	Cards    []dex.CardRecord
	Layout   []dex.SlotAssignment
	FachSize int
	Results  ValidationResults
}

func NewValidator(species []dex.SpeciesRecord, cards []dex.CardRecord, assignments []dex.SlotAssignment, fachSize int) *Validator {
	if fachSize <= 0 {
		fachSize = layout.DefaultFachSize
	}
	return &Validator{
		Species:  species,
		Cards:    cards,
		Layout:   assignments,
		FachSize: fachSize,
		Results:  ValidationResults{},
	}
}

func (v *Validator) Validate() ValidationResults {
	v.validateEmpty()
	v.validateSpeciesKeys()
	v.validateCardIDs()
	v.validateOrphanCards()
	v.validatePositions()
	v.validateSlotCounts()

	return v.Results
}

func (v *Validator) errorf(format string, args ...any) {
	v.Results.Errors = append(v.Results.Errors, fmt.Sprintf(format, args...))
}

func (v *Validator) warnf(format string, args ...any) {
	v.Results.Warnings = append(v.Results.Warnings, fmt.Sprintf(format, args...))
}

func (v *Validator) validateEmpty() {
	if len(v.Species) == 0 {
		v.warnf("species dataset is empty, run 'korkdex species fetch'")
	}
	if len(v.Cards) == 0 {
		v.warnf("card dataset is empty, run 'korkdex cards resolve'")
	}
	if len(v.Layout) == 0 {
		v.warnf("layout is empty, run 'korkdex layout build'")
	}
}

// Two variants on one key share a slot range and split its cards.
func (v *Validator) validateSpeciesKeys() {
	first := make(map[dex.Key]string, len(v.Species))
	for _, s := range v.Species {
		if prev, ok := first[s.Key()]; ok {
			v.warnf("species %q and %q share key %s", prev, s.Name, s.Key())
			continue
		}
		first[s.Key()] = s.Name
	}
}

func (v *Validator) validateCardIDs() {
	seen := make(map[string]bool, len(v.Cards))
	for _, c := range v.Cards {
		if seen[c.CardID] {
			v.errorf("card %s appears more than once", c.CardID)
		}
		seen[c.CardID] = true
	}
}

func (v *Validator) validateOrphanCards() {
	if len(v.Species) == 0 {
		return
	}
	known := make(map[dex.Key]bool, len(v.Species))
	for _, s := range v.Species {
		known[s.Key()] = true
	}
	for _, c := range v.Cards {
		if !known[c.Key()] {
			v.warnf("card %s (%s, %s) matches no species", c.CardID, c.Name, c.Key())
		}
	}
}

// Positions must run 0,1,... per tray and trays must follow each other
// without gaps. The tray size is taken from the first full tray.
func (v *Validator) validatePositions() {
	traySize := 0
	for i, a := range v.Layout {
		if i == 0 {
			if a.Tray != 0 || a.Slot != 0 {
				v.errorf("layout starts at tray %d slot %d, want 0/0", a.Tray, a.Slot)
			}
			continue
		}
		prev := v.Layout[i-1]
		switch {
		case a.Tray == prev.Tray && a.Slot == prev.Slot+1:
		case a.Tray == prev.Tray+1 && a.Slot == 0:
			if traySize == 0 {
				traySize = prev.Slot + 1
			} else if prev.Slot+1 != traySize {
				v.errorf("tray %d holds %d slots, previous trays hold %d", prev.Tray, prev.Slot+1, traySize)
			}
		default:
			v.errorf("layout jumps from tray %d slot %d to tray %d slot %d", prev.Tray, prev.Slot, a.Tray, a.Slot)
		}
	}
}

func (v *Validator) validateSlotCounts() {
	if len(v.Layout) == 0 {
		return
	}
	counts := layout.Counts(v.Cards)

	for _, r := range layout.Runs(v.Layout, v.FachSize) {
		a := v.Layout[r[0]]
		slots := r[1] - r[0]
		if want := layout.SlotsNeeded(a.Count, v.FachSize); slots != want {
			v.errorf("%s %s takes %d slots for %d cards, want %d", a.Name, a.Key(), slots, a.Count, want)
		}
		if len(v.Cards) > 0 && counts[a.Key()] != a.Count {
			v.warnf("%s %s counts %d cards, card dataset has %d; rebuild the layout", a.Name, a.Key(), a.Count, counts[a.Key()])
		}
	}
}
