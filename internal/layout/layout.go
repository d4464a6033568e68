// Package layout joins species against owned cards and packs them, in
// species order, into fixed-size slots and trays.
package layout

import (
	"github.com/arcanaland/korkdex/internal/dex"
)

// Default capacities.
const (
	DefaultFachSize = 5  // Cards per slot
	DefaultTraySize = 32 // Slots per tray
)

// Counts returns how many cards fall under each species key.
func Counts(cards []dex.CardRecord) map[dex.Key]int {
	counts := make(map[dex.Key]int)
	for _, c := range cards {
		counts[c.Key()]++
	}
	return counts
}

// SlotsNeeded returns the number of slots a species with count cards takes.
// Every species reserves at least one slot, owned or not.
func SlotsNeeded(count, fachSize int) int {
	if fachSize <= 0 {
		fachSize = DefaultFachSize
	}
	return count/fachSize + 1
}

// Pack lays species out in the order given. Each species takes
// SlotsNeeded(count) consecutive slots; a single cursor runs over all trays
// and wraps to the next tray after traySize slots.
func Pack(species []dex.SpeciesRecord, cards []dex.CardRecord, fachSize, traySize int) []dex.SlotAssignment {
	if fachSize <= 0 {
		fachSize = DefaultFachSize
	}
	if traySize <= 0 {
		traySize = DefaultTraySize
	}

	counts := Counts(cards)
	names := make(map[dex.Key]string, len(counts))
	for _, c := range cards {
		if _, ok := names[c.Key()]; !ok {
			names[c.Key()] = c.Name
		}
	}

	out := make([]dex.SlotAssignment, 0, len(species))
	tray, slot := 0, 0
	for _, s := range species {
		key := s.Key()
		count := counts[key]
		name := s.Name
		if count > 0 {
			name = names[key]
		}
		for i := 0; i < SlotsNeeded(count, fachSize); i++ {
			out = append(out, dex.SlotAssignment{
				Name:  name,
				Nr:    s.Nr,
				Gen:   s.Gen,
				Count: count,
				Tray:  tray,
				Slot:  slot,
			})
			slot++
			if slot == traySize {
				slot = 0
				tray++
			}
		}
	}
	return out
}

// Tray is the content of one physical tray.
type Tray struct {
	Index int
	Slots []dex.SlotAssignment
}

// Trays groups assignments by tray index, in order.
func Trays(assignments []dex.SlotAssignment) []Tray {
	var trays []Tray
	for _, a := range assignments {
		if len(trays) == 0 || trays[len(trays)-1].Index != a.Tray {
			trays = append(trays, Tray{Index: a.Tray})
		}
		t := &trays[len(trays)-1]
		t.Slots = append(t.Slots, a)
	}
	return trays
}

// Find returns the assignments of the species with key, in slot order.
func Find(assignments []dex.SlotAssignment, key dex.Key) []dex.SlotAssignment {
	var out []dex.SlotAssignment
	for _, a := range assignments {
		if a.Key() == key {
			out = append(out, a)
		}
	}
	return out
}

// SlotFill returns how many cards physically sit in each slot of the
// assignments belonging to one species, filling slots front to back.
func SlotFill(count, slots, fachSize int) []int {
	if fachSize <= 0 {
		fachSize = DefaultFachSize
	}
	fill := make([]int, slots)
	for i := range fill {
		n := count - i*fachSize
		switch {
		case n > fachSize:
			n = fachSize
		case n < 0:
			n = 0
		}
		fill[i] = n
	}
	return fill
}

// Runs splits assignments into the slot runs of individual species. A run
// is a sequence of assignments sharing key and name, at most
// SlotsNeeded(count) long, so neighbouring species on one key stay apart.
// Each run is returned as [start, end) indexes.
func Runs(assignments []dex.SlotAssignment, fachSize int) [][2]int {
	var runs [][2]int
	for i := 0; i < len(assignments); {
		a := assignments[i]
		limit := SlotsNeeded(a.Count, fachSize)
		j := i + 1
		for j < len(assignments) && j-i < limit &&
			assignments[j].Key() == a.Key() && assignments[j].Name == a.Name && assignments[j].Count == a.Count {
			j++
		}
		runs = append(runs, [2]int{i, j})
		i = j
	}
	return runs
}

// Fill returns the number of cards in each assignment, index aligned with
// assignments.
func Fill(assignments []dex.SlotAssignment, fachSize int) []int {
	fill := make([]int, 0, len(assignments))
	for _, r := range Runs(assignments, fachSize) {
		fill = append(fill, SlotFill(assignments[r[0]].Count, r[1]-r[0], fachSize)...)
	}
	return fill
}
