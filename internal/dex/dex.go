// Package dex defines the records shared by every stage of the carddex
// pipeline and the generation tables that turn national numbers and variant
// names into generations.
package dex

import "fmt"

// Key is the join key between species and cards.
type Key struct {
	Nr  int
	Gen int
}

func (k Key) String() string {
	return fmt.Sprintf("#%04d/gen%d", k.Nr, k.Gen)
}

// SpeciesRecord is one species variant that survived normalisation.
type SpeciesRecord struct {
	Name string `json:"name"` // Variant name as reported by the species catalog
	Nr   int    `json:"nr"`   // National number
	Gen  int    `json:"gen"`  // Generation, possibly a regional override
}

// Key returns the species join key.
func (s SpeciesRecord) Key() Key {
	return Key{Nr: s.Nr, Gen: s.Gen}
}

// CardRecord is one owned card resolved against the card catalog.
type CardRecord struct {
	Name   string `json:"name"`    // Display name from the card catalog
	Nr     int    `json:"nr"`      // National number
	Gen    int    `json:"gen"`     // Generation
	CardID string `json:"card_id"` // Set code + collector number, e.g. sv1-12
}

// Key returns the card join key.
func (c CardRecord) Key() Key {
	return Key{Nr: c.Nr, Gen: c.Gen}
}

// SlotAssignment places one species into one physical slot.
type SlotAssignment struct {
	Name  string `json:"name"`
	Nr    int    `json:"nr"`
	Gen   int    `json:"gen"`
	Count int    `json:"count"`    // Cards matching the species, not per slot
	Tray  int    `json:"tray"`     // Zero-based tray index
	Slot  int    `json:"position"` // Zero-based slot index inside the tray
}

// Key returns the species join key of the assignment.
func (a SlotAssignment) Key() Key {
	return Key{Nr: a.Nr, Gen: a.Gen}
}
