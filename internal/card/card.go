// Package card resolves owned cards against the card catalog and assigns
// each one the species key it files under.
package card

import (
	"fmt"
	"strings"
)

// IDDelimiter separates the set code from the collector number.
const IDDelimiter = "-"

// Card is a catalog entry as returned by a card lookup.
type Card struct {
	ID        string   // Catalog ID (e.g., sv1-12)
	Name      string   // Display name (e.g., Alolan Vulpix)
	Number    string   // Collector number within the set
	SetID     string   // Set code (e.g., sv1)
	SetName   string   // Set display name
	NatDex    []int    // National numbers the card depicts
	Rarity    string   // Rarity label, may be empty
	ImageURL  string   // Small image, used for terminal art
	Subtypes  []string // Basic, Stage 1, ex, ...
	Supertype string   // Pokémon, Trainer, Energy
}

// ID is an owned card identifier split into its lookup parts.
type ID struct {
	Raw     string
	SetCode string
	Number  string
}

func (id ID) String() string {
	return id.Raw
}

// ParseID splits raw on the delimiter. The first segment is the set code and
// the last segment is the collector number, so "swsh12pt5gg-GG01" and
// "me-1-5" both work.
func ParseID(raw string) (ID, error) {
	raw = strings.TrimSpace(raw)
	parts := strings.Split(raw, IDDelimiter)
	if len(parts) < 2 || parts[0] == "" || parts[len(parts)-1] == "" {
		return ID{}, fmt.Errorf("%w: %q", ErrInvalidCardID, raw)
	}
	return ID{Raw: raw, SetCode: parts[0], Number: parts[len(parts)-1]}, nil
}
