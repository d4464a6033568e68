package card

import (
	"errors"
	"fmt"
)

// Resolution failures. All of them abort the current batch.
var (
	// ErrCardNotFound means the catalog returned no card for the ID.
	ErrCardNotFound = errors.New("card not found")

	// ErrAmbiguousCardLookup means the catalog returned more than one card.
	ErrAmbiguousCardLookup = errors.New("ambiguous card lookup")

	// ErrMultiNationalNumber means the card depicts more than one species.
	ErrMultiNationalNumber = errors.New("card has more than one national number")

	// ErrNoNationalNumber means the card has no species association at all.
	ErrNoNationalNumber = errors.New("card has no national number")

	// ErrNoGeneration means the national number is outside the range table.
	ErrNoGeneration = errors.New("no generation for national number")

	// ErrInvalidCardID means the owned identifier has no set/number split.
	ErrInvalidCardID = errors.New("invalid card id")
)

// ResolveError describes why one owned card could not be resolved.
type ResolveError struct {
	CardID  string
	SetCode string
	Number  string
	Matches int // Catalog hits for lookup errors, national numbers otherwise
	Err     error
}

// Error implements the error interface
func (e *ResolveError) Error() string {
	switch {
	case errors.Is(e.Err, ErrAmbiguousCardLookup):
		return fmt.Sprintf("resolve %s (set %s, number %s): %v: %d matches", e.CardID, e.SetCode, e.Number, e.Err, e.Matches)
	case errors.Is(e.Err, ErrMultiNationalNumber):
		return fmt.Sprintf("resolve %s: %v (%d)", e.CardID, e.Err, e.Matches)
	case e.SetCode != "":
		return fmt.Sprintf("resolve %s (set %s, number %s): %v", e.CardID, e.SetCode, e.Number, e.Err)
	default:
		return fmt.Sprintf("resolve %s: %v", e.CardID, e.Err)
	}
}

// Unwrap implements errors.Unwrap
func (e *ResolveError) Unwrap() error {
	return e.Err
}

// IsLookupError reports whether err is a catalog lookup inconsistency.
func IsLookupError(err error) bool {
	return errors.Is(err, ErrCardNotFound) || errors.Is(err, ErrAmbiguousCardLookup)
}
