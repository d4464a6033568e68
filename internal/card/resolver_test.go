package card

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/korkdex/internal/dex"
)

type fakeCatalog struct {
	cards map[string][]Card // keyed by set code + "/" + number
	err   error
	calls []string
}

func (f *fakeCatalog) FetchCards(_ context.Context, setCode, number string) ([]Card, error) {
	key := setCode + "/" + number
	f.calls = append(f.calls, key)
	if f.err != nil {
		return nil, f.err
	}
	return f.cards[key], nil
}

func newCatalog() *fakeCatalog {
	return &fakeCatalog{cards: map[string][]Card{
		"sv1/1":   {{ID: "sv1-1", Name: "Pineco", NatDex: []int{204}}},
		"sv1/12":  {{ID: "sv1-12", Name: "Alolan Vulpix", NatDex: []int{37}}},
		"sv1/13":  {{ID: "sv1-13", Name: "Vulpix", NatDex: []int{37}}},
		"sv2/99":  {{ID: "sv2-99", Name: "Hisuian Growlithe", NatDex: []int{58}}},
		"swsh/7":  {{ID: "swsh-7a", Name: "Pikachu"}, {ID: "swsh-7b", Name: "Pikachu"}},
		"det1/10": {{ID: "det1-10", Name: "Pikachu & Zekrom", NatDex: []int{25, 644}}},
		"sv9/1":   {{ID: "sv9-1", Name: "Energy"}},
		"fut/1":   {{ID: "fut-1", Name: "Futuremon", NatDex: []int{1200}}},
	}}
}

func TestParseID(t *testing.T) {
	id, err := ParseID("sv1-12")
	require.NoError(t, err)
	assert.Equal(t, ID{Raw: "sv1-12", SetCode: "sv1", Number: "12"}, id)

	id, err = ParseID(" swsh12pt5gg-extra-GG01 ")
	require.NoError(t, err)
	assert.Equal(t, "swsh12pt5gg", id.SetCode)
	assert.Equal(t, "GG01", id.Number)

	for _, bad := range []string{"", "sv1", "-12", "sv1-"} {
		_, err := ParseID(bad)
		assert.ErrorIs(t, err, ErrInvalidCardID, "input %q", bad)
	}
}

func TestResolveGenerations(t *testing.T) {
	cat := newCatalog()
	r := NewResolver(cat, dex.DefaultTables())

	res, err := r.Resolve(context.Background(), []string{"sv1-1", "sv1-12", "sv1-13", "sv2-99"}, nil, 0)
	require.NoError(t, err)
	assert.Equal(t, []dex.CardRecord{
		{Name: "Pineco", Nr: 204, Gen: 2, CardID: "sv1-1"},
		{Name: "Alolan Vulpix", Nr: 37, Gen: 7, CardID: "sv1-12"},
		{Name: "Vulpix", Nr: 37, Gen: 1, CardID: "sv1-13"},
		{Name: "Hisuian Growlithe", Nr: 58, Gen: 8, CardID: "sv2-99"},
	}, res.Records)
	assert.Equal(t, 4, res.Resolved)
	assert.True(t, res.Done())
}

func TestResolveSkipsAlreadyResolved(t *testing.T) {
	cat := newCatalog()
	r := NewResolver(cat, dex.DefaultTables())

	first, err := r.Resolve(context.Background(), []string{"sv1-12"}, nil, 0)
	require.NoError(t, err)
	require.Len(t, cat.calls, 1)

	second, err := r.Resolve(context.Background(), []string{"sv1-12", "sv1-13"}, first.Records, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"sv1/12", "sv1/13"}, cat.calls, "resolved id must not be queried again")
	assert.Len(t, second.Records, 2)
	assert.Equal(t, 1, second.Skipped)
	assert.Equal(t, 1, second.Resolved)
	assert.Equal(t, "sv1-12", second.Records[0].CardID)
	assert.Equal(t, "sv1-13", second.Records[1].CardID)
}

func TestResolveDuplicateInputResolvedOnce(t *testing.T) {
	cat := newCatalog()
	r := NewResolver(cat, dex.DefaultTables())

	res, err := r.Resolve(context.Background(), []string{"sv1-12", "sv1-12"}, nil, 0)
	require.NoError(t, err)
	assert.Len(t, res.Records, 1)
	assert.Len(t, cat.calls, 1)
	assert.Equal(t, 1, res.Skipped)
}

func TestResolveDoesNotMutateExisting(t *testing.T) {
	existing := make([]dex.CardRecord, 1, 4)
	existing[0] = dex.CardRecord{Name: "Vulpix", Nr: 37, Gen: 1, CardID: "sv1-13"}

	r := NewResolver(newCatalog(), dex.DefaultTables())
	res, err := r.Resolve(context.Background(), []string{"sv1-1"}, existing, 0)
	require.NoError(t, err)
	assert.Len(t, res.Records, 2)
	assert.Len(t, existing, 1)
	assert.Equal(t, "sv1-1", res.Records[1].CardID)
	assert.NotSame(t, &existing[0], &res.Records[0])
}

func TestResolveBatchLimit(t *testing.T) {
	cat := newCatalog()
	r := NewResolver(cat, dex.DefaultTables())
	ids := []string{"sv1-1", "sv1-12", "sv1-13", "sv2-99"}

	res, err := r.Resolve(context.Background(), ids, nil, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Resolved)
	assert.Equal(t, 1, res.Remaining)
	assert.False(t, res.Done())

	res, err = r.Resolve(context.Background(), ids, res.Records, 3)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Resolved)
	assert.Equal(t, 3, res.Skipped)
	assert.True(t, res.Done())
	assert.Len(t, cat.calls, 4)
}

func TestResolveAmbiguousLookup(t *testing.T) {
	r := NewResolver(newCatalog(), dex.DefaultTables())

	res, err := r.Resolve(context.Background(), []string{"sv1-1", "swsh-7", "sv1-12"}, nil, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAmbiguousCardLookup)
	assert.True(t, IsLookupError(err))

	var rerr *ResolveError
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, "swsh-7", rerr.CardID)
	assert.Equal(t, 2, rerr.Matches)
	assert.Contains(t, err.Error(), "2 matches")

	// Work before the failure is kept, the ambiguous card is not appended.
	require.Len(t, res.Records, 1)
	assert.Equal(t, "sv1-1", res.Records[0].CardID)
	assert.Equal(t, 2, res.Remaining)
}

func TestResolveFailures(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want error
	}{
		{name: "not found", id: "sv1-500", want: ErrCardNotFound},
		{name: "two national numbers", id: "det1-10", want: ErrMultiNationalNumber},
		{name: "no national number", id: "sv9-1", want: ErrNoNationalNumber},
		{name: "outside range table", id: "fut-1", want: ErrNoGeneration},
		{name: "bad id", id: "promo", want: ErrInvalidCardID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(newCatalog(), dex.DefaultTables())
			res, err := r.Resolve(context.Background(), []string{tt.id}, nil, 0)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, res.Records)
		})
	}
}

func TestResolveCatalogError(t *testing.T) {
	cat := newCatalog()
	cat.err = errors.New("connection reset")
	r := NewResolver(cat, dex.DefaultTables())

	_, err := r.Resolve(context.Background(), []string{"sv1-1"}, nil, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
	assert.False(t, IsLookupError(err))
}

func TestResolveRegionTableSharedWithSpecies(t *testing.T) {
	tables := dex.DefaultTables()
	tables.Regions = []dex.Region{{Token: "kanto", Gen: 1}}
	cat := &fakeCatalog{cards: map[string][]Card{
		"x/1": {{Name: "Alolan Vulpix", NatDex: []int{37}}},
	}}

	res, err := NewResolver(cat, tables).Resolve(context.Background(), []string{"x-1"}, nil, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Records[0].Gen, "only the injected tables decide the generation")
}
