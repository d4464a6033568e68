package pipeline

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/korkdex/internal/card"
	"github.com/arcanaland/korkdex/internal/dex"
	"github.com/arcanaland/korkdex/internal/logging"
	"github.com/arcanaland/korkdex/internal/species"
	"github.com/arcanaland/korkdex/internal/store"
)

type fakeSource struct {
	calls int
	fail  bool
}

func (f *fakeSource) FetchSpecies(_ context.Context, nr int) (species.Entry, error) {
	f.calls++
	if f.fail {
		return species.Entry{}, errors.New("species catalog down")
	}
	name := fmt.Sprintf("mon-%d", nr)
	return species.Entry{Nr: nr, Name: name, Varieties: []species.Variety{{Name: name, IsDefault: true}}}, nil
}

// fakeCatalog answers "s-N" with a card for national number N and fails on
// the numbers in fail.
type fakeCatalog struct {
	fail  map[string]bool
	calls int
}

func (f *fakeCatalog) FetchCards(_ context.Context, setCode, number string) ([]card.Card, error) {
	f.calls++
	if f.fail[number] {
		return nil, nil
	}
	var nr int
	fmt.Sscanf(number, "%d", &nr)
	return []card.Card{{ID: setCode + "-" + number, Name: fmt.Sprintf("Mon %d", nr), NatDex: []int{nr}}}, nil
}

func newPipeline(t *testing.T, src species.Source, cat card.Catalog, batch int) (*Pipeline, store.Store) {
	t.Helper()
	st, err := store.NewJSONStore(t.TempDir())
	require.NoError(t, err)
	return New(st, src, cat, Options{Tables: dex.DefaultTables(), FachSize: 5, TraySize: 4, BatchSize: batch}), st
}

func TestFetchSpecies(t *testing.T) {
	p, st := newPipeline(t, &fakeSource{}, nil, 0)

	got, err := p.FetchSpecies(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Len(t, got, 10)

	saved, err := st.Species(context.Background())
	require.NoError(t, err)
	assert.Equal(t, got, saved)
}

func TestFetchSpeciesFailureKeepsOldDataset(t *testing.T) {
	p, st := newPipeline(t, &fakeSource{fail: true}, nil, 0)
	old := []dex.SpeciesRecord{{Name: "bulbasaur", Nr: 1, Gen: 1}}
	require.NoError(t, st.SaveSpecies(context.Background(), old))

	_, err := p.FetchSpecies(context.Background(), 1, 3)
	require.Error(t, err)

	saved, err := st.Species(context.Background())
	require.NoError(t, err)
	assert.Equal(t, old, saved)
}

func TestResolveCardsSingleBatch(t *testing.T) {
	cat := &fakeCatalog{}
	p, st := newPipeline(t, nil, cat, 2)

	var batches int
	res, err := p.ResolveCards(context.Background(), []string{"s-1", "s-2", "s-3"}, false, func(card.Result) { batches++ })
	require.NoError(t, err)
	assert.Equal(t, 1, batches)
	assert.Equal(t, 2, res.Resolved)
	assert.Equal(t, 1, res.Remaining)

	saved, err := st.Cards(context.Background())
	require.NoError(t, err)
	assert.Len(t, saved, 2)
}

func TestResolveCardsAllBatches(t *testing.T) {
	cat := &fakeCatalog{}
	p, st := newPipeline(t, nil, cat, 2)
	ids := []string{"s-1", "s-2", "s-3", "s-4", "s-5"}

	var batches int
	res, err := p.ResolveCards(context.Background(), ids, true, func(card.Result) { batches++ })
	require.NoError(t, err)
	assert.Equal(t, 3, batches)
	assert.True(t, res.Done())
	assert.Equal(t, 5, cat.calls)

	saved, err := st.Cards(context.Background())
	require.NoError(t, err)
	assert.Len(t, saved, 5)

	// A second run finds nothing to do.
	res, err = p.ResolveCards(context.Background(), ids, true, nil)
	require.NoError(t, err)
	assert.Equal(t, 5, res.Skipped)
	assert.Equal(t, 5, cat.calls)
}

func TestResolveCardsPersistsBeforeFailure(t *testing.T) {
	cat := &fakeCatalog{fail: map[string]bool{"3": true}}
	p, st := newPipeline(t, nil, cat, 0)

	_, err := p.ResolveCards(context.Background(), []string{"s-1", "s-2", "s-3", "s-4"}, true, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, card.ErrCardNotFound)

	saved, err := st.Cards(context.Background())
	require.NoError(t, err)
	require.Len(t, saved, 2)
	assert.Equal(t, "s-2", saved[1].CardID)
}

func TestResolveCardsCountsWholeRun(t *testing.T) {
	cat := &fakeCatalog{fail: map[string]bool{"4": true}}
	p, st := newPipeline(t, nil, cat, 1)
	require.NoError(t, st.SaveCards(context.Background(), []dex.CardRecord{{Name: "Mon 9", Nr: 9, Gen: 1, CardID: "s-9"}}))

	var perBatch []int
	res, err := p.ResolveCards(context.Background(), []string{"s-9", "s-1", "s-2", "s-3", "s-4"}, true, func(r card.Result) {
		perBatch = append(perBatch, r.Resolved)
	})
	require.Error(t, err)
	assert.Equal(t, []int{1, 1, 1}, perBatch)
	assert.Equal(t, 3, res.Resolved, "resolved counts every batch of the run")
	assert.Equal(t, 1, res.Skipped)
	assert.Len(t, res.Records, 4)
}

func TestFetchSpeciesBeyondTables(t *testing.T) {
	src := &fakeSource{}
	p, _ := newPipeline(t, src, nil, 0)

	_, err := p.FetchSpecies(context.Background(), 1, dex.MaxNationalNumber+1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "beyond the generation table")
	assert.Zero(t, src.calls)
}

func TestBuildLayoutNeedsSpecies(t *testing.T) {
	p, _ := newPipeline(t, nil, nil, 0)
	_, err := p.BuildLayout(context.Background())
	assert.Error(t, err)
}

func TestRun(t *testing.T) {
	src := &fakeSource{}
	p, st := newPipeline(t, src, &fakeCatalog{}, 1)

	assignments, err := p.Run(context.Background(), []string{"s-2", "s-2b-2"}, 1, 6, false)
	require.NoError(t, err)
	assert.Equal(t, 6, src.calls)
	require.Len(t, assignments, 6)
	assert.Equal(t, 2, assignments[1].Count)
	assert.Equal(t, "Mon 2", assignments[1].Name)
	assert.Equal(t, 1, assignments[4].Tray, "tray size 4 wraps the fifth slot")

	saved, err := st.Layout(context.Background())
	require.NoError(t, err)
	assert.Equal(t, assignments, saved)

	// Cached species are reused unless refresh is set.
	_, err = p.Run(context.Background(), nil, 1, 6, false)
	require.NoError(t, err)
	assert.Equal(t, 6, src.calls)
	_, err = p.Run(context.Background(), nil, 1, 6, true)
	require.NoError(t, err)
	assert.Equal(t, 12, src.calls)
}

func TestBuildLayoutLogsSummary(t *testing.T) {
	tl := logging.NewTestLogger(t)
	ctx := tl.Context(context.Background())
	p, st := newPipeline(t, nil, nil, 0)
	require.NoError(t, st.SaveSpecies(ctx, []dex.SpeciesRecord{{Name: "bulbasaur", Nr: 1, Gen: 1}}))

	_, err := p.BuildLayout(ctx)
	require.NoError(t, err)
	assert.True(t, tl.Contains(`"message":"layout built"`), tl.Output())
	assert.True(t, tl.Contains(`"trays":1`))
}
