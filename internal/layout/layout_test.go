package layout

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/korkdex/internal/dex"
)

func speciesN(n int) []dex.SpeciesRecord {
	out := make([]dex.SpeciesRecord, n)
	for i := range out {
		out[i] = dex.SpeciesRecord{Name: fmt.Sprintf("mon-%d", i+1), Nr: i + 1, Gen: 1}
	}
	return out
}

func cardsFor(s dex.SpeciesRecord, n int, name string) []dex.CardRecord {
	out := make([]dex.CardRecord, n)
	for i := range out {
		out[i] = dex.CardRecord{Name: name, Nr: s.Nr, Gen: s.Gen, CardID: fmt.Sprintf("set-%d-%d", s.Nr, i)}
	}
	return out
}

func TestPackNoCardsOneSlotEach(t *testing.T) {
	species := speciesN(70)
	got := Pack(species, nil, 5, 32)

	require.Len(t, got, len(species))
	for i, a := range got {
		assert.Equal(t, species[i].Name, a.Name)
		assert.Equal(t, 0, a.Count)
		assert.Equal(t, i/32, a.Tray)
		assert.Equal(t, i%32, a.Slot)
	}
}

func TestPackTrayWrap(t *testing.T) {
	got := Pack(speciesN(33), nil, 5, 32)

	require.Len(t, got, 33)
	for i := 0; i < 32; i++ {
		assert.Equal(t, 0, got[i].Tray)
		assert.Equal(t, i, got[i].Slot)
	}
	assert.Equal(t, 1, got[32].Tray)
	assert.Equal(t, 0, got[32].Slot)
	assert.Equal(t, 33, got[32].Nr)
}

func TestSlotsNeeded(t *testing.T) {
	assert.Equal(t, 1, SlotsNeeded(0, 5))
	assert.Equal(t, 1, SlotsNeeded(4, 5))
	assert.Equal(t, 2, SlotsNeeded(5, 5))
	assert.Equal(t, 3, SlotsNeeded(12, 5))
	assert.Equal(t, 3, SlotsNeeded(12, 0), "zero fach size falls back to default")
}

func TestPackMultiSlotSpecies(t *testing.T) {
	species := speciesN(3)
	cards := cardsFor(species[1], 12, "Ivysaur ex")

	got := Pack(species, cards, 5, 32)
	require.Len(t, got, 5)

	assert.Equal(t, "mon-1", got[0].Name)
	for i := 1; i <= 3; i++ {
		assert.Equal(t, "Ivysaur ex", got[i].Name)
		assert.Equal(t, 12, got[i].Count)
		assert.Equal(t, 2, got[i].Nr)
		assert.Equal(t, i, got[i].Slot)
	}
	assert.Equal(t, "mon-3", got[4].Name)
	assert.Equal(t, 4, got[4].Slot)
}

func TestPackCursorIsGlobal(t *testing.T) {
	species := speciesN(3)
	cards := cardsFor(species[0], 14, "Bulbasaur")

	got := Pack(species, cards, 5, 2)
	require.Len(t, got, 5)

	positions := make([][2]int, len(got))
	for i, a := range got {
		positions[i] = [2]int{a.Tray, a.Slot}
	}
	assert.Equal(t, [][2]int{{0, 0}, {0, 1}, {1, 0}, {1, 1}, {2, 0}}, positions)
}

func TestPackJoinNeedsBothFields(t *testing.T) {
	species := []dex.SpeciesRecord{
		{Name: "vulpix", Nr: 37, Gen: 1},
		{Name: "vulpix-alola", Nr: 37, Gen: 7},
	}
	cards := []dex.CardRecord{
		{Name: "Alolan Vulpix", Nr: 37, Gen: 7, CardID: "a-1"},
		{Name: "Alolan Vulpix", Nr: 37, Gen: 7, CardID: "a-2"},
		{Name: "Vulpix", Nr: 38, Gen: 1, CardID: "a-3"},
	}

	got := Pack(species, cards, 5, 32)
	require.Len(t, got, 2)
	assert.Equal(t, "vulpix", got[0].Name)
	assert.Equal(t, 0, got[0].Count)
	assert.Equal(t, "Alolan Vulpix", got[1].Name)
	assert.Equal(t, 2, got[1].Count)
}

func TestPackDisplayNameFromFirstCard(t *testing.T) {
	species := speciesN(1)
	cards := append(cardsFor(species[0], 1, "Bulbasaur"), cardsFor(species[0], 1, "Bulbasaur V")...)

	got := Pack(species, cards, 5, 32)
	assert.Equal(t, "Bulbasaur", got[0].Name)
}

func TestPackDefaults(t *testing.T) {
	got := Pack(speciesN(DefaultTraySize+1), nil, 0, 0)
	assert.Equal(t, 1, got[DefaultTraySize].Tray)
}

func TestPackEmpty(t *testing.T) {
	assert.Empty(t, Pack(nil, nil, 5, 32))
}

func TestTraysAndFind(t *testing.T) {
	species := speciesN(5)
	cards := cardsFor(species[2], 6, "Venusaur")
	got := Pack(species, cards, 5, 3)

	trays := Trays(got)
	require.Len(t, trays, 2)
	assert.Equal(t, 0, trays[0].Index)
	assert.Len(t, trays[0].Slots, 3)
	assert.Equal(t, 1, trays[1].Index)
	assert.Len(t, trays[1].Slots, 3)

	found := Find(got, species[2].Key())
	require.Len(t, found, 2)
	assert.Equal(t, 0, found[0].Tray)
	assert.Equal(t, 2, found[0].Slot)
	assert.Equal(t, 1, found[1].Tray)
	assert.Equal(t, 0, found[1].Slot)

	assert.Empty(t, Find(got, dex.Key{Nr: 99, Gen: 1}))
}

func TestSlotFill(t *testing.T) {
	assert.Equal(t, []int{0}, SlotFill(0, 1, 5))
	assert.Equal(t, []int{5, 0}, SlotFill(5, 2, 5))
	assert.Equal(t, []int{5, 5, 2}, SlotFill(12, 3, 5))
}

func TestFill(t *testing.T) {
	species := speciesN(3)
	cards := cardsFor(species[1], 7, "Ivysaur")
	got := Pack(species, cards, 5, 2)

	assert.Equal(t, []int{0, 5, 2, 0}, Fill(got, 5))
	assert.Empty(t, Fill(nil, 5))
}

func TestFillSharedKeyNeighbours(t *testing.T) {
	species := []dex.SpeciesRecord{
		{Name: "darmanitan-galar-standard", Nr: 555, Gen: 8},
		{Name: "darmanitan-galar-zen", Nr: 555, Gen: 8},
	}
	cards := cardsFor(species[0], 6, "Galarian Darmanitan")
	got := Pack(species, cards, 5, 32)

	require.Len(t, got, 4)
	assert.Equal(t, [][2]int{{0, 2}, {2, 4}}, Runs(got, 5))
	assert.Equal(t, []int{5, 1, 5, 1}, Fill(got, 5))
}
