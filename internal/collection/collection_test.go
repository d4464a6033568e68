package collection

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const export = "\ufeffId;Name;Set;Category;Price\n" +
	"sv1-12;Alolan Vulpix;Scarlet & Violet;KorkDex;0.10\n" +
	"sv1-13;Vulpix;Scarlet & Violet;Wishlist;0.05\n" +
	"sv2-99;\"Hisuian Growlithe\";Paldea Evolved;KorkDex;0.20\n" +
	"sv1-1 ;Pineco;Scarlet & Violet;KorkDex\n"

func TestReadFiltersCategory(t *testing.T) {
	rows, err := Read(strings.NewReader(export), DefaultCategory)
	require.NoError(t, err)

	require.Len(t, rows, 3)
	assert.Equal(t, Row{Line: 2, ID: "sv1-12", Category: "KorkDex", Name: "Alolan Vulpix", Set: "Scarlet & Violet"}, rows[0])
	assert.Equal(t, "Hisuian Growlithe", rows[1].Name)
	assert.Equal(t, 4, rows[1].Line)
	assert.Equal(t, "sv1-1", rows[2].ID, "ids are trimmed")
	assert.Equal(t, []string{"sv1-12", "sv2-99", "sv1-1"}, IDs(rows))
}

func TestReadAllCategories(t *testing.T) {
	rows, err := Read(strings.NewReader(export), "")
	require.NoError(t, err)
	assert.Len(t, rows, 4)
}

func TestReadMissingColumn(t *testing.T) {
	_, err := Read(strings.NewReader("Id;Name\nsv1-1;Pineco\n"), DefaultCategory)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"Category"`)
}

func TestReadEmpty(t *testing.T) {
	_, err := Read(strings.NewReader(""), DefaultCategory)
	assert.Error(t, err)
}

func TestReadEmptyID(t *testing.T) {
	_, err := Read(strings.NewReader("Id;Category\n;KorkDex\n"), DefaultCategory)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "collection.csv")
	require.NoError(t, os.WriteFile(path, []byte(export), 0o644))

	rows, err := Load(path, DefaultCategory)
	require.NoError(t, err)
	assert.Len(t, rows, 3)

	_, err = Load(filepath.Join(t.TempDir(), "missing.csv"), DefaultCategory)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
