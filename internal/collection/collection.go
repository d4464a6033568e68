// Package collection reads the owned-card export: a semicolon separated CSV
// with a header row, one row per owned card.
package collection

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// DefaultCategory is the category tag of cards tracked in the dex binder.
const DefaultCategory = "KorkDex"

// Column names in the export header.
const (
	ColumnID       = "Id"
	ColumnCategory = "Category"
	ColumnName     = "Name"
	ColumnSet      = "Set"
)

// Row is one owned card.
type Row struct {
	Line     int // 1-based line in the export, header is line 1
	ID       string
	Category string
	Name     string
	Set      string
}

// Load opens path and returns the rows tagged with category, in file order.
func Load(path, category string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open collection: %w", err)
	}
	defer f.Close()

	rows, err := Read(f, category)
	if err != nil {
		return nil, fmt.Errorf("read collection %s: %w", path, err)
	}
	return rows, nil
}

// Read parses an export from r. An empty category keeps every row.
func Read(r io.Reader, category string) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("empty collection export")
	}
	if err != nil {
		return nil, err
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	for _, required := range []string{ColumnID, ColumnCategory} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("missing column %q", required)
		}
	}

	field := func(record []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var rows []Row
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := cr.FieldPos(0)

		row := Row{
			Line:     line,
			ID:       field(record, ColumnID),
			Category: field(record, ColumnCategory),
			Name:     field(record, ColumnName),
			Set:      field(record, ColumnSet),
		}
		if category != "" && row.Category != category {
			continue
		}
		if row.ID == "" {
			return nil, fmt.Errorf("line %d: empty %s", line, ColumnID)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// IDs returns the card identifiers of rows, in order.
func IDs(rows []Row) []string {
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}
	return ids
}
