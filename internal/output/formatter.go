// Package output renders command results as tables, JSON or YAML.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Format is an output format name.
type Format string

// Supported formats.
const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// Formatter writes data in one format.
type Formatter interface {
	Format(w io.Writer, data any) error
}

// NewFormatter returns the formatter for format, defaulting to a table.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: "  "}
	case FormatYAML:
		return &YAMLFormatter{}
	default:
		return &TableFormatter{}
	}
}

// ParseFormat validates s. The empty string selects auto detection.
func ParseFormat(s string) (Format, error) {
	format := Format(strings.ToLower(strings.TrimSpace(s)))
	switch format {
	case FormatTable, FormatJSON, FormatYAML, "":
		return format, nil
	default:
		return "", fmt.Errorf("invalid format %q: must be one of: table, json, yaml", s)
	}
}

// DetectFormat returns explicit if set, a table on a terminal and JSON
// when stdout is piped.
func DetectFormat(explicit Format) Format {
	if explicit != "" {
		return explicit
	}
	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return FormatTable
	}
	return FormatJSON
}

// JSONFormatter writes JSON.
type JSONFormatter struct {
	Indent string
}

// Format implements Formatter.
func (f *JSONFormatter) Format(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	if f.Indent != "" {
		enc.SetIndent("", f.Indent)
	}
	return enc.Encode(data)
}

// YAMLFormatter writes YAML.
type YAMLFormatter struct{}

// Format implements Formatter.
func (f *YAMLFormatter) Format(w io.Writer, data any) error {
	out, err := yaml.MarshalWithOptions(data, yaml.Indent(2), yaml.IndentSequence(false))
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

// Data is a prepared table.
type Data struct {
	Title      string
	Headers    []string
	Rows       [][]string
	Footer     []string
	RightAlign []int // Column indexes rendered right aligned
}

// TableFormatter writes tables. Data and []Data render directly, struct
// slices and structs go through reflection, anything else falls back to
// JSON.
type TableFormatter struct{}

// Format implements Formatter.
func (f *TableFormatter) Format(w io.Writer, data any) error {
	switch v := data.(type) {
	case Data:
		return renderTable(w, v)
	case []Data:
		for i, d := range v {
			if i > 0 {
				fmt.Fprintln(w)
			}
			if err := renderTable(w, d); err != nil {
				return err
			}
		}
		return nil
	}
	if d, ok := reflectTable(data); ok {
		return renderTable(w, d)
	}
	return (&JSONFormatter{Indent: "  "}).Format(w, data)
}

func renderTable(w io.Writer, data Data) error {
	if data.Title != "" {
		fmt.Fprintln(w, data.Title)
	}

	cfg := tablewriter.Config{}
	if len(data.RightAlign) > 0 && len(data.Headers) > 0 {
		align := make([]tw.Align, len(data.Headers))
		for i := range align {
			align[i] = tw.AlignLeft
		}
		for _, col := range data.RightAlign {
			if col >= 0 && col < len(align) {
				align[col] = tw.AlignRight
			}
		}
		cfg.Row.Alignment = tw.CellAlignment{PerColumn: align}
		cfg.Footer.Alignment = tw.CellAlignment{PerColumn: align}
	}
	table := tablewriter.NewTable(w, tablewriter.WithConfig(cfg))

	if len(data.Headers) > 0 {
		table.Header(toAny(data.Headers)...)
	}
	for _, row := range data.Rows {
		if err := table.Append(toAny(row)...); err != nil {
			return err
		}
	}
	if len(data.Footer) > 0 {
		table.Footer(toAny(data.Footer)...)
	}
	return table.Render()
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

// reflectTable turns a non-empty struct slice into one row per element, or
// a single struct into a property/value table.
func reflectTable(data any) (Data, bool) {
	v := reflect.ValueOf(data)
	switch {
	case v.Kind() == reflect.Slice && v.Len() > 0 && v.Index(0).Kind() == reflect.Struct:
		typ := v.Index(0).Type()
		d := Data{}
		for i := 0; i < typ.NumField(); i++ {
			d.Headers = append(d.Headers, header(typ.Field(i)))
		}
		for i := 0; i < v.Len(); i++ {
			elem := v.Index(i)
			row := make([]string, elem.NumField())
			for j := range row {
				row[j] = fmt.Sprintf("%v", elem.Field(j).Interface())
			}
			d.Rows = append(d.Rows, row)
		}
		return d, true
	case v.Kind() == reflect.Struct:
		d := Data{Headers: []string{"Property", "Value"}}
		for i := 0; i < v.NumField(); i++ {
			d.Rows = append(d.Rows, []string{header(v.Type().Field(i)), fmt.Sprintf("%v", v.Field(i).Interface())})
		}
		return d, true
	}
	return Data{}, false
}

// header uses the json tag, title cased, falling back to the field name.
func header(field reflect.StructField) string {
	tag := field.Tag.Get("json")
	if idx := strings.Index(tag, ","); idx >= 0 {
		tag = tag[:idx]
	}
	if tag == "" || tag == "-" {
		return field.Name
	}
	return cases.Title(language.English).String(strings.ReplaceAll(tag, "_", " "))
}
