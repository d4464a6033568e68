package output

import (
	"fmt"
	"strconv"

	"github.com/arcanaland/korkdex/internal/dex"
	"github.com/arcanaland/korkdex/internal/stats"
)

// LayoutTable lists slot assignments with one-based tray and slot numbers,
// the way they are labelled on the physical trays.
func LayoutTable(assignments []dex.SlotAssignment) Data {
	d := Data{
		Headers:    []string{"Tray", "Slot", "Nr", "Gen", "Name", "Cards"},
		RightAlign: []int{0, 1, 2, 3, 5},
	}
	for _, a := range assignments {
		d.Rows = append(d.Rows, []string{
			strconv.Itoa(a.Tray + 1),
			strconv.Itoa(a.Slot + 1),
			fmt.Sprintf("%04d", a.Nr),
			strconv.Itoa(a.Gen),
			a.Name,
			strconv.Itoa(a.Count),
		})
	}
	return d
}

// StatsTables renders a report as a completeness table followed by the
// cards-per-species histogram.
func StatsTables(r stats.Report) []Data {
	summary := Data{
		Title:      "Completeness",
		Headers:    []string{"Gen", "Species", "Owned", "Complete", "Cards", "Slots"},
		RightAlign: []int{0, 1, 2, 3, 4, 5},
	}
	for _, g := range r.Generations {
		summary.Rows = append(summary.Rows, generationRow(strconv.Itoa(g.Gen), g))
	}
	summary.Footer = generationRow("Total", r.Total)

	out := []Data{summary}
	if len(r.Histogram) > 0 {
		hist := Data{
			Title:      "Cards per species",
			Headers:    []string{"Gen", "Cards", "Species"},
			RightAlign: []int{0, 1, 2},
		}
		for _, b := range r.Histogram {
			hist.Rows = append(hist.Rows, []string{strconv.Itoa(b.Gen), strconv.Itoa(b.Cards), strconv.Itoa(b.Species)})
		}
		out = append(out, hist)
	}
	if r.Unmatched > 0 {
		out = append(out, Data{
			Headers: []string{"Unmatched cards"},
			Rows:    [][]string{{strconv.Itoa(r.Unmatched)}},
		})
	}
	return out
}

func generationRow(label string, g stats.Generation) []string {
	return []string{
		label,
		strconv.Itoa(g.Species),
		strconv.Itoa(g.Owned),
		fmt.Sprintf("%.1f%%", g.Completeness),
		strconv.Itoa(g.Cards),
		strconv.Itoa(g.Slots),
	}
}
