package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	colorize "github.com/fatih/color"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/arcanaland/korkdex/internal/ansi"
	"github.com/arcanaland/korkdex/internal/dex"
	"github.com/arcanaland/korkdex/internal/layout"
)

const trayCellWidth = 14

var (
	emptyColor = colorful.Color{R: 0.25, G: 0.25, B: 0.28}
	fullColor  = colorful.Color{R: 0.20, G: 0.70, B: 0.35}
	startColor = colorful.Color{R: 0.80, G: 0.35, B: 0.25}
)

var trayCmd = &cobra.Command{
	Use:   "tray <index>",
	Short: "Draw one tray with the fill level of every slot",
	Long: `Tray draws the slots of one tray (numbered from 1) as a grid. Each cell shows
the slot number, the species and how many cards the slot holds; the cell
colour goes from grey when empty to green when the slot is full.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := strconv.Atoi(args[0])
		if err != nil || index < 1 {
			return fmt.Errorf("invalid tray index %q", args[0])
		}

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		assignments, err := st.Layout(cmd.Context())
		if err != nil {
			return err
		}
		fachSize := cfg.FachSize
		if fachSize <= 0 {
			fachSize = layout.DefaultFachSize
		}
		fill := layout.Fill(assignments, fachSize)

		var slots []dex.SlotAssignment
		var slotFill []int
		for i, a := range assignments {
			if a.Tray == index-1 {
				slots = append(slots, a)
				slotFill = append(slotFill, fill[i])
			}
		}
		if len(slots) == 0 {
			return fmt.Errorf("tray %d does not exist", index)
		}

		width, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || width <= 0 {
			width = 80
		}
		columns := max(1, (width-2)/(trayCellWidth+1))

		fmt.Println()
		fmt.Println(colorize.CyanString("Tray %d", index) + colorize.HiBlackString(" · %d slots", len(slots)))
		fmt.Println()
		for row := 0; row < len(slots); row += columns {
			end := min(row+columns, len(slots))
			var top, bottom []string
			for i := row; i < end; i++ {
				bg := fillColor(slotFill[i], fachSize)
				top = append(top, trayCell(fmt.Sprintf("%2d %s", slots[i].Slot+1, slots[i].Name), bg))
				bottom = append(bottom, trayCell(fmt.Sprintf("   %d/%d", slotFill[i], fachSize), bg))
			}
			fmt.Println("  " + strings.Join(top, " "))
			fmt.Println("  " + strings.Join(bottom, " "))
			fmt.Println()
		}
		return nil
	},
}

// fillColor blends from the empty colour through startColor to fullColor.
func fillColor(n, fachSize int) colorful.Color {
	if n <= 0 {
		return emptyColor
	}
	t := float64(n) / float64(fachSize)
	return startColor.BlendHcl(fullColor, t).Clamped()
}

func trayCell(text string, bg colorful.Color) string {
	runes := []rune(text)
	if len(runes) > trayCellWidth {
		runes = append(runes[:trayCellWidth-1], '…')
	}
	text = string(runes) + strings.Repeat(" ", trayCellWidth-len(runes))

	var buf strings.Builder
	for _, r := range text {
		buf.WriteString(ansi.Cell(r, colorful.Color{R: 1, G: 1, B: 1}, bg))
	}
	return buf.String()
}
