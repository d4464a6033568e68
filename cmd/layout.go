package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arcanaland/korkdex/internal/dex"
	"github.com/arcanaland/korkdex/internal/layout"
	"github.com/arcanaland/korkdex/internal/output"
)

// layoutCmd represents the layout command group
var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Build and inspect the tray layout",
}

var layoutBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Pack species and cards into trays",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, st, err := newPipeline()
		if err != nil {
			return err
		}
		defer st.Close()

		assignments, err := p.BuildLayout(cmd.Context())
		if err != nil {
			return err
		}
		printLayoutSummary(assignments)
		return nil
	},
}

var layoutListCmd = &cobra.Command{
	Use:   "list",
	Short: "List slot assignments",
	Long: `List prints the cached layout. Trays and slots are numbered from 1, the way
they are labelled on the shelf.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		assignments, err := st.Layout(cmd.Context())
		if err != nil {
			return err
		}
		if len(assignments) == 0 {
			return fmt.Errorf("no layout cached, run 'korkdex layout build' first")
		}

		if cmd.Flags().Changed("tray") {
			index, _ := cmd.Flags().GetInt("tray")
			tray, err := findTray(assignments, index)
			if err != nil {
				return err
			}
			assignments = tray.Slots
		}
		return render(cmd, assignments, output.LayoutTable(assignments))
	},
}

func init() {
	layoutCmd.AddCommand(layoutBuildCmd)
	layoutCmd.AddCommand(layoutListCmd)

	layoutListCmd.Flags().IntP("tray", "t", 0, "only list this tray (1-based)")
	addFormatFlag(layoutListCmd)
}

func printLayoutSummary(assignments []dex.SlotAssignment) {
	fmt.Printf("Layout: %d slots over %d trays.\n", len(assignments), len(layout.Trays(assignments)))
}

// findTray returns the tray with 1-based number index.
func findTray(assignments []dex.SlotAssignment, index int) (layout.Tray, error) {
	for _, t := range layout.Trays(assignments) {
		if t.Index == index-1 {
			return t, nil
		}
	}
	return layout.Tray{}, fmt.Errorf("tray %d does not exist", index)
}
