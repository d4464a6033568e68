package cmd

import (
	"fmt"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/korkdex/internal/validator"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the cached datasets for consistency",
	Long: `Validate cross-checks the cached species, card and layout datasets. Duplicate
card IDs, gaps in the layout and slot counts that disagree with the card
counts are errors. Shared species keys, cards matching no species and
empty datasets are warnings.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		sp, err := st.Species(ctx)
		if err != nil {
			return err
		}
		cards, err := st.Cards(ctx)
		if err != nil {
			return err
		}
		assignments, err := st.Layout(ctx)
		if err != nil {
			return err
		}

		results := validator.NewValidator(sp, cards, assignments, cfg.FachSize).Validate()

		fmt.Println("Validation Results:")
		fmt.Println("-------------------")
		fmt.Printf("%d species, %d cards, %d slots\n\n", len(sp), len(cards), len(assignments))

		if results.OK() {
			fmt.Println(colorize.GreenString("✅ Datasets are consistent."))
		} else {
			fmt.Println(colorize.RedString("❌ Found %d errors:", len(results.Errors)))
			for i, e := range results.Errors {
				fmt.Printf("%d. %s\n", i+1, e)
			}
		}

		if len(results.Warnings) > 0 {
			fmt.Println()
			fmt.Println(colorize.YellowString("Warnings:"))
			for i, w := range results.Warnings {
				fmt.Printf("%d. %s\n", i+1, w)
			}
		}

		if !results.OK() {
			return fmt.Errorf("validation failed")
		}
		return nil
	},
}
