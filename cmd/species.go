package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// speciesCmd represents the species command group
var speciesCmd = &cobra.Command{
	Use:   "species",
	Short: "Manage the cached species dataset",
}

var speciesFetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch species and regional variants from the species catalog",
	Long: `Fetch queries the species catalog for every national number in the
configured range, keeps default forms and regional variants, and replaces
the cached species dataset. Nothing is written if any request fails.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		from, to := cfg.SpeciesAPI.From, cfg.SpeciesAPI.To
		if cmd.Flags().Changed("from") {
			from, _ = cmd.Flags().GetInt("from")
		}
		if cmd.Flags().Changed("to") {
			to, _ = cmd.Flags().GetInt("to")
		}

		p, st, err := newPipeline()
		if err != nil {
			return err
		}
		defer st.Close()

		records, err := p.FetchSpecies(cmd.Context(), from, to)
		if err != nil {
			return fmt.Errorf("species fetch failed: %w", err)
		}
		fmt.Printf("Saved %d species records (national numbers %d-%d).\n", len(records), from, to)
		return nil
	},
}

func init() {
	speciesCmd.AddCommand(speciesFetchCmd)

	speciesFetchCmd.Flags().Int("from", 1, "first national number (default from config)")
	speciesFetchCmd.Flags().Int("to", 1010, "last national number (default from config)")
}
