package cmd

import (
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the whole pipeline",
	Long: `Run fetches species when none are cached (or with --refresh), resolves every
owned card in batches and rebuilds the layout.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		refresh, _ := cmd.Flags().GetBool("refresh")

		ids, err := ownedIDs()
		if err != nil {
			return err
		}
		p, st, err := newPipeline()
		if err != nil {
			return err
		}
		defer st.Close()

		assignments, err := p.Run(cmd.Context(), ids, cfg.SpeciesAPI.From, cfg.SpeciesAPI.To, refresh)
		if err != nil {
			return err
		}
		printLayoutSummary(assignments)
		return nil
	},
}

func init() {
	runCmd.Flags().Bool("refresh", false, "fetch species again even if cached")
}
