package cmd

import (
	"github.com/spf13/cobra"

	"github.com/arcanaland/korkdex/internal/output"
	"github.com/arcanaland/korkdex/internal/stats"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show collection completeness per generation",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := tables()
		if err != nil {
			return err
		}
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		sp, err := st.Species(cmd.Context())
		if err != nil {
			return err
		}
		cards, err := st.Cards(cmd.Context())
		if err != nil {
			return err
		}

		report := stats.Compute(sp, cards, t, cfg.FachSize)
		return render(cmd, report, output.StatsTables(report))
	},
}

func init() {
	addFormatFlag(statsCmd)
}
