package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arcanaland/korkdex/internal/card"
)

// cardsCmd represents the cards command group
var cardsCmd = &cobra.Command{
	Use:   "cards",
	Short: "Manage the cached card dataset",
}

var cardsResolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve owned cards against the card catalog",
	Long: `Resolve reads the collection export, skips cards that are already cached and
looks the rest up in the card catalog, one batch per invocation. The card
dataset is saved after every batch, so an interrupted or failed run keeps
its progress. Pass --all to keep going until every card is resolved.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		if cmd.Flags().Changed("batch") {
			cfg.BatchSize, _ = cmd.Flags().GetInt("batch")
		}

		ids, err := ownedIDs()
		if err != nil {
			return err
		}
		p, st, err := newPipeline()
		if err != nil {
			return err
		}
		defer st.Close()

		res, err := p.ResolveCards(cmd.Context(), ids, all, func(r card.Result) {
			fmt.Printf("Resolved %d cards, %d remaining.\n", r.Resolved, r.Remaining)
		})
		if err != nil {
			var rerr *card.ResolveError
			if card.IsLookupError(err) && errors.As(err, &rerr) {
				return fmt.Errorf("card resolution stopped after %d cards, check the collection row for %s: %w", res.Resolved, rerr.CardID, err)
			}
			return fmt.Errorf("card resolution stopped after %d cards: %w", res.Resolved, err)
		}
		if res.Done() {
			fmt.Printf("All %d cards resolved.\n", len(res.Records))
		} else {
			fmt.Printf("%d cards left, run again to continue.\n", res.Remaining)
		}
		return nil
	},
}

func init() {
	cardsCmd.AddCommand(cardsResolveCmd)

	cardsResolveCmd.Flags().Int("batch", 0, "cards per batch (default from config, 0 resolves everything)")
	cardsResolveCmd.Flags().Bool("all", false, "resolve batches until no card is left")
}
