package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arcanaland/korkdex/internal/catalog"
	"github.com/arcanaland/korkdex/internal/collection"
	"github.com/arcanaland/korkdex/internal/dex"
	"github.com/arcanaland/korkdex/internal/output"
	"github.com/arcanaland/korkdex/internal/pipeline"
	"github.com/arcanaland/korkdex/internal/store"
)

func openStore() (store.Store, error) {
	st, err := store.Open(cfg.Backend, cfg.ResolvedDataDir())
	if err != nil {
		return nil, fmt.Errorf("error opening store: %w", err)
	}
	return st, nil
}

func tables() (dex.Tables, error) {
	t, err := cfg.Tables()
	if err != nil {
		return dex.Tables{}, fmt.Errorf("invalid generation tables: %w", err)
	}
	return t, nil
}

func speciesClient() *catalog.SpeciesClient {
	return catalog.NewSpeciesClient(cfg.SpeciesAPI.BaseURL, catalog.WithDelay(cfg.RequestDelay()))
}

func cardClient() *catalog.CardClient {
	return catalog.NewCardClient(cfg.CardAPI.BaseURL, cfg.CardAPI.APIKey, catalog.WithDelay(cfg.RequestDelay()))
}

// newPipeline opens the store and wires both catalog clients. The caller
// closes the store.
func newPipeline() (*pipeline.Pipeline, store.Store, error) {
	t, err := tables()
	if err != nil {
		return nil, nil, err
	}
	st, err := openStore()
	if err != nil {
		return nil, nil, err
	}
	p := pipeline.New(st, speciesClient(), cardClient(), pipeline.Options{
		Tables:    t,
		FachSize:  cfg.FachSize,
		TraySize:  cfg.TraySize,
		BatchSize: cfg.BatchSize,
	})
	return p, st, nil
}

// ownedIDs reads the card IDs of the configured collection category.
func ownedIDs() ([]string, error) {
	if cfg.CollectionPath == "" {
		return nil, fmt.Errorf("collection_path is not set, see 'korkdex config path'")
	}
	rows, err := collection.Load(cfg.CollectionPath, cfg.Category)
	if err != nil {
		return nil, err
	}
	return collection.IDs(rows), nil
}

func addFormatFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("format", "o", "", "output format: table, json, yaml (default table on a terminal, json otherwise)")
}

// render writes data to stdout in the format chosen by --format.
func render(cmd *cobra.Command, data, table any) error {
	flag, _ := cmd.Flags().GetString("format")
	format, err := output.ParseFormat(flag)
	if err != nil {
		return err
	}
	format = output.DetectFormat(format)
	if format == output.FormatTable && table != nil {
		data = table
	}
	return output.NewFormatter(format).Format(os.Stdout, data)
}
