package cmd

import (
	"context"
	"crypto/md5"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/arcanaland/korkdex/internal/ansi"
	"github.com/arcanaland/korkdex/internal/card"
	"github.com/arcanaland/korkdex/internal/catalog"
	"github.com/arcanaland/korkdex/internal/config"
	"github.com/arcanaland/korkdex/internal/dex"
	"github.com/arcanaland/korkdex/internal/layout"
)

var showCmd = &cobra.Command{
	Use:   "show <card_id>",
	Short: "Display a card with ANSI art and its place in the trays",
	Long: `Show looks a card up in the card catalog and prints its image as terminal
art next to the card details and the tray and slot it is filed under.

Examples:
  korkdex show sv1-12
  korkdex show --no-art swsh12pt5gg-GG01`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		noArt, _ := cmd.Flags().GetBool("no-art")
		ctx := cmd.Context()

		id, err := card.ParseID(args[0])
		if err != nil {
			return err
		}
		t, err := tables()
		if err != nil {
			return err
		}

		client := cardClient()
		matches, err := client.FetchCards(ctx, id.SetCode, id.Number)
		if err != nil {
			return fmt.Errorf("error looking up card: %w", err)
		}
		switch len(matches) {
		case 1:
		case 0:
			return &card.ResolveError{CardID: id.Raw, SetCode: id.SetCode, Number: id.Number, Err: card.ErrCardNotFound}
		default:
			return &card.ResolveError{CardID: id.Raw, SetCode: id.SetCode, Number: id.Number, Matches: len(matches), Err: card.ErrAmbiguousCardLookup}
		}
		c := matches[0]

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()
		assignments, err := st.Layout(ctx)
		if err != nil {
			return err
		}

		var art []string
		if !noArt && c.ImageURL != "" {
			a, err := cardArt(ctx, client, c.ImageURL)
			if err != nil {
				return fmt.Errorf("error rendering card art: %w", err)
			}
			art = strings.Split(strings.TrimSuffix(a, "\n"), "\n")
		}

		width, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || width <= 0 {
			width = 80
		}

		fmt.Println()
		fmt.Print(ansi.SideBySide(art, cardInfo(c, t, assignments, width), 4))
		fmt.Println()
		return nil
	},
}

func init() {
	showCmd.Flags().Bool("no-art", false, "skip downloading and drawing the card image")
}

func cardInfo(c card.Card, t dex.Tables, assignments []dex.SlotAssignment, width int) []string {
	label := func(s string) string { return colorize.CyanString("%-9s", s) }

	lines := []string{
		label("Card:") + colorize.HiWhiteString("%s", c.Name),
		label("ID:") + colorize.HiWhiteString("%s", c.ID),
		label("Set:") + colorize.HiWhiteString("%s (%s)", c.SetName, c.SetID),
	}
	if c.Rarity != "" {
		lines = append(lines, label("Rarity:")+colorize.HiWhiteString("%s", c.Rarity))
	}
	if len(c.Subtypes) > 0 {
		for _, l := range ansi.Wrap(c.Supertype+" · "+strings.Join(c.Subtypes, ", "), max(20, width-60)) {
			lines = append(lines, label("Type:")+colorize.HiWhiteString("%s", l))
		}
	}
	lines = append(lines, "")

	if len(c.NatDex) != 1 {
		return append(lines, colorize.YellowString("Not filed: card depicts %d species.", len(c.NatDex)))
	}
	nr := c.NatDex[0]
	gen, ok := t.RegionGeneration(c.Name)
	if !ok {
		gen, ok = t.GenerationFor(nr)
	}
	if !ok {
		return append(lines, colorize.YellowString("Not filed: national number %d has no generation.", nr))
	}
	key := dex.Key{Nr: nr, Gen: gen}
	lines = append(lines, label("Species:")+colorize.HiWhiteString("#%04d · generation %d", nr, gen))

	found := layout.Find(assignments, key)
	if len(found) == 0 {
		return append(lines, colorize.YellowString("Not in the layout, run 'korkdex layout build'."))
	}
	for i, a := range found {
		l := "Slot:"
		if i > 0 {
			l = ""
		}
		lines = append(lines, label(l)+colorize.HiWhiteString("tray %d, slot %d", a.Tray+1, a.Slot+1))
	}
	lines = append(lines, label("Owned:")+colorize.HiWhiteString("%d cards of %s", found[0].Count, found[0].Name))
	return lines
}

// cardArt returns the ANSI rendering of imageURL, cached by URL in the
// user cache dir.
func cardArt(ctx context.Context, client *catalog.CardClient, imageURL string) (string, error) {
	cacheDir := filepath.Join(config.GetCacheDir(), "ansi_cache")
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create ANSI cache directory: %w", err)
	}
	cachePath := filepath.Join(cacheDir, fmt.Sprintf("%x.ansi", md5.Sum([]byte(imageURL))))
	if data, err := os.ReadFile(cachePath); err == nil {
		return string(data), nil
	}

	data, err := client.FetchImage(ctx, imageURL)
	if err != nil {
		return "", err
	}
	img, err := ansi.Decode(data)
	if err != nil {
		return "", err
	}
	art := ansi.FromImage(img, 32, 22)
	if err := os.WriteFile(cachePath, []byte(art), 0644); err != nil {
		return "", fmt.Errorf("failed to write ANSI art to cache: %w", err)
	}
	return art, nil
}
