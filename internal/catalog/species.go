package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/arcanaland/korkdex/internal/species"
)

// DefaultSpeciesURL is the public species catalog.
const DefaultSpeciesURL = "https://pokeapi.co/api/v2"

type speciesResponse struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Varieties []struct {
		IsDefault bool `json:"is_default"`
		Pokemon   struct {
			Name string `json:"name"`
		} `json:"pokemon"`
	} `json:"varieties"`
}

// SpeciesClient fetches species entries by national number.
type SpeciesClient struct {
	client  *Client
	baseURL string
}

// NewSpeciesClient creates a species client. An empty baseURL selects
// DefaultSpeciesURL.
func NewSpeciesClient(baseURL string, opts ...Option) *SpeciesClient {
	if baseURL == "" {
		baseURL = DefaultSpeciesURL
	}
	return &SpeciesClient{
		client:  NewClient(opts...),
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// FetchSpecies returns the species with national number nr and its
// varieties in catalog order.
func (c *SpeciesClient) FetchSpecies(ctx context.Context, nr int) (species.Entry, error) {
	var resp speciesResponse
	url := fmt.Sprintf("%s/pokemon-species/%d", c.baseURL, nr)
	if err := c.client.GetJSON(ctx, url, &resp); err != nil {
		return species.Entry{}, err
	}

	entry := species.Entry{Nr: resp.ID, Name: resp.Name}
	if entry.Nr == 0 {
		entry.Nr = nr
	}
	for _, v := range resp.Varieties {
		entry.Varieties = append(entry.Varieties, species.Variety{
			Name:      v.Pokemon.Name,
			IsDefault: v.IsDefault,
		})
	}
	return entry, nil
}
