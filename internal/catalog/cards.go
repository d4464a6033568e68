package catalog

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/arcanaland/korkdex/internal/card"
)

// DefaultCardsURL is the public card catalog.
const DefaultCardsURL = "https://api.pokemontcg.io/v2"

// APIKeyHeader carries the optional card catalog key.
const APIKeyHeader = "X-Api-Key"

type cardsResponse struct {
	Data []cardDTO `json:"data"`
}

type cardDTO struct {
	ID                     string   `json:"id"`
	Name                   string   `json:"name"`
	Number                 string   `json:"number"`
	Rarity                 string   `json:"rarity"`
	Supertype              string   `json:"supertype"`
	Subtypes               []string `json:"subtypes"`
	NationalPokedexNumbers []int    `json:"nationalPokedexNumbers"`
	Set                    struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"set"`
	Images struct {
		Small string `json:"small"`
		Large string `json:"large"`
	} `json:"images"`
}

func (d cardDTO) card() card.Card {
	return card.Card{
		ID:        d.ID,
		Name:      d.Name,
		Number:    d.Number,
		SetID:     d.Set.ID,
		SetName:   d.Set.Name,
		NatDex:    d.NationalPokedexNumbers,
		Rarity:    d.Rarity,
		ImageURL:  d.Images.Small,
		Subtypes:  d.Subtypes,
		Supertype: d.Supertype,
	}
}

// CardClient searches the card catalog.
type CardClient struct {
	client  *Client
	images  *Client // No API key, images live on another host
	baseURL string
}

// NewCardClient creates a card client. apiKey may be empty; the catalog
// then applies its anonymous rate limit.
func NewCardClient(baseURL, apiKey string, opts ...Option) *CardClient {
	if baseURL == "" {
		baseURL = DefaultCardsURL
	}
	apiOpts := append(append([]Option(nil), opts...), WithHeader(APIKeyHeader, apiKey))
	imageOpts := append(append([]Option(nil), opts...), WithAccept("image/*"))
	return &CardClient{
		client:  NewClient(apiOpts...),
		images:  NewClient(imageOpts...),
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Query builds the search expression for a set code and collector number.
func Query(setCode, number string) string {
	return fmt.Sprintf("set.id:%s number:%s", setCode, number)
}

// FetchCards returns every catalog card printed in setCode with the given
// collector number.
func (c *CardClient) FetchCards(ctx context.Context, setCode, number string) ([]card.Card, error) {
	q := url.Values{}
	q.Set("q", Query(setCode, number))

	var resp cardsResponse
	if err := c.client.GetJSON(ctx, c.baseURL+"/cards?"+q.Encode(), &resp); err != nil {
		return nil, err
	}

	cards := make([]card.Card, 0, len(resp.Data))
	for _, d := range resp.Data {
		cards = append(cards, d.card())
	}
	return cards, nil
}

// FetchImage downloads raw image bytes, typically Card.ImageURL.
func (c *CardClient) FetchImage(ctx context.Context, imageURL string) ([]byte, error) {
	if imageURL == "" {
		return nil, fmt.Errorf("card has no image: %w", ErrNotFound)
	}
	return c.images.Get(ctx, imageURL)
}
