// Package omdb implements the keyed OMDb lookup service, the first
// provider in the resolution chain.
package omdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"cinetree/internal/films"
	"cinetree/internal/metadata"
)

// The credential is validated by checking its effect against one known
// answer: fetching this IMDb ID must return this exact title.
const (
	fixtureIMDBID = "tt0031381"
	fixtureTitle  = "Gone with the Wind"
)

// Client queries the OMDb API by title and year.
type Client struct {
	apiKey  string
	baseURL string
	fetcher *metadata.Fetcher
}

// New creates an OMDb client.
func New(apiKey, baseURL string, fetcher *metadata.Fetcher) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, metadata.Wrap(metadata.ErrConfiguration, "omdb", "new", "api key required", nil)
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, metadata.Wrap(metadata.ErrConfiguration, "omdb", "new", "base url required", nil)
	}
	if fetcher == nil {
		return nil, metadata.Wrap(metadata.ErrConfiguration, "omdb", "new", "fetcher required", nil)
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		fetcher: fetcher,
	}, nil
}

// Name identifies the provider in logs and cache rows.
func (c *Client) Name() string { return "omdb" }

type payload struct {
	Response string `json:"Response"`
	Title    string `json:"Title"`
	Director string `json:"Director"`
	Genre    string `json:"Genre"`
	Actors   string `json:"Actors"`
}

// Validate checks the configured credential against the fixture query.
// A false result means the key was rejected; the caller should degrade to
// the fallback provider rather than abort.
func (c *Client) Validate(ctx context.Context) (bool, error) {
	params := url.Values{}
	params.Set("apikey", c.apiKey)
	params.Set("i", fixtureIMDBID)

	body, err := c.fetcher.Get(ctx, c.baseURL+"/?"+params.Encode())
	if err != nil {
		return false, err
	}
	var response payload
	if err := json.Unmarshal(body, &response); err != nil {
		return false, fmt.Errorf("decode omdb validation response: %w", err)
	}
	return response.Title == fixtureTitle, nil
}

// Lookup queries OMDb by exact title and year. The t= search returns at
// most one film, so the outcome is either exact or no match.
func (c *Client) Lookup(ctx context.Context, id films.Identity) (metadata.Metadata, metadata.Outcome, error) {
	params := url.Values{}
	params.Set("apikey", c.apiKey)
	params.Set("t", id.Title)
	params.Set("y", strconv.Itoa(id.Year))

	body, err := c.fetcher.Get(ctx, c.baseURL+"/?"+params.Encode())
	if err != nil {
		return metadata.Metadata{}, metadata.OutcomeNoMatch, err
	}

	var response payload
	if err := json.Unmarshal(body, &response); err != nil {
		return metadata.Metadata{}, metadata.OutcomeNoMatch, fmt.Errorf("decode omdb response: %w", err)
	}
	if !strings.EqualFold(response.Response, "True") {
		return metadata.Metadata{}, metadata.OutcomeNoMatch, nil
	}
	return metadata.Metadata{
		Director: response.Director,
		Genre:    response.Genre,
		Cast:     response.Actors,
	}, metadata.OutcomeExact, nil
}
