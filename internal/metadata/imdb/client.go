// Package imdb implements the search-based lookup fallback. IMDb search
// often mis-indexes exact release years, so film lookups cover a one-year
// window either side of the target year.
package imdb

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"cinetree/internal/films"
	"cinetree/internal/metadata"
)

// Client searches and scrapes IMDb listing pages.
type Client struct {
	baseURL string
	fetcher *metadata.Fetcher
}

// New creates an IMDb client.
func New(baseURL string, fetcher *metadata.Fetcher) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, metadata.Wrap(metadata.ErrConfiguration, "imdb", "new", "base url required", nil)
	}
	if fetcher == nil {
		return nil, metadata.Wrap(metadata.ErrConfiguration, "imdb", "new", "fetcher required", nil)
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), fetcher: fetcher}, nil
}

// Name identifies the provider in logs and cache rows.
func (c *Client) Name() string { return "imdb" }

// Lookup searches feature titles released within ±1 year of the target.
// Exactly one result is an exact match; several are ambiguous and fall
// through so the operator decides, never the scraper.
func (c *Client) Lookup(ctx context.Context, id films.Identity) (metadata.Metadata, metadata.Outcome, error) {
	params := url.Values{}
	params.Set("title", id.Title)
	searchURL := fmt.Sprintf("%s/search/title?release_date=%d,%d&%s", c.baseURL, id.Year-1, id.Year+1, params.Encode())

	body, err := c.fetcher.Get(ctx, searchURL)
	if err != nil {
		return metadata.Metadata{}, metadata.OutcomeNoMatch, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return metadata.Metadata{}, metadata.OutcomeNoMatch, fmt.Errorf("parse imdb search page: %w", err)
	}

	results := doc.Find("div.lister-item.mode-advanced")
	switch results.Length() {
	case 0:
		return metadata.Metadata{}, metadata.OutcomeNoMatch, nil
	case 1:
	default:
		return metadata.Metadata{}, metadata.OutcomeAmbiguous, nil
	}

	return parseListerItem(results.First()), metadata.OutcomeExact, nil
}

// parseListerItem extracts genre, director, and stars from one search
// result block. The principals paragraph reads
// "Director: X | Stars: A, B, C" (or "Directors:" for co-directed films).
func parseListerItem(item *goquery.Selection) metadata.Metadata {
	meta := metadata.Metadata{
		Genre: strings.TrimSpace(item.Find("span.genre").First().Text()),
	}

	principals := strings.ReplaceAll(item.Find("p").Eq(2).Text(), "|", "")
	principals = strings.ReplaceAll(principals, "\n", "")

	starsIndex := strings.Index(principals, "Stars:")
	directorIndex := strings.Index(principals, "Director:")
	directorLabelLen := len("Director:")
	if directorIndex == -1 {
		directorIndex = strings.Index(principals, "Directors:")
		directorLabelLen = len("Directors:")
	}

	if directorIndex >= 0 {
		end := len(principals)
		if starsIndex > directorIndex {
			end = starsIndex
		}
		meta.Director = strings.TrimSpace(principals[directorIndex+directorLabelLen : end])
	}
	if starsIndex >= 0 {
		meta.Cast = strings.TrimSpace(principals[starsIndex+len("Stars:"):])
	}
	return meta
}
