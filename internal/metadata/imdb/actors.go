package imdb

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Nominee is one actor discovered from the Oscar nominee name searches.
type Nominee struct {
	Code string
	Role string
	Name string
}

// Credit is one filmography row scraped from a rating-sorted listing page.
type Credit struct {
	Rating float64
	Year   int
	Title  string
}

// nomineeGroups are the four Oscar acting categories used to seed the
// actors list.
var nomineeGroups = []string{
	"oscar_best_actor_nominees",
	"oscar_best_actress_nominees",
	"oscar_best_supporting_actor_nominees",
	"oscar_best_supporting_actress_nominees",
}

// nomineePageStarts covers four pages of 100 names per group.
var nomineePageStarts = []int{1, 101, 201, 301}

// filmographyPageCapacity is the row capacity of a detail-mode listing
// page. A page with fewer qualifying rows than its cumulative capacity
// means nothing further down meets the threshold, since results are
// rating-sorted descending.
const filmographyPageCapacity = 50

var yearPattern = regexp.MustCompile(`\d{4}`)

// DiscoverNominees scrapes all four nominee categories and returns the
// actors in fetch order, duplicates included; callers dedup by code.
func (c *Client) DiscoverNominees(ctx context.Context) ([]Nominee, error) {
	var nominees []Nominee
	for _, group := range nomineeGroups {
		role := "actor"
		if strings.Contains(group, "actress") {
			role = "actress"
		}
		for _, start := range nomineePageStarts {
			batch, err := c.nomineePage(ctx, group, role, start)
			if err != nil {
				return nil, err
			}
			nominees = append(nominees, batch...)
		}
	}
	return nominees, nil
}

func (c *Client) nomineePage(ctx context.Context, group, role string, start int) ([]Nominee, error) {
	pageURL := fmt.Sprintf("%s/search/name/?groups=%s&sort=alpha,asc&count=100&start=%d", c.baseURL, group, start)
	body, err := c.fetcher.Get(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse imdb name search page: %w", err)
	}

	var nominees []Nominee
	doc.Find("h3.lister-item-header").Each(func(_ int, header *goquery.Selection) {
		link := header.Find("a").First()
		href, _ := link.Attr("href")
		code := lastPathSegment(href)
		name := strings.TrimSpace(link.Text())
		if code == "" || name == "" {
			return
		}
		nominees = append(nominees, Nominee{Code: code, Role: role, Name: name})
	})
	return nominees, nil
}

// Filmography fetches an actor's movie credits sorted by user rating
// descending, keeping entries at or above minRating. Fetching stops early
// once a page yields fewer cumulative qualifying rows than capacity.
func (c *Client) Filmography(ctx context.Context, code, role string, minRating float64, maxPages int) ([]Credit, error) {
	if maxPages < 1 {
		maxPages = 1
	}
	var credits []Credit
	for page := 1; page <= maxPages; page++ {
		params := url.Values{}
		params.Set("page", strconv.Itoa(page))
		params.Set("role", code)
		params.Set("job_type", role)
		params.Set("sort", "user_rating,desc")
		params.Set("title_type", "movie")
		params.Set("explore", "title_type")
		params.Set("mode", "detail")

		body, err := c.fetcher.Get(ctx, c.baseURL+"/filmosearch/?"+params.Encode())
		if err != nil {
			return nil, err
		}
		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("parse imdb filmography page: %w", err)
		}

		doc.Find("div.lister-item.mode-detail").Each(func(_ int, film *goquery.Selection) {
			credit, ok := parseCredit(film)
			if ok && credit.Rating >= minRating {
				credits = append(credits, credit)
			}
		})

		if len(credits) < page*filmographyPageCapacity {
			break
		}
	}
	return credits, nil
}

func parseCredit(film *goquery.Selection) (Credit, bool) {
	heading := film.Find("h3").First()
	title := strings.TrimSpace(heading.Find("a").First().Text())
	title = strings.ReplaceAll(title, "|", "")
	if title == "" {
		return Credit{}, false
	}

	yearText := heading.Find("span.lister-item-year").First().Text()
	yearDigits := yearPattern.FindString(yearText)
	if yearDigits == "" {
		return Credit{}, false
	}
	year, err := strconv.Atoi(yearDigits)
	if err != nil {
		return Credit{}, false
	}

	ratingText := strings.TrimSpace(film.Find("div.ratings-bar strong").First().Text())
	if ratingText == "" {
		return Credit{}, false
	}
	rating, err := strconv.ParseFloat(ratingText, 64)
	if err != nil {
		return Credit{}, false
	}

	return Credit{Rating: rating, Year: year, Title: title}, true
}

func lastPathSegment(href string) string {
	href = strings.TrimSuffix(strings.TrimSpace(href), "/")
	if href == "" {
		return ""
	}
	if idx := strings.LastIndex(href, "/"); idx >= 0 {
		href = href[idx+1:]
	}
	if idx := strings.IndexAny(href, "?#"); idx >= 0 {
		href = href[:idx]
	}
	return href
}
