package imdb

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func nameHeader(code, name string) string {
	return fmt.Sprintf(`<h3 class="lister-item-header"><span class="lister-item-index">1.</span> <a href="/name/%s/">%s</a></h3>`, code, name)
}

func detailItem(title string, year int, rating string) string {
	return fmt.Sprintf(`<div class="lister-item mode-detail">
<h3 class="lister-item-header"><a href="/title/tt0000001/">%s</a> <span class="lister-item-year">(%d)</span></h3>
<div class="ratings-bar"><strong>%s</strong></div>
</div>`, title, year, rating)
}

func TestDiscoverNomineesCoversAllGroups(t *testing.T) {
	var requests []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, r.URL.RawQuery)
		group := r.URL.Query().Get("groups")
		start := r.URL.Query().Get("start")
		fmt.Fprintf(w, "<html><body>%s</body></html>", nameHeader("nm"+start, group+" nominee "+start))
	}))
	defer server.Close()

	client, err := New(server.URL, testFetcher())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	nominees, err := client.DiscoverNominees(context.Background())
	if err != nil {
		t.Fatalf("DiscoverNominees returned error: %v", err)
	}

	// 4 categories, 4 pages of 100 each.
	if len(requests) != 16 {
		t.Fatalf("expected 16 page fetches, got %d", len(requests))
	}
	if len(nominees) != 16 {
		t.Fatalf("expected 16 nominees, got %d", len(nominees))
	}

	roles := map[string]int{}
	for _, nominee := range nominees {
		roles[nominee.Role]++
		if nominee.Code == "" || !strings.HasPrefix(nominee.Code, "nm") {
			t.Fatalf("unexpected nominee code %q", nominee.Code)
		}
	}
	if roles["actor"] != 8 || roles["actress"] != 8 {
		t.Fatalf("unexpected role split: %v", roles)
	}
}

func TestFilmographyFiltersByRating(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("role"); got != "nm0000138" {
			t.Errorf("unexpected role code %q", got)
		}
		if got := r.URL.Query().Get("job_type"); got != "actor" {
			t.Errorf("unexpected job type %q", got)
		}
		fmt.Fprintf(w, "<html><body>%s\n%s\n%s</body></html>",
			detailItem("Inception", 2010, "8.8"),
			detailItem("Titanic", 1997, "7.9"),
			detailItem("The Beach", 2000, "6.6"),
		)
	}))
	defer server.Close()

	client, err := New(server.URL, testFetcher())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	credits, err := client.Filmography(context.Background(), "nm0000138", "actor", 7.0, 3)
	if err != nil {
		t.Fatalf("Filmography returned error: %v", err)
	}
	if len(credits) != 2 {
		t.Fatalf("expected 2 credits above threshold, got %d", len(credits))
	}
	if credits[0].Title != "Inception" || credits[0].Year != 2010 || credits[0].Rating != 8.8 {
		t.Fatalf("unexpected first credit: %+v", credits[0])
	}
	if credits[1].Title != "Titanic" {
		t.Fatalf("unexpected second credit: %+v", credits[1])
	}
}

func TestFilmographyStopsAfterShortPage(t *testing.T) {
	pages := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pages++
		// Fewer qualifying rows than a full page: nothing further down
		// can qualify, so fetching must stop here.
		fmt.Fprintf(w, "<html><body>%s</body></html>", detailItem("Titanic", 1997, "7.9"))
	}))
	defer server.Close()

	client, err := New(server.URL, testFetcher())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := client.Filmography(context.Background(), "nm0000701", "actress", 7.0, 5); err != nil {
		t.Fatalf("Filmography returned error: %v", err)
	}
	if pages != 1 {
		t.Fatalf("expected early stop after 1 page, fetched %d", pages)
	}
}

func TestFilmographySkipsMalformedItems(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "<html><body>%s\n%s</body></html>",
			// No rating yet: the ratings bar is absent for unreleased films.
			`<div class="lister-item mode-detail"><h3 class="lister-item-header"><a href="/title/tt1/">Upcoming</a> <span class="lister-item-year">(2027)</span></h3></div>`,
			detailItem("Titanic", 1997, "7.9"),
		)
	}))
	defer server.Close()

	client, err := New(server.URL, testFetcher())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	credits, err := client.Filmography(context.Background(), "nm0000701", "actress", 7.0, 1)
	if err != nil {
		t.Fatalf("Filmography returned error: %v", err)
	}
	if len(credits) != 1 || credits[0].Title != "Titanic" {
		t.Fatalf("expected only the rated film, got %+v", credits)
	}
}

func TestLastPathSegment(t *testing.T) {
	cases := map[string]string{
		"/name/nm0000138/":        "nm0000138",
		"/name/nm0000138":         "nm0000138",
		"/name/nm0000138/?ref_=x": "",
		"nm0000138":               "nm0000138",
		"":                        "",
	}
	for href, want := range cases {
		if got := lastPathSegment(href); got != want {
			t.Fatalf("lastPathSegment(%q) = %q, want %q", href, got, want)
		}
	}
}
