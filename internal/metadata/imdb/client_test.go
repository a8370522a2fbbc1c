package imdb

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cinetree/internal/films"
	"cinetree/internal/metadata"
)

func testFetcher() *metadata.Fetcher {
	return metadata.NewFetcher(2*time.Second, 1, nil)
}

func listerItem(genre, principals string) string {
	return fmt.Sprintf(`<div class="lister-item mode-advanced">
<div class="lister-item-content">
<p class="text-muted"><span class="genre">%s</span></p>
<p class="text-muted">Plot summary.</p>
<p class="text-muted">%s</p>
</div>
</div>`, genre, principals)
}

func searchServer(t *testing.T, wantQuery string, items ...string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/search/title") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if wantQuery != "" && r.URL.RawQuery != wantQuery {
			t.Errorf("unexpected query %q, want %q", r.URL.RawQuery, wantQuery)
		}
		fmt.Fprintf(w, "<html><body>%s</body></html>", strings.Join(items, "\n"))
	}))
}

func TestLookupSingleResultIsExact(t *testing.T) {
	principals := `Director: <a href="#">James Cameron</a> <span class="ghost">|</span> Stars: <a href="#">Leonardo DiCaprio</a>, <a href="#">Kate Winslet</a>`
	server := searchServer(t, "release_date=1996,1998&title=Titanic", listerItem("Drama, Romance", principals))
	defer server.Close()

	client, err := New(server.URL, testFetcher())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	meta, outcome, err := client.Lookup(context.Background(), films.Identity{Title: "Titanic", Year: 1997})
	if err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}
	if outcome != metadata.OutcomeExact {
		t.Fatalf("expected exact outcome, got %s", outcome)
	}
	if meta.Genre != "Drama, Romance" {
		t.Fatalf("unexpected genre %q", meta.Genre)
	}
	if meta.Director != "James Cameron" {
		t.Fatalf("unexpected director %q", meta.Director)
	}
	if meta.Cast != "Leonardo DiCaprio, Kate Winslet" {
		t.Fatalf("unexpected cast %q", meta.Cast)
	}
}

func TestLookupCoDirectedFilm(t *testing.T) {
	principals := `Directors: <a href="#">Lana Wachowski</a>, <a href="#">Lilly Wachowski</a> <span class="ghost">|</span> Stars: <a href="#">Keanu Reeves</a>`
	server := searchServer(t, "", listerItem("Action, Sci-Fi", principals))
	defer server.Close()

	client, err := New(server.URL, testFetcher())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	meta, outcome, err := client.Lookup(context.Background(), films.Identity{Title: "The Matrix", Year: 1999})
	if err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}
	if outcome != metadata.OutcomeExact {
		t.Fatalf("expected exact outcome, got %s", outcome)
	}
	if meta.Director != "Lana Wachowski, Lilly Wachowski" {
		t.Fatalf("unexpected directors %q", meta.Director)
	}
}

func TestLookupNoResults(t *testing.T) {
	server := searchServer(t, "")
	defer server.Close()

	client, err := New(server.URL, testFetcher())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, outcome, err := client.Lookup(context.Background(), films.Identity{Title: "Nonexistent", Year: 1997})
	if err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}
	if outcome != metadata.OutcomeNoMatch {
		t.Fatalf("expected no match, got %s", outcome)
	}
}

func TestLookupMultipleResultsAreAmbiguous(t *testing.T) {
	principals := `Director: <a href="#">Someone</a> <span class="ghost">|</span> Stars: <a href="#">Somebody</a>`
	server := searchServer(t, "",
		listerItem("Drama", principals),
		listerItem("Comedy", principals),
	)
	defer server.Close()

	client, err := New(server.URL, testFetcher())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	meta, outcome, err := client.Lookup(context.Background(), films.Identity{Title: "Remake", Year: 2005})
	if err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}
	if outcome != metadata.OutcomeAmbiguous {
		t.Fatalf("expected ambiguous outcome, got %s", outcome)
	}
	if meta != (metadata.Metadata{}) {
		t.Fatalf("ambiguous lookup must not pick a candidate, got %+v", meta)
	}
}

func TestLookupMissingPrincipals(t *testing.T) {
	server := searchServer(t, "", listerItem("Documentary", "No credits listed."))
	defer server.Close()

	client, err := New(server.URL, testFetcher())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	meta, outcome, err := client.Lookup(context.Background(), films.Identity{Title: "Untitled", Year: 2010})
	if err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}
	if outcome != metadata.OutcomeExact {
		t.Fatalf("expected exact outcome, got %s", outcome)
	}
	if meta.Director != "" || meta.Cast != "" {
		t.Fatalf("expected empty principals, got %+v", meta)
	}
	if meta.Genre != "Documentary" {
		t.Fatalf("unexpected genre %q", meta.Genre)
	}
}
