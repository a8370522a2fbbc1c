package omdb

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cinetree/internal/films"
	"cinetree/internal/metadata"
)

func testFetcher() *metadata.Fetcher {
	return metadata.NewFetcher(2*time.Second, 1, nil)
}

func TestNewRequiresKeyAndURL(t *testing.T) {
	if _, err := New("", "http://example.test", testFetcher()); err == nil {
		t.Fatal("expected error for empty api key")
	}
	if _, err := New("key", "", testFetcher()); err == nil {
		t.Fatal("expected error for empty base url")
	}
	if _, err := New("key", "http://example.test", nil); err == nil {
		t.Fatal("expected error for nil fetcher")
	}
}

func TestValidateAcceptsWorkingKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("i"); got != "tt0031381" {
			t.Errorf("unexpected fixture id %q", got)
		}
		if got := r.URL.Query().Get("apikey"); got != "secret" {
			t.Errorf("unexpected api key %q", got)
		}
		fmt.Fprint(w, `{"Response":"True","Title":"Gone with the Wind"}`)
	}))
	defer server.Close()

	client, err := New("secret", server.URL, testFetcher())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	valid, err := client.Validate(context.Background())
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if !valid {
		t.Fatal("expected key accepted")
	}
}

func TestValidateRejectsBadKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"Response":"False","Error":"Invalid API key!"}`)
	}))
	defer server.Close()

	client, err := New("bogus", server.URL, testFetcher())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	valid, err := client.Validate(context.Background())
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if valid {
		t.Fatal("expected key rejected")
	}
}

func TestLookupExactMatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("t"); got != "Titanic" {
			t.Errorf("unexpected title query %q", got)
		}
		if got := r.URL.Query().Get("y"); got != "1997" {
			t.Errorf("unexpected year query %q", got)
		}
		fmt.Fprint(w, `{"Response":"True","Title":"Titanic","Director":"James Cameron","Genre":"Drama, Romance","Actors":"Leonardo DiCaprio, Kate Winslet"}`)
	}))
	defer server.Close()

	client, err := New("secret", server.URL, testFetcher())
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
	if meta.Director != "James Cameron" || meta.Genre != "Drama, Romance" || meta.Cast != "Leonardo DiCaprio, Kate Winslet" {
		t.Fatalf("unexpected metadata: %+v", meta)
	}
}

func TestLookupNoMatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"Response":"False","Error":"Movie not found!"}`)
	}))
	defer server.Close()

	client, err := New("secret", server.URL, testFetcher())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, outcome, err := client.Lookup(context.Background(), films.Identity{Title: "Titanicc", Year: 1997})
	if err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}
	if outcome != metadata.OutcomeNoMatch {
		t.Fatalf("expected no match, got %s", outcome)
	}
}

func TestLookupConnectivityFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client, err := New("secret", server.URL, testFetcher())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, _, err = client.Lookup(context.Background(), films.Identity{Title: "Titanic", Year: 1997})
	if !errors.Is(err, metadata.ErrConnectivity) {
		t.Fatalf("expected connectivity error, got %v", err)
	}
}
