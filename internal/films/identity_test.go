package films_test

import (
	"fmt"
	"testing"

	"cinetree/internal/films"
)

func TestDefaultPatternMatchesKnownForms(t *testing.T) {
	pattern := films.MustCompilePattern(films.DefaultPattern)

	cases := []struct {
		stem  string
		title string
		year  int
	}{
		{"(1997) Titanic", "Titanic", 1997},
		{"[2009] Up", "Up", 2009},
		{"(1972) The Godfather [1080p]", "The Godfather", 1972},
	}
	for _, tc := range cases {
		id, ok := pattern.Match(tc.stem)
		if !ok {
			t.Fatalf("expected %q to match default pattern", tc.stem)
		}
		if id.Title != tc.title || id.Year != tc.year {
			t.Fatalf("stem %q: got %q/%d want %q/%d", tc.stem, id.Title, id.Year, tc.title, tc.year)
		}
	}
}

func TestDefaultPatternRejectsUnparsedNames(t *testing.T) {
	pattern := films.MustCompilePattern(films.DefaultPattern)
	for _, stem := range []string{"Titanic", "Titanic 1997", "(97) Titanic"} {
		if _, ok := pattern.Match(stem); ok {
			t.Fatalf("expected %q not to match", stem)
		}
	}
}

func TestIdentityRoundTripsThroughSyntheticFilename(t *testing.T) {
	pattern := films.MustCompilePattern(films.DefaultPattern)
	want := films.NewIdentity("The Third Man", 1949)

	stem := fmt.Sprintf("(%d) %s", want.Year, want.Title)
	got, ok := pattern.Match(stem)
	if !ok {
		t.Fatalf("synthetic stem %q did not match", stem)
	}
	if got != want {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, want)
	}
}

func TestCompilePatternRequiresNamedGroups(t *testing.T) {
	if _, err := films.CompilePattern(`^(\d{4}) (.+)$`); err == nil {
		t.Fatal("expected error for pattern without named groups")
	}
	if _, err := films.CompilePattern(`^(?P<year>\d{4}) (?P<title>.+)$`); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCompilePatternEmptyUsesDefault(t *testing.T) {
	p, err := films.CompilePattern("")
	if err != nil {
		t.Fatalf("CompilePattern: %v", err)
	}
	if p.String() != films.DefaultPattern {
		t.Fatalf("expected default pattern, got %q", p.String())
	}
}
