package actors

import (
	"errors"
	"os"
	"testing"

	"cinetree/internal/films"
)

func TestFilmographyRoundTrip(t *testing.T) {
	root := t.TempDir()
	record := Record{
		Name: "Leonardo DiCaprio",
		Code: "nm0000138",
		Films: []FilmEntry{
			{Rating: 8.8, Identity: films.Identity{Title: "Inception", Year: 2010}},
			{Rating: 7.9, Identity: films.Identity{Title: "Titanic", Year: 1997}},
		},
	}

	writer, err := OpenFilmography(root)
	if err != nil {
		t.Fatalf("OpenFilmography: %v", err)
	}
	if err := writer.Append(record); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	got, err := ReadFilmography(root)
	if err != nil {
		t.Fatalf("ReadFilmography returned error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 record, got %d", len(got))
	}
	if got[0].Name != record.Name || got[0].Code != record.Code {
		t.Fatalf("unexpected record header: %+v", got[0])
	}
	if len(got[0].Films) != 2 || got[0].Films[0] != record.Films[0] || got[0].Films[1] != record.Films[1] {
		t.Fatalf("unexpected films: %+v", got[0].Films)
	}
}

func TestFilmographyRowFormat(t *testing.T) {
	root := t.TempDir()
	writer, err := OpenFilmography(root)
	if err != nil {
		t.Fatalf("OpenFilmography: %v", err)
	}
	record := Record{
		Name: "Kate Winslet",
		Code: "nm0000701",
		Films: []FilmEntry{
			{Rating: 7.9, Identity: films.Identity{Title: "Titanic", Year: 1997}},
			{Rating: 8, Identity: films.Identity{Title: "Eternal Sunshine of the Spotless Mind", Year: 2004}},
		},
	}
	if err := writer.Append(record); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(FilmographyPath(root))
	if err != nil {
		t.Fatalf("read filmography: %v", err)
	}
	want := "Kate Winslet\tnm0000701\t7.9|1997|Titanic || 8.0|2004|Eternal Sunshine of the Spotless Mind\n"
	if string(data) != want {
		t.Fatalf("row format mismatch:\ngot:  %q\nwant: %q", data, want)
	}
}

func TestAppendSkipsEmptyFilmography(t *testing.T) {
	root := t.TempDir()
	writer, err := OpenFilmography(root)
	if err != nil {
		t.Fatalf("OpenFilmography: %v", err)
	}
	if err := writer.Append(Record{Name: "Nobody", Code: "nm0000000"}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if writer.Count() != 0 {
		t.Fatalf("empty filmography must not count, got %d", writer.Count())
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	got, err := ReadFilmography(root)
	if err != nil {
		t.Fatalf("ReadFilmography returned error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no rows, got %+v", got)
	}
}

func TestReadFilmographyMissingFile(t *testing.T) {
	_, err := ReadFilmography(t.TempDir())
	if !errors.Is(err, ErrNoFilmography) {
		t.Fatalf("expected ErrNoFilmography, got %v", err)
	}
}

func TestParseFilmEntryKeepsPipesOutOfTitle(t *testing.T) {
	entry, err := parseFilmEntry("7.5|1994|Three Colors: Red")
	if err != nil {
		t.Fatalf("parseFilmEntry: %v", err)
	}
	if entry.Rating != 7.5 || entry.Identity.Year != 1994 || entry.Identity.Title != "Three Colors: Red" {
		t.Fatalf("unexpected entry: %+v", entry)
	}

	if _, err := parseFilmEntry("not-a-row"); err == nil {
		t.Fatal("expected error for malformed entry")
	}
}
