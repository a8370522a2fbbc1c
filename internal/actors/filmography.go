package actors

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"cinetree/internal/films"
)

// Filmography rows join film entries with " || "; each entry is a
// "rating|year|title" triple. Both separators are part of the external
// file contract.
const (
	entrySeparator = " || "
	fieldSeparator = "|"
)

// FilmEntry is one filmography film: its user rating and identity.
type FilmEntry struct {
	Rating   float64
	Identity films.Identity
}

// Record is one actor's filmography, pre-filtered upstream by the
// minimum-rating threshold.
type Record struct {
	Name  string
	Code  string
	Films []FilmEntry
}

// FilmographyPath returns the filmography location under the library root.
func FilmographyPath(libroot string) string {
	return filepath.Join(libroot, FilmographyName)
}

// Ratings always carry one decimal, so a 7.0 round-trips as "7.0" and
// link prefixes line up.
func formatRating(rating float64) string {
	return strconv.FormatFloat(rating, 'f', 1, 64)
}

// FilmographyWriter appends one row per actor. Actors whose filmography
// came back empty produce no row.
type FilmographyWriter struct {
	file  *os.File
	count int
}

// OpenFilmography truncates and opens the filmography file for writing.
func OpenFilmography(libroot string) (*FilmographyWriter, error) {
	file, err := os.Create(FilmographyPath(libroot))
	if err != nil {
		return nil, fmt.Errorf("create actors filmography: %w", err)
	}
	return &FilmographyWriter{file: file}, nil
}

// Append writes one actor's filmography row. Empty filmographies are
// skipped silently.
func (w *FilmographyWriter) Append(record Record) error {
	if len(record.Films) == 0 {
		return nil
	}
	entries := make([]string, 0, len(record.Films))
	for _, film := range record.Films {
		entries = append(entries, strings.Join([]string{
			formatRating(film.Rating),
			strconv.Itoa(film.Identity.Year),
			film.Identity.Title,
		}, fieldSeparator))
	}
	row := fmt.Sprintf("%s\t%s\t%s\n", record.Name, record.Code, strings.Join(entries, entrySeparator))
	if _, err := w.file.WriteString(row); err != nil {
		return fmt.Errorf("append filmography row: %w", err)
	}
	w.count++
	return nil
}

// Count reports rows written so far.
func (w *FilmographyWriter) Count() int { return w.count }

// Close flushes and closes the filmography file.
func (w *FilmographyWriter) Close() error {
	if w == nil || w.file == nil {
		return nil
	}
	err := w.file.Close()
	w.file = nil
	return err
}

// ReadFilmography loads all filmography records. Returns ErrNoFilmography
// when the file is absent.
func ReadFilmography(libroot string) ([]Record, error) {
	file, err := os.Open(FilmographyPath(libroot))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w under %s; run `cinetree actors filmography` first", ErrNoFilmography, libroot)
		}
		return nil, fmt.Errorf("open actors filmography: %w", err)
	}
	defer file.Close()

	var records []Record
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		fields := strings.Split(text, "\t")
		if len(fields) != 3 {
			return nil, fmt.Errorf("filmography line %d: expected 3 columns, got %d", line, len(fields))
		}
		record := Record{
			Name: strings.TrimSpace(fields[0]),
			Code: strings.TrimSpace(fields[1]),
		}
		for _, raw := range strings.Split(fields[2], entrySeparator) {
			entry, err := parseFilmEntry(raw)
			if err != nil {
				return nil, fmt.Errorf("filmography line %d: %w", line, err)
			}
			record.Films = append(record.Films, entry)
		}
		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read actors filmography: %w", err)
	}
	return records, nil
}

func parseFilmEntry(raw string) (FilmEntry, error) {
	parts := strings.SplitN(raw, fieldSeparator, 3)
	if len(parts) != 3 {
		return FilmEntry{}, fmt.Errorf("bad film entry %q", raw)
	}
	rating, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return FilmEntry{}, fmt.Errorf("bad rating in %q", raw)
	}
	year, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return FilmEntry{}, fmt.Errorf("bad year in %q", raw)
	}
	return FilmEntry{
		Rating:   rating,
		Identity: films.NewIdentity(parts[2], year),
	}, nil
}
