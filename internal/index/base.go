package index

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

const (
	// BaseIndexName is the 3-column identity → path index file.
	BaseIndexName = "base_index.tsv"
	// FilmsIndexName is the 6-column metadata-enriched index file.
	FilmsIndexName = "films_index.tsv"
	// FaultyIndexName lists identities whose metadata resolution failed.
	// Its presence is itself the remediation signal.
	FaultyIndexName = "faulty_films_base_index.tsv"
)

// ErrNoBaseIndex marks a films-index operation attempted before a base
// index exists. A configuration error, not a lookup failure.
var ErrNoBaseIndex = errors.New("base index not found")

// ErrNoFilmsIndex marks a tree operation attempted before the films index
// has been generated.
var ErrNoFilmsIndex = errors.New("films index not found")

// BaseIndexPath returns the base index location under the library root.
func BaseIndexPath(libroot string) string {
	return filepath.Join(libroot, BaseIndexName)
}

// WriteBase replaces the base index with the given entries and returns the
// row count.
func WriteBase(libroot string, entries []Entry) (int, error) {
	file, err := os.Create(BaseIndexPath(libroot))
	if err != nil {
		return 0, fmt.Errorf("create base index: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	for _, entry := range entries {
		fmt.Fprintf(w, "%s\t%d\t%s\n", entry.Identity.Title, entry.Identity.Year, entry.Path)
	}
	if err := w.Flush(); err != nil {
		return 0, fmt.Errorf("write base index: %w", err)
	}
	return len(entries), nil
}

// ReadBase loads the base index. Returns ErrNoBaseIndex when the file is
// absent.
func ReadBase(libroot string) ([]Entry, error) {
	file, err := os.Open(BaseIndexPath(libroot))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w under %s; run `cinetree index` first", ErrNoBaseIndex, libroot)
		}
		return nil, fmt.Errorf("open base index: %w", err)
	}
	defer file.Close()

	var entries []Entry
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
			return nil, fmt.Errorf("base index line %d: expected 3 columns, got %d", line, len(fields))
		}
		year, err := strconv.Atoi(strings.TrimSpace(fields[1]))
		if err != nil {
			return nil, fmt.Errorf("base index line %d: bad year %q", line, fields[1])
		}
		entries = append(entries, Entry{
			Identity: films.NewIdentity(fields[0], year),
			Path:     strings.TrimSpace(fields[2]),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read base index: %w", err)
	}
	return entries, nil
}

// IdentityMap converts base entries to an identity-keyed lookup. When an
// identity repeats (dedup disabled at scan time), the first path wins so
// results stay deterministic rather than last-write-wins.
func IdentityMap(entries []Entry) map[films.Identity]string {
	byID := make(map[films.Identity]string, len(entries))
	for _, entry := range entries {
		if _, ok := byID[entry.Identity]; ok {
			continue
		}
		byID[entry.Identity] = entry.Path
	}
	return byID
}
