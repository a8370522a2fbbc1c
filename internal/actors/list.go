package actors

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const (
	// ListName is the curated actor list: identifier, role, name.
	ListName = "actors_list.tsv"
	// FilmographyName holds one filmography per actor.
	FilmographyName = "actors_filmography.tsv"
)

// ErrNoActorsList marks a filmography operation attempted before the
// actor list exists.
var ErrNoActorsList = errors.New("actors list not found")

// ErrNoFilmography marks a tree operation attempted before filmographies
// have been generated.
var ErrNoFilmography = errors.New("actors filmography not found")

// ListEntry is one curated actor: an external identifier (IMDb nm-code),
// the role used for filmography searches, and the display name.
type ListEntry struct {
	Code string
	Role string
	Name string
}

// ListPath returns the actor list location under the library root.
func ListPath(libroot string) string {
	return filepath.Join(libroot, ListName)
}

// WriteList writes the actor list, dropping duplicate identifiers while
// preserving first-seen order, and returns the row count. Operators may
// hand-edit the result to add their own favorites.
func WriteList(libroot string, entries []ListEntry) (int, error) {
	file, err := os.Create(ListPath(libroot))
	if err != nil {
		return 0, fmt.Errorf("create actors list: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	seen := make(map[string]struct{}, len(entries))
	count := 0
	for _, entry := range entries {
		if _, dup := seen[entry.Code]; dup {
			continue
		}
		seen[entry.Code] = struct{}{}
		fmt.Fprintf(w, "%s\t%s\t%s\n", entry.Code, entry.Role, entry.Name)
		count++
	}
	if err := w.Flush(); err != nil {
		return 0, fmt.Errorf("write actors list: %w", err)
	}
	return count, nil
}

// ReadList loads the actor list. Returns ErrNoActorsList when absent.
func ReadList(libroot string) ([]ListEntry, error) {
	file, err := os.Open(ListPath(libroot))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w under %s; run `cinetree actors discover` first", ErrNoActorsList, libroot)
		}
		return nil, fmt.Errorf("open actors list: %w", err)
	}
	defer file.Close()

	var entries []ListEntry
	scanner := bufio.NewScanner(file)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		fields := strings.Split(text, "\t")
		if len(fields) != 3 {
			return nil, fmt.Errorf("actors list line %d: expected 3 columns, got %d", line, len(fields))
		}
		entries = append(entries, ListEntry{
			Code: strings.TrimSpace(fields[0]),
			Role: strings.TrimSpace(fields[1]),
			Name: strings.TrimSpace(fields[2]),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read actors list: %w", err)
	}
	return entries, nil
}
