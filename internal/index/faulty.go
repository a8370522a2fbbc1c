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

// FaultyEntry is a base entry for which no provider produced an exact
// match. Retained for operator remediation, never silently dropped.
type FaultyEntry struct {
	Identity films.Identity
	Path     string
}

// FaultyIndexPath returns the faulty side file location under the library root.
func FaultyIndexPath(libroot string) string {
	return filepath.Join(libroot, FaultyIndexName)
}

// ReadFaulty loads the faulty side file. An absent file means the last run
// resolved everything; that returns an empty slice, not an error.
func ReadFaulty(libroot string) ([]FaultyEntry, error) {
	file, err := os.Open(FaultyIndexPath(libroot))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open faulty index: %w", err)
	}
	defer file.Close()

	var entries []FaultyEntry
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
			return nil, fmt.Errorf("faulty index line %d: expected 3 columns, got %d", line, len(fields))
		}
		year, err := strconv.Atoi(strings.TrimSpace(fields[1]))
		if err != nil {
			return nil, fmt.Errorf("faulty index line %d: bad year %q", line, fields[1])
		}
		entries = append(entries, FaultyEntry{
			Identity: films.NewIdentity(fields[0], year),
			Path:     strings.TrimSpace(fields[2]),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read faulty index: %w", err)
	}
	return entries, nil
}

// FaultyWriter accumulates unresolved entries during a run. Close removes
// the side file when nothing was recorded, so its presence always signals
// that remediation is needed.
type FaultyWriter struct {
	path  string
	file  *os.File
	count int
}

// OpenFaulty truncates and opens the faulty side file for this run.
func OpenFaulty(libroot string) (*FaultyWriter, error) {
	path := FaultyIndexPath(libroot)
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create faulty index: %w", err)
	}
	return &FaultyWriter{path: path, file: file}, nil
}

// Append records one unresolved entry.
func (w *FaultyWriter) Append(entry FaultyEntry) error {
	row := fmt.Sprintf("%s\t%d\t%s\n", entry.Identity.Title, entry.Identity.Year, entry.Path)
	if _, err := w.file.WriteString(row); err != nil {
		return fmt.Errorf("append faulty row: %w", err)
	}
	w.count++
	return nil
}

// Count reports entries recorded so far.
func (w *FaultyWriter) Count() int { return w.count }

// Close closes the side file, removing it when empty.
func (w *FaultyWriter) Close() error {
	if w == nil || w.file == nil {
		return nil
	}
	err := w.file.Close()
	w.file = nil
	if err != nil {
		return err
	}
	if w.count == 0 {
		if removeErr := os.Remove(w.path); removeErr != nil && !errors.Is(removeErr, fs.ErrNotExist) {
			return fmt.Errorf("remove empty faulty index: %w", removeErr)
		}
	}
	return nil
}
