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
	"cinetree/internal/metadata"
)

// MergeMode selects how new resolutions combine with an existing films index.
type MergeMode string

const (
	// MergeOverwrite replaces the store with freshly resolved rows.
	MergeOverwrite MergeMode = "overwrite"
	// MergeExtend preserves existing rows and appends resolutions only for
	// base entries whose path is absent from the store. Membership is by
	// path, not identity: the path is the durable handle reused across
	// runs even when metadata changes.
	MergeExtend MergeMode = "extend"
)

// ParseMergeMode validates a user-supplied merge mode.
func ParseMergeMode(value string) (MergeMode, error) {
	switch MergeMode(strings.ToLower(strings.TrimSpace(value))) {
	case MergeOverwrite:
		return MergeOverwrite, nil
	case MergeExtend, "":
		return MergeExtend, nil
	}
	return "", fmt.Errorf("merge mode must be %q or %q, got %q", MergeExtend, MergeOverwrite, value)
}

// Record is one films index row: a base entry joined with its resolved
// metadata. Genre and cast keep the provider's comma-separated ordering.
type Record struct {
	Identity films.Identity
	Director string
	Genre    string
	Cast     string
	Path     string
}

// FilmsIndexPath returns the films index location under the library root.
func FilmsIndexPath(libroot string) string {
	return filepath.Join(libroot, FilmsIndexName)
}

// ReadFilms loads the films index. Returns ErrNoFilmsIndex when absent.
func ReadFilms(libroot string) ([]Record, error) {
	file, err := os.Open(FilmsIndexPath(libroot))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w under %s; run `cinetree index` and `cinetree resolve` first", ErrNoFilmsIndex, libroot)
		}
		return nil, fmt.Errorf("open films index: %w", err)
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
		if len(fields) != 6 {
			return nil, fmt.Errorf("films index line %d: expected 6 columns, got %d", line, len(fields))
		}
		year, err := strconv.Atoi(strings.TrimSpace(fields[1]))
		if err != nil {
			return nil, fmt.Errorf("films index line %d: bad year %q", line, fields[1])
		}
		records = append(records, Record{
			Identity: films.NewIdentity(fields[0], year),
			Director: fields[2],
			Genre:    fields[3],
			Cast:     fields[4],
			Path:     strings.TrimSpace(fields[5]),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read films index: %w", err)
	}
	return records, nil
}

// ExistingPaths returns the path set of the current films index, or an
// empty set when the index does not exist yet.
func ExistingPaths(libroot string) (map[string]struct{}, error) {
	records, err := ReadFilms(libroot)
	if err != nil {
		if errors.Is(err, ErrNoFilmsIndex) {
			return map[string]struct{}{}, nil
		}
		return nil, err
	}
	paths := make(map[string]struct{}, len(records))
	for _, record := range records {
		paths[record.Path] = struct{}{}
	}
	return paths, nil
}

// StoreWriter appends films index rows, flushing each row as it is
// written so an aborted run keeps everything resolved so far.
type StoreWriter struct {
	file  *os.File
	count int
}

// OpenStore opens the films index for writing. MergeExtend appends to the
// existing store; MergeOverwrite truncates it.
func OpenStore(libroot string, mode MergeMode) (*StoreWriter, error) {
	flags := os.O_CREATE | os.O_WRONLY
	if mode == MergeExtend {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	file, err := os.OpenFile(FilmsIndexPath(libroot), flags, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open films index: %w", err)
	}
	return &StoreWriter{file: file}, nil
}

// Append writes one record and flushes it to disk.
func (w *StoreWriter) Append(record Record) error {
	row := fmt.Sprintf("%s\t%d\t%s\t%s\t%s\t%s\n",
		record.Identity.Title, record.Identity.Year,
		record.Director, record.Genre, record.Cast, record.Path)
	if _, err := w.file.WriteString(row); err != nil {
		return fmt.Errorf("append films index row: %w", err)
	}
	return nil
}

// AppendResolved converts a resolution into a record and writes it.
func (w *StoreWriter) AppendResolved(entry Entry, meta metadata.Metadata) error {
	if err := w.Append(Record{
		Identity: entry.Identity,
		Director: meta.Director,
		Genre:    meta.Genre,
		Cast:     meta.Cast,
		Path:     entry.Path,
	}); err != nil {
		return err
	}
	w.count++
	return nil
}

// Count reports rows appended through this writer.
func (w *StoreWriter) Count() int { return w.count }

// Close flushes and closes the store.
func (w *StoreWriter) Close() error {
	if w == nil || w.file == nil {
		return nil
	}
	err := w.file.Close()
	w.file = nil
	return err
}
