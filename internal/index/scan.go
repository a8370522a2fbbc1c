package index

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"cinetree/internal/films"
)

// Entry is one base index row: a film identity bound to the absolute path
// of its local file. Immutable once written.
type Entry struct {
	Identity films.Identity
	Path     string
}

// ScanOptions controls a library scan.
type ScanOptions struct {
	// Restrict limits the walk to this subpath of the library root.
	Restrict string
	// Pattern extracts identities from extension-stripped base names.
	Pattern *films.Pattern
	// Extensions is the container format allow-list (lowercase, dotted).
	Extensions []string
	// Dedup skips entries that repeat an already-seen identity.
	Dedup bool
}

// ScanResult separates indexed entries from per-file soft failures.
type ScanResult struct {
	Entries []Entry
	// Unparsed lists files whose base name did not match the pattern.
	Unparsed []string
	// Duplicates lists files skipped because their identity was already
	// indexed. Only populated when dedup is enabled.
	Duplicates []string
	// Unreadable lists nested paths the walk could not enter. Only an
	// unreadable root is fatal.
	Unreadable []string
}

// Scan walks the library root and extracts an identity per film file.
// Unparsed names and skipped duplicates are soft failures collected in the
// result; a missing or unreadable root is the only fatal condition.
func Scan(root string, opts ScanOptions) (ScanResult, error) {
	if opts.Pattern == nil {
		return ScanResult{}, fmt.Errorf("scan: filename pattern is required")
	}

	walkRoot := filepath.Clean(root)
	if opts.Restrict != "" {
		walkRoot = filepath.Join(walkRoot, opts.Restrict)
	}
	if _, err := os.Stat(walkRoot); err != nil {
		return ScanResult{}, fmt.Errorf("scan root %q: %w", walkRoot, err)
	}

	allowed := make(map[string]struct{}, len(opts.Extensions))
	for _, ext := range opts.Extensions {
		allowed[strings.ToLower(ext)] = struct{}{}
	}

	var result ScanResult
	seen := make(map[films.Identity]struct{})
	err := filepath.WalkDir(walkRoot, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == walkRoot {
				return walkErr
			}
			result.Unreadable = append(result.Unreadable, path)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if _, ok := allowed[strings.ToLower(filepath.Ext(d.Name()))]; !ok {
			return nil
		}

		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		stem := strings.TrimSuffix(d.Name(), filepath.Ext(d.Name()))
		identity, ok := opts.Pattern.Match(stem)
		if !ok {
			result.Unparsed = append(result.Unparsed, abs)
			return nil
		}
		if opts.Dedup {
			if _, dup := seen[identity]; dup {
				result.Duplicates = append(result.Duplicates, abs)
				return nil
			}
			seen[identity] = struct{}{}
		}
		result.Entries = append(result.Entries, Entry{Identity: identity, Path: abs})
		return nil
	})
	if err != nil {
		return ScanResult{}, err
	}

	// Stable output regardless of filesystem iteration order.
	sort.Slice(result.Entries, func(i, j int) bool { return result.Entries[i].Path < result.Entries[j].Path })
	sort.Strings(result.Unparsed)
	sort.Strings(result.Duplicates)
	sort.Strings(result.Unreadable)
	return result, nil
}
