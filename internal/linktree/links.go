package linktree

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// LinkKind selects the filesystem link primitive. Hard links require the
// tree and the library to share a device; symbolic links can cross
// devices but dangle when the target moves, and creating them on Windows
// requires elevated privileges.
type LinkKind string

const (
	KindHard     LinkKind = "hard"
	KindSymbolic LinkKind = "symbolic"
)

// KindFromFlag maps the --symlinks flag onto a link kind.
func KindFromFlag(symlinks bool) LinkKind {
	if symlinks {
		return KindSymbolic
	}
	return KindHard
}

// EnsureLink idempotently links linkPath to target. An existing link that
// still resolves is left alone; a dangling path entry is removed and
// recreated. Reports whether a new link was created.
func EnsureLink(target, linkPath string, kind LinkKind) (bool, error) {
	if _, err := os.Stat(linkPath); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("inspect link path %q: %w", linkPath, err)
	}

	// Stat failed but the path entry may still exist as a broken symlink.
	if _, err := os.Lstat(linkPath); err == nil {
		if err := os.Remove(linkPath); err != nil {
			return false, fmt.Errorf("remove dangling link %q: %w", linkPath, err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("inspect link entry %q: %w", linkPath, err)
	}

	switch kind {
	case KindSymbolic:
		if err := os.Symlink(target, linkPath); err != nil {
			return false, fmt.Errorf("create symbolic link %q: %w", linkPath, err)
		}
	default:
		if err := os.Link(target, linkPath); err != nil {
			return false, fmt.Errorf("create hard link %q: %w", linkPath, err)
		}
	}
	return true, nil
}

// SanitizeGroup makes a metadata value usable as a directory name.
// Provider text is free-form, so path separators and other reserved
// characters are replaced rather than rejected.
func SanitizeGroup(value string) string {
	value = strings.TrimSpace(value)
	replacer := strings.NewReplacer(
		"/", "-",
		"\\", "-",
		":", " -",
		"*", "",
		"?", "",
		"\"", "'",
		"<", "(",
		">", ")",
		"|", "-",
		"\x00", "",
	)
	value = replacer.Replace(value)
	return strings.Trim(value, " .")
}
