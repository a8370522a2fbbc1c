package linktree

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"cinetree/internal/index"
	"cinetree/internal/logging"
)

// groupSeparator splits a metadata field into its group memberships: one
// film can belong to several directors, genres, or actors at once.
const groupSeparator = ", "

// Dimension selects which metadata field a tree groups on.
type Dimension string

const (
	ByDirector Dimension = "director"
	ByGenre    Dimension = "genre"
	ByActor    Dimension = "actor"
)

// ParseDimension validates a user-supplied grouping dimension.
func ParseDimension(value string) (Dimension, error) {
	switch Dimension(strings.ToLower(strings.TrimSpace(value))) {
	case ByDirector:
		return ByDirector, nil
	case ByGenre:
		return ByGenre, nil
	case ByActor:
		return ByActor, nil
	}
	return "", fmt.Errorf("dimension must be %q, %q, or %q, got %q", ByDirector, ByGenre, ByActor, value)
}

// DefaultTreeName returns the conventional tree directory name for a
// dimension, e.g. "Films by Genre".
func DefaultTreeName(dim Dimension) string {
	return "Films by " + cases.Title(language.Und).String(string(dim))
}

func (d Dimension) field(record index.Record) string {
	switch d {
	case ByDirector:
		return record.Director
	case ByGenre:
		return record.Genre
	default:
		return record.Cast
	}
}

// BuildOptions configures one tree build.
type BuildOptions struct {
	// LibRoot is the library root the tree directory lives under.
	LibRoot string
	// TreeName overrides the default "Films by <Dimension>" directory.
	TreeName string
	Dim      Dimension
	Kind     LinkKind
	Logger   *slog.Logger
}

// Build creates one link per (group value, film) pair under the tree
// root. All paths are composed explicitly from the library root; the
// process working directory is never consulted or changed. Re-running on
// an unchanged index creates nothing and reports zero. Links whose group
// membership has since changed are not removed.
func Build(records []index.Record, opts BuildOptions) (int, error) {
	logger := logging.NewComponentLogger(opts.Logger, "linktree")

	treeName := strings.TrimSpace(opts.TreeName)
	if treeName == "" {
		treeName = DefaultTreeName(opts.Dim)
	}
	treeRoot := filepath.Join(opts.LibRoot, treeName)
	if err := os.MkdirAll(treeRoot, 0o755); err != nil {
		return 0, fmt.Errorf("create tree root %q: %w", treeRoot, err)
	}

	created := 0
	for _, record := range records {
		field := strings.TrimSpace(opts.Dim.field(record))
		if field == "" {
			logger.Warn("film has no value for dimension, skipping",
				logging.Args(
					logging.String("title", record.Identity.Title),
					logging.Int("year", record.Identity.Year),
					logging.String("dimension", string(opts.Dim)),
				)...)
			continue
		}
		baseName := filepath.Base(record.Path)
		for _, group := range strings.Split(field, groupSeparator) {
			group = SanitizeGroup(group)
			if group == "" {
				continue
			}
			groupDir := filepath.Join(treeRoot, group)
			if err := os.MkdirAll(groupDir, 0o755); err != nil {
				return created, fmt.Errorf("create group directory %q: %w", groupDir, err)
			}
			madeNew, err := EnsureLink(record.Path, filepath.Join(groupDir, baseName), opts.Kind)
			if err != nil {
				return created, err
			}
			if madeNew {
				created++
			}
		}
	}

	logger.Info("link tree built",
		logging.Args(
			logging.String("tree", treeName),
			logging.String("dimension", string(opts.Dim)),
			logging.Int("new_links", created),
		)...)
	return created, nil
}
