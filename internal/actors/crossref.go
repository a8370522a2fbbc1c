package actors

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"cinetree/internal/films"
	"cinetree/internal/linktree"
	"cinetree/internal/logging"
)

// ReconcileOptions configures one actor tree population pass.
type ReconcileOptions struct {
	// TreeRoot is the directory actor folders are created under.
	TreeRoot string
	// IncludeRatings prefixes link names with "[rating] ".
	IncludeRatings bool
	Kind           linktree.LinkKind
	Logger         *slog.Logger
}

// Reconcile joins each filmography entry against the base index by exact
// identity and links matches under the actor's directory. Entries with no
// local copy are simply skipped; unlike metadata resolution, absence here
// is expected and not a fault. Returns the number of new links.
func Reconcile(records []Record, localIndex map[films.Identity]string, opts ReconcileOptions) (int, error) {
	logger := logging.NewComponentLogger(opts.Logger, "crossref")

	if err := os.MkdirAll(opts.TreeRoot, 0o755); err != nil {
		return 0, fmt.Errorf("create actor tree root %q: %w", opts.TreeRoot, err)
	}

	created := 0
	for _, record := range records {
		actorDir := filepath.Join(opts.TreeRoot, linktree.SanitizeGroup(record.Name))
		matched := 0
		for _, film := range record.Films {
			target, ok := localIndex[film.Identity]
			if !ok {
				continue
			}
			if matched == 0 {
				if err := os.MkdirAll(actorDir, 0o755); err != nil {
					return created, fmt.Errorf("create actor directory %q: %w", actorDir, err)
				}
			}
			matched++

			linkName := filepath.Base(target)
			if opts.IncludeRatings {
				linkName = fmt.Sprintf("[%s] %s", formatRating(film.Rating), linkName)
			}
			madeNew, err := linktree.EnsureLink(target, filepath.Join(actorDir, linkName), opts.Kind)
			if err != nil {
				return created, err
			}
			if madeNew {
				created++
			}
		}
		if matched > 0 {
			logger.Debug("actor reconciled",
				logging.Args(
					logging.String("actor", record.Name),
					logging.Int("local_films", matched),
				)...)
		}
	}

	logger.Info("actor tree populated",
		logging.Args(
			logging.String("tree", opts.TreeRoot),
			logging.Int("new_links", created),
		)...)
	return created, nil
}
