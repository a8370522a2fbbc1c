package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"cinetree/internal/actors"
	"cinetree/internal/config"
	"cinetree/internal/films"
	"cinetree/internal/index"
	"cinetree/internal/linktree"
	"cinetree/internal/metadata"
	"cinetree/internal/metadata/imdb"
)

func newActorsCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "actors",
		Short: "Discover actors and cross-reference their filmographies",
	}
	cmd.AddCommand(newActorsDiscoverCommand(ctx))
	cmd.AddCommand(newActorsFilmographyCommand(ctx))
	cmd.AddCommand(newActorsTreeCommand(ctx))
	return cmd
}

func newActorsDiscoverCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "discover <libdir>",
		Short: "Build the actors list from the IMDb Oscar nominee searches",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			libroot, err := resolveLibRoot(args[0])
			if err != nil {
				return err
			}

			client, err := newIMDBClient(cfg, logger)
			if err != nil {
				return err
			}
			nominees, err := client.DiscoverNominees(cmd.Context())
			if err != nil {
				return err
			}

			entries := make([]actors.ListEntry, 0, len(nominees))
			for _, nominee := range nominees {
				entries = append(entries, actors.ListEntry{
					Code: nominee.Code,
					Role: nominee.Role,
					Name: nominee.Name,
				})
			}
			written, err := actors.WriteList(libroot, entries)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d actors written to %s\n", written, actors.ListName)
			return nil
		},
	}
}

func newActorsFilmographyCommand(ctx *commandContext) *cobra.Command {
	var minRatingFlag float64
	var verboseFlag bool

	cmd := &cobra.Command{
		Use:   "filmography <libdir>",
		Short: "Fetch each listed actor's best-rated films",
		Long: "Reads " + actors.ListName + " and writes one filmography row per\n" +
			"actor, keeping films at or above the configured rating threshold.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			libroot, err := resolveLibRoot(args[0])
			if err != nil {
				return err
			}

			minRating := cfg.Actors.MinRating
			if cmd.Flags().Changed("min-rating") {
				minRating = minRatingFlag
			}

			list, err := actors.ReadList(libroot)
			if err != nil {
				return err
			}
			client, err := newIMDBClient(cfg, logger)
			if err != nil {
				return err
			}

			writer, err := actors.OpenFilmography(libroot)
			if err != nil {
				return err
			}
			defer writer.Close()

			for i, entry := range list {
				if verboseFlag {
					fmt.Fprintf(cmd.OutOrStdout(), "%03d - fetching filmography for %s\n", i+1, entry.Name)
				}
				credits, err := client.Filmography(cmd.Context(), entry.Code, entry.Role, minRating, cfg.Actors.MaxPages)
				if err != nil {
					return err
				}
				record := actors.Record{Name: entry.Name, Code: entry.Code}
				for _, credit := range credits {
					record.Films = append(record.Films, actors.FilmEntry{
						Rating:   credit.Rating,
						Identity: films.Identity{Title: credit.Title, Year: credit.Year},
					})
				}
				if err := writer.Append(record); err != nil {
					return err
				}
			}

			count := writer.Count()
			if err := writer.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d filmographies written to %s\n", count, actors.FilmographyName)
			return nil
		},
	}

	cmd.Flags().Float64Var(&minRatingFlag, "min-rating", 0, "Keep films rated at or above this value")
	cmd.Flags().BoolVarP(&verboseFlag, "verbose", "v", false, "Print per-actor progress")
	return cmd
}

func newActorsTreeCommand(ctx *commandContext) *cobra.Command {
	var dirnameFlag string
	var symlinksFlag bool
	var includeRatingsFlag bool

	cmd := &cobra.Command{
		Use:   "tree <libdir>",
		Short: "Link locally owned films under per-actor directories",
		Long: "Joins the stored filmographies against the base index by exact\n" +
			"title and year. Filmography entries without a local copy are\n" +
			"skipped silently.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			libroot, err := resolveLibRoot(args[0])
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("symlinks") {
				symlinksFlag = cfg.Trees.Symlinks
			}
			if !cmd.Flags().Changed("include-ratings") {
				includeRatingsFlag = cfg.Actors.IncludeRatings
			}
			dirname := dirnameFlag
			if dirname == "" {
				dirname = cfg.Actors.DirName
			}

			lock, err := acquireLibraryLock(libroot)
			if err != nil {
				return err
			}
			defer releaseLibraryLock(lock)

			filmographies, err := actors.ReadFilmography(libroot)
			if err != nil {
				return err
			}
			entries, err := index.ReadBase(libroot)
			if err != nil {
				return err
			}

			created, err := actors.Reconcile(filmographies, index.IdentityMap(entries), actors.ReconcileOptions{
				TreeRoot:       filepath.Join(libroot, dirname),
				IncludeRatings: includeRatingsFlag,
				Kind:           linktree.KindFromFlag(symlinksFlag),
				Logger:         logger,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d links created.\n", created)
			return nil
		},
	}

	cmd.Flags().StringVarP(&dirnameFlag, "dirname", "d", "", "Actor tree directory name")
	cmd.Flags().BoolVarP(&symlinksFlag, "symlinks", "s", false, "Create symbolic links instead of hard links")
	cmd.Flags().BoolVarP(&includeRatingsFlag, "include-ratings", "r", false, "Prefix link names with the film rating")
	return cmd
}

func newIMDBClient(cfg *config.Config, logger *slog.Logger) (*imdb.Client, error) {
	fetcher := metadata.NewFetcher(
		time.Duration(cfg.Lookup.TimeoutSeconds)*time.Second,
		cfg.Lookup.RetryAttempts,
		logger,
	)
	return imdb.New(cfg.IMDB.BaseURL, fetcher)
}
