package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"cinetree/internal/config"
	"cinetree/internal/index"
	"cinetree/internal/logging"
	"cinetree/internal/lookupcache"
	"cinetree/internal/metadata"
	"cinetree/internal/metadata/imdb"
	"cinetree/internal/metadata/omdb"
)

func newResolveCommand(ctx *commandContext) *cobra.Command {
	var modeFlag string
	var verboseFlag bool

	cmd := &cobra.Command{
		Use:   "resolve <libdir>",
		Short: "Resolve metadata for indexed films and build the films index",
		Long: "Looks up director/genre/cast metadata for every base index entry\n" +
			"through OMDb (when a key is configured) with an IMDb search\n" +
			"fallback, and writes the 6-column films index. Entries that no\n" +
			"provider matches exactly are collected in " + index.FaultyIndexName + ".",
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
			mode, err := index.ParseMergeMode(modeFlag)
			if err != nil {
				return err
			}

			lock, err := acquireLibraryLock(libroot)
			if err != nil {
				return err
			}
			defer releaseLibraryLock(lock)

			return runResolve(cmd, cfg, logger, libroot, mode, verboseFlag)
		},
	}

	cmd.Flags().StringVarP(&modeFlag, "mode", "m", string(index.MergeExtend), "Merge mode: extend or overwrite")
	cmd.Flags().BoolVarP(&verboseFlag, "verbose", "v", false, "Print per-film progress")

	return cmd
}

func runResolve(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger, libroot string, mode index.MergeMode, verbose bool) error {
	out := cmd.OutOrStdout()

	entries, err := index.ReadBase(libroot)
	if err != nil {
		return err
	}

	processed := map[string]struct{}{}
	if mode == index.MergeExtend {
		processed, err = index.ExistingPaths(libroot)
		if err != nil {
			return err
		}
		if len(processed) > 0 {
			fmt.Fprintf(out, "Extending existing %s -- only missing films will be looked up.\n", index.FilmsIndexName)
		}
	}

	resolver, closeCache, err := buildResolver(cmd, cfg, logger)
	if err != nil {
		return err
	}
	defer closeCache()

	writer, err := index.OpenStore(libroot, mode)
	if err != nil {
		return err
	}
	defer writer.Close()

	faulty, err := index.OpenFaulty(libroot)
	if err != nil {
		return err
	}
	defer faulty.Close()

	pending := 0
	for _, entry := range entries {
		if _, done := processed[entry.Path]; done {
			continue
		}
		pending++
		if verbose {
			fmt.Fprintf(out, "%03d - starting metadata search for %s\n", pending, entry.Identity)
		}

		meta, ok, err := resolver.Resolve(cmd.Context(), entry.Identity)
		if err != nil {
			// Connectivity failures stop the whole batch; rows already
			// appended stay flushed.
			return err
		}
		if !ok {
			fmt.Fprintf(out, "-> could not find metadata for %s, skipping\n", entry.Identity)
			if err := faulty.Append(index.FaultyEntry{Identity: entry.Identity, Path: entry.Path}); err != nil {
				return err
			}
			continue
		}
		if err := writer.AppendResolved(entry, meta); err != nil {
			return err
		}
	}

	resolved := writer.Count()
	failed := faulty.Count()
	if err := writer.Close(); err != nil {
		return err
	}
	if err := faulty.Close(); err != nil {
		return err
	}

	logger.Info("films index generated",
		logging.Args(
			logging.String("mode", string(mode)),
			logging.Int("resolved", resolved),
			logging.Int("faulty", failed),
		)...)
	fmt.Fprintf(out, "\nFilms index generated: %d resolved, %d faulty.\n", resolved, failed)
	if failed > 0 {
		fmt.Fprintf(out, "Check %s for the films whose metadata could not be determined.\n", index.FaultyIndexName)
		fmt.Fprintln(out, "This usually means a wrong year or erroneous title; fix those files, then re-run `cinetree index` and `cinetree resolve`.")
	}
	return nil
}

// buildResolver assembles the ordered provider chain. The OMDb credential
// is validated once per invocation against its fixture query; a rejected
// key degrades the run to the IMDb fallback with a single warning.
func buildResolver(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) (*metadata.Resolver, func(), error) {
	fetcher := metadata.NewFetcher(
		time.Duration(cfg.Lookup.TimeoutSeconds)*time.Second,
		cfg.Lookup.RetryAttempts,
		logger,
	)

	var providers []metadata.Provider
	if cfg.OMDB.APIKey != "" {
		client, err := omdb.New(cfg.OMDB.APIKey, cfg.OMDB.BaseURL, fetcher)
		if err != nil {
			return nil, nil, err
		}
		valid, err := client.Validate(cmd.Context())
		if err != nil {
			return nil, nil, err
		}
		if valid {
			providers = append(providers, client)
		} else {
			logger.Warn("omdb api key rejected; degrading to imdb search only")
			fmt.Fprintln(cmd.OutOrStdout(), "Warning: the configured OMDb API key is invalid; using the IMDb search fallback only.")
		}
	} else {
		logger.Info("no omdb api key configured; using imdb search only")
	}

	imdbClient, err := imdb.New(cfg.IMDB.BaseURL, fetcher)
	if err != nil {
		return nil, nil, err
	}
	providers = append(providers, imdbClient)

	closeCache := func() {}
	var cache metadata.Cache
	if cfg.Lookup.CacheEnabled {
		store, err := lookupcache.Open(cfg.Lookup.CachePath)
		if err != nil {
			logger.Warn("lookup cache unavailable, continuing without it", logging.Args(logging.Error(err))...)
		} else {
			cache = store
			closeCache = func() { _ = store.Close() }
		}
	}

	return metadata.NewResolver(logger, cache, providers...), closeCache, nil
}
