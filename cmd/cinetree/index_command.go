package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cinetree/internal/films"
	"cinetree/internal/index"
	"cinetree/internal/logging"
)

func newIndexCommand(ctx *commandContext) *cobra.Command {
	var patternFlag string
	var restrictFlag string
	var dedupFlag bool

	cmd := &cobra.Command{
		Use:   "index <libdir>",
		Short: "Scan the library and build the base index",
		Long: "Walks the library root for film files, extracts a (title, year)\n" +
			"identity from each filename, and writes the 3-column base index.\n" +
			"Files whose names do not match the pattern are reported and skipped.",
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

			expr := patternFlag
			if expr == "" {
				expr = cfg.Scan.Pattern
			}
			pattern, err := films.CompilePattern(expr)
			if err != nil {
				return err
			}

			lock, err := acquireLibraryLock(libroot)
			if err != nil {
				return err
			}
			defer releaseLibraryLock(lock)

			result, err := index.Scan(libroot, index.ScanOptions{
				Restrict:   restrictFlag,
				Pattern:    pattern,
				Extensions: cfg.Scan.Extensions,
				Dedup:      dedupFlag || cfg.Scan.Dedup,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, path := range result.Unreadable {
				fmt.Fprintf(out, "-> could not read: %s\n", path)
			}
			for _, path := range result.Unparsed {
				fmt.Fprintf(out, "-> could not parse film name: %s\n", path)
			}
			for _, path := range result.Duplicates {
				fmt.Fprintf(out, "-> skipping duplicate film at: %s\n", path)
			}

			count, err := index.WriteBase(libroot, result.Entries)
			if err != nil {
				return err
			}
			logger.Info("base index written",
				logging.Args(
					logging.Int("films", count),
					logging.Int("unparsed", len(result.Unparsed)),
					logging.Int("duplicates", len(result.Duplicates)),
					logging.Int("unreadable", len(result.Unreadable)),
				)...)
			fmt.Fprintf(out, "\n%d files added to %s\n", count, index.BaseIndexName)
			return nil
		},
	}

	cmd.Flags().StringVar(&patternFlag, "pattern", "", "Filename pattern with `title` and `year` capture groups")
	cmd.Flags().StringVar(&restrictFlag, "restrict", "", "Limit the scan to this subdirectory of the library root")
	cmd.Flags().BoolVar(&dedupFlag, "dedup", false, "Skip files repeating an already-indexed (title, year)")

	return cmd
}
