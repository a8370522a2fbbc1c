package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"cinetree/internal/index"
	"cinetree/internal/linktree"
)

func newTreeCommand(ctx *commandContext) *cobra.Command {
	var byFlag string
	var dirnameFlag string
	var symlinksFlag bool

	cmd := &cobra.Command{
		Use:   "tree <libdir>",
		Short: "Build a link tree grouping films by director, genre, or actor",
		Long: "Creates one directory per group value under the library root and\n" +
			"links every film of that group into it. Re-running on an unchanged\n" +
			"films index is a no-op.",
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
			dim, err := linktree.ParseDimension(byFlag)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("symlinks") {
				symlinksFlag = cfg.Trees.Symlinks
			}
			kind := linktree.KindFromFlag(symlinksFlag)
			if kind == linktree.KindSymbolic && runtime.GOOS == "windows" {
				fmt.Fprintln(cmd.OutOrStdout(), "Note: creating symbolic links on Windows may require an elevated shell or developer mode.")
			}

			lock, err := acquireLibraryLock(libroot)
			if err != nil {
				return err
			}
			defer releaseLibraryLock(lock)

			records, err := index.ReadFilms(libroot)
			if err != nil {
				return err
			}

			created, err := linktree.Build(records, linktree.BuildOptions{
				LibRoot:  libroot,
				TreeName: dirnameFlag,
				Dim:      dim,
				Kind:     kind,
				Logger:   logger,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d links created.\n", created)
			return nil
		},
	}

	cmd.Flags().StringVarP(&byFlag, "by", "b", string(linktree.ByGenre), "Grouping dimension: director, genre, or actor")
	cmd.Flags().StringVarP(&dirnameFlag, "dirname", "d", "", "Tree directory name (default \"Films by <dimension>\")")
	cmd.Flags().BoolVarP(&symlinksFlag, "symlinks", "s", false, "Create symbolic links instead of hard links")

	return cmd
}
