package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"cinetree/internal/index"
)

func newFaultyCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "faulty <libdir>",
		Short: "List films whose metadata lookup failed",
		Long: "Shows the contents of " + index.FaultyIndexName + ". An absent file\n" +
			"means the last resolve run left nothing unresolved.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			libroot, err := resolveLibRoot(args[0])
			if err != nil {
				return err
			}
			entries, err := index.ReadFaulty(libroot)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No faulty films recorded.")
				return nil
			}

			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				rows = append(rows, []string{
					entry.Identity.Title,
					strconv.Itoa(entry.Identity.Year),
					entry.Path,
				})
			}
			fmt.Fprintln(out, renderTable(out, []string{"Title", "Year", "Path"}, rows, 1))
			fmt.Fprintf(out, "\n%d films could not be resolved. Fix the file names and re-run `cinetree index` and `cinetree resolve`.\n", len(entries))
			return nil
		},
	}
}
