package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"shelve/internal/catalog"
)

func newCategoriesCommand(ctx *commandContext, opts *organizeOptions) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Show the category table used for organizing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			resolution, err := opts.resolveTable(cfg)
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(cmd, struct {
					Source     string             `json:"source"`
					Origin     string             `json:"origin"`
					Categories []catalog.Category `json:"categories"`
					Fallback   string             `json:"fallback"`
				}{
					Source:     string(resolution.Source),
					Origin:     resolution.Origin,
					Categories: resolution.Table.Categories(),
					Fallback:   catalog.Others,
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Category table: %s (%s), %d categories plus %s\n",
				resolution.Origin, resolution.Source, resolution.Table.Len(), catalog.Others)
			categories := resolution.Table.Categories()
			rows := make([][]string, 0, len(categories)+1)
			for i, c := range categories {
				rows = append(rows, []string{strconv.Itoa(i + 1), c.Name, strings.Join(c.Extensions, ", ")})
			}
			rows = append(rows, []string{"-", catalog.Others, "everything else"})
			fmt.Fprintln(out, renderTable([]string{"#", "Category", "Extensions"}, rows, []columnAlignment{alignRight, alignLeft, alignLeft}))
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the table as JSON")
	return cmd
}
