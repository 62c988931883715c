package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"shelve/internal/logging"
	"shelve/internal/logs"
)

func newLogsCommand(ctx *commandContext) *cobra.Command {
	var lines int
	var follow bool
	var runID string

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show the latest log file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			path, err := logs.Latest(cfg.Paths.LogDir, logging.LogFilePattern)
			if err != nil {
				if errors.Is(err, logs.ErrNoLogs) {
					fmt.Fprintln(out, "No log files yet")
					return nil
				}
				return err
			}

			// Console lines carry the short id, JSON lines the full one.
			filter := logs.Filter{Contains: logging.ShortRunID(strings.TrimSpace(runID))}
			result, err := logs.Tail(path, lines, filter)
			if err != nil {
				return err
			}
			for _, line := range result.Lines {
				fmt.Fprintln(out, line)
			}
			if !follow {
				return nil
			}
			return logs.Follow(cmd.Context(), path, result.Offset, 0, filter, func(line string) {
				fmt.Fprintln(out, line)
			})
		},
	}
	cmd.Flags().IntVarP(&lines, "lines", "l", 50, "Number of lines to show")
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Keep printing new lines")
	cmd.Flags().StringVar(&runID, "run", "", "Only show lines of this run")
	return cmd
}
