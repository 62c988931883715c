package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"shelve/internal/config"
	"shelve/internal/history"
	"shelve/internal/logging"
	"shelve/internal/organizer"
)

const historyTimeLayout = "2006-01-02 15:04:05"

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "List recent runs, or the moves of one run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withHistory(func(_ *config.Config, store *history.Store) error {
				if len(args) == 1 {
					return showRun(cmd, store, args[0], jsonOut)
				}
				runs, err := store.ListRuns(cmd.Context(), limit)
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, runs)
				}
				out := cmd.OutOrStdout()
				if len(runs) == 0 {
					fmt.Fprintln(out, "No runs recorded")
					return nil
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Run", "Started", "Source", "Recursive", "Moved", "Skipped", "Failed", "State"},
					runRows(runs),
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignLeft},
				))
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to list (0 for all)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print as JSON")
	return cmd
}

func runRows(runs []history.Run) [][]string {
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			logging.ShortRunID(run.ID),
			run.StartedAt.Local().Format(historyTimeLayout),
			run.SourceDir,
			yesNo(run.Recursive),
			strconv.Itoa(run.Moved),
			strconv.Itoa(run.Skipped),
			strconv.Itoa(run.Failed),
			runState(run),
		})
	}
	return rows
}

func runState(run history.Run) string {
	switch {
	case run.Reverted():
		return "reverted"
	case run.DryRun:
		return "dry run"
	case !run.Finished():
		return "incomplete"
	case run.Failed > 0:
		return "partial"
	default:
		return "ok"
	}
}

func showRun(cmd *cobra.Command, store *history.Store, id string, jsonOut bool) error {
	run, err := store.GetRun(cmd.Context(), id)
	if err != nil {
		return err
	}
	moves, err := store.Moves(cmd.Context(), run.ID)
	if err != nil {
		return err
	}
	if jsonOut {
		return writeJSON(cmd, struct {
			Run   history.Run    `json:"run"`
			Moves []history.Move `json:"moves"`
		}{run, moves})
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Run %s  %s  %s\n", run.ID, run.StartedAt.Local().Format(historyTimeLayout), runState(run))
	fmt.Fprintf(out, "Source: %s (recursive: %s, collision: %s)\n", run.SourceDir, yesNo(run.Recursive), run.Collision)
	rows := make([][]string, 0, len(moves))
	for _, move := range moves {
		detail := relativeTo(run.SourceDir, move.Target)
		if move.Error != "" {
			detail = move.Error
		}
		rows = append(rows, []string{string(move.Status), relativeTo(run.SourceDir, move.Source), move.Category, detail})
	}
	fmt.Fprintln(out, renderTable([]string{"Status", "File", "Category", "Destination"}, rows, nil))
	return nil
}

func newUndoCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "undo <run-id>",
		Short: "Move the files of a run back where they came from",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withHistory(func(cfg *config.Config, store *history.Store) error {
				summary, err := organizer.Undo(cmd.Context(), store, args[0], ctx.loggerFor(cfg))
				if err != nil {
					if errors.Is(err, organizer.ErrNothingToUndo) {
						fmt.Fprintln(cmd.OutOrStdout(), err)
						return nil
					}
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Restored %d files from run %s.\n",
					summary.Restored, logging.ShortRunID(summary.RunID))
				if failures := summary.Err(); failures != nil {
					return fmt.Errorf("%d files could not be restored; run undo again after resolving:\n%w",
						summary.Failed, failures)
				}
				return nil
			})
		},
	}
}
