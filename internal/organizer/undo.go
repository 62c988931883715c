package organizer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"shelve/internal/faults"
	"shelve/internal/fileutil"
	"shelve/internal/history"
	"shelve/internal/logging"
)

// Journal is the part of the history store Undo needs.
type Journal interface {
	GetRun(ctx context.Context, id string) (history.Run, error)
	Moves(ctx context.Context, runID string) ([]history.Move, error)
	MarkMoveReverted(ctx context.Context, moveID int64) error
	MarkReverted(ctx context.Context, runID string, at time.Time) error
}

// ErrNothingToUndo is returned for runs that moved nothing or were already reverted.
var ErrNothingToUndo = errors.New("nothing to undo")

// UndoSummary aggregates an undo.
type UndoSummary struct {
	RunID    string
	Restored int
	Failed   int
	Outcomes []Outcome
}

// Err joins the per-file failures.
func (s UndoSummary) Err() error {
	return Summary{Failed: s.Failed, Outcomes: s.Outcomes}.Err()
}

// Undo moves every file of a journaled run back to its original path, newest
// move first. Original paths are never overwritten. The run is marked
// reverted only when every file was restored, so a partial undo can be
// retried.
func Undo(ctx context.Context, journal Journal, runID string, logger *slog.Logger) (UndoSummary, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	run, err := journal.GetRun(ctx, runID)
	if err != nil {
		return UndoSummary{}, faults.Wrap(faults.ErrHistory, "undo", "load run", runID, err)
	}
	ctx = logging.WithSource(logging.WithRunID(ctx, run.ID), run.SourceDir)
	logger = logging.WithContext(ctx, logging.NewComponentLogger(logger, "undo"))

	summary := UndoSummary{RunID: run.ID}
	switch {
	case run.DryRun:
		return summary, fmt.Errorf("%w: run %s was a dry run", ErrNothingToUndo, logging.ShortRunID(run.ID))
	case run.Reverted():
		return summary, fmt.Errorf("%w: run %s was already reverted", ErrNothingToUndo, logging.ShortRunID(run.ID))
	}

	moves, err := journal.Moves(ctx, run.ID)
	if err != nil {
		return summary, faults.Wrap(faults.ErrHistory, "undo", "load moves", run.ID, err)
	}

	touched := make(map[string]struct{})
	for i := len(moves) - 1; i >= 0; i-- {
		move := moves[i]
		if move.Status != history.MoveMoved {
			continue
		}
		if err := ctx.Err(); err != nil {
			return summary, fmt.Errorf("undo interrupted: %w", err)
		}
		outcome := restore(move)
		summary.Outcomes = append(summary.Outcomes, outcome)
		if outcome.Status == StatusFailed {
			summary.Failed++
			logging.WarnWithContext(logger, "file not restored", "undo_failed",
				logging.String("source", move.Target),
				logging.String("target", move.Source),
				logging.Error(outcome.Err),
				logging.String(logging.FieldImpact, "file stays in its category folder"),
			)
			continue
		}
		summary.Restored++
		touched[filepath.Dir(move.Target)] = struct{}{}
		if err := journal.MarkMoveReverted(ctx, move.ID); err != nil {
			logging.WarnWithContext(logger, "history entry not updated", "history_write_failed",
				logging.Int64("move_id", move.ID),
				logging.Error(err),
				logging.String(logging.FieldImpact, "a repeated undo reports this file as missing"),
			)
		}
	}

	for dir := range touched {
		removeIfEmpty(logger, dir)
	}

	if summary.Restored == 0 && summary.Failed == 0 {
		return summary, fmt.Errorf("%w: run %s moved no files", ErrNothingToUndo, logging.ShortRunID(run.ID))
	}
	if summary.Failed == 0 {
		if err := journal.MarkReverted(ctx, run.ID, time.Now()); err != nil {
			return summary, faults.Wrap(faults.ErrHistory, "undo", "mark reverted", run.ID, err)
		}
	}
	logger.Info("undo completed",
		logging.Int("restored", summary.Restored),
		logging.Int("failed", summary.Failed),
	)
	return summary, nil
}

func restore(move history.Move) Outcome {
	outcome := Outcome{Source: move.Target, Target: move.Source, Category: move.Category}
	if err := os.MkdirAll(filepath.Dir(move.Source), 0o755); err != nil {
		return failed(outcome, faults.Wrap(faults.ErrDirectoryCreate, "undo", "recreate folder",
			filepath.Dir(move.Source), err))
	}
	copied, err := fileutil.MoveFile(move.Target, move.Source)
	outcome.Copied = copied
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return failed(outcome, faults.Wrap(faults.ErrCollision, "undo", "restore file",
				fmt.Sprintf("'%s' already exists", move.Source), nil))
		}
		return failed(outcome, faults.Wrap(faults.ErrFileMove, "undo", "restore file",
			fmt.Sprintf("cannot move %s back to %s", move.Target, move.Source), err))
	}
	outcome.Status = StatusMoved
	return outcome
}

// removeIfEmpty deletes a category folder the undo emptied. Non-empty
// folders are kept.
func removeIfEmpty(logger *slog.Logger, dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) > 0 {
		return
	}
	if err := os.Remove(dir); err != nil {
		logger.Debug("category folder kept", logging.String("path", dir), logging.Error(err))
	}
}
