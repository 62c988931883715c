package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

const runColumns = "id, source_dir, recursive, dry_run, collision, table_source, started_at, finished_at, moved, skipped, failed, reverted_at"

// timeLayout keeps a fixed-width fraction so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const moveColumns = "id, run_id, source_path, target_path, category, status, error_message, recorded_at"

// BeginRun inserts a run row. The caller assigns the run id.
func (s *Store) BeginRun(ctx context.Context, run Run) error {
	if strings.TrimSpace(run.ID) == "" {
		return errors.New("run id is required")
	}
	started := run.StartedAt
	if started.IsZero() {
		started = time.Now()
	}
	_, err := s.exec(ctx,
		`INSERT INTO runs (id, source_dir, recursive, dry_run, collision, table_source, started_at)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.SourceDir,
		boolToInt(run.Recursive),
		boolToInt(run.DryRun),
		run.Collision,
		nullableString(run.TableSource),
		formatTime(started),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// RecordMove appends one journal entry to a run.
func (s *Store) RecordMove(ctx context.Context, move Move) error {
	recorded := move.RecordedAt
	if recorded.IsZero() {
		recorded = time.Now()
	}
	_, err := s.exec(ctx,
		`INSERT INTO moves (run_id, source_path, target_path, category, status, error_message, recorded_at)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		move.RunID,
		move.Source,
		nullableString(move.Target),
		move.Category,
		string(move.Status),
		nullableString(move.Error),
		formatTime(recorded),
	)
	if err != nil {
		return fmt.Errorf("insert move: %w", err)
	}
	return nil
}

// FinishRun stores the final counters of a run.
func (s *Store) FinishRun(ctx context.Context, run Run) error {
	finished := run.FinishedAt
	if finished.IsZero() {
		finished = time.Now()
	}
	res, err := s.exec(ctx,
		`UPDATE runs SET finished_at = ?, moved = ?, skipped = ?, failed = ? WHERE id = ?`,
		formatTime(finished), run.Moved, run.Skipped, run.Failed, run.ID,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	return requireRow(res, run.ID)
}

// ListRuns returns the most recent runs first. A non-positive limit returns all runs.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	ctx = ensureContext(ctx)
	query := "SELECT " + runColumns + " FROM runs ORDER BY started_at DESC, rowid DESC"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetRun resolves a full run id or a unique prefix of one.
func (s *Store) GetRun(ctx context.Context, id string) (Run, error) {
	ctx = ensureContext(ctx)
	id = strings.TrimSpace(id)
	if id == "" {
		return Run{}, fmt.Errorf("%w: empty id", ErrRunNotFound)
	}
	row := s.db.QueryRowContext(ctx, "SELECT "+runColumns+" FROM runs WHERE id = ?", id)
	run, err := scanRun(row)
	if err == nil {
		return run, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("get run: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT "+runColumns+" FROM runs WHERE substr(id, 1, ?) = ? LIMIT 2", len(id), id)
	if err != nil {
		return Run{}, fmt.Errorf("get run by prefix: %w", err)
	}
	defer rows.Close()
	var matches []Run
	for rows.Next() {
		match, err := scanRun(rows)
		if err != nil {
			return Run{}, fmt.Errorf("scan run: %w", err)
		}
		matches = append(matches, match)
	}
	if err := rows.Err(); err != nil {
		return Run{}, err
	}
	switch len(matches) {
	case 0:
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	case 1:
		return matches[0], nil
	default:
		return Run{}, fmt.Errorf("%w: %s", ErrAmbiguousRun, id)
	}
}

// Moves returns the journal entries of a run in the order they were recorded.
func (s *Store) Moves(ctx context.Context, runID string) ([]Move, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+moveColumns+" FROM moves WHERE run_id = ? ORDER BY id", runID)
	if err != nil {
		return nil, fmt.Errorf("list moves: %w", err)
	}
	defer rows.Close()

	var moves []Move
	for rows.Next() {
		move, err := scanMove(rows)
		if err != nil {
			return nil, fmt.Errorf("scan move: %w", err)
		}
		moves = append(moves, move)
	}
	return moves, rows.Err()
}

// MarkMoveReverted flags a single move as undone.
func (s *Store) MarkMoveReverted(ctx context.Context, moveID int64) error {
	res, err := s.exec(ctx, "UPDATE moves SET status = ? WHERE id = ?", string(MoveReverted), moveID)
	if err != nil {
		return fmt.Errorf("mark move reverted: %w", err)
	}
	return requireRow(res, fmt.Sprintf("move %d", moveID))
}

// MarkReverted flags the run as undone.
func (s *Store) MarkReverted(ctx context.Context, runID string, at time.Time) error {
	if at.IsZero() {
		at = time.Now()
	}
	res, err := s.exec(ctx, "UPDATE runs SET reverted_at = ? WHERE id = ?", formatTime(at), runID)
	if err != nil {
		return fmt.Errorf("mark run reverted: %w", err)
	}
	return requireRow(res, runID)
}

type scanner interface{ Scan(dest ...any) error }

func scanRun(row scanner) (Run, error) {
	var (
		run         Run
		recursive   int
		dryRun      int
		tableSource sql.NullString
		startedRaw  string
		finishedRaw sql.NullString
		revertedRaw sql.NullString
	)
	if err := row.Scan(
		&run.ID,
		&run.SourceDir,
		&recursive,
		&dryRun,
		&run.Collision,
		&tableSource,
		&startedRaw,
		&finishedRaw,
		&run.Moved,
		&run.Skipped,
		&run.Failed,
		&revertedRaw,
	); err != nil {
		return Run{}, err
	}
	run.Recursive = recursive != 0
	run.DryRun = dryRun != 0
	run.TableSource = tableSource.String
	run.StartedAt = parseTime(startedRaw)
	run.FinishedAt = parseTime(finishedRaw.String)
	run.RevertedAt = parseTime(revertedRaw.String)
	return run, nil
}

func scanMove(row scanner) (Move, error) {
	var (
		move        Move
		target      sql.NullString
		status      string
		errMessage  sql.NullString
		recordedRaw string
	)
	if err := row.Scan(
		&move.ID,
		&move.RunID,
		&move.Source,
		&target,
		&move.Category,
		&status,
		&errMessage,
		&recordedRaw,
	); err != nil {
		return Move{}, err
	}
	move.Target = target.String
	move.Status = MoveStatus(status)
	move.Error = errMessage.String
	move.RecordedAt = parseTime(recordedRaw)
	return move, nil
}

func requireRow(res sql.Result, id string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	parsed, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}
	}
	return parsed
}

func nullableString(value string) any {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return value
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
