package organizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"shelve/internal/catalog"
	"shelve/internal/config"
	"shelve/internal/faults"
	"shelve/internal/history"
	"shelve/internal/logging"
	"shelve/internal/preflight"
)

// Organizer moves files into category folders according to a catalog.Table.
type Organizer struct {
	table       *catalog.Table
	recursive   bool
	collision   string
	dryRun      bool
	workers     int
	logger      *slog.Logger
	recorder    Recorder
	tableSource string
	now         func() time.Time
}

// New constructs an Organizer. A nil table selects the built-in categories.
func New(table *catalog.Table, opts ...Option) *Organizer {
	if table == nil {
		table = catalog.Default()
	}
	o := &Organizer{
		table:     table,
		collision: config.CollisionFail,
		workers:   1,
		logger:    logging.NewNop(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	o.logger = logging.NewComponentLogger(o.logger, "organizer")
	return o
}

// Organize sorts the files of sourceDir. The returned error is reserved for
// problems that stop the run; per-file failures are reported through
// Summary.Failed and Summary.Err.
func (o *Organizer) Organize(ctx context.Context, sourceDir string) (Summary, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	root, err := preflight.ValidateSource(sourceDir)
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{
		RunID:     uuid.NewString(),
		SourceDir: root,
		Recursive: o.recursive,
		DryRun:    o.dryRun,
		StartedAt: o.now(),
	}
	ctx = logging.WithSource(logging.WithRunID(ctx, summary.RunID), root)
	logger := logging.WithContext(ctx, o.logger)

	entries, err := o.snapshot(ctx, logger, root)
	if err != nil {
		logging.ErrorWithContext(logger, "scan failed", "scan_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check that the directory is readable"),
		)
		return summary, err
	}
	logger.Info("organize started",
		logging.Int("files", len(entries)),
		logging.Bool("recursive", o.recursive),
		logging.Bool("dry_run", o.dryRun),
		logging.String("collision", o.collision),
		logging.Int("workers", o.workers),
	)

	if err := o.beginRun(ctx, summary); err != nil {
		logging.ErrorWithContext(logger, "run not journaled", "history_begin_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check the history database under state_dir"),
		)
		return summary, err
	}

	summary.Outcomes = o.process(ctx, logger, summary.RunID, entries)
	summary.FinishedAt = o.now()
	summary.tally()

	o.finishRun(ctx, logger, summary)

	logger.Info("organize completed",
		logging.Int("moved", summary.Moved),
		logging.Int("planned", summary.Planned),
		logging.Int("skipped", summary.Skipped),
		logging.Int("failed", summary.Failed),
		logging.Duration("duration", summary.Duration()),
	)

	if err := ctx.Err(); err != nil {
		return summary, fmt.Errorf("organize interrupted: %w", err)
	}
	return summary, nil
}

// process runs place over the snapshot with at most o.workers moves in
// flight. Each worker writes only its own slot of the result slice. Entries
// not started before cancellation are reported as skipped.
func (o *Organizer) process(ctx context.Context, logger *slog.Logger, runID string, entries []Entry) []Outcome {
	outcomes := make([]Outcome, len(entries))
	var g errgroup.Group
	g.SetLimit(o.workers)
	for i, entry := range entries {
		if ctx.Err() != nil {
			outcomes[i] = Outcome{Source: entry.Path, Category: o.table.Classify(entry.Name), Status: StatusSkipped, Err: ctx.Err()}
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				outcomes[i] = Outcome{Source: entry.Path, Category: o.table.Classify(entry.Name), Status: StatusSkipped, Err: err}
				return nil
			}
			category, reason := o.classify(entry.Name)
			logger.Debug("file classified", logging.Args(append(
				[]logging.Attr{logging.String("source", entry.Path)},
				logging.DecisionAttrs("classification", category, reason)...,
			)...)...)
			outcome := o.place(entry, category)
			outcomes[i] = outcome
			o.report(ctx, logger, runID, outcome)
			return nil
		})
	}
	_ = g.Wait()
	return outcomes
}

// classify returns the file's category and why the table chose it.
func (o *Organizer) classify(name string) (string, string) {
	ext := catalog.Extension(name)
	if ext == "" {
		return catalog.Others, "no extension"
	}
	if category, ok := o.table.Lookup(ext); ok {
		return category, fmt.Sprintf("first category listing .%s", catalog.NormalizeExtension(ext))
	}
	return catalog.Others, fmt.Sprintf("no category lists .%s", catalog.NormalizeExtension(ext))
}

func (o *Organizer) report(ctx context.Context, logger *slog.Logger, runID string, outcome Outcome) {
	switch outcome.Status {
	case StatusFailed:
		logging.WarnWithContext(logger, "file not organized", "file_failed",
			logging.String("source", outcome.Source),
			logging.String("category", outcome.Category),
			logging.String("error_kind", faults.Kind(outcome.Err)),
			logging.Error(outcome.Err),
			logging.String(logging.FieldErrorHint, hintFor(outcome.Err)),
		)
	case StatusMoved:
		logger.Debug("file moved",
			logging.String("source", outcome.Source),
			logging.String("target", outcome.Target),
			logging.String("category", outcome.Category),
			logging.Bool("copied", outcome.Copied),
		)
	case StatusPlanned:
		logger.Debug("file planned",
			logging.String("source", outcome.Source),
			logging.String("target", outcome.Target),
			logging.String("category", outcome.Category),
		)
	}

	if o.recorder == nil {
		return
	}
	move := history.Move{
		RunID:    runID,
		Source:   outcome.Source,
		Target:   outcome.Target,
		Category: outcome.Category,
		Status:   history.MoveStatus(outcome.Status),
	}
	if outcome.Err != nil {
		move.Error = outcome.Err.Error()
	}
	if err := o.recorder.RecordMove(context.WithoutCancel(ctx), move); err != nil {
		logging.WarnWithContext(logger, "history entry not written", "history_write_failed",
			logging.String("source", outcome.Source),
			logging.Error(err),
			logging.String(logging.FieldImpact, "this move cannot be undone automatically"),
		)
	}
}

func (o *Organizer) beginRun(ctx context.Context, summary Summary) error {
	if o.recorder == nil {
		return nil
	}
	err := o.recorder.BeginRun(ctx, history.Run{
		ID:          summary.RunID,
		SourceDir:   summary.SourceDir,
		Recursive:   summary.Recursive,
		DryRun:      summary.DryRun,
		Collision:   o.collision,
		TableSource: o.tableSource,
		StartedAt:   summary.StartedAt,
	})
	if err != nil {
		return faults.Wrap(faults.ErrHistory, "organize", "begin run", "cannot journal run", err)
	}
	return nil
}

func (o *Organizer) finishRun(ctx context.Context, logger *slog.Logger, summary Summary) {
	if o.recorder == nil {
		return
	}
	err := o.recorder.FinishRun(context.WithoutCancel(ctx), history.Run{
		ID:         summary.RunID,
		FinishedAt: summary.FinishedAt,
		Moved:      summary.Moved,
		Skipped:    summary.Skipped,
		Failed:     summary.Failed,
	})
	if err != nil {
		logging.WarnWithContext(logger, "history run not finalized", "history_write_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "run totals missing from history"),
		)
	}
}

func hintFor(err error) string {
	switch {
	case errors.Is(err, faults.ErrCollision):
		return "rename the existing file or rerun with --collision suffix"
	case errors.Is(err, faults.ErrDirectoryCreate):
		return "check write permission and that no file uses the category folder name"
	default:
		return "check file permissions and free space"
	}
}
