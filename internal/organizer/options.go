package organizer

import (
	"context"
	"log/slog"

	"shelve/internal/config"
	"shelve/internal/history"
)

// Recorder receives the journal of a run. *history.Store satisfies it.
type Recorder interface {
	BeginRun(ctx context.Context, run history.Run) error
	RecordMove(ctx context.Context, move history.Move) error
	FinishRun(ctx context.Context, run history.Run) error
}

// Option configures an Organizer.
type Option func(*Organizer)

// WithRecursive organizes every directory of the tree in place.
func WithRecursive(recursive bool) Option {
	return func(o *Organizer) { o.recursive = recursive }
}

// WithCollision selects the policy for an occupied destination name:
// config.CollisionFail or config.CollisionSuffix.
func WithCollision(policy string) Option {
	return func(o *Organizer) {
		if policy != "" {
			o.collision = policy
		}
	}
}

// WithDryRun plans moves without touching the filesystem.
func WithDryRun(dryRun bool) Option {
	return func(o *Organizer) { o.dryRun = dryRun }
}

// WithWorkers bounds the number of concurrent moves. Values below one mean one.
func WithWorkers(workers int) Option {
	return func(o *Organizer) {
		if workers > 0 {
			o.workers = workers
		}
	}
}

// WithLogger sets the base logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Organizer) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithRecorder journals every run through r.
func WithRecorder(r Recorder) Option {
	return func(o *Organizer) { o.recorder = r }
}

// WithTableSource labels where the category table came from in the journal.
func WithTableSource(source string) Option {
	return func(o *Organizer) { o.tableSource = source }
}

// FromConfig maps the [organize] section onto options.
func FromConfig(cfg *config.Config) []Option {
	if cfg == nil {
		return nil
	}
	return []Option{
		WithRecursive(cfg.Organize.Recursive),
		WithCollision(cfg.Organize.Collision),
		WithWorkers(cfg.Organize.Workers),
	}
}
