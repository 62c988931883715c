package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"shelve/internal/catalog"
	"shelve/internal/config"
	"shelve/internal/organizer"
	"shelve/internal/preflight"
	"shelve/internal/runlock"
)

type organizeOptions struct {
	recursive  bool
	dryRun     bool
	collision  string
	workers    int
	extensions string
	jsonOut    bool
	noHistory  bool
}

func (o *organizeOptions) bind(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.BoolVarP(&o.recursive, "recursive", "r", false, "Organize every nested directory in place")
	flags.BoolVarP(&o.dryRun, "dry-run", "n", false, "Show where files would go without moving anything")
	flags.StringVar(&o.collision, "collision", "", "What to do when the destination name exists: fail or suffix")
	flags.IntVar(&o.workers, "workers", 0, "Number of files moved in parallel")
	flags.BoolVar(&o.jsonOut, "json", false, "Print the run summary as JSON")
	flags.BoolVar(&o.noHistory, "no-history", false, "Do not record this run in the history")
	cmd.PersistentFlags().StringVar(&o.extensions, "extensions", "", "JSON file mapping category names to extensions")
}

// apply layers explicitly set flags over the [organize] config section.
func (o *organizeOptions) apply(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("recursive") {
		cfg.Organize.Recursive = o.recursive
	}
	if flags.Changed("collision") {
		policy := strings.ToLower(strings.TrimSpace(o.collision))
		if policy != config.CollisionFail && policy != config.CollisionSuffix {
			return fmt.Errorf("--collision must be %q or %q, got %q", config.CollisionFail, config.CollisionSuffix, o.collision)
		}
		cfg.Organize.Collision = policy
	}
	if flags.Changed("workers") {
		if o.workers < 1 {
			return fmt.Errorf("--workers must be at least 1, got %d", o.workers)
		}
		cfg.Organize.Workers = o.workers
	}
	if o.noHistory {
		cfg.History.Enabled = false
	}
	return nil
}

func (o *organizeOptions) resolveTable(cfg *config.Config) (catalog.Resolution, error) {
	explicit := strings.TrimSpace(o.extensions)
	if explicit != "" {
		expanded, err := config.ExpandPath(explicit)
		if err != nil {
			return catalog.Resolution{}, err
		}
		explicit = expanded
	}
	return catalog.Resolve(catalog.ResolveOptions{
		Path:            explicit,
		FallbackPath:    cfg.Organize.ExtensionsFile,
		RequireFallback: cfg.Organize.RequireExtensionsFile,
		Configured:      cfg.Categories,
	})
}

func runOrganize(cmd *cobra.Command, ctx *commandContext, opts *organizeOptions, sourceArg string) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	if err := opts.apply(cmd, cfg); err != nil {
		return err
	}

	// Validate before touching locks or history so a bad argument leaves no trace.
	root, err := preflight.ValidateSource(sourceArg)
	if err != nil {
		return err
	}
	resolution, err := opts.resolveTable(cfg)
	if err != nil {
		return err
	}

	if err := ctx.prepareState(cfg); err != nil {
		return err
	}
	logger := ctx.loggerFor(cfg)
	runOpts := append(organizer.FromConfig(cfg),
		organizer.WithDryRun(opts.dryRun),
		organizer.WithLogger(logger),
		organizer.WithTableSource(fmt.Sprintf("%s:%s", resolution.Source, resolution.Origin)),
	)

	if !opts.dryRun {
		lock, err := runlock.Acquire(cfg.LockDir(), root)
		if err != nil {
			return err
		}
		defer func() { _ = lock.Release() }()
	}

	if cfg.History.Enabled {
		store, err := ctx.openHistory(cfg)
		if err != nil {
			return err
		}
		defer store.Close()
		runOpts = append(runOpts, organizer.WithRecorder(store))
	}

	summary, err := organizer.New(resolution.Table, runOpts...).Organize(cmd.Context(), root)
	if err != nil {
		if summary.RunID != "" && len(summary.Outcomes) > 0 {
			_ = printSummary(cmd, opts.jsonOut, sourceArg, summary)
		}
		return err
	}
	if err := printSummary(cmd, opts.jsonOut, sourceArg, summary); err != nil {
		return err
	}
	if failures := summary.Err(); failures != nil {
		return fmt.Errorf("%d of %d files could not be organized:\n%w",
			summary.Failed, len(summary.Outcomes), failures)
	}
	return nil
}

func printSummary(cmd *cobra.Command, jsonOut bool, sourceArg string, summary organizer.Summary) error {
	if jsonOut {
		return writeJSON(cmd, newSummaryView(summary))
	}
	out := cmd.OutOrStdout()
	for _, line := range summaryLines(sourceArg, summary) {
		fmt.Fprintln(out, line)
	}
	return nil
}

