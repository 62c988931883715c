package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"shelve/internal/logging"
	"shelve/internal/organizer"
)

type outcomeView struct {
	Source   string `json:"source"`
	Target   string `json:"target,omitempty"`
	Category string `json:"category"`
	Status   string `json:"status"`
	Copied   bool   `json:"copied,omitempty"`
	Error    string `json:"error,omitempty"`
}

type summaryView struct {
	RunID      string        `json:"run_id"`
	SourceDir  string        `json:"source_dir"`
	Recursive  bool          `json:"recursive"`
	DryRun     bool          `json:"dry_run"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
	DurationMS int64         `json:"duration_ms"`
	Moved      int           `json:"moved"`
	Planned    int           `json:"planned"`
	Skipped    int           `json:"skipped"`
	Failed     int           `json:"failed"`
	Outcomes   []outcomeView `json:"outcomes"`
}

func newSummaryView(s organizer.Summary) summaryView {
	view := summaryView{
		RunID:      s.RunID,
		SourceDir:  s.SourceDir,
		Recursive:  s.Recursive,
		DryRun:     s.DryRun,
		StartedAt:  s.StartedAt,
		FinishedAt: s.FinishedAt,
		DurationMS: s.Duration().Milliseconds(),
		Moved:      s.Moved,
		Planned:    s.Planned,
		Skipped:    s.Skipped,
		Failed:     s.Failed,
		Outcomes:   make([]outcomeView, 0, len(s.Outcomes)),
	}
	for _, o := range s.Outcomes {
		ov := outcomeView{
			Source:   o.Source,
			Target:   o.Target,
			Category: o.Category,
			Status:   string(o.Status),
			Copied:   o.Copied,
		}
		if o.Err != nil {
			ov.Error = o.Err.Error()
		}
		view.Outcomes = append(view.Outcomes, ov)
	}
	return view
}

func headline(sourceArg string, s organizer.Summary) string {
	if s.DryRun {
		mode := "in"
		if s.Recursive {
			mode = "recursively in"
		}
		return fmt.Sprintf("Dry run: %d files would be organized %s '%s'.", s.Planned, mode, sourceArg)
	}
	if s.Recursive {
		return fmt.Sprintf("Files organized recursively in '%s'.", sourceArg)
	}
	return fmt.Sprintf("Files organized in '%s'.", sourceArg)
}

func summaryLines(sourceArg string, s organizer.Summary) []string {
	lines := []string{headline(sourceArg, s)}

	counts := fmt.Sprintf("Moved: %d  Skipped: %d  Failed: %d", s.Moved, s.Skipped, s.Failed)
	if s.DryRun {
		counts = fmt.Sprintf("Planned: %d  Skipped: %d  Failed: %d", s.Planned, s.Skipped, s.Failed)
	}
	lines = append(lines, fmt.Sprintf("%s  (run %s)", counts, logging.ShortRunID(s.RunID)))

	if s.DryRun {
		for _, o := range s.Outcomes {
			if o.Status != organizer.StatusPlanned {
				continue
			}
			lines = append(lines, fmt.Sprintf("  %s -> %s", relativeTo(s.SourceDir, o.Source), relativeTo(s.SourceDir, o.Target)))
		}
	}

	byCategory := s.ByCategory()
	if len(byCategory) > 1 {
		rows := make([][]string, 0, len(byCategory))
		for _, c := range byCategory {
			rows = append(rows, []string{c.Category, strconv.Itoa(c.Files)})
		}
		lines = append(lines, renderTable([]string{"Category", "Files"}, rows, []columnAlignment{alignLeft, alignRight}))
	}
	return lines
}

func relativeTo(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}
