package organizer

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// Status is the result of processing one file.
type Status string

const (
	StatusMoved   Status = "moved"
	StatusPlanned Status = "planned"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// Outcome describes what happened to one file.
type Outcome struct {
	Source   string
	Target   string
	Category string
	Status   Status
	// Copied is set when the move crossed filesystems.
	Copied bool
	Err    error
}

// Summary aggregates a run.
type Summary struct {
	RunID      string
	SourceDir  string
	Recursive  bool
	DryRun     bool
	StartedAt  time.Time
	FinishedAt time.Time
	Moved      int
	Planned    int
	Skipped    int
	Failed     int
	Outcomes   []Outcome
}

// Duration is the wall time of the run.
func (s Summary) Duration() time.Duration {
	if s.FinishedAt.IsZero() {
		return 0
	}
	return s.FinishedAt.Sub(s.StartedAt)
}

// Err joins the per-file failures, or returns nil when every file succeeded.
func (s Summary) Err() error {
	if s.Failed == 0 {
		return nil
	}
	errs := make([]error, 0, s.Failed)
	for _, outcome := range s.Outcomes {
		if outcome.Status == StatusFailed && outcome.Err != nil {
			errs = append(errs, outcome.Err)
		}
	}
	if len(errs) == 0 {
		return fmt.Errorf("%d files failed", s.Failed)
	}
	return errors.Join(errs...)
}

// CategoryCount is the number of files placed in one category.
type CategoryCount struct {
	Category string
	Files    int
}

// ByCategory counts moved and planned files per category, largest first.
func (s Summary) ByCategory() []CategoryCount {
	counts := make(map[string]int)
	for _, outcome := range s.Outcomes {
		if outcome.Status == StatusMoved || outcome.Status == StatusPlanned {
			counts[outcome.Category]++
		}
	}
	out := make([]CategoryCount, 0, len(counts))
	for category, n := range counts {
		out = append(out, CategoryCount{Category: category, Files: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Files != out[j].Files {
			return out[i].Files > out[j].Files
		}
		return out[i].Category < out[j].Category
	})
	return out
}

func (s *Summary) tally() {
	s.Moved, s.Planned, s.Skipped, s.Failed = 0, 0, 0, 0
	for _, outcome := range s.Outcomes {
		switch outcome.Status {
		case StatusMoved:
			s.Moved++
		case StatusPlanned:
			s.Planned++
		case StatusSkipped:
			s.Skipped++
		case StatusFailed:
			s.Failed++
		}
	}
}
