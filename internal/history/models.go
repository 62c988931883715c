package history

import "time"

// MoveStatus records what happened to one file in a run.
type MoveStatus string

const (
	MoveMoved    MoveStatus = "moved"
	MovePlanned  MoveStatus = "planned"
	MoveSkipped  MoveStatus = "skipped"
	MoveFailed   MoveStatus = "failed"
	MoveReverted MoveStatus = "reverted"
)

// Run is one organize invocation.
type Run struct {
	ID          string    `json:"id"`
	SourceDir   string    `json:"source_dir"`
	Recursive   bool      `json:"recursive"`
	DryRun      bool      `json:"dry_run"`
	Collision   string    `json:"collision"`
	TableSource string    `json:"table_source,omitempty"`
	StartedAt   time.Time `json:"started_at"`
	FinishedAt  time.Time `json:"finished_at"`
	Moved       int       `json:"moved"`
	Skipped     int       `json:"skipped"`
	Failed      int       `json:"failed"`
	RevertedAt  time.Time `json:"reverted_at"`
}

// Finished reports whether the run recorded its completion.
func (r Run) Finished() bool {
	return !r.FinishedAt.IsZero()
}

// Reverted reports whether the run has been undone.
func (r Run) Reverted() bool {
	return !r.RevertedAt.IsZero()
}

// Move is a single journal entry for a classified file.
type Move struct {
	ID         int64      `json:"id"`
	RunID      string     `json:"run_id"`
	Source     string     `json:"source"`
	Target     string     `json:"target,omitempty"`
	Category   string     `json:"category"`
	Status     MoveStatus `json:"status"`
	Error      string     `json:"error,omitempty"`
	RecordedAt time.Time  `json:"recorded_at"`
}
