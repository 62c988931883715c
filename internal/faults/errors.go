package faults

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidSource   = errors.New("invalid source directory")
	ErrConfigNotFound  = errors.New("configuration not found")
	ErrConfigParse     = errors.New("configuration parse error")
	ErrDirectoryCreate = errors.New("directory create failed")
	ErrFileMove        = errors.New("file move failed")
	ErrCollision       = errors.New("destination already exists")
	ErrLocked          = errors.New("directory locked by another run")
	ErrHistory         = errors.New("history error")
)

// Exit codes returned by the CLI.
const (
	ExitOK      = 0
	ExitFatal   = 1
	ExitPartial = 2
)

// Wrap builds an error message that includes stage context while tagging it with
// the provided marker for later classification. The marker should be one of the
// exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrFileMove
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// IsFatal reports whether err should abort a run instead of being recorded
// against a single file.
func IsFatal(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, ErrDirectoryCreate), errors.Is(err, ErrFileMove), errors.Is(err, ErrCollision):
		return false
	default:
		return true
	}
}

// Kind returns a short stable label for the marker carried by err.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidSource):
		return "invalid_source"
	case errors.Is(err, ErrConfigNotFound):
		return "config_not_found"
	case errors.Is(err, ErrConfigParse):
		return "config_parse"
	case errors.Is(err, ErrDirectoryCreate):
		return "directory_create"
	case errors.Is(err, ErrCollision):
		return "collision"
	case errors.Is(err, ErrFileMove):
		return "file_move"
	case errors.Is(err, ErrLocked):
		return "locked"
	case errors.Is(err, ErrHistory):
		return "history"
	default:
		return "unknown"
	}
}

// ExitCode maps a run error to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	if IsFatal(err) {
		return ExitFatal
	}
	return ExitPartial
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "organizer failure"
	}
	return strings.Join(parts, ": ")
}
