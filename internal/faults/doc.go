// Package faults defines the error kinds shared by the organizer pipeline.
//
// Each kind is an exported sentinel marker. Wrap tags a failure with one of
// the markers plus the stage and operation that produced it, so callers can
// classify errors with errors.Is while users still see a readable message.
// Fatal kinds (invalid source, configuration, lock) abort a run before any
// filesystem mutation; per-file kinds are aggregated into the run summary.
package faults
