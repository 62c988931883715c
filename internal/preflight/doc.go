// Package preflight provides readiness checks for the directories shelve
// touches.
//
// These checks run in two contexts:
//   - The organizer calls ValidateSource before enumerating anything, so an
//     invalid source directory aborts the run with no filesystem mutation.
//   - The CLI "shelve check" command uses RunAll to display a readiness
//     report for a directory and the configured state directory.
package preflight
