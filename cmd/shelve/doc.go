// Package main hosts the shelve CLI entrypoint and command graph.
//
// The root command organizes a directory; subcommands list the category
// table, browse and revert the run history, run readiness checks, and
// scaffold configuration. Configuration resolution, logger setup, the run
// lock, and the history store are wired here so the internal packages stay
// free of CLI concerns.
package main
