// Package logs reads the daily log files written by internal/logging so the
// CLI can show and follow recent activity.
package logs
