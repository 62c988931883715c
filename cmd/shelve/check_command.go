package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"shelve/internal/config"
	"shelve/internal/preflight"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check <dir>",
		Short: "Check that a directory can be organized",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			source, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}
			results := preflight.RunAll(cfg, source)

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			for _, line := range checkLines(ctx.configPath, results, colorize) {
				fmt.Fprintln(out, line)
			}
			if !preflight.AllPassed(results) {
				return errors.New("readiness checks failed")
			}
			return nil
		},
	}
}

func checkLines(configPath string, results []preflight.Result, colorize bool) []string {
	lines := renderSectionHeader("Readiness", colorize)
	if configPath != "" {
		lines = append(lines, renderStatusLine("Config", statusInfo, configPath, colorize))
	}
	for _, r := range results {
		kind := statusOK
		if !r.Passed {
			kind = statusError
		}
		lines = append(lines, renderStatusLine(r.Name, kind, r.Detail, colorize))
	}
	return lines
}
