package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lupaxa/checkjobs/internal/config"
)

func gatherFlags(cmd *cobra.Command) (config.FlagValues, error) {
	flags := cmd.Flags()
	var values config.FlagValues

	if flags.Changed("include-status-jobs") {
		v, err := flags.GetBool("include-status-jobs")
		if err != nil {
			return values, fmt.Errorf("parse --include-status-jobs: %w", err)
		}
		values.IncludeStatusJobs = config.BoolFlag{Value: v, Set: true}
	}

	if flags.Changed("ignore") {
		v, err := flags.GetStringArray("ignore")
		if err != nil {
			return values, fmt.Errorf("parse --ignore: %w", err)
		}
		values.IgnoreJobs = config.SliceFlag{Values: append([]string{}, v...)}
	}

	if flags.Changed("fail-on-skipped") {
		v, err := flags.GetBool("fail-on-skipped")
		if err != nil {
			return values, fmt.Errorf("parse --fail-on-skipped: %w", err)
		}
		values.FailOnSkipped = config.BoolFlag{Value: v, Set: true}
	}

	if flags.Changed("format") {
		v, err := flags.GetString("format")
		if err != nil {
			return values, fmt.Errorf("parse --format: %w", err)
		}
		values.Format = config.StringFlag{Value: v, Set: true}
	}

	if flags.Changed("results") {
		v, err := flags.GetString("results")
		if err != nil {
			return values, fmt.Errorf("parse --results: %w", err)
		}
		values.NotifyResults = config.StringFlag{Value: v, Set: true}
	}

	if flags.Changed("include-jobs") {
		v, err := flags.GetString("include-jobs")
		if err != nil {
			return values, fmt.Errorf("parse --include-jobs: %w", err)
		}
		values.NotifyIncludeJobs = config.StringFlag{Value: v, Set: true}
	}

	return values, nil
}
