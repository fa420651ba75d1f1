package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/lupaxa/checkjobs/internal/config"
	"github.com/lupaxa/checkjobs/internal/jobs"
	"github.com/lupaxa/checkjobs/internal/meta"
	"github.com/lupaxa/checkjobs/internal/output"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [jobs-json]",
		Short: "Summarise job statuses and fail if any job did not succeed",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runCheck,
	}
	cmd.Flags().Bool("fail-on-skipped", false, "treat skipped jobs as failures")
	cmd.Flags().String("format", config.FormatPretty, "stdout format (markdown|pretty|json)")
	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	buckets, m, err := buildReport(cmd.Context(), cfg, args)
	if err != nil {
		return err
	}

	if err := appendStepSummary(buckets, m); err != nil {
		return err
	}

	switch cfg.Format {
	case config.FormatMarkdown:
		if err := output.NewMarkdown(cmd.OutOrStdout()).Render(buckets, m); err != nil {
			return err
		}
	case config.FormatPretty:
		if err := output.NewPretty(cmd.OutOrStdout()).Render(buckets, m); err != nil {
			return err
		}
	case config.FormatJSON:
		if err := output.NewJSON(cmd.OutOrStdout()).Render(buckets, m); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported format %q", cfg.Format)
	}

	if n := buckets.Blocking(cfg.FailOnSkipped); n > 0 {
		return fmt.Errorf("%d job(s) did not succeed", n)
	}
	return nil
}

// appendStepSummary appends the markdown report to the summary surface.
// An unset GITHUB_STEP_SUMMARY means summaries are unavailable; that is a
// no-op, not an error.
func appendStepSummary(buckets jobs.Buckets, m meta.RunMetadata) error {
	path := os.Getenv("GITHUB_STEP_SUMMARY")
	if path == "" {
		logrus.Debug("GITHUB_STEP_SUMMARY not set; skipping step summary")
		return nil
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open step summary file: %w", err)
	}
	defer f.Close()

	if err := output.NewMarkdown(f).Render(buckets, m); err != nil {
		return fmt.Errorf("write step summary: %w", err)
	}
	return nil
}
