package main

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/lupaxa/checkjobs/internal/slack"
)

func newNotifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notify [jobs-json]",
		Short: "Send a workflow status notification to Slack",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runNotify,
	}
	cmd.Flags().String("results", "", "overall statuses that trigger a notification (comma separated, or \"all\")")
	cmd.Flags().String("include-jobs", "", "include job details in the message (true|false|on-failure)")
	return cmd
}

func runNotify(cmd *cobra.Command, args []string) error {
	webhook := strings.TrimSpace(os.Getenv("SLACK_WEBHOOK_URL"))
	if webhook == "" {
		webhook = strings.TrimSpace(os.Getenv("CHECK_JOBS_SLACK_WEBHOOK"))
	}
	if webhook == "" {
		logrus.Info("no SLACK_WEBHOOK_URL or CHECK_JOBS_SLACK_WEBHOOK set; skipping Slack notification")
		return nil
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	buckets, m, err := buildReport(cmd.Context(), cfg, args)
	if err != nil {
		return err
	}

	overall := buckets.Overall()
	if !slack.ShouldNotify(overall, cfg.NotifyResults) {
		logrus.Infof("overall status %q not in notify list %q; skipping Slack notification", overall, cfg.NotifyResults)
		return nil
	}

	var jobsMarkdown string
	if slack.IncludeJobs(slack.IncludeJobsMode(cfg.NotifyIncludeJobs), overall) {
		jobsMarkdown = slack.JobsMarkdown(buckets)
	}

	commitMessage := m.CommitMessage
	if !strtobool(os.Getenv("SEND_TO_SLACK_INCLUDE_COMMIT_MESSAGE"), true) {
		commitMessage = ""
	}

	payload := slack.BuildPayload(overall, m, jobsMarkdown, commitMessage)
	if err := slack.NewNotifier(webhook).Send(cmd.Context(), payload); err != nil {
		// Slack being unreachable must not fail the run being reported on.
		logrus.Warnf("failed to send Slack notification: %v", err)
	}
	return nil
}

func strtobool(value string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "t", "true", "y", "yes", "on":
		return true
	case "0", "f", "false", "n", "no", "off":
		return false
	default:
		return fallback
	}
}
