package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lupaxa/checkjobs/internal/config"
	"github.com/lupaxa/checkjobs/internal/githubapi"
	"github.com/lupaxa/checkjobs/internal/jobs"
	"github.com/lupaxa/checkjobs/internal/meta"
)

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	root, err := os.Getwd()
	if err != nil {
		return config.Config{}, fmt.Errorf("determine working directory: %w", err)
	}

	cfg, err := config.Load(root)
	if err != nil {
		return config.Config{}, err
	}

	config.ApplyEnv(&cfg, os.Getenv)

	flags, err := gatherFlags(cmd)
	if err != nil {
		return config.Config{}, err
	}
	config.ApplyFlags(&cfg, flags)

	return cfg, nil
}

func apiToken() string {
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		return token
	}
	return os.Getenv("ACTIONS_RUNTIME_TOKEN")
}

// loadJobsJSON resolves the raw jobs document. An argument naming an
// existing file is read from disk; any other argument is taken as a literal
// JSON document; no argument triggers the API client.
func loadJobsJSON(ctx context.Context, args []string) (string, error) {
	if len(args) == 1 {
		arg := args[0]
		if info, err := os.Stat(arg); err == nil && info.Mode().IsRegular() {
			data, err := os.ReadFile(arg)
			if err != nil {
				return "", fmt.Errorf("read jobs file %q: %w", arg, err)
			}
			return string(data), nil
		}
		return arg, nil
	}

	client := githubapi.New(apiToken())
	return client.FetchJobs(ctx, os.Getenv("GITHUB_REPOSITORY"), os.Getenv("GITHUB_RUN_ID"))
}

// buildReport runs the shared parse/classify half of both subcommands.
func buildReport(ctx context.Context, cfg config.Config, args []string) (jobs.Buckets, meta.RunMetadata, error) {
	raw, err := loadJobsJSON(ctx, args)
	if err != nil {
		return jobs.Buckets{}, meta.RunMetadata{}, err
	}

	records, err := jobs.Parse(raw, jobs.Options{
		IncludeUmbrellaJobs: cfg.IncludeStatusJobs,
		IgnoreJobs:          cfg.IgnoreJobs,
	})
	if err != nil {
		return jobs.Buckets{}, meta.RunMetadata{}, err
	}

	m := meta.FromEnv(os.Getenv)
	if m.CommitMessage == "" && len(args) == 0 {
		// Best effort; the run resource carries the head commit message
		// for push events that lack one in the event payload.
		client := githubapi.New(apiToken())
		m.CommitMessage = client.FetchCommitMessage(ctx, m.Repository, m.RunID)
	}

	return jobs.Classify(records), m, nil
}
