package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config captures CLI options sourced from config files, environment
// variables, or flags.
type Config struct {
	// IncludeStatusJobs keeps umbrella "Status" jobs in the report.
	IncludeStatusJobs bool `yaml:"include_status_jobs"`
	// FailOnSkipped makes skipped jobs count against the exit status.
	FailOnSkipped bool `yaml:"fail_on_skipped"`
	// IgnoreJobs lists job names excluded from the report.
	IgnoreJobs []string `yaml:"ignore_jobs"`
	// Format selects the stdout rendering of the report.
	Format string `yaml:"format"`

	// NotifyResults is the comma-separated list of overall statuses that
	// trigger a Slack notification ("all" for every result).
	NotifyResults string `yaml:"notify_results"`
	// NotifyIncludeJobs controls job details in the Slack message
	// (true|false|on-failure).
	NotifyIncludeJobs string `yaml:"notify_include_jobs"`
}

const (
	// FormatMarkdown renders the same document that goes to the summary
	// surface.
	FormatMarkdown = "markdown"
	// FormatPretty renders human readable terminal output.
	FormatPretty = "pretty"
	// FormatJSON renders machine readable output.
	FormatJSON = "json"
)

// Default returns the baseline configuration used when no flags or config
// file specify values.
func Default() Config {
	return Config{
		Format:            FormatPretty,
		NotifyResults:     "failure,mixed",
		NotifyIncludeJobs: "on-failure",
	}
}

// Load reads .checkjobs.yml from the working directory when present.
// Missing files are ignored.
func Load(root string) (Config, error) {
	cfg := Default()
	path := filepath.Join(root, ".checkjobs.yml")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %q: %w", path, err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return cfg, fmt.Errorf("parse config %q: %w", path, err)
	}

	cfg = merge(cfg, fileCfg)
	return cfg, nil
}

func merge(base, override Config) Config {
	out := base

	if override.IncludeStatusJobs {
		out.IncludeStatusJobs = true
	}
	if override.FailOnSkipped {
		out.FailOnSkipped = true
	}
	if len(override.IgnoreJobs) > 0 {
		out.IgnoreJobs = append([]string{}, override.IgnoreJobs...)
	}
	if override.Format != "" {
		out.Format = override.Format
	}
	if override.NotifyResults != "" {
		out.NotifyResults = override.NotifyResults
	}
	if override.NotifyIncludeJobs != "" {
		out.NotifyIncludeJobs = override.NotifyIncludeJobs
	}

	return out
}

// ApplyEnv mutates cfg from the environment variables the original shell
// integration documents. getenv is injectable for tests.
func ApplyEnv(cfg *Config, getenv func(string) string) {
	if getenv("CHECK_JOBS_INCLUDE_STATUS") == "1" {
		cfg.IncludeStatusJobs = true
	}
	if raw := getenv("CHECK_JOBS_IGNORE_JOBS"); strings.TrimSpace(raw) != "" {
		for _, part := range strings.Split(raw, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			cfg.IgnoreJobs = append(cfg.IgnoreJobs, part)
		}
	}
	if v := strings.TrimSpace(getenv("SEND_TO_SLACK_RESULTS")); v != "" {
		cfg.NotifyResults = v
	}
	if v := strings.TrimSpace(getenv("SEND_TO_SLACK_INCLUDE_JOBS")); v != "" {
		cfg.NotifyIncludeJobs = strings.ToLower(v)
	}
}

// ApplyFlags mutates cfg by applying values from CLI flags when they are
// present.
func ApplyFlags(cfg *Config, flags FlagValues) {
	if flags.IncludeStatusJobs.Set {
		cfg.IncludeStatusJobs = flags.IncludeStatusJobs.Value
	}
	if flags.FailOnSkipped.Set {
		cfg.FailOnSkipped = flags.FailOnSkipped.Value
	}
	if len(flags.IgnoreJobs.Values) > 0 {
		cfg.IgnoreJobs = append([]string{}, flags.IgnoreJobs.Values...)
	}
	if flags.Format.Set {
		cfg.Format = flags.Format.Value
	}
	if flags.NotifyResults.Set {
		cfg.NotifyResults = flags.NotifyResults.Value
	}
	if flags.NotifyIncludeJobs.Set {
		cfg.NotifyIncludeJobs = flags.NotifyIncludeJobs.Value
	}
}

// FlagValues captures CLI flag state with knowledge of whether each flag
// was set explicitly.
type FlagValues struct {
	IncludeStatusJobs BoolFlag
	FailOnSkipped     BoolFlag
	IgnoreJobs        SliceFlag
	Format            StringFlag
	NotifyResults     StringFlag
	NotifyIncludeJobs StringFlag
}

// StringFlag represents a string flag and whether it was set.
type StringFlag struct {
	Value string
	Set   bool
}

// SliceFlag represents a slice flag and whether it captured values via CLI.
type SliceFlag struct {
	Values []string
}

// BoolFlag represents a bool flag and whether it was set.
type BoolFlag struct {
	Value bool
	Set   bool
}
