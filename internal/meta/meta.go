// Package meta collects run metadata from the CI environment into one
// explicit snapshot, so renderers never reach into ambient process state.
package meta

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// RunMetadata is an immutable snapshot of environment-provided facts about
// the current workflow run. It is built once at startup and passed by value
// into renderers.
type RunMetadata struct {
	Repository      string
	Workflow        string
	RunID           string
	RunNumber       string
	RunAttempt      string
	EventName       string
	Actor           string
	TriggeringActor string
	RefName         string
	SHA             string

	PRNumber string
	PRTitle  string
	// CommitMessage is the head commit message or PR title, when known.
	CommitMessage string

	// GeneratedAt is the report generation time, captured once so that
	// rendering the same snapshot twice produces identical output.
	GeneratedAt time.Time
}

// FromEnv builds a RunMetadata from GITHUB_* environment variables, reading
// pull-request data from the event payload file when one is available.
// getenv is injectable for tests; pass os.Getenv in production.
func FromEnv(getenv func(string) string) RunMetadata {
	m := RunMetadata{
		Repository:      getenv("GITHUB_REPOSITORY"),
		Workflow:        getenv("GITHUB_WORKFLOW"),
		RunID:           getenv("GITHUB_RUN_ID"),
		RunNumber:       getenv("GITHUB_RUN_NUMBER"),
		RunAttempt:      getenv("GITHUB_RUN_ATTEMPT"),
		EventName:       getenv("GITHUB_EVENT_NAME"),
		Actor:           getenv("GITHUB_ACTOR"),
		TriggeringActor: getenv("GITHUB_TRIGGERING_ACTOR"),
		RefName:         getenv("GITHUB_REF_NAME"),
		SHA:             getenv("GITHUB_SHA"),
		GeneratedAt:     time.Now().UTC(),
	}
	if m.Actor == "" {
		m.Actor = "unknown"
	}

	if payload := readEventPayload(getenv("GITHUB_EVENT_PATH")); payload != nil {
		m.PRNumber, m.PRTitle = prMetadata(payload)
		m.CommitMessage = commitMessage(payload)
	}
	return m
}

// RunURL is the browser link to the workflow run, or "" when the
// repository or run id is unknown.
func (m RunMetadata) RunURL() string {
	if m.Repository == "" || m.RunID == "" {
		return ""
	}
	return fmt.Sprintf("https://github.com/%s/actions/runs/%s", m.Repository, m.RunID)
}

// PRURL is the browser link to the pull request, or "" when there is no
// pull-request data.
func (m RunMetadata) PRURL() string {
	if m.Repository == "" || m.PRNumber == "" {
		return ""
	}
	return fmt.Sprintf("https://github.com/%s/pull/%s", m.Repository, m.PRNumber)
}

type eventPayload struct {
	PullRequest *struct {
		Number json.Number `json:"number"`
		Title  string      `json:"title"`
	} `json:"pull_request"`
	HeadCommit *struct {
		Message string `json:"message"`
	} `json:"head_commit"`
}

// readEventPayload loads the event payload file. Every failure is
// best-effort and yields nil; PR metadata is optional.
func readEventPayload(path string) *eventPayload {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var payload eventPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil
	}
	return &payload
}

func prMetadata(payload *eventPayload) (number, title string) {
	pr := payload.PullRequest
	if pr == nil || pr.Number.String() == "" {
		return "", ""
	}
	return pr.Number.String(), pr.Title
}

func commitMessage(payload *eventPayload) string {
	if pr := payload.PullRequest; pr != nil && pr.Title != "" {
		return pr.Title
	}
	if hc := payload.HeadCommit; hc != nil {
		return hc.Message
	}
	return ""
}
