// Package githubapi is the I/O boundary to the GitHub Actions REST API.
// It returns raw response bodies and leaves interpretation to callers.
package githubapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const (
	defaultBaseURL = "https://api.github.com"
	userAgent      = "lupaxa-check-jobs-status"
)

// ConfigError reports a missing repository id, run id, or credential.
type ConfigError struct {
	Missing string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("missing required configuration: %s", e.Missing)
}

// TransportError reports a network call that could not complete.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("github api request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// RemoteError reports a non-200 response, keeping the status and body for
// diagnosis.
type RemoteError struct {
	StatusCode int
	Body       string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("github api returned HTTP %d", e.StatusCode)
}

// Client performs authenticated reads against the GitHub REST API. The
// zero value is not usable; construct with New.
type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

// New returns a Client for api.github.com with a 30 second transport
// timeout.
func New(token string) *Client {
	return &Client{
		BaseURL:    defaultBaseURL,
		Token:      token,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// FetchJobs performs a single read of the "list jobs for run" endpoint and
// returns the raw response body. No retries are attempted: configuration,
// transport, and remote failures are all terminal.
func (c *Client) FetchJobs(ctx context.Context, repo, runID string) (string, error) {
	switch {
	case repo == "":
		return "", &ConfigError{Missing: "GITHUB_REPOSITORY"}
	case runID == "":
		return "", &ConfigError{Missing: "GITHUB_RUN_ID"}
	case c.Token == "":
		return "", &ConfigError{Missing: "GITHUB_TOKEN (or ACTIONS_RUNTIME_TOKEN)"}
	}

	path := fmt.Sprintf("/repos/%s/actions/runs/%s/jobs?per_page=100", repo, runID)
	return c.get(ctx, path)
}

// FetchCommitMessage reads the workflow run resource and extracts the head
// commit message. It is best-effort: every failure yields an empty string.
func (c *Client) FetchCommitMessage(ctx context.Context, repo, runID string) string {
	if repo == "" || runID == "" || c.Token == "" {
		return ""
	}
	body, err := c.get(ctx, fmt.Sprintf("/repos/%s/actions/runs/%s", repo, runID))
	if err != nil {
		return ""
	}

	var run struct {
		HeadCommit struct {
			Message string `json:"message"`
		} `json:"head_commit"`
	}
	if err := json.Unmarshal([]byte(body), &run); err != nil {
		return ""
	}
	return strings.TrimSpace(run.HeadCommit.Message)
}

func (c *Client) get(ctx context.Context, path string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return "", &TransportError{Err: errors.Wrap(err, "build request")}
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", userAgent)

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", &TransportError{Err: err}
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", &TransportError{Err: errors.Wrap(err, "read response body")}
	}
	if res.StatusCode != http.StatusOK {
		return "", &RemoteError{StatusCode: res.StatusCode, Body: string(body)}
	}
	return string(body), nil
}
