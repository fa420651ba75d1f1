// Package slack posts workflow status notifications to a Slack incoming
// webhook.
package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/lupaxa/checkjobs/internal/jobs"
	"github.com/lupaxa/checkjobs/internal/meta"
	"github.com/lupaxa/checkjobs/internal/output"
)

// IncludeJobsMode controls whether job details appear in the message.
type IncludeJobsMode string

const (
	// IncludeJobsAlways always lists the per-bucket job names.
	IncludeJobsAlways IncludeJobsMode = "true"
	// IncludeJobsNever never lists job names.
	IncludeJobsNever IncludeJobsMode = "false"
	// IncludeJobsOnFailure lists job names unless the overall status is
	// success. Unknown mode values fall back here.
	IncludeJobsOnFailure IncludeJobsMode = "on-failure"
)

// ShouldNotify reports whether the overall status is in the wanted list.
// The list is comma-separated; "all" matches everything; an empty list
// defaults to "failure,mixed".
func ShouldNotify(overall jobs.OverallStatus, wanted string) bool {
	wanted = strings.ToLower(strings.TrimSpace(wanted))
	if wanted == "" {
		wanted = "failure,mixed"
	}
	if wanted == "all" {
		return true
	}
	for _, part := range strings.Split(wanted, ",") {
		if strings.TrimSpace(part) == string(overall) {
			return true
		}
	}
	return false
}

// IncludeJobs resolves a raw mode value against the overall status.
func IncludeJobs(mode IncludeJobsMode, overall jobs.OverallStatus) bool {
	switch mode {
	case IncludeJobsAlways:
		return true
	case IncludeJobsNever:
		return false
	default:
		return overall != jobs.OverallSuccess
	}
}

// Payload is the webhook request body, in Block Kit form.
type Payload struct {
	Text   string  `json:"text"`
	Blocks []Block `json:"blocks"`
}

// Block is one Block Kit section.
type Block struct {
	Type string `json:"type"`
	Text *Text  `json:"text,omitempty"`
}

// Text is the mrkdwn body of a block.
type Text struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

func mrkdwnSection(text string) Block {
	return Block{Type: "section", Text: &Text{Type: "mrkdwn", Text: text}}
}

// statusIcon maps the overall status to a Slack emoji.
func statusIcon(overall jobs.OverallStatus) string {
	switch overall {
	case jobs.OverallSuccess:
		return ":white_check_mark:"
	case jobs.OverallFailure:
		return ":x:"
	case jobs.OverallMixed:
		return ":warning:"
	default:
		return ":grey_question:"
	}
}

// JobsMarkdown builds the per-bucket job listing in Slack mrkdwn.
func JobsMarkdown(b jobs.Buckets) string {
	var lines []string
	addSection := func(title string, entries []string) {
		if len(entries) == 0 {
			return
		}
		lines = append(lines, fmt.Sprintf("*%s*", title))
		for _, name := range output.SortEntries(entries) {
			lines = append(lines, "• "+name)
		}
		lines = append(lines, "")
	}

	addSection("Successful jobs", b.Success)
	addSection("Failed jobs", b.Failure)
	addSection("Timed out jobs", b.TimedOut)
	addSection("Cancelled jobs", b.Cancelled)
	addSection("Skipped jobs", b.Skipped)
	addSection("Other statuses", b.Other)

	if len(lines) == 0 {
		return "No jobs found in this run."
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// BuildPayload assembles the notification for a run. jobsMarkdown and the
// commit message block are optional.
func BuildPayload(overall jobs.OverallStatus, m meta.RunMetadata, jobsMarkdown, commitMessage string) Payload {
	titleParts := []string{"GitHub Actions workflow"}
	if m.Workflow != "" {
		titleParts = append(titleParts, fmt.Sprintf("“%s”", m.Workflow))
	}
	if m.Repository != "" {
		titleParts = append(titleParts, fmt.Sprintf("for `%s`", m.Repository))
	}
	title := strings.Join(titleParts, " ")

	header := []string{
		fmt.Sprintf("*%s*", title),
		fmt.Sprintf("*Status:* `%s`", overall),
		fmt.Sprintf("*Event:* `%s`", m.EventName),
	}
	if m.RefName != "" {
		header = append(header, fmt.Sprintf("*Ref:* `%s`", m.RefName))
	}
	if m.SHA != "" {
		header = append(header, fmt.Sprintf("*SHA:* `%s`", shortSHA(m.SHA)))
	}
	header = append(header, fmt.Sprintf("*Actor:* `%s`", m.Actor))
	if url := m.RunURL(); url != "" {
		header = append(header, fmt.Sprintf("*Run:* <%s|View in GitHub>", url))
	}
	if m.PRNumber != "" {
		if url := m.PRURL(); url != "" {
			header = append(header, fmt.Sprintf("*PR:* <%s|#%s: %s>", url, m.PRNumber, m.PRTitle))
		} else {
			header = append(header, fmt.Sprintf("*PR:* #%s: %s", m.PRNumber, m.PRTitle))
		}
	}
	header = append(header, fmt.Sprintf("*Generated at (UTC):* `%s`", meta.HumanTimestamp(m.GeneratedAt)))

	payload := Payload{
		Text:   fmt.Sprintf("%s %s (%s)", statusIcon(overall), title, overall),
		Blocks: []Block{mrkdwnSection(strings.Join(header, "\n"))},
	}

	if commitMessage != "" {
		payload.Blocks = append(payload.Blocks,
			mrkdwnSection(fmt.Sprintf("*Commit message / PR title:*\n>%s", commitMessage)))
	}
	if jobsMarkdown != "" {
		payload.Blocks = append(payload.Blocks, mrkdwnSection(jobsMarkdown))
	}
	return payload
}

func shortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}

// Notifier posts payloads to one webhook URL.
type Notifier struct {
	WebhookURL string
	HTTPClient *http.Client
}

// NewNotifier returns a Notifier with a 30 second transport timeout.
func NewNotifier(webhookURL string) *Notifier {
	return &Notifier{
		WebhookURL: webhookURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Send posts the payload. Callers treat failures as non-fatal: an
// unreachable Slack must not fail the workflow run being reported on.
func (n *Notifier) Send(ctx context.Context, payload Payload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "encode slack payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.WebhookURL, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "build slack request")
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := n.HTTPClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "post to slack webhook")
	}
	defer res.Body.Close()
	if _, err := io.Copy(io.Discard, res.Body); err != nil {
		return errors.Wrap(err, "drain slack response")
	}
	if res.StatusCode >= 300 {
		return errors.Errorf("slack webhook returned HTTP %d", res.StatusCode)
	}
	return nil
}
