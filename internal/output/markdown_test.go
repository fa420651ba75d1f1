package output

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lupaxa/checkjobs/internal/jobs"
	"github.com/lupaxa/checkjobs/internal/meta"
)

func testMetadata() meta.RunMetadata {
	return meta.RunMetadata{
		Repository:  "octo/widgets",
		Workflow:    "CI",
		RunID:       "1234",
		RunNumber:   "42",
		RunAttempt:  "1",
		EventName:   "push",
		Actor:       "octocat",
		RefName:     "main",
		SHA:         "abc123",
		GeneratedAt: time.Date(2025, time.November, 24, 18, 3, 45, 0, time.UTC),
	}
}

func TestMarkdownRender(t *testing.T) {
	b := jobs.Buckets{
		Success: []string{"lint", "build"},
		Failure: []string{"test"},
	}

	var buf bytes.Buffer
	require.NoError(t, NewMarkdown(&buf).Render(b, testMetadata()))
	got := buf.String()

	want := strings.Join([]string{
		"## Job Status Overview",
		"",
		"### Successful jobs",
		"- build",
		"- lint",
		"",
		"### Failed jobs",
		"- test",
		"",
		"### Workflow metadata",
		"",
		"| Field  | Value   |",
		"| :----- | :------ |",
		"| Repository | octo/widgets |",
		"| Workflow | CI |",
		"| Run number | #42 |",
		"| Attempt | 1 |",
		"| Event | push |",
		"| Actor | octocat |",
		"| Ref | main |",
		"| Commit SHA | abc123 |",
		"| Run URL | https://github.com/octo/widgets/actions/runs/1234 |",
		"| Generated at (UTC) | Monday 24<sup>th</sup> November 2025 18:03:45 |",
		"",
		"",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestMarkdownRenderOmitsEmptyBuckets(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewMarkdown(&buf).Render(jobs.Buckets{Failure: []string{"test"}}, testMetadata()))
	got := buf.String()

	assert.NotContains(t, got, "Successful jobs")
	assert.NotContains(t, got, "Skipped jobs")
	assert.Contains(t, got, "### Failed jobs")
}

func TestMarkdownRenderSectionPriorityOrder(t *testing.T) {
	b := jobs.Buckets{
		Success:   []string{"a"},
		Failure:   []string{"b"},
		Cancelled: []string{"c"},
		Skipped:   []string{"d"},
		TimedOut:  []string{"e"},
		Other:     []string{"f:neutral"},
	}
	var buf bytes.Buffer
	require.NoError(t, NewMarkdown(&buf).Render(b, testMetadata()))
	got := buf.String()

	order := []string{
		"### Successful jobs",
		"### Failed jobs",
		"### Timed out jobs",
		"### Cancelled jobs",
		"### Skipped jobs",
		"### Other statuses",
	}
	last := -1
	for _, heading := range order {
		idx := strings.Index(got, heading)
		require.GreaterOrEqual(t, idx, 0, heading)
		assert.Greater(t, idx, last, "%s out of order", heading)
		last = idx
	}
}

func TestMarkdownRenderOptionalRows(t *testing.T) {
	m := testMetadata()
	m.TriggeringActor = "hubot"
	m.CommitMessage = "Fix canary rollout"
	m.PRNumber = "77"
	m.PRTitle = "Add canary deploys"

	var buf bytes.Buffer
	require.NoError(t, NewMarkdown(&buf).Render(jobs.Buckets{}, m))
	got := buf.String()

	assert.Contains(t, got, "| Triggering actor | hubot |")
	assert.Contains(t, got, "| Commit Message | Fix canary rollout |")
	assert.Contains(t, got, "| PR | #77: Add canary deploys |")
	assert.Contains(t, got, "| PR URL | https://github.com/octo/widgets/pull/77 |")
}

func TestMarkdownRenderSkipsTriggeringActorWhenSame(t *testing.T) {
	m := testMetadata()
	m.TriggeringActor = m.Actor

	var buf bytes.Buffer
	require.NoError(t, NewMarkdown(&buf).Render(jobs.Buckets{}, m))
	assert.NotContains(t, buf.String(), "Triggering actor")
}

func TestMarkdownRenderIsDeterministic(t *testing.T) {
	b := jobs.Buckets{Success: []string{"lint", "build"}, Skipped: []string{"docs"}}
	m := testMetadata()

	var first, second bytes.Buffer
	require.NoError(t, NewMarkdown(&first).Render(b, m))
	require.NoError(t, NewMarkdown(&second).Render(b, m))
	assert.Equal(t, first.String(), second.String())
}

func TestSortEntriesIsVersionAwareAndCaseInsensitive(t *testing.T) {
	got := SortEntries([]string{"Job 10", "job 2", "Alpha", "beta", "Job 10"})
	assert.Equal(t, []string{"Alpha", "beta", "job 2", "Job 10"}, got)
}

func TestSortEntriesDropsEmptyAndDuplicates(t *testing.T) {
	got := SortEntries([]string{"", "a", "a", "b"})
	assert.Equal(t, []string{"a", "b"}, got)
}
