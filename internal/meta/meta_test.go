package meta

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeEnv(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestFromEnv(t *testing.T) {
	m := FromEnv(fakeEnv(map[string]string{
		"GITHUB_REPOSITORY":       "octo/widgets",
		"GITHUB_WORKFLOW":         "CI",
		"GITHUB_RUN_ID":           "1234",
		"GITHUB_RUN_NUMBER":       "42",
		"GITHUB_RUN_ATTEMPT":      "2",
		"GITHUB_EVENT_NAME":       "push",
		"GITHUB_ACTOR":            "octocat",
		"GITHUB_TRIGGERING_ACTOR": "hubot",
		"GITHUB_REF_NAME":         "main",
		"GITHUB_SHA":              "abc123",
	}))

	assert.Equal(t, "octo/widgets", m.Repository)
	assert.Equal(t, "CI", m.Workflow)
	assert.Equal(t, "42", m.RunNumber)
	assert.Equal(t, "hubot", m.TriggeringActor)
	assert.Equal(t, "https://github.com/octo/widgets/actions/runs/1234", m.RunURL())
	assert.Empty(t, m.PRURL())
	assert.False(t, m.GeneratedAt.IsZero())
}

func TestFromEnvDefaultsActorToUnknown(t *testing.T) {
	m := FromEnv(fakeEnv(nil))
	assert.Equal(t, "unknown", m.Actor)
	assert.Empty(t, m.RunURL())
}

func TestFromEnvReadsPullRequestPayload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "event.json")
	payload := `{"pull_request":{"number":77,"title":"Add canary deploys"}}`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))

	m := FromEnv(fakeEnv(map[string]string{
		"GITHUB_REPOSITORY": "octo/widgets",
		"GITHUB_EVENT_PATH": path,
	}))

	assert.Equal(t, "77", m.PRNumber)
	assert.Equal(t, "Add canary deploys", m.PRTitle)
	assert.Equal(t, "Add canary deploys", m.CommitMessage)
	assert.Equal(t, "https://github.com/octo/widgets/pull/77", m.PRURL())
}

func TestFromEnvReadsHeadCommitMessage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "event.json")
	payload := `{"head_commit":{"message":"Fix flaky retry test"}}`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))

	m := FromEnv(fakeEnv(map[string]string{"GITHUB_EVENT_PATH": path}))

	assert.Empty(t, m.PRNumber)
	assert.Equal(t, "Fix flaky retry test", m.CommitMessage)
}

func TestFromEnvToleratesBrokenPayload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "event.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	m := FromEnv(fakeEnv(map[string]string{"GITHUB_EVENT_PATH": path}))
	assert.Empty(t, m.PRNumber)
	assert.Empty(t, m.CommitMessage)

	m = FromEnv(fakeEnv(map[string]string{"GITHUB_EVENT_PATH": filepath.Join(t.TempDir(), "missing.json")}))
	assert.Empty(t, m.PRNumber)
}
