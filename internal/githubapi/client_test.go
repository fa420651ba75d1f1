package githubapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	client := New("test-token")
	client.BaseURL = srv.URL
	return client, srv
}

func TestFetchJobs(t *testing.T) {
	var gotPath, gotAuth, gotAccept string
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.RequestURI()
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"jobs":[]}`))
	})
	defer srv.Close()

	body, err := client.FetchJobs(context.Background(), "octo/widgets", "1234")
	require.NoError(t, err)

	assert.Equal(t, `{"jobs":[]}`, body)
	assert.Equal(t, "/repos/octo/widgets/actions/runs/1234/jobs?per_page=100", gotPath)
	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Equal(t, "application/vnd.github+json", gotAccept)
}

func TestFetchJobsMissingConfig(t *testing.T) {
	client := New("token")

	var cfgErr *ConfigError

	_, err := client.FetchJobs(context.Background(), "", "1234")
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, cfgErr.Error(), "GITHUB_REPOSITORY")

	_, err = client.FetchJobs(context.Background(), "octo/widgets", "")
	require.ErrorAs(t, err, &cfgErr)

	client.Token = ""
	_, err = client.FetchJobs(context.Background(), "octo/widgets", "1234")
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, cfgErr.Error(), "GITHUB_TOKEN")
}

func TestFetchJobsRemoteError(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"message":"rate limited"}`))
	})
	defer srv.Close()

	_, err := client.FetchJobs(context.Background(), "octo/widgets", "1234")

	var remote *RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, http.StatusForbidden, remote.StatusCode)
	assert.Contains(t, remote.Body, "rate limited")
}

func TestFetchJobsTransportError(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {})
	srv.Close() // connection refused from here on

	_, err := client.FetchJobs(context.Background(), "octo/widgets", "1234")

	var transport *TransportError
	require.ErrorAs(t, err, &transport)
}

func TestFetchCommitMessage(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/octo/widgets/actions/runs/1234", r.URL.Path)
		w.Write([]byte(`{"head_commit":{"message":"Fix canary rollout\n"}}`))
	})
	defer srv.Close()

	msg := client.FetchCommitMessage(context.Background(), "octo/widgets", "1234")
	assert.Equal(t, "Fix canary rollout", msg)
}

func TestFetchCommitMessageIsBestEffort(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	defer srv.Close()

	assert.Empty(t, client.FetchCommitMessage(context.Background(), "octo/widgets", "1234"))
	assert.Empty(t, client.FetchCommitMessage(context.Background(), "", "1234"))
}
