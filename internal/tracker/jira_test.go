package tracker

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/customer-portal/internal/config"
	apperrors "github.com/spec-kit/customer-portal/pkg/util"
)

func testClient(serverURL string) *JiraClient {
	return NewJiraClient(config.TrackerConfig{
		BaseURL:    serverURL,
		ProjectKey: "SUP",
		Email:      "bot@example.com",
		APIToken:   "api-token",
	})
}

func TestCreateIssueSendsBasicAuthAndADF(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/rest/api/3/issue", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"10042","key":"SUP-7"}`))
	}))
	defer server.Close()

	issue, err := testClient(server.URL).CreateIssue(context.Background(), IssueInput{
		Summary:     "Dashboard stuck loading",
		Description: "Spinner never resolves.",
		Priority:    "High",
	})
	require.NoError(t, err)

	wantAuth := "Basic " + base64.StdEncoding.EncodeToString([]byte("bot@example.com:api-token"))
	assert.Equal(t, wantAuth, gotAuth)

	assert.Equal(t, "10042", issue.ID)
	assert.Equal(t, "SUP-7", issue.Key)
	assert.Equal(t, server.URL+"/browse/SUP-7", issue.URL)

	fields, ok := gotBody["fields"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Dashboard stuck loading", fields["summary"])
	assert.Equal(t, map[string]any{"key": "SUP"}, fields["project"])
	assert.Equal(t, map[string]any{"name": "Task"}, fields["issuetype"])
	assert.Equal(t, map[string]any{"name": "High"}, fields["priority"])

	description, ok := fields["description"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "doc", description["type"])
	assert.Equal(t, float64(1), description["version"])
	content, ok := description["content"].([]any)
	require.True(t, ok)
	require.Len(t, content, 1)
	paragraph := content[0].(map[string]any)
	assert.Equal(t, "paragraph", paragraph["type"])
	text := paragraph["content"].([]any)[0].(map[string]any)
	assert.Equal(t, "Spinner never resolves.", text["text"])
}

func TestCreateIssueNon2xxIsUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"errorMessages":["Field 'priority' is invalid"]}`))
	}))
	defer server.Close()

	_, err := testClient(server.URL).CreateIssue(context.Background(), IssueInput{
		Summary:     "t",
		Description: "d",
	})
	require.Error(t, err)
	assert.Equal(t, "UPSTREAM_ERROR", apperrors.ToDomainError(err).Code)
}

func TestUpdateIssuePutsFields(t *testing.T) {
	var gotPath string
	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	err := testClient(server.URL).UpdateIssue(context.Background(), "SUP-7", map[string]any{"summary": "new summary"})
	require.NoError(t, err)
	assert.Equal(t, "/rest/api/3/issue/SUP-7", gotPath)
	assert.Equal(t, map[string]any{"summary": "new summary"}, gotBody["fields"])
}
