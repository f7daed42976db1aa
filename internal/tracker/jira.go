package tracker

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/spec-kit/customer-portal/internal/config"
	apperrors "github.com/spec-kit/customer-portal/pkg/util"
)

// Issue is the tracker-side handle for a mirrored report.
type Issue struct {
	ID  string `json:"id"`
	Key string `json:"key"`
	URL string `json:"url"`
}

// IssueInput describes a new issue to open.
type IssueInput struct {
	Summary     string
	Description string
	Priority    string
}

// Client is the capability the report service uses to mirror issues. Tests
// substitute a fake.
type Client interface {
	CreateIssue(ctx context.Context, input IssueInput) (*Issue, error)
	UpdateIssue(ctx context.Context, key string, fields map[string]any) error
	GetIssue(ctx context.Context, key string, fields ...string) (map[string]any, error)
}

// JiraClient talks to the Jira Cloud REST API v3.
type JiraClient struct {
	baseURL    string
	projectKey string
	authHeader string
	httpClient *http.Client
}

// NewJiraClient builds a client from tracker configuration.
func NewJiraClient(cfg config.TrackerConfig) *JiraClient {
	credentials := base64.StdEncoding.EncodeToString([]byte(cfg.Email + ":" + cfg.APIToken))
	return &JiraClient{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		projectKey: cfg.ProjectKey,
		authHeader: "Basic " + credentials,
		httpClient: &http.Client{Timeout: cfg.Timeout()},
	}
}

// adfDocument wraps plain text in the fixed single-paragraph document shape
// Jira expects for rich-text fields.
func adfDocument(text string) map[string]any {
	return map[string]any{
		"type":    "doc",
		"version": 1,
		"content": []map[string]any{
			{
				"type": "paragraph",
				"content": []map[string]any{
					{"type": "text", "text": text},
				},
			},
		},
	}
}

// CreateIssue opens a Task in the configured project.
func (c *JiraClient) CreateIssue(ctx context.Context, input IssueInput) (*Issue, error) {
	fields := map[string]any{
		"project":     map[string]any{"key": c.projectKey},
		"issuetype":   map[string]any{"name": "Task"},
		"summary":     input.Summary,
		"description": adfDocument(input.Description),
	}
	if input.Priority != "" {
		fields["priority"] = map[string]any{"name": input.Priority}
	}

	body, status, err := c.do(ctx, http.MethodPost, "/rest/api/3/issue", map[string]any{"fields": fields})
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, apperrors.NewUpstreamError("tracker", fmt.Errorf("create issue: status %d: %s", status, body))
	}

	var created struct {
		ID  string `json:"id"`
		Key string `json:"key"`
	}
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, apperrors.NewUpstreamError("tracker", fmt.Errorf("decode create response: %w", err))
	}

	return &Issue{
		ID:  created.ID,
		Key: created.Key,
		URL: c.baseURL + "/browse/" + created.Key,
	}, nil
}

// UpdateIssue applies a partial field update to an existing issue.
func (c *JiraClient) UpdateIssue(ctx context.Context, key string, fields map[string]any) error {
	body, status, err := c.do(ctx, http.MethodPut, "/rest/api/3/issue/"+url.PathEscape(key), map[string]any{"fields": fields})
	if err != nil {
		return err
	}
	if status < 200 || status >= 300 {
		return apperrors.NewUpstreamError("tracker", fmt.Errorf("update issue %s: status %d: %s", key, status, body))
	}
	return nil
}

// GetIssue fetches an issue, optionally restricted to the named fields.
func (c *JiraClient) GetIssue(ctx context.Context, key string, fields ...string) (map[string]any, error) {
	path := "/rest/api/3/issue/" + url.PathEscape(key)
	if len(fields) > 0 {
		path += "?fields=" + url.QueryEscape(strings.Join(fields, ","))
	}

	body, status, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, apperrors.NewUpstreamError("tracker", fmt.Errorf("get issue %s: status %d: %s", key, status, body))
	}

	var issue map[string]any
	if err := json.Unmarshal(body, &issue); err != nil {
		return nil, apperrors.NewUpstreamError("tracker", fmt.Errorf("decode issue: %w", err))
	}
	return issue, nil
}

func (c *JiraClient) do(ctx context.Context, method, path string, payload any) ([]byte, int, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, 0, err
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Authorization", c.authHeader)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, apperrors.NewUpstreamError("tracker", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, apperrors.NewUpstreamError("tracker", err)
	}
	return body, resp.StatusCode, nil
}
