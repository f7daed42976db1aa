package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatusWebhookFlatShape(t *testing.T) {
	update, ok := ParseStatusWebhook([]byte(`{"issueKey":"SUP-7","status":"Done"}`))
	require.True(t, ok)
	assert.Equal(t, "SUP-7", update.IssueKey)
	assert.Equal(t, "Done", update.Status)
}

func TestParseStatusWebhookJiraEnvelope(t *testing.T) {
	body := `{
		"webhookEvent": "jira:issue_updated",
		"issue": {
			"key": "SUP-9",
			"fields": {"status": {"name": "In Progress"}}
		}
	}`
	update, ok := ParseStatusWebhook([]byte(body))
	require.True(t, ok)
	assert.Equal(t, "SUP-9", update.IssueKey)
	assert.Equal(t, "In Progress", update.Status)
}

func TestParseStatusWebhookRejectsIncomplete(t *testing.T) {
	_, ok := ParseStatusWebhook([]byte(`{"issueKey":"SUP-7"}`))
	assert.False(t, ok)

	_, ok = ParseStatusWebhook([]byte(`{"status":"Done"}`))
	assert.False(t, ok)

	_, ok = ParseStatusWebhook([]byte(`not json`))
	assert.False(t, ok)
}
