package tracker

import "encoding/json"

// StatusUpdate is the distilled content of an inbound tracker webhook: which
// issue changed and its new workflow status. The payload is trusted verbatim;
// the webhook endpoint carries no signature verification.
type StatusUpdate struct {
	IssueKey string
	Status   string
}

// webhookPayload accepts both the Jira webhook envelope and the flat shape
// used by manual sync calls.
type webhookPayload struct {
	IssueKey string `json:"issueKey"`
	Status   string `json:"status"`
	Issue    struct {
		Key    string `json:"key"`
		Fields struct {
			Status struct {
				Name string `json:"name"`
			} `json:"status"`
		} `json:"fields"`
	} `json:"issue"`
}

// ParseStatusWebhook extracts the issue key and status from a webhook body.
// Returns ok=false when neither shape carries a key.
func ParseStatusWebhook(body []byte) (StatusUpdate, bool) {
	var payload webhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return StatusUpdate{}, false
	}

	update := StatusUpdate{IssueKey: payload.IssueKey, Status: payload.Status}
	if update.IssueKey == "" {
		update.IssueKey = payload.Issue.Key
	}
	if update.Status == "" {
		update.Status = payload.Issue.Fields.Status.Name
	}
	if update.IssueKey == "" || update.Status == "" {
		return StatusUpdate{}, false
	}
	return update, true
}
