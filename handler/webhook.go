package handler

import (
	"strings"

	"fund-agent/internal/domain"
)

// webhookRequest is the subset of a Dialogflow ES v2 WebhookRequest the
// service reads.
type webhookRequest struct {
	ResponseID  string      `json:"responseId"`
	Session     string      `json:"session"`
	QueryResult queryResult `json:"queryResult"`
}

type queryResult struct {
	QueryText      string           `json:"queryText"`
	LanguageCode   string           `json:"languageCode"`
	Parameters     map[string]any   `json:"parameters"`
	Intent         intent           `json:"intent"`
	OutputContexts []webhookContext `json:"outputContexts"`
}

type intent struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
}

type webhookContext struct {
	Name          string         `json:"name"`
	LifespanCount int            `json:"lifespanCount"`
	Parameters    map[string]any `json:"parameters,omitempty"`
}

type webhookResponse struct {
	FulfillmentText     string           `json:"fulfillmentText"`
	FulfillmentMessages []message        `json:"fulfillmentMessages"`
	OutputContexts      []webhookContext `json:"outputContexts,omitempty"`
}

type message struct {
	Text textMessage `json:"text"`
}

type textMessage struct {
	Text []string `json:"text"`
}

type errorResponse struct {
	Error string `json:"error"`
}

const contextsSegment = "/contexts/"

// conversationID returns the session id at the end of a session resource
// name, or the whole value when it is not a resource name.
func conversationID(session string) string {
	session = strings.TrimSpace(session)
	if i := strings.LastIndex(session, "/sessions/"); i >= 0 {
		return session[i+len("/sessions/"):]
	}
	return session
}

// shortContextName strips the session prefix from a context resource name.
func shortContextName(name string) string {
	if i := strings.LastIndex(name, contextsSegment); i >= 0 {
		return name[i+len(contextsSegment):]
	}
	return name
}

func toDomainContexts(in []webhookContext) []domain.ConversationContext {
	out := make([]domain.ConversationContext, 0, len(in))
	for _, c := range in {
		name := shortContextName(c.Name)
		if name == "" {
			continue
		}
		out = append(out, domain.ConversationContext{
			Name:       name,
			Lifespan:   c.LifespanCount,
			Parameters: domain.NormalizeParams(c.Parameters),
		})
	}
	return out
}

func toWebhookContexts(session string, in []domain.ConversationContext) []webhookContext {
	out := make([]webhookContext, 0, len(in))
	for _, c := range in {
		out = append(out, webhookContext{
			Name:          session + contextsSegment + c.Name,
			LifespanCount: c.Lifespan,
			Parameters:    c.Parameters,
		})
	}
	return out
}

func newWebhookResponse(session string, fragments []string, contexts []domain.ConversationContext) webhookResponse {
	msgs := make([]message, 0, len(fragments))
	for _, f := range fragments {
		msgs = append(msgs, message{Text: textMessage{Text: []string{f}}})
	}
	return webhookResponse{
		FulfillmentText:     strings.Join(fragments, "\n"),
		FulfillmentMessages: msgs,
		OutputContexts:      toWebhookContexts(session, contexts),
	}
}
