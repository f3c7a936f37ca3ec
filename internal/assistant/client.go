package assistant

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"resourcehub/pkg/client"
	apperrors "resourcehub/pkg/errors"
)

const apiVersion = "2020-04-01"

// Intent is one recognized intent with its confidence score.
type Intent struct {
	Intent     string  `json:"intent"`
	Confidence float64 `json:"confidence"`
}

// Entity is one recognized entity mention. The supplies entity carries the
// resource being asked about in its Value.
type Entity struct {
	Entity     string  `json:"entity"`
	Value      string  `json:"value"`
	Confidence float64 `json:"confidence"`
}

// Generic is one element of the assistant's reply, usually a text response.
type Generic struct {
	ResponseType string `json:"response_type"`
	Text         string `json:"text"`
}

// NLUResponse is the flattened assistant output for one message turn.
type NLUResponse struct {
	Intents  []Intent  `json:"intents"`
	Entities []Entity  `json:"entities"`
	Generic  []Generic `json:"generic"`
}

// NLUClient talks to the hosted natural-language service.
type NLUClient interface {
	CreateSession(ctx context.Context) (string, error)
	Message(ctx context.Context, sessionID, text string) (*NLUResponse, error)
}

type watsonClient struct {
	http        *client.HttpClient
	assistantID string
}

func NewWatsonClient(baseURL, apiKey, assistantID string, timeout time.Duration) NLUClient {
	return &watsonClient{
		http:        client.NewHttpClient(baseURL, timeout).WithAPIKey(apiKey),
		assistantID: assistantID,
	}
}

type sessionResponse struct {
	SessionID string `json:"session_id"`
}

type messageRequest struct {
	Input messageInput `json:"input"`
}

type messageInput struct {
	MessageType string `json:"message_type"`
	Text        string `json:"text"`
}

type messageResponse struct {
	Output NLUResponse `json:"output"`
}

func (c *watsonClient) CreateSession(ctx context.Context) (string, error) {
	path := fmt.Sprintf("/v2/assistants/%s/sessions?version=%s",
		url.PathEscape(c.assistantID), apiVersion)

	resp, err := c.http.POST(ctx, path, struct{}{})
	if err != nil {
		return "", apperrors.Upstream("Assistant", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", apperrors.Upstream("Assistant",
			fmt.Errorf("session request returned status %d", resp.StatusCode))
	}

	var session sessionResponse
	if err := resp.DecodeJSON(&session); err != nil {
		return "", apperrors.Upstream("Assistant", fmt.Errorf("failed to decode session: %w", err))
	}
	return session.SessionID, nil
}

func (c *watsonClient) Message(ctx context.Context, sessionID, text string) (*NLUResponse, error) {
	path := fmt.Sprintf("/v2/assistants/%s/sessions/%s/message?version=%s",
		url.PathEscape(c.assistantID), url.PathEscape(sessionID), apiVersion)

	resp, err := c.http.POST(ctx, path, messageRequest{
		Input: messageInput{MessageType: "text", Text: text},
	})
	if err != nil {
		return nil, apperrors.Upstream("Assistant", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperrors.Upstream("Assistant",
			fmt.Errorf("message request returned status %d", resp.StatusCode))
	}

	var message messageResponse
	if err := resp.DecodeJSON(&message); err != nil {
		return nil, apperrors.Upstream("Assistant", fmt.Errorf("failed to decode message: %w", err))
	}
	return &message.Output, nil
}
