// Package agent is the HTTP client for remote cloud AI agents.
//
// An agent is an opaque identifier on the provider side; a call posts a
// single message and yields a single reply. There is no streaming and no
// retry: one attempt, bounded by the caller's context deadline.
package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/plumehq/plume/internal/logging"
)

// Caller sends one message to a remote agent and returns its reply.
type Caller interface {
	Call(ctx context.Context, message string) (*Reply, error)
}

// Reply is the agent's answer. Message is nil when the response body had
// no message field (or wasn't valid JSON) — callers substitute their own
// fallback text rather than failing.
type Reply struct {
	Message *string
}

// StatusError is returned when the agent endpoint answers with a
// non-success HTTP status.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("agent returned status %d", e.Code)
}

// Client is a direct HTTP client for the cloud agent endpoint.
type Client struct {
	baseURL string
	token   string
	agentID string
	http    *http.Client
	log     *logging.Logger
}

// NewClient creates a client for one agent. The request deadline comes
// from the Call context, not from the http.Client.
func NewClient(baseURL, token, agentID string, log *logging.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		agentID: agentID,
		http:    &http.Client{},
		log:     log.Sub("agent"),
	}
}

type callRequest struct {
	Message string `json:"message"`
}

type callResponse struct {
	Message *string `json:"message"`
}

// Call posts a message to the agent and returns its reply.
func (c *Client) Call(ctx context.Context, message string) (*Reply, error) {
	payload, err := json.Marshal(callRequest{Message: message})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/api/v1/cloud-ai/agents/%s/call", c.baseURL, c.agentID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	c.log.Debug().Str("agentId", c.agentID).Int("messageLen", len(message)).Msg("calling agent")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Warn().Int("status", resp.StatusCode).Msg("agent call failed")
		return nil, &StatusError{Code: resp.StatusCode, Body: string(body)}
	}

	var out callResponse
	if err := json.Unmarshal(body, &out); err != nil {
		// An unexpected body shape degrades to an absent message.
		c.log.Warn().Err(err).Msg("agent response was not valid JSON")
		return &Reply{}, nil
	}
	return &Reply{Message: out.Message}, nil
}
