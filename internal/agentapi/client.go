// Package agentapi is a typed HTTP client for the hosted agent platform
// that runs the roast agent. One invocation = one fresh thread: create it,
// submit a single user turn, block until the run reaches a terminal state,
// then read the final conversation values. Threads are never reused.
package agentapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/roastboard/roastboard/internal/metrics"
	"github.com/roastboard/roastboard/pkg/models"
)

// ErrMissingCredential is returned when no API key is configured. Treated
// as an ordinary invocation failure, never a crash.
var ErrMissingCredential = errors.New("agentapi: API key not configured")

// Client talks to the agent platform. It holds connection configuration
// only — no per-request state — so a single instance is safe to share
// across concurrent requests.
type Client struct {
	baseURL    string
	apiKey     string
	authScheme string
	client     *http.Client
}

// NewClient creates an agent platform client. The timeout bounds the full
// run-and-wait call; the platform's wait endpoint blocks until the run
// finishes.
func NewClient(baseURL, apiKey, authScheme string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		authScheme: authScheme,
		client:     &http.Client{Timeout: timeout},
	}
}

// ── Wire Types ───────────────────────────────────────────────

type threadResponse struct {
	ThreadID string `json:"thread_id"`
}

type runWaitRequest struct {
	AssistantID string   `json:"assistant_id"`
	Input       runInput `json:"input"`
}

type runInput struct {
	Messages []runMessage `json:"messages"`
}

type runMessage struct {
	Role    string                   `json:"role"`
	Content models.MultimodalMessage `json:"content"`
}

type threadState struct {
	Values struct {
		Messages []struct {
			Content json.RawMessage `json:"content"`
		} `json:"messages"`
	} `json:"values"`
}

// ── Invocation ───────────────────────────────────────────────

// Invoke runs one complete agent conversation: fresh thread, one user turn
// addressed to agentID, wait for the terminal state, return the raw content
// of the last message. Network errors, agent-side errors and malformed
// state all surface as a single invocation failure; recovery is the
// caller's concern, and no retry happens at this layer.
func (c *Client) Invoke(ctx context.Context, agentID string, message models.MultimodalMessage) (json.RawMessage, error) {
	if c.apiKey == "" {
		return nil, ErrMissingCredential
	}

	start := time.Now()

	threadID, err := c.createThread(ctx)
	if err != nil {
		return nil, fmt.Errorf("agentapi: create thread: %w", err)
	}

	if err := c.waitRun(ctx, threadID, agentID, message); err != nil {
		return nil, fmt.Errorf("agentapi: run: %w", err)
	}

	content, err := c.lastMessage(ctx, threadID)
	if err != nil {
		return nil, fmt.Errorf("agentapi: read state: %w", err)
	}

	metrics.ObserveAgentRun(time.Since(start).Seconds())
	return content, nil
}

func (c *Client) createThread(ctx context.Context) (string, error) {
	body, err := c.post(ctx, "/threads", []byte(`{}`))
	if err != nil {
		return "", err
	}

	var tr threadResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if tr.ThreadID == "" {
		return "", errors.New("empty thread_id in response")
	}
	return tr.ThreadID, nil
}

func (c *Client) waitRun(ctx context.Context, threadID, agentID string, message models.MultimodalMessage) error {
	payload, err := json.Marshal(runWaitRequest{
		AssistantID: agentID,
		Input: runInput{
			Messages: []runMessage{{Role: "user", Content: message}},
		},
	})
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	_, err = c.post(ctx, "/threads/"+threadID+"/runs/wait", payload)
	return err
}

func (c *Client) lastMessage(ctx context.Context, threadID string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/threads/"+threadID+"/state", nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
	}

	var state threadState
	if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
		return nil, fmt.Errorf("decode state: %w", err)
	}
	if len(state.Values.Messages) == 0 {
		return nil, errors.New("no messages in final state")
	}
	return state.Values.Messages[len(state.Values.Messages)-1].Content, nil
}

func (c *Client) post(ctx context.Context, path string, payload []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.setHeaders(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("X-Api-Key", c.apiKey)
	if c.authScheme != "" {
		req.Header.Set("X-Auth-Scheme", c.authScheme)
	}
}
