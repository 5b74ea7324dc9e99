// Package nickname generates short display names via an OpenAI-compatible
// completion endpoint, falling back to a fixed pool of preset names when
// anything goes wrong. Callers treat the returned value as a durable
// per-session identity; it is never refreshed.
package nickname

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"time"

	"github.com/roastboard/roastboard/internal/extract"
	"github.com/roastboard/roastboard/internal/metrics"
	"github.com/rs/zerolog/log"
)

const (
	systemPrompt = `Generate a funny Gen Z nickname (Adjective-Noun-Number). Return ONLY JSON: {"nickname": "..."}`
	userPrompt   = "Give me a nickname"
)

var fallbackNames = []string{
	"Cooked-Intern-404",
	"Downbad-Developer-007",
	"Scrolling-Doom-999",
	"Touch-Grass-101",
	"Zero-Rizz-888",
}

// ErrMissingCredential is returned internally when no API key is
// configured; like every other failure here it resolves to a fallback name.
var ErrMissingCredential = errors.New("nickname: API key not configured")

// Provider requests generated nicknames. Holds connection configuration
// only, safe to share across concurrent requests.
type Provider struct {
	baseURL     string
	apiKey      string
	model       string
	temperature float64
	client      *http.Client
}

// NewProvider creates a nickname provider against an OpenAI-compatible
// chat completions API.
func NewProvider(baseURL, apiKey, model string, temperature float64) *Provider {
	return &Provider{
		baseURL:     baseURL,
		apiKey:      apiKey,
		model:       model,
		temperature: temperature,
		client:      &http.Client{Timeout: 15 * time.Second},
	}
}

// Generate returns a nickname. It never fails: any error on the generated
// path (missing credential, transport, malformed completion, missing
// field) yields a uniformly random pick from the preset pool.
func (p *Provider) Generate(ctx context.Context) string {
	name, err := p.generate(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("nickname generation failed, using fallback pool")
		metrics.RecordNicknameFallback()
		return fallbackNames[rand.Intn(len(fallbackNames))]
	}
	return name
}

// ── Completion Call ──────────────────────────────────────────

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (p *Provider) generate(ctx context.Context) (string, error) {
	if p.apiKey == "" {
		return "", ErrMissingCredential
	}

	body, err := json.Marshal(completionRequest{
		Model: p.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: p.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("nickname: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("nickname: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("nickname: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("nickname: status %d: %s", resp.StatusCode, string(respBody))
	}

	var cr completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", fmt.Errorf("nickname: decode response: %w", err)
	}
	if len(cr.Choices) == 0 {
		return "", errors.New("nickname: empty completion")
	}

	return extract.Nickname(cr.Choices[0].Message.Content)
}
