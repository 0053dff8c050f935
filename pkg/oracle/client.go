// Package oracle talks to an OpenAI-compatible chat completions API for
// candidate scoring and interview question generation.
package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/zordhalo/lontario-YC-sub000/pkg/apperror"
)

// Messages shown to users; raw provider errors stay in the wrapped error.
const (
	MsgNotConfigured = "AI service not configured"
	MsgRateLimited   = "AI service is busy, try again later"
	MsgUnavailable   = "AI service request failed"
)

type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// Client is built once at startup and shared; it holds no mutable state.
type Client struct {
	apiKey  string
	model   string
	baseURL string
	http    *http.Client
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 90 * time.Second
	}
	return &Client{
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Configured reports whether credentials are present.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string            `json:"model"`
	Messages       []chatMessage     `json:"messages"`
	Temperature    float64           `json:"temperature"`
	ResponseFormat map[string]string `json:"response_format"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// completeJSON sends one system+user exchange and decodes the JSON reply into out.
func (c *Client) completeJSON(ctx context.Context, system, prompt string, temperature float64, out interface{}) error {
	if !c.Configured() {
		return apperror.Configuration(MsgNotConfigured, fmt.Errorf("OPENAI_API_KEY is not set"))
	}

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: prompt},
		},
		Temperature:    temperature,
		ResponseFormat: map[string]string{"type": "json_object"},
	})
	if err != nil {
		return fmt.Errorf("encode chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return apperror.Integration(MsgUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return apperror.Integration(MsgUnavailable, err)
	}

	var result chatResponse
	_ = json.Unmarshal(raw, &result)

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return apperror.RateLimited(MsgRateLimited, fmt.Errorf("openai: %s", result.Error.Message))
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return apperror.Configuration(MsgNotConfigured, fmt.Errorf("openai: status %d: %s", resp.StatusCode, result.Error.Message))
	case resp.StatusCode != http.StatusOK:
		return apperror.Integration(MsgUnavailable, fmt.Errorf("openai: status %d: %s", resp.StatusCode, result.Error.Message))
	}

	if result.Error.Message != "" {
		return apperror.Integration(MsgUnavailable, fmt.Errorf("openai: %s", result.Error.Message))
	}
	if len(result.Choices) == 0 {
		return apperror.Integration(MsgUnavailable, fmt.Errorf("openai: empty response"))
	}

	content := stripCodeFence(result.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(content), out); err != nil {
		return apperror.Integration(MsgUnavailable, fmt.Errorf("parse model output: %w", err))
	}
	return nil
}

// stripCodeFence tolerates models that wrap JSON in ```json fences.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
