package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/iuermili/LeCourse/internal/pkg/apperrors"
)

// Message represents a single turn in an advisor chat
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Config holds the model server settings
type Config struct {
	BaseURL     string
	Model       string
	Temperature float64
	Timeout     time.Duration
}

// Client talks to an Ollama-compatible text-generation server.
// It holds no per-session state; continuation tokens are owned by the caller.
type Client struct {
	baseURL     string
	model       string
	temperature float64
	httpClient  *http.Client
	logger      zerolog.Logger
}

// NewClient creates a new model client
func NewClient(cfg Config, logger zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 120 * time.Second
	}

	return &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

type requestOptions struct {
	Temperature float64 `json:"temperature"`
}

type generateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	Stream  bool            `json:"stream"`
	Options requestOptions  `json:"options"`
	Context json.RawMessage `json:"context,omitempty"`
}

type chatRequest struct {
	Model    string          `json:"model"`
	Messages []Message       `json:"messages"`
	Stream   bool            `json:"stream"`
	Options  requestOptions  `json:"options"`
	Context  json.RawMessage `json:"context,omitempty"`
}

// Generate performs one non-streaming completion round trip. The continuation
// token is forwarded verbatim when present; the refreshed token from the reply
// (or the original, if the reply carried none) is returned alongside the text.
func (c *Client) Generate(ctx context.Context, prompt string, contToken json.RawMessage) (string, json.RawMessage, error) {
	payload, err := c.roundTrip(ctx, "/api/generate", generateRequest{
		Model:   c.model,
		Prompt:  prompt,
		Stream:  false,
		Options: requestOptions{Temperature: c.temperature},
		Context: contToken,
	})
	if err != nil {
		return "", contToken, err
	}

	return c.extractText(payload, "response"), refreshedToken(payload, contToken), nil
}

// Chat performs one non-streaming chat round trip
func (c *Client) Chat(ctx context.Context, messages []Message, contToken json.RawMessage) (string, json.RawMessage, error) {
	payload, err := c.roundTrip(ctx, "/api/chat", chatRequest{
		Model:    c.model,
		Messages: messages,
		Stream:   false,
		Options:  requestOptions{Temperature: c.temperature},
		Context:  contToken,
	})
	if err != nil {
		return "", contToken, err
	}

	// Chat replies nest the text under message.content
	if raw, ok := payload["message"]; ok {
		var msg Message
		if err := json.Unmarshal(raw, &msg); err == nil && msg.Content != "" {
			return normalizeReply(msg.Content), refreshedToken(payload, contToken), nil
		}
	}

	return c.extractText(payload), refreshedToken(payload, contToken), nil
}

// roundTrip posts the payload and decodes the reply into a generic field map.
// Transport failures, timeouts and non-2xx statuses map to ErrModelUnavailable;
// an undecodable body maps to ErrModelParse.
func (c *Client) roundTrip(ctx context.Context, path string, payload interface{}) (map[string]json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal model request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create model request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("path", path).Msg("Model request failed")
		return nil, fmt.Errorf("%w: %v", apperrors.ErrModelUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading reply: %v", apperrors.ErrModelUnavailable, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		c.logger.Error().Int("status", resp.StatusCode).Str("path", path).Msg("Model returned error status")
		return nil, fmt.Errorf("%w: status %d", apperrors.ErrModelUnavailable, resp.StatusCode)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrModelParse, err)
	}

	return fields, nil
}

// extractText applies the reply normalization rules in order:
// 1. the expected text field, when present and string-typed;
// 2. the first string-typed value in the payload (stable key order);
// 3. the serialized raw payload.
// Callers therefore always receive some string for a decodable reply.
func (c *Client) extractText(payload map[string]json.RawMessage, preferred ...string) string {
	for _, key := range preferred {
		if raw, ok := payload[key]; ok {
			var text string
			if err := json.Unmarshal(raw, &text); err == nil {
				return normalizeReply(text)
			}
		}
	}

	c.logger.Warn().Msg("Expected text field missing from model reply, falling back")

	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		var text string
		if err := json.Unmarshal(payload[key], &text); err == nil {
			return normalizeReply(text)
		}
	}

	serialized, err := json.Marshal(payload)
	if err != nil {
		return ""
	}
	return string(serialized)
}

// normalizeReply trims surrounding whitespace and backtick fences
func normalizeReply(text string) string {
	text = strings.TrimSpace(text)
	text = strings.Trim(text, "`")
	return strings.TrimSpace(text)
}

// refreshedToken returns the continuation token from the reply, or the
// caller's token when the reply carried none.
func refreshedToken(payload map[string]json.RawMessage, current json.RawMessage) json.RawMessage {
	if raw, ok := payload["context"]; ok && len(raw) > 0 && string(raw) != "null" {
		return raw
	}
	return current
}
