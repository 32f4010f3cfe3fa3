// Package ai talks to an OpenAI-compatible chat completions endpoint and
// turns its free-text replies into component source and structured JSON.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"uiforge/internal/common/errors"
	"uiforge/internal/common/logging"
)

// maxResponseBytes caps how much of an upstream reply is read.
const maxResponseBytes = 4 << 20

// Config for the upstream API.
type Config struct {
	APIURL    string
	APIKey    string
	Model     string
	Timeout   time.Duration
	MaxTokens int
}

// Client is a thin chat-completions client. One request per call, no
// retries and no streaming.
type Client struct {
	config *Config
	http   *http.Client
	logger logging.Logger
}

// NewClient creates a Client. The config is assumed validated.
func NewClient(config *Config) *Client {
	return &Client{
		config: config,
		http:   &http.Client{Timeout: config.Timeout},
		logger: logging.GetGlobalLogger().WithFields(logging.Field{Key: "component", Value: "ai_client"}),
	}
}

// ChatMessage is one turn in a chat completions request.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Complete sends the messages upstream and returns the assistant's text.
func (c *Client) Complete(ctx context.Context, messages []ChatMessage) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	body, err := json.Marshal(chatRequest{
		Model:       c.config.Model,
		Messages:    messages,
		MaxTokens:   c.config.MaxTokens,
		Temperature: 0.7,
	})
	if err != nil {
		return "", errors.InternalError("failed to encode upstream request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.APIURL, bytes.NewReader(body))
	if err != nil {
		return "", errors.InternalError("failed to build upstream request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", errors.TimeoutError("ai completion")
		}
		return "", errors.UpstreamError("ai request failed", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", errors.UpstreamError("failed to read ai response", err)
	}

	c.logger.Debug("upstream completion",
		logging.Field{Key: "status", Value: resp.StatusCode},
		logging.Duration("elapsed", time.Since(start)),
		logging.Int("bytes", len(raw)))

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("upstream returned non-200",
			logging.Field{Key: "status", Value: resp.StatusCode},
			logging.String("body", truncate(string(raw), 512)))
		return "", errors.UpstreamError(fmt.Sprintf("ai upstream returned status %d", resp.StatusCode), nil)
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", errors.UpstreamError("invalid ai response body", err)
	}
	if parsed.Error != nil {
		return "", errors.UpstreamError("ai upstream error: "+parsed.Error.Message, nil)
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", errors.UpstreamError("ai response contained no completion", nil)
	}

	return parsed.Choices[0].Message.Content, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
