// Package llm provides the text-generation contract used for narrative
// insights, plus an OpenAI-compatible HTTP adapter.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	commonerrors "kpi-performance-skill/internal/common/errors"
	commonhttp "kpi-performance-skill/internal/common/http"
	"kpi-performance-skill/internal/common/logger"
)

// Generator produces a natural-language completion for a rendered prompt.
// An empty completion is not an error; callers decide on fallbacks.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ClientConfig holds settings for the chat-completions client.
type ClientConfig struct {
	BaseURL     string
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
	MaxRetries  int
}

// Client calls an OpenAI-compatible chat completions endpoint.
type Client struct {
	config *ClientConfig
	client *commonhttp.Client
	logger logger.Logger
}

func NewClient(config *ClientConfig, log logger.Logger) *Client {
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}
	if config.MaxTokens <= 0 {
		config.MaxTokens = 1024
	}
	return &Client{
		config: config,
		client: commonhttp.NewClient(0),
		logger: log.WithFields(map[string]interface{}{"component": "llm-client"}),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
	Stream      bool          `json:"stream"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Generate sends the prompt and returns the first choice's content.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	body, _ := json.Marshal(chatRequest{
		Model:       c.config.Model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		MaxTokens:   c.config.MaxTokens,
		Temperature: c.config.Temperature,
	})

	var resp *http.Response
	var lastErr error

	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(100*(1<<(attempt-1))) * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return "", commonerrors.NewLLMTimeoutError()
			}
		}

		req, reqErr := http.NewRequestWithContext(ctx, http.MethodPost,
			c.config.BaseURL+"/v1/chat/completions", bytes.NewReader(body))
		if reqErr != nil {
			return "", commonerrors.NewLLMGenerationFailedError(reqErr)
		}
		req.Header.Set("Content-Type", "application/json")
		if c.config.APIKey != "" {
			req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
		}

		resp, lastErr = c.client.Do(req)
		if lastErr == nil {
			if resp.StatusCode == http.StatusOK {
				break
			}
			resp.Body.Close()
			lastErr = fmt.Errorf("status %d", resp.StatusCode)
			resp = nil
		}

		if ctx.Err() != nil {
			return "", commonerrors.NewLLMTimeoutError()
		}
	}

	if lastErr != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", commonerrors.NewLLMTimeoutError()
		}
		return "", commonerrors.NewLLMGenerationFailedError(lastErr)
	}
	if resp == nil {
		return "", commonerrors.NewLLMGenerationFailedError(fmt.Errorf("no successful response after retries"))
	}
	defer resp.Body.Close()

	var apiResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return "", commonerrors.NewLLMGenerationFailedError(fmt.Errorf("decode error: %w", err))
	}

	if len(apiResp.Choices) == 0 {
		return "", nil
	}

	content := apiResp.Choices[0].Message.Content
	c.logger.Info("completion received", map[string]interface{}{
		"promptLen":     len(prompt),
		"completionLen": len(content),
	})

	return content, nil
}
