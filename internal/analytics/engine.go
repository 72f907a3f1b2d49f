package analytics

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

// Engine runs one KPI analysis query. Implementations are expected to be
// safe for concurrent use.
type Engine interface {
	Run(ctx context.Context, query Query) (*RunResult, error)
}

// ClientConfig holds settings for the HTTP engine client.
type ClientConfig struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	MaxRetries int
}

// Client is the HTTP adapter to the analytics engine service.
type Client struct {
	config *ClientConfig
	client *commonhttp.Client
	logger logger.Logger
}

func NewClient(config *ClientConfig, log logger.Logger) *Client {
	if config.Timeout <= 0 {
		config.Timeout = 60 * time.Second
	}
	return &Client{
		config: config,
		// No client-level timeout; the per-call context bounds the request.
		client: commonhttp.NewClient(0),
		logger: log.WithFields(map[string]interface{}{"component": "analytics-client"}),
	}
}

// Run posts the query to the engine and decodes the result bundle.
func (c *Client) Run(ctx context.Context, query Query) (*RunResult, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	body, err := json.Marshal(query)
	if err != nil {
		return nil, commonerrors.NewAnalysisQueryFailedError(err)
	}

	var resp *http.Response
	var lastErr error

	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(100*(1<<(attempt-1))) * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, commonerrors.NewAnalysisTimeoutError()
			}
		}

		req, reqErr := http.NewRequestWithContext(ctx, http.MethodPost,
			c.config.BaseURL+"/api/v1/kpi-performance/run", bytes.NewReader(body))
		if reqErr != nil {
			return nil, commonerrors.NewAnalysisQueryFailedError(reqErr)
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
			// Client errors are not retryable; the query itself is bad.
			if isClientError(lastErr) {
				break
			}
		}

		if ctx.Err() != nil {
			return nil, commonerrors.NewAnalysisTimeoutError()
		}
	}

	if lastErr != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, commonerrors.NewAnalysisTimeoutError()
		}
		return nil, commonerrors.NewAnalysisQueryFailedError(lastErr)
	}
	if resp == nil {
		return nil, commonerrors.NewAnalysisQueryFailedError(fmt.Errorf("no successful response after retries"))
	}
	defer resp.Body.Close()

	var result RunResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, commonerrors.NewAnalysisQueryFailedError(fmt.Errorf("decode result: %w", err))
	}

	c.logger.Info("analysis run completed", map[string]interface{}{
		"tables":      len(result.Tables),
		"suggestions": len(result.Suggestions),
		"hasWarning":  result.Warning != "",
	})

	return &result, nil
}

func isClientError(err error) bool {
	var status int
	if _, scanErr := fmt.Sscanf(err.Error(), "status %d", &status); scanErr == nil {
		return status >= 400 && status < 500
	}
	return false
}
