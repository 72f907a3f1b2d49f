// internal/analytics/engine_test.go
package analytics

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commonerrors "kpi-performance-skill/internal/common/errors"
	"kpi-performance-skill/internal/common/logger"
)

func sampleRunResult() *RunResult {
	table := &Table{
		Columns: []string{"Region", "Spend"},
		Rows:    [][]interface{}{{"North", 500.0}, {"South", 400.0}},
	}
	return &RunResult{
		Primary:    table,
		Tables:     []NamedTable{{Name: "Spend by Region", Table: table}},
		Title:      "Spend",
		Subtitle:   "by Region",
		Dimensions: []string{"Region"},
		Warning:    "Partial period.",
	}
}

func newEngineClient(t *testing.T, baseURL string, retries int) *Client {
	t.Helper()
	return NewClient(&ClientConfig{
		BaseURL:    baseURL,
		APIKey:     "engine-key",
		Timeout:    5 * time.Second,
		MaxRetries: retries,
	}, logger.NewTestLogger(t))
}

func TestClientRun(t *testing.T) {
	var gotQuery Query
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/kpi-performance/run", r.URL.Path)
		assert.Equal(t, "Bearer engine-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotQuery))
		require.NoError(t, json.NewEncoder(w).Encode(sampleRunResult()))
	}))
	defer srv.Close()

	result, err := newEngineClient(t, srv.URL, 0).Run(context.Background(), Query{
		Metrics:    []string{"Spend"},
		Breakouts:  []string{"Region"},
		GrowthType: GrowthNone,
		LimitN:     5,
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"Spend"}, gotQuery.Metrics)
	assert.Equal(t, GrowthNone, gotQuery.GrowthType)
	assert.Equal(t, 5, gotQuery.LimitN)

	require.Len(t, result.Tables, 1)
	assert.Equal(t, "Spend by Region", result.Tables[0].Name)
	assert.Equal(t, 2, result.Tables[0].Table.RowCount())
	assert.Equal(t, "Partial period.", result.Warning)
}

func TestClientRunRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_ = json.NewEncoder(w).Encode(sampleRunResult())
	}))
	defer srv.Close()

	result, err := newEngineClient(t, srv.URL, 2).Run(context.Background(), Query{})

	require.NoError(t, err)
	assert.NotNil(t, result.Primary)
	assert.Equal(t, int32(2), calls.Load())
}

func TestClientRunDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := newEngineClient(t, srv.URL, 3).Run(context.Background(), Query{})

	var stdErr *commonerrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, commonerrors.ErrCodeAnalysisQueryFailed, stdErr.Code)
	assert.Equal(t, int32(1), calls.Load(), "4xx responses must not be retried")
}

func TestClientRunTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_ = json.NewEncoder(w).Encode(sampleRunResult())
	}))
	defer srv.Close()

	client := NewClient(&ClientConfig{
		BaseURL: srv.URL,
		Timeout: 50 * time.Millisecond,
	}, logger.NewTestLogger(t))

	_, err := client.Run(context.Background(), Query{})

	var stdErr *commonerrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, commonerrors.ErrCodeAnalysisTimeout, stdErr.Code)
}
