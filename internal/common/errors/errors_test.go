// internal/common/errors/errors_test.go
package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorsSetCodeAndRetryability(t *testing.T) {
	tests := []struct {
		name      string
		err       *StandardError
		code      ErrorCode
		retryable bool
	}{
		{"skill not found", NewSkillNotFoundError("ghost"), ErrCodeSkillNotFound, false},
		{"invalid parameter", NewInvalidParameterError("limit_n", "must be positive"), ErrCodeInvalidParameter, false},
		{"argument validation", NewArgumentValidationFailedError("bad enum"), ErrCodeArgumentValidationFailed, false},
		{"analysis timeout", NewAnalysisTimeoutError(), ErrCodeAnalysisTimeout, true},
		{"analysis query", NewAnalysisQueryFailedError(fmt.Errorf("boom")), ErrCodeAnalysisQueryFailed, true},
		{"llm timeout", NewLLMTimeoutError(), ErrCodeLLMTimeout, true},
		{"llm generation", NewLLMGenerationFailedError(fmt.Errorf("boom")), ErrCodeLLMGenerationFailed, true},
		{"layout template", NewLayoutTemplateInvalidError("not json"), ErrCodeLayoutTemplateInvalid, false},
		{"history write", NewHistoryWriteFailedError(fmt.Errorf("boom")), ErrCodeHistoryWriteFailed, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.retryable, tt.err.Retryable)
			assert.False(t, tt.err.Timestamp.IsZero())
		})
	}
}

func TestGetRetryCount(t *testing.T) {
	assert.Equal(t, 3, GetRetryCount(ErrCodeAnalysisQueryFailed))
	assert.Equal(t, 1, GetRetryCount(ErrCodeLLMTimeout))
	assert.Equal(t, 0, GetRetryCount(ErrCodeInvalidParameter))
	assert.True(t, IsRetryableErrorCode(ErrCodeAnalysisConnectionFailed))
	assert.False(t, IsRetryableErrorCode(ErrCodeLayoutTemplateInvalid))
}

func TestGetErrorCategory(t *testing.T) {
	assert.Equal(t, "PARAMETERS", GetErrorCategory(ErrCodeInvalidParameter))
	assert.Equal(t, "ANALYTICS", GetErrorCategory(ErrCodeAnalysisTimeout))
	assert.Equal(t, "AI", GetErrorCategory(ErrCodeLLMGenerationFailed))
	assert.Equal(t, "LAYOUT", GetErrorCategory(ErrCodeLayoutRenderFailed))
	assert.Equal(t, "HISTORY", GetErrorCategory(ErrCodeHistoryWriteFailed))
	assert.Equal(t, "OTHER", GetErrorCategory(ErrCodeInternal))
}

func TestNormalize(t *testing.T) {
	std := NewAnalysisTimeoutError()
	assert.Same(t, std, Normalize(std))

	wrapped := Normalize(fmt.Errorf("plain error"))
	require.NotNil(t, wrapped)
	assert.Equal(t, ErrCodeInternal, wrapped.Code)
	assert.Equal(t, "plain error", wrapped.Details)
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, HTTPStatus(ErrCodeSkillNotFound))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(ErrCodeArgumentValidationFailed))
	assert.Equal(t, http.StatusGatewayTimeout, HTTPStatus(ErrCodeAnalysisTimeout))
	assert.Equal(t, http.StatusBadGateway, HTTPStatus(ErrCodeLLMGenerationFailed))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(ErrCodeInternal))
}
