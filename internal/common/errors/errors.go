// Package errors provides standardized error handling for skill invocations.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeSkillNotFound            ErrorCode = "SKILL_NOT_FOUND"
	ErrCodeInvalidParameter         ErrorCode = "INVALID_PARAMETER"
	ErrCodeArgumentValidationFailed ErrorCode = "ARGUMENT_VALIDATION_FAILED"

	ErrCodeAnalysisConnectionFailed ErrorCode = "ANALYSIS_CONNECTION_FAILED"
	ErrCodeAnalysisQueryFailed      ErrorCode = "ANALYSIS_QUERY_FAILED"
	ErrCodeAnalysisTimeout          ErrorCode = "ANALYSIS_TIMEOUT"

	ErrCodeLLMTimeout          ErrorCode = "LLM_TIMEOUT"
	ErrCodeLLMGenerationFailed ErrorCode = "LLM_GENERATION_FAILED"

	ErrCodeLayoutTemplateInvalid ErrorCode = "LAYOUT_TEMPLATE_INVALID"
	ErrCodeLayoutRenderFailed    ErrorCode = "LAYOUT_RENDER_FAILED"

	ErrCodeHistoryWriteFailed ErrorCode = "HISTORY_WRITE_FAILED"
	ErrCodeInternal           ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewSkillNotFoundError creates a non-retryable lookup error.
func NewSkillNotFoundError(name string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSkillNotFound,
		Message:   "Skill not registered",
		Details:   fmt.Sprintf("skill: %s", name),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidParameterError creates a non-retryable parameter error.
func NewInvalidParameterError(parameter, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidParameter,
		Message:   fmt.Sprintf("Invalid value for parameter '%s'", parameter),
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewArgumentValidationFailedError creates a non-retryable schema validation error.
func NewArgumentValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeArgumentValidationFailed,
		Message:   "Skill arguments failed schema validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewAnalysisConnectionFailedError creates a retryable analytics connection error.
func NewAnalysisConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeAnalysisConnectionFailed,
		Message:   "Analytics engine connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewAnalysisQueryFailedError creates a retryable analytics query error.
func NewAnalysisQueryFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeAnalysisQueryFailed,
		Message:   "Analytics engine query error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewAnalysisTimeoutError creates a retryable analytics timeout error.
func NewAnalysisTimeoutError() *StandardError {
	return &StandardError{
		Code:      ErrCodeAnalysisTimeout,
		Message:   "Analytics engine call timed out",
		Details:   "run call exceeded timeout threshold",
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewLLMTimeoutError creates a retryable LLM timeout error.
func NewLLMTimeoutError() *StandardError {
	return &StandardError{
		Code:      ErrCodeLLMTimeout,
		Message:   "LLM completion timeout",
		Details:   "completion call exceeded timeout threshold",
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewLLMGenerationFailedError creates a retryable LLM generation error.
func NewLLMGenerationFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeLLMGenerationFailed,
		Message:   "LLM completion API error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewLayoutTemplateInvalidError creates a non-retryable layout template error.
func NewLayoutTemplateInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeLayoutTemplateInvalid,
		Message:   "Visualization layout template is not valid",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewLayoutRenderFailedError creates a non-retryable layout render error.
func NewLayoutRenderFailedError(table string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeLayoutRenderFailed,
		Message:   "Visualization layout rendering failed",
		Details:   fmt.Sprintf("table: %s, error: %s", table, err.Error()),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewHistoryWriteFailedError creates a retryable history persistence error.
func NewHistoryWriteFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeHistoryWriteFailed,
		Message:   "Invocation history write failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// GetRetryCount returns the recommended retry count per error code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeAnalysisConnectionFailed,
		ErrCodeAnalysisQueryFailed,
		ErrCodeLLMGenerationFailed,
		ErrCodeHistoryWriteFailed:
		return 3

	case ErrCodeAnalysisTimeout,
		ErrCodeLLMTimeout:
		return 1

	default:
		return 0 // parameter and template errors: no retry
	}
}

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "SKILL") || strings.Contains(codeStr, "PARAMETER") || strings.Contains(codeStr, "ARGUMENT"):
		return "PARAMETERS"
	case strings.Contains(codeStr, "ANALYSIS"):
		return "ANALYTICS"
	case strings.Contains(codeStr, "LLM"):
		return "AI"
	case strings.Contains(codeStr, "LAYOUT"):
		return "LAYOUT"
	case strings.Contains(codeStr, "HISTORY"):
		return "HISTORY"
	default:
		return "OTHER"
	}
}

// Normalize ensures any error is represented as a StandardError.
func Normalize(err error) *StandardError {
	if stdErr, ok := err.(*StandardError); ok {
		return stdErr
	}
	return NewInternalError(err)
}
