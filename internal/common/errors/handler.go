// internal/common/errors/handler.go
package errors

import (
	"encoding/json"
	"net/http"
)

// ErrorHandler writes invocation errors back to the host framework as HTTP responses.
type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// errorResponse is the wire shape of a failed invocation.
type errorResponse struct {
	Error *StandardError `json:"error"`
}

// HandleInvocationError normalizes, logs and writes the error for one invocation.
func (h *ErrorHandler) HandleInvocationError(w http.ResponseWriter, skill, invocationID string, err error) {
	stdErr := Normalize(err)

	h.logger.Error("Skill invocation failed", map[string]interface{}{
		"skill":         skill,
		"invocationId":  invocationID,
		"errorCode":     string(stdErr.Code),
		"message":       stdErr.Message,
		"details":       stdErr.Details,
		"retryable":     stdErr.Retryable,
		"errorCategory": GetErrorCategory(stdErr.Code),
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(HTTPStatus(stdErr.Code))
	_ = json.NewEncoder(w).Encode(errorResponse{Error: stdErr})
}

// HTTPStatus maps internal error codes to HTTP status codes.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeSkillNotFound:
		return http.StatusNotFound
	case ErrCodeInvalidParameter, ErrCodeArgumentValidationFailed, ErrCodeLayoutTemplateInvalid:
		return http.StatusBadRequest
	case ErrCodeAnalysisTimeout, ErrCodeLLMTimeout:
		return http.StatusGatewayTimeout
	case ErrCodeAnalysisConnectionFailed, ErrCodeAnalysisQueryFailed, ErrCodeLLMGenerationFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
