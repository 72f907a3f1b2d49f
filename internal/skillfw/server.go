package skillfw

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	commonerrors "kpi-performance-skill/internal/common/errors"
	"kpi-performance-skill/internal/common/logger"
)

// InvocationRecorder receives a record of every finished invocation.
// The history store implements this; a nil recorder disables auditing.
type InvocationRecorder interface {
	RecordInvocation(skill, invocationID string, args map[string]interface{}, status, errorCode string, duration time.Duration)
}

// Server exposes skill invocation over HTTP to the host framework.
type Server struct {
	registry *Registry
	recorder InvocationRecorder
	errors   *commonerrors.ErrorHandler
	logger   logger.Logger
}

func NewServer(registry *Registry, recorder InvocationRecorder, log logger.Logger) *Server {
	return &Server{
		registry: registry,
		recorder: recorder,
		errors:   commonerrors.NewErrorHandler(log),
		logger:   log.WithFields(map[string]interface{}{"component": "skill-server"}),
	}
}

// Handler returns the HTTP routes for the skill service.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/skills/", s.handleSkill)
	mux.HandleFunc("/api/skills", s.handleList)
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

type invokeRequest struct {
	Arguments map[string]interface{} `json:"arguments"`
}

func (s *Server) handleSkill(w http.ResponseWriter, r *http.Request) {
	// Path shape: /api/skills/{name}/invoke
	rest := strings.TrimPrefix(r.URL.Path, "/api/skills/")
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[1] != "invoke" {
		http.NotFound(w, r)
		return
	}
	name := parts[0]

	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req invokeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errors.HandleInvocationError(w, name, "",
			commonerrors.NewInvalidParameterError("arguments", err.Error()))
		return
	}

	start := time.Now()
	output, err := s.registry.Invoke(r.Context(), name, req.Arguments)
	if err != nil {
		stdErr := commonerrors.Normalize(err)
		s.record(name, "", req.Arguments, "failed", string(stdErr.Code), time.Since(start))
		s.errors.HandleInvocationError(w, name, "", stdErr)
		return
	}

	s.record(name, "", req.Arguments, "completed", "", time.Since(start))

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(output); err != nil {
		s.logger.Error("encode response failed", map[string]interface{}{"error": err.Error()})
	}
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{"skills": s.registry.List()})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) record(skill, invocationID string, args map[string]interface{}, status, errorCode string, duration time.Duration) {
	if s.recorder == nil {
		return
	}
	s.recorder.RecordInvocation(skill, invocationID, args, status, errorCode, duration)
}
