package skillfw

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	commonerrors "kpi-performance-skill/internal/common/errors"
	"kpi-performance-skill/internal/common/logger"
	"kpi-performance-skill/internal/common/metrics"
	"kpi-performance-skill/internal/common/validation"
)

// Registry holds registered skills and dispatches invocations.
type Registry struct {
	mu      sync.RWMutex
	skills  map[string]*Skill
	schemas map[string]map[string]interface{}
	logger  logger.Logger
}

func NewRegistry(log logger.Logger) *Registry {
	return &Registry{
		skills:  make(map[string]*Skill),
		schemas: make(map[string]map[string]interface{}),
		logger:  log.WithFields(map[string]interface{}{"component": "skill-registry"}),
	}
}

// Register adds a skill to the registry. Registering the same name twice is
// a programming error.
func (r *Registry) Register(s *Skill) error {
	if s.Name == "" {
		return fmt.Errorf("skill name must not be empty")
	}
	if s.Handler == nil {
		return fmt.Errorf("skill %q has no handler", s.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.skills[s.Name]; exists {
		return fmt.Errorf("skill %q already registered", s.Name)
	}

	r.skills[s.Name] = s
	r.schemas[s.Name] = ArgumentsSchema(s)

	r.logger.Info("skill registered", map[string]interface{}{
		"skill":      s.Name,
		"parameters": len(s.Parameters),
	})
	return nil
}

// Get returns a registered skill by name.
func (r *Registry) Get(name string) (*Skill, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.skills[name]
	return s, ok
}

// List returns the names of all registered skills.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.skills))
	for name := range r.skills {
		names = append(names, name)
	}
	return names
}

// Invoke validates the arguments, applies defaults, and runs the skill.
func (r *Registry) Invoke(ctx context.Context, name string, args map[string]interface{}) (*Output, error) {
	r.mu.RLock()
	s, ok := r.skills[name]
	schema := r.schemas[name]
	r.mu.RUnlock()

	if !ok {
		return nil, commonerrors.NewSkillNotFoundError(name)
	}

	if args == nil {
		args = map[string]interface{}{}
	}
	res, err := validation.ValidateDocument(schema, args)
	if err != nil {
		return nil, commonerrors.NewInternalError(err)
	}
	if !res.Valid {
		return nil, commonerrors.NewArgumentValidationFailedError(fmt.Sprintf("%v", res.Errors))
	}

	input := &Input{
		SkillName:    name,
		InvocationID: uuid.NewString(),
		Arguments:    ApplyDefaults(s, args),
	}

	log := r.logger.WithFields(map[string]interface{}{
		"skill":        name,
		"invocationId": input.InvocationID,
	})
	log.Info("invoking skill", map[string]interface{}{"argumentCount": len(args)})

	metrics.SkillInvocationsActive.WithLabelValues(name).Inc()
	defer metrics.SkillInvocationsActive.WithLabelValues(name).Dec()

	start := time.Now()
	output, err := s.Handler(ctx, input)
	metrics.SkillInvocationDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())

	if err != nil {
		stdErr := commonerrors.Normalize(err)
		metrics.SkillInvocationsFailed.WithLabelValues(name, string(stdErr.Code)).Inc()
		return nil, stdErr
	}

	metrics.SkillInvocationsCompleted.WithLabelValues(name).Inc()
	log.Info("skill completed", map[string]interface{}{
		"visualizations": len(output.Visualizations),
		"exports":        len(output.ExportData),
		"durationMs":     time.Since(start).Milliseconds(),
	})
	return output, nil
}
