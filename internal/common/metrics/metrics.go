// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SkillInvocationsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skill_invocations_completed_total",
			Help: "Total number of skill invocations completed",
		},
		[]string{"skill"},
	)

	SkillInvocationsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skill_invocations_failed_total",
			Help: "Total number of skill invocations failed",
		},
		[]string{"skill", "error_code"},
	)

	SkillInvocationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "skill_invocation_duration_seconds",
			Help: "Duration of skill invocation in seconds",
		},
		[]string{"skill"},
	)

	SkillInvocationsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "skill_invocations_active",
			Help: "Number of in-flight invocations per skill",
		},
		[]string{"skill"},
	)

	LLMCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llm_cache_hits_total",
			Help: "Completion cache hits and misses",
		},
		[]string{"result"},
	)
)
