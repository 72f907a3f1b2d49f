package llm

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/redis/go-redis/v9"

	"kpi-performance-skill/internal/common/database"
	"kpi-performance-skill/internal/common/logger"
	"kpi-performance-skill/internal/common/metrics"
)

// CachedGenerator memoizes completions in Redis, keyed by prompt hash.
// Identical rendered prompts within the TTL return the cached narrative
// without another LLM round trip.
type CachedGenerator struct {
	next   Generator
	redis  *database.RedisClient
	ttl    time.Duration
	logger logger.Logger
}

func NewCachedGenerator(next Generator, rdb *database.RedisClient, ttl time.Duration, log logger.Logger) *CachedGenerator {
	return &CachedGenerator{
		next:   next,
		redis:  rdb,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "llm-cache"}),
	}
}

func (g *CachedGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	key := cacheKey(prompt)

	cached, err := g.redis.Get(ctx, key)
	if err == nil {
		metrics.LLMCacheHits.WithLabelValues("hit").Inc()
		return cached, nil
	}
	if err != redis.Nil {
		// Cache trouble is never fatal for the invocation.
		g.logger.Warn("cache read failed", map[string]interface{}{"error": err.Error()})
	}
	metrics.LLMCacheHits.WithLabelValues("miss").Inc()

	completion, err := g.next.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}

	// Empty completions are not cached; the fallback narrative should not stick.
	if completion != "" {
		if setErr := g.redis.Set(ctx, key, completion, g.ttl); setErr != nil {
			g.logger.Warn("cache write failed", map[string]interface{}{"error": setErr.Error()})
		}
	}

	return completion, nil
}

func cacheKey(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return "llm:completion:" + hex.EncodeToString(sum[:])
}
