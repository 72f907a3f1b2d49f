// cmd/skill-server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"kpi-performance-skill/internal/analytics"
	"kpi-performance-skill/internal/common/config"
	"kpi-performance-skill/internal/common/database"
	"kpi-performance-skill/internal/common/logger"
	"kpi-performance-skill/internal/common/observability"
	"kpi-performance-skill/internal/history"
	"kpi-performance-skill/internal/llm"
	"kpi-performance-skill/internal/skillfw"
	kpiperf "kpi-performance-skill/internal/skills/kpiperformance"
	"kpi-performance-skill/pkg/registry"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

// invocationSink fans each finished invocation out to the audit store and the
// OTel metrics, whichever are configured.
type invocationSink struct {
	store *history.Store
	obs   *observability.Observability
}

func (s *invocationSink) RecordInvocation(skill, invocationID string, args map[string]interface{}, status, errorCode string, duration time.Duration) {
	ctx := context.Background()
	if s.obs != nil {
		s.obs.RecordInvocation(ctx, skill, status)
		s.obs.RecordInvocationDuration(ctx, skill, duration, status)
	}
	if s.store != nil {
		s.store.RecordInvocation(skill, invocationID, args, status, errorCode, duration)
	}
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting skill server...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New("skill-server")
	defer obs.Shutdown()

	ctx := context.Background()

	sink := &invocationSink{obs: obs}

	// --- Init PostgreSQL with retry (optional: audit history) ---
	if cfg.Database.Postgres.Enabled {
		var pg *database.PostgresClient
		err = retryWithBackoff(func() error {
			var err error
			pg, err = database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			return pg.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

		if err != nil {
			zapLog.Fatal("postgres failed after retries", zap.Error(err))
		}
		defer pg.Close()
		zapLog.Info("PostgreSQL connected successfully")

		sink.store = history.NewStore(pg, log)
	}

	// --- Init Redis with retry (optional: LLM completion cache) ---
	var rdb *database.RedisClient
	if cfg.Database.Redis.Enabled {
		err = retryWithBackoff(func() error {
			var err error
			rdb, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			return rdb.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")

		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer rdb.Close()
		zapLog.Info("Redis connected successfully")
	}

	// --- Init External Service Clients ---
	engine := analytics.NewClient(&analytics.ClientConfig{
		BaseURL:    cfg.Analytics.BaseURL,
		APIKey:     cfg.Analytics.APIKey,
		Timeout:    cfg.Analytics.TimeoutDuration(),
		MaxRetries: cfg.Analytics.MaxRetries,
	}, log)

	var generator llm.Generator = llm.NewClient(&llm.ClientConfig{
		BaseURL:     cfg.LLM.BaseURL,
		APIKey:      cfg.LLM.APIKey,
		Model:       cfg.LLM.Model,
		MaxTokens:   cfg.LLM.MaxTokens,
		Temperature: cfg.LLM.Temperature,
		Timeout:     cfg.LLM.TimeoutDuration(),
		MaxRetries:  cfg.LLM.MaxRetries,
	}, log)

	if rdb != nil && cfg.LLM.CacheTTL > 0 {
		generator = llm.NewCachedGenerator(generator, rdb, cfg.LLM.CacheTTLDuration(), log)
		zapLog.Info("LLM completion cache enabled",
			zap.Duration("ttl", cfg.LLM.CacheTTLDuration()))
	}

	zapLog.Info("All external service clients initialized")

	// --- Load skill catalog (optional) ---
	var catalog *registry.SkillCatalog
	if cfg.Registry.Path != "" {
		catalog, err = registry.LoadCatalog(cfg.Registry.Path)
		if err != nil {
			zapLog.Fatal("skill catalog load failed", zap.Error(err))
		}
		zapLog.Info("Skill catalog loaded",
			zap.String("path", cfg.Registry.Path),
			zap.Int("skills", len(catalog.Skills)))
	}

	// --- Register skills ---
	skills := skillfw.NewRegistry(log)

	kpiCfg := kpiperf.DefaultConfig()
	if catalog != nil {
		kpiCfg.ApplyDescriptor(catalog.Find(kpiCfg.Name))
	}
	if sc, ok := cfg.Skills[kpiCfg.Name]; ok {
		if !sc.Enabled {
			zapLog.Fatal("kpi-performance skill disabled; nothing to serve")
		}
		if sc.Timeout > 0 {
			kpiCfg.Timeout = time.Duration(sc.Timeout) * time.Millisecond
		}
		if sc.LimitN > 0 {
			kpiCfg.LimitN = sc.LimitN
		}
	}

	handler := kpiperf.New(kpiCfg, engine, generator, log)
	if err := skills.Register(handler.Skill()); err != nil {
		zapLog.Fatal("skill registration failed", zap.Error(err))
	}

	// --- HTTP server ---
	server := skillfw.NewServer(skills, sink, log)
	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      server.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.Int("port", cfg.Server.Port))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("http server failed", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	zapLog.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeoutDuration())
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("http server shutdown failed", zap.Error(err))
	}
	zapLog.Info("Shutdown complete")
}
