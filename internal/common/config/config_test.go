// internal/common/config/config_test.go
package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetDSN(t *testing.T) {
	cfg := PostgresConfig{
		Host:     "db.internal",
		Port:     5433,
		Database: "skills",
		User:     "svc",
		Password: "secret",
		SSLMode:  "require",
	}

	assert.Equal(t,
		"host=db.internal port=5433 user=svc password=secret dbname=skills sslmode=require",
		cfg.GetDSN())
}

func TestDurationHelpers(t *testing.T) {
	assert.Equal(t, 5*time.Second, AnalyticsConfig{Timeout: 5000}.TimeoutDuration())
	assert.Equal(t, 60*time.Second, AnalyticsConfig{}.TimeoutDuration(), "zero falls back to default")
	assert.Equal(t, 30*time.Second, LLMConfig{}.TimeoutDuration())
	assert.Equal(t, 15*time.Minute, LLMConfig{CacheTTL: 900}.CacheTTLDuration())
	assert.Equal(t, 10*time.Second, ServerConfig{}.ShutdownTimeoutDuration())
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}

	applyDefaults(cfg)

	assert.Equal(t, "kpi-performance-skill", cfg.App.Name)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	assert.Equal(t, 2, cfg.Analytics.MaxRetries)
	assert.Equal(t, "disable", cfg.Database.Postgres.SSLMode)
	assert.NotNil(t, cfg.Skills)
}

func TestValidateConfig(t *testing.T) {
	valid := &Config{
		Server:    ServerConfig{Port: 8080},
		Analytics: AnalyticsConfig{BaseURL: "http://engine:9090"},
		LLM:       LLMConfig{BaseURL: "https://api.openai.com"},
	}
	assert.NoError(t, validateConfig(valid))

	missingEngine := *valid
	missingEngine.Analytics.BaseURL = ""
	assert.Error(t, validateConfig(&missingEngine))

	missingLLM := *valid
	missingLLM.LLM.BaseURL = ""
	assert.Error(t, validateConfig(&missingLLM))

	badPort := *valid
	badPort.Server.Port = -1
	assert.Error(t, validateConfig(&badPort))
}
