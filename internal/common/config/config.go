// internal/common/config/config.go
package config

import (
	"fmt"
	"time"
)

// Config is the main application configuration struct.
type Config struct {
	App       AppConfig              `mapstructure:"app"`
	Server    ServerConfig           `mapstructure:"server"`
	Analytics AnalyticsConfig        `mapstructure:"analytics"`
	LLM       LLMConfig              `mapstructure:"llm"`
	Database  DatabaseConfig         `mapstructure:"database"`
	Skills    map[string]SkillConfig `mapstructure:"skills"`
	Registry  RegistryConfig         `mapstructure:"registry"`
	Logging   LoggingConfig          `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Port            int `mapstructure:"port"`
	ReadTimeout     int `mapstructure:"read_timeout"`     // milliseconds
	WriteTimeout    int `mapstructure:"write_timeout"`    // milliseconds
	ShutdownTimeout int `mapstructure:"shutdown_timeout"` // milliseconds
}

// AnalyticsConfig points at the external KPI analytics engine.
type AnalyticsConfig struct {
	BaseURL    string `mapstructure:"base_url"`
	APIKey     string `mapstructure:"api_key"`
	Timeout    int    `mapstructure:"timeout"` // milliseconds
	MaxRetries int    `mapstructure:"max_retries"`
}

// LLMConfig points at the OpenAI-compatible completion endpoint.
type LLMConfig struct {
	BaseURL     string  `mapstructure:"base_url"`
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	Temperature float64 `mapstructure:"temperature"`
	Timeout     int     `mapstructure:"timeout"` // milliseconds
	MaxRetries  int     `mapstructure:"max_retries"`
	CacheTTL    int     `mapstructure:"cache_ttl"` // seconds, 0 disables caching
}

type DatabaseConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
	Enabled        bool   `mapstructure:"enabled"`
}

// GetDSN returns the PostgreSQL connection string.
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Enabled  bool   `mapstructure:"enabled"`
}

// SkillConfig holds the core settings applicable to every registered skill.
type SkillConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Timeout int  `mapstructure:"timeout"` // milliseconds
	LimitN  int  `mapstructure:"limit_n"` // default Top N row cap
}

// RegistryConfig locates the optional skill catalog file.
type RegistryConfig struct {
	Path string `mapstructure:"path"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// --- Duration helpers (config stores milliseconds, callers want time.Duration) ---

func (s ServerConfig) ReadTimeoutDuration() time.Duration  { return msOrDefault(s.ReadTimeout, 15000) }
func (s ServerConfig) WriteTimeoutDuration() time.Duration { return msOrDefault(s.WriteTimeout, 120000) }
func (s ServerConfig) ShutdownTimeoutDuration() time.Duration {
	return msOrDefault(s.ShutdownTimeout, 10000)
}
func (a AnalyticsConfig) TimeoutDuration() time.Duration { return msOrDefault(a.Timeout, 60000) }
func (l LLMConfig) TimeoutDuration() time.Duration       { return msOrDefault(l.Timeout, 30000) }
func (l LLMConfig) CacheTTLDuration() time.Duration {
	return time.Duration(l.CacheTTL) * time.Second
}

func msOrDefault(ms, def int) time.Duration {
	if ms <= 0 {
		ms = def
	}
	return time.Duration(ms) * time.Millisecond
}
