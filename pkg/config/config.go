package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Weighting preset names accepted by ANALYSIS_WEIGHTING
const (
	WeightingFourFactor  = "four_factor"
	WeightingThreeFactor = "three_factor"
)

// Config holds all application configuration
type Config struct {
	Environment string
	Server      ServerConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	Cache       CacheConfig
	OpenAI      OpenAIConfig
	OTEL        OTELConfig
	Analysis    AnalysisConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host string
	Port int
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// CacheConfig selects the response cache backend
type CacheConfig struct {
	Backend       string // "redis" or "memory"
	MaxEntries    int
	TTLSeconds    int
	LLMTTLSeconds int
}

// OpenAIConfig holds configuration for the text generation service
type OpenAIConfig struct {
	APIKey         string
	Model          string
	BaseURL        string
	RateLimitRPM   int
	RateLimitBurst int
}

// OTELConfig holds OpenTelemetry configuration
type OTELConfig struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string
	Enabled        bool
}

// AnalysisConfig holds the complexity engine settings
type AnalysisConfig struct {
	Weighting       string
	TimelineMaxDays int
}

// Load loads configuration from environment variables. A .env file in the
// working directory is read first when present; real environment wins.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Environment: getEnv("APP_ENV", "development"),
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "care_plan_navigator"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Cache: CacheConfig{
			Backend:       strings.ToLower(getEnv("CACHE_BACKEND", "redis")),
			MaxEntries:    getEnvAsInt("CACHE_MAX_ENTRIES", 1000),
			TTLSeconds:    getEnvAsInt("CACHE_TTL_SECONDS", 3600),
			LLMTTLSeconds: getEnvAsInt("LLM_CACHE_TTL_SECONDS", 7*24*3600),
		},
		OpenAI: OpenAIConfig{
			APIKey:         getEnv("OPENAI_API_KEY", ""),
			Model:          getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			BaseURL:        getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			RateLimitRPM:   getEnvAsInt("OPENAI_RATE_LIMIT_RPM", 60),
			RateLimitBurst: getEnvAsInt("OPENAI_RATE_LIMIT_BURST", 5),
		},
		OTEL: OTELConfig{
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "care-plan-navigator"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "1.0.0"),
			Endpoint:       getEnv("OTEL_ENDPOINT", ""),
			Enabled:        getEnvAsBool("OTEL_ENABLED", false),
		},
		Analysis: AnalysisConfig{
			Weighting:       strings.ToLower(getEnv("ANALYSIS_WEIGHTING", WeightingFourFactor)),
			TimelineMaxDays: getEnvAsInt("ANALYSIS_TIMELINE_MAX_DAYS", 90),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the services cannot run with
func (c *Config) Validate() error {
	switch c.Analysis.Weighting {
	case WeightingFourFactor, WeightingThreeFactor:
	default:
		return fmt.Errorf("invalid ANALYSIS_WEIGHTING %q (want %s or %s)", c.Analysis.Weighting, WeightingFourFactor, WeightingThreeFactor)
	}
	if c.Analysis.TimelineMaxDays < 0 {
		return fmt.Errorf("ANALYSIS_TIMELINE_MAX_DAYS must not be negative")
	}
	switch c.Cache.Backend {
	case "redis", "memory":
	default:
		return fmt.Errorf("invalid CACHE_BACKEND %q (want redis or memory)", c.Cache.Backend)
	}
	return nil
}

// DatabaseDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
