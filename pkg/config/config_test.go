package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_AnalysisConfig(t *testing.T) {
	t.Setenv("ANALYSIS_WEIGHTING", "THREE_FACTOR")
	t.Setenv("ANALYSIS_TIMELINE_MAX_DAYS", "30")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, WeightingThreeFactor, cfg.Analysis.Weighting)
	assert.Equal(t, 30, cfg.Analysis.TimelineMaxDays)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ANALYSIS_WEIGHTING", "")
	t.Setenv("ANALYSIS_TIMELINE_MAX_DAYS", "")
	t.Setenv("CACHE_BACKEND", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, WeightingFourFactor, cfg.Analysis.Weighting)
	assert.Equal(t, 90, cfg.Analysis.TimelineMaxDays)
	assert.Equal(t, "redis", cfg.Cache.Backend)
	assert.Equal(t, 7*24*3600, cfg.Cache.LLMTTLSeconds)
	assert.Equal(t, "localhost:6379", cfg.Redis.RedisAddr())
}

func TestLoad_RejectsUnknownWeighting(t *testing.T) {
	t.Setenv("ANALYSIS_WEIGHTING", "five_factor")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_RejectsUnknownCacheBackend(t *testing.T) {
	t.Setenv("CACHE_BACKEND", "memcached")

	_, err := Load()
	assert.Error(t, err)
}

func TestDatabaseDSN(t *testing.T) {
	cfg := DatabaseConfig{Host: "db", Port: 5433, User: "u", Password: "p", Database: "care", SSLMode: "require"}
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=care sslmode=require", cfg.DatabaseDSN())
}
