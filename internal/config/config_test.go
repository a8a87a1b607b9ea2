package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm/logger"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PAYPERQ_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("SCORER_PROVIDER", "")
	t.Setenv("SCORER_TIMEOUT", "")
	t.Setenv("MAX_FILE_SIZE", "")
	t.Setenv("MAX_BODY_SIZE", "")

	cfg := Load()

	assert.Equal(t, ProviderPayPerQ, cfg.Scorer.Provider)
	assert.Equal(t, 30*time.Second, cfg.Scorer.Timeout)
	assert.Equal(t, int64(10*1024*1024), cfg.Storage.MaxFileSize)
	assert.Equal(t, int64(50*1024*1024), cfg.Server.MaxBodySize)
	assert.Equal(t, "", cfg.ScorerAPIKey())
	assert.False(t, cfg.UsesDatabase())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SCORER_PROVIDER", "Gemini")
	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("PAYPERQ_API_KEY", "p-key")
	t.Setenv("SCORER_TIMEOUT", "5s")
	t.Setenv("SESSION_STORE", "postgres")

	cfg := Load()

	assert.Equal(t, ProviderGemini, cfg.Scorer.Provider)
	assert.Equal(t, "g-key", cfg.ScorerAPIKey())
	assert.Equal(t, 5*time.Second, cfg.Scorer.Timeout)
	assert.True(t, cfg.UsesDatabase())
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("SCORER_TIMEOUT", "soon")
	t.Setenv("MAX_FILE_SIZE", "-1")
	t.Setenv("MAX_BODY_SIZE", "big")

	cfg := Load()

	assert.Equal(t, 30*time.Second, cfg.Scorer.Timeout)
	assert.Equal(t, int64(10485760), cfg.Storage.MaxFileSize)
	assert.Equal(t, int64(52428800), cfg.Server.MaxBodySize)
}

func TestScorerAPIKey_UnknownProvider(t *testing.T) {
	cfg := &Config{
		Scorer:  ScorerConfig{Provider: "other"},
		PayPerQ: PayPerQConfig{APIKey: "p-key"},
	}
	assert.Equal(t, "", cfg.ScorerAPIKey())
}

func TestLoad_DatabasePool(t *testing.T) {
	t.Setenv("DB_MAX_OPEN_CONNS", "")
	t.Setenv("DB_MAX_IDLE_CONNS", "2")
	t.Setenv("DB_CONN_MAX_LIFETIME", "")

	cfg := Load()

	assert.Equal(t, int64(10), cfg.Database.MaxOpenConns)
	assert.Equal(t, int64(2), cfg.Database.MaxIdleConns)
	assert.Equal(t, 30*time.Minute, cfg.Database.ConnMaxLifetime)
}

func TestGetDatabaseDSN(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{
		Host:     "db",
		Port:     "5433",
		User:     "app",
		Password: "secret",
		DBName:   "resumes",
	}}

	assert.Equal(t, "host=db port=5433 user=app password=secret dbname=resumes sslmode=disable", cfg.GetDatabaseDSN())
}

func TestGormLogLevel(t *testing.T) {
	testCases := []struct {
		env  string
		want logger.LogLevel
	}{
		{env: "development", want: logger.Info},
		{env: "test", want: logger.Silent},
		{env: "production", want: logger.Error},
		{env: "", want: logger.Error},
	}

	for _, tc := range testCases {
		t.Run(tc.env, func(t *testing.T) {
			assert.Equal(t, tc.want, gormLogLevel(tc.env))
		})
	}
}
