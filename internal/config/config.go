package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/joho/godotenv"
)

const (
	ProviderPayPerQ = "payperq"
	ProviderGemini  = "gemini"

	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Scorer   ScorerConfig
	PayPerQ  PayPerQConfig
	Gemini   GeminiConfig
	Storage  StorageConfig
}

type ServerConfig struct {
	Port         string
	Env          string
	AllowOrigins string
	// MaxBodySize caps whole request bodies. It sits well above
	// Storage.MaxFileSize so oversized documents reach the validator.
	MaxBodySize int64
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string

	MaxOpenConns    int64
	MaxIdleConns    int64
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	URL string
}

type ScorerConfig struct {
	Provider string
	Timeout  time.Duration
}

type PayPerQConfig struct {
	APIKey string
	URL    string
	Model  string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type StorageConfig struct {
	MaxFileSize  int64
	AccountStore string
	SessionStore string
}

var defaultOrigins = []string{
	"http://localhost:3000",
	"http://127.0.0.1:3000",
	"http://localhost:5173",
	"http://127.0.0.1:5173",
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8000"),
			Env:          getEnv("ENV", "development"),
			AllowOrigins: getEnv("CORS_ALLOW_ORIGINS", strings.Join(defaultOrigins, ",")),
			MaxBodySize:  getEnvAsInt64("MAX_BODY_SIZE", 52428800),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "resume_analyzer"),

			MaxOpenConns:    getEnvAsInt64("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvAsInt64("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", defaultConnMaxLifetime.String()),
		},
		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", "redis://localhost:6379/0"),
		},
		Scorer: ScorerConfig{
			Provider: strings.ToLower(getEnv("SCORER_PROVIDER", ProviderPayPerQ)),
			Timeout:  getEnvAsDuration("SCORER_TIMEOUT", "30s"),
		},
		PayPerQ: PayPerQConfig{
			APIKey: getEnv("PAYPERQ_API_KEY", ""),
			URL:    getEnv("PAYPERQ_URL", "https://api.payperq.com/v1/analyze"),
			Model:  getEnv("PAYPERQ_MODEL", "gpt-5"),
		},
		Gemini: GeminiConfig{
			APIKey: getEnv("GEMINI_API_KEY", ""),
			Model:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		},
		Storage: StorageConfig{
			MaxFileSize:  getEnvAsInt64("MAX_FILE_SIZE", 10485760),
			AccountStore: strings.ToLower(getEnv("ACCOUNT_STORE", StoreMemory)),
			SessionStore: strings.ToLower(getEnv("SESSION_STORE", StoreMemory)),
		},
	}
}

// ScorerAPIKey returns the credential of the selected provider. An empty
// value means the service runs in heuristic-only mode.
func (c *Config) ScorerAPIKey() string {
	switch c.Scorer.Provider {
	case ProviderGemini:
		return c.Gemini.APIKey
	case ProviderPayPerQ:
		return c.PayPerQ.APIKey
	default:
		return ""
	}
}

func (c *Config) UsesDatabase() bool {
	return c.Storage.AccountStore == StorePostgres || c.Storage.SessionStore == StorePostgres
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil && value > 0 {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil && duration > 0 {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
