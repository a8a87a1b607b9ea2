package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"alfredoptarigan/resume-analyzer/internal/config"
	"alfredoptarigan/resume-analyzer/internal/handlers"
	"alfredoptarigan/resume-analyzer/internal/repositories"
	"alfredoptarigan/resume-analyzer/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Info("✅ Config loaded successfully")

	ctx := context.Background()

	// Initialize database only when a store needs it
	var db *gorm.DB
	if cfg.UsesDatabase() {
		var err error
		db, err = config.InitDatabase(cfg)
		if err != nil {
			log.Fatalf("❌ Failed to initialize database: %v", err)
		}
		log.Info("✅ Database initialized successfully")
	}

	var rdb *redis.Client
	if cfg.Storage.SessionStore == config.StoreRedis {
		var err error
		rdb, err = config.InitRedis(ctx, cfg)
		if err != nil {
			log.Fatalf("❌ Failed to initialize Redis: %v", err)
		}
		defer rdb.Close()
		log.Info("✅ Redis initialized successfully")
	}

	// Initialize repositories
	accountStore, err := newAccountStore(cfg, db)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	sessionStore, err := newSessionStore(cfg, db, rdb)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	log.Infof("✅ Repositories initialized (accounts: %s, sessions: %s)",
		cfg.Storage.AccountStore, cfg.Storage.SessionStore)

	// Initialize services
	scorer := newScorer(ctx, cfg)
	analysisService := services.NewAnalysisService(scorer, services.NewHeuristicAnalyzer(), cfg.Scorer.Timeout)
	pdfParser := services.NewPDFParserService(cfg.Storage.MaxFileSize)
	authService := services.NewAuthService(accountStore, sessionStore)
	log.Infof("✅ Services initialized (analysis: %s)", services.Describe(scorer))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	analysisHandler := handlers.NewAnalysisHandler(analysisService, pdfParser)
	log.Info("✅ Handlers initialized")

	app := handlers.NewApp(handlers.AppConfig{
		MaxFileSize:  cfg.Storage.MaxFileSize,
		MaxBodySize:  cfg.Server.MaxBodySize,
		AllowOrigins: cfg.Server.AllowOrigins,
		AccessLog:    true,
	}, authHandler, analysisHandler)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Info("🛑 Shutting down server...")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Errorf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Infof("🚀 Server starting on %s", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func newAccountStore(cfg *config.Config, db *gorm.DB) (repositories.AccountStore, error) {
	switch cfg.Storage.AccountStore {
	case config.StoreMemory:
		return repositories.NewMemoryAccountStore(), nil
	case config.StorePostgres:
		return repositories.NewAccountRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported ACCOUNT_STORE %q", cfg.Storage.AccountStore)
	}
}

func newSessionStore(cfg *config.Config, db *gorm.DB, rdb *redis.Client) (repositories.SessionStore, error) {
	switch cfg.Storage.SessionStore {
	case config.StoreMemory:
		return repositories.NewMemorySessionStore(), nil
	case config.StorePostgres:
		return repositories.NewSessionRepository(db), nil
	case config.StoreRedis:
		return repositories.NewRedisSessionStore(rdb), nil
	default:
		return nil, fmt.Errorf("unsupported SESSION_STORE %q", cfg.Storage.SessionStore)
	}
}

// newScorer returns nil when no credential is configured, which leaves the
// analysis service in heuristic-only mode.
func newScorer(ctx context.Context, cfg *config.Config) services.Scorer {
	if cfg.ScorerAPIKey() == "" {
		log.Warnf("⚠️ No API key for scorer %q, using heuristic analysis only", cfg.Scorer.Provider)
		return nil
	}

	switch cfg.Scorer.Provider {
	case config.ProviderGemini:
		scorer, err := services.NewGeminiScorer(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			log.Warnf("⚠️ Failed to initialize Gemini scorer, using heuristic analysis only: %v", err)
			return nil
		}
		return scorer
	default:
		return services.NewPayPerQScorer(cfg.PayPerQ.APIKey, cfg.PayPerQ.URL, cfg.PayPerQ.Model, cfg.Scorer.Timeout)
	}
}
