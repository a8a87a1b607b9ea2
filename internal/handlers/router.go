package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Oversized documents must get through the transport so the validator can
// answer with its size message; only bodies past the limit are cut off early.
const bodyLimitFactor = 4

type AppConfig struct {
	MaxFileSize  int64
	MaxBodySize  int64
	AllowOrigins string
	AccessLog    bool
}

// BodyLimit returns MaxBodySize, or a multiple of MaxFileSize when that is
// unset or too small to let an oversized document through.
func (cfg AppConfig) BodyLimit() int {
	limit := cfg.MaxBodySize
	if floor := bodyLimitFactor * cfg.MaxFileSize; limit < floor {
		limit = floor
	}
	return int(limit)
}

func NewApp(cfg AppConfig, authHandler *AuthHandler, analysisHandler *AnalysisHandler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "AI Resume Analyzer API",
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		BodyLimit:    cfg.BodyLimit(),
		ErrorHandler: ErrorHandler,
	})

	app.Use(recover.New())
	if cfg.AccessLog {
		app.Use(logger.New(logger.Config{
			Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
			TimeFormat: "2006-01-02 15:04:05",
		}))
	}

	// fiber refuses credentials together with a wildcard origin
	allowCredentials := cfg.AllowOrigins != "" && cfg.AllowOrigins != "*"
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     "GET,POST,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: allowCredentials,
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "AI Resume Analyzer API is running",
		})
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	app.Post("/signup", authHandler.HandleSignup)
	app.Post("/login", authHandler.HandleLogin)
	app.Get("/verify-session", authHandler.HandleVerifySession)
	app.Post("/logout", authHandler.HandleLogout)

	app.Post("/analyze_resume", analysisHandler.HandleAnalyzeResume)
	app.Post("/upload_pdf", analysisHandler.HandleUploadPDF)

	return app
}
