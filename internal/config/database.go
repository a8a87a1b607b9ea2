package config

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"alfredoptarigan/resume-analyzer/internal/models"
)

// accountModels are the tables owned by the account and session stores.
var accountModels = []any{
	&models.User{},
	&models.Session{},
}

// InitDatabase opens the postgres pool used by the gorm account and session
// stores and migrates their tables.
func InitDatabase(cfg *Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.GetDatabaseDSN()), &gorm.Config{
		Logger:         logger.Default.LogMode(gormLogLevel(cfg.Server.Env)),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access connection pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(int(cfg.Database.MaxOpenConns))
	sqlDB.SetMaxIdleConns(int(cfg.Database.MaxIdleConns))
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	log.Infof("✅ Database connected (%s@%s:%s/%s)",
		cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if err := db.AutoMigrate(accountModels...); err != nil {
		return nil, fmt.Errorf("failed to migrate account tables: %w", err)
	}
	log.Infof("✅ Migrated %d account tables", len(accountModels))

	return db, nil
}

// gormLogLevel logs SQL only in development; elsewhere only errors surface.
func gormLogLevel(env string) logger.LogLevel {
	switch env {
	case "development":
		return logger.Info
	case "test":
		return logger.Silent
	default:
		return logger.Error
	}
}

const defaultConnMaxLifetime = 30 * time.Minute
