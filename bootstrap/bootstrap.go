package bootstrap

import (
	"os"
	"strings"

	"leaseos-backend/internal/config"
	"leaseos-backend/internal/infrastructure/database"
	"leaseos-backend/internal/interfaces/router"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Runtime is a configured app with the connections it was built on.
type Runtime struct {
	Config *config.Config
	App    *fiber.App
	DB     *gorm.DB
	Redis  *redis.Client
}

// Setup loads config, configures logging, connects and migrates the schema.
func Setup() (*Runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	ConfigureLogging(cfg)

	app, db, rdb, err := router.CreateApp(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.AutoMigrate(db); err != nil {
		return nil, err
	}
	return &Runtime{Config: cfg, App: app, DB: db, Redis: rdb}, nil
}

// New creates the Fiber app for serverless entry points.
func New() (*fiber.App, error) {
	rt, err := Setup()
	if err != nil {
		return nil, err
	}
	return rt.App, nil
}

// ConfigureLogging sets the global zerolog level and switches to console output outside production.
func ConfigureLogging(cfg *config.Config) {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil || cfg.LogLevel == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if !cfg.IsProduction() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}
