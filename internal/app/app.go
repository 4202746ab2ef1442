// Package app assembles the HTTP server from its parts.
package app

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/qalam/cms-core/internal/config"
	"github.com/qalam/cms-core/internal/database"
	"github.com/qalam/cms-core/internal/middleware"
	"github.com/qalam/cms-core/internal/pkg/jwt"
	"github.com/qalam/cms-core/internal/pkg/redis"
)

// App holds the wired-up server and its backing connections.
type App struct {
	cfg    *config.Config
	log    *zap.Logger
	db     *gorm.DB
	rdb    *redis.Client
	engine *gin.Engine
}

// New connects the database and optional redis, seeds an empty database and
// builds the router.
func New(cfg *config.Config, log *zap.Logger) (*App, error) {
	if !cfg.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}

	jwt.SetSecret(cfg.JWTSecret)

	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.Seed(db, log); err != nil {
		return nil, fmt.Errorf("seed: %w", err)
	}

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		rdb, err = redis.Connect(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("redis: %w", err)
		}
		log.Info("login rate limiter enabled")
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Logger(log))
	engine.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	a := &App{cfg: cfg, log: log, db: db, rdb: rdb, engine: engine}
	a.registerRoutes()
	return a, nil
}

// Handler returns the HTTP handler for the server.
func (a *App) Handler() http.Handler {
	return a.engine
}

// Addr returns the listen address.
func (a *App) Addr() string {
	return fmt.Sprintf(":%d", a.cfg.Port)
}

// Close releases the backing connections.
func (a *App) Close() error {
	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			a.log.Warn("closing redis", zap.Error(err))
		}
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
