package app

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/qalam/cms-core/internal/middleware"
	"github.com/qalam/cms-core/internal/modules/article"
	"github.com/qalam/cms-core/internal/modules/auth"
	"github.com/qalam/cms-core/internal/modules/category"
	"github.com/qalam/cms-core/internal/modules/dashboard"
	"github.com/qalam/cms-core/internal/modules/user"
)

func (a *App) registerRoutes() {
	a.engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := a.engine.Group("/api")

	authMW := middleware.Auth(a.db)
	loginRateMW := middleware.LoginRateLimit(a.rdb, a.log)
	activity := func(action, entityType string) gin.HandlerFunc {
		return middleware.RecordActivity(a.db, a.log, action, entityType)
	}

	tokenTTL := time.Duration(a.cfg.JWTExpiryHours) * time.Hour
	auth.NewHandler(auth.NewService(a.db, a.log, tokenTTL)).RegisterRoutes(api, authMW, loginRateMW)
	user.NewHandler(user.NewService(a.db)).RegisterRoutes(api, authMW, activity)
	article.NewHandler(article.NewService(a.db)).RegisterRoutes(api, authMW, activity)
	category.NewHandler(category.NewService(a.db)).RegisterRoutes(api, authMW, activity)
	dashboard.NewHandler(dashboard.NewService(a.db)).RegisterRoutes(api, authMW, activity)
}
