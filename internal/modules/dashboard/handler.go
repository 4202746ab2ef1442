package dashboard

import (
	"github.com/gin-gonic/gin"

	"github.com/qalam/cms-core/internal/middleware"
	"github.com/qalam/cms-core/internal/pkg/pagination"
	"github.com/qalam/cms-core/internal/pkg/response"
)

// activityPageSize is the default page size for the audit feed.
const activityPageSize = 20

// Handler exposes the dashboard endpoints.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the dashboard endpoints under rg. Stats are open to
// any authenticated user; the audit feed and settings are admin-only.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc, activity func(action, entityType string) gin.HandlerFunc) {
	g := rg.Group("/dashboard", authMW)
	g.GET("/stats", h.Stats)

	admin := g.Group("", middleware.AdminOnly())
	admin.GET("/activities", h.Activities)
	admin.GET("/settings", h.Settings)
	admin.PUT("/settings", activity(middleware.ActionUpdate, "setting"), h.UpdateSettings)
}

func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.svc.Stats()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, stats)
}

func (h *Handler) Activities(c *gin.Context) {
	entries, meta, err := h.svc.Activities(pagination.WithDefaults(c, activityPageSize))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"activities": entries, "pagination": meta})
}

func (h *Handler) Settings(c *gin.Context) {
	settings, err := h.svc.Settings()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, settings)
}

func (h *Handler) UpdateSettings(c *gin.Context) {
	var values map[string]settingValue
	if err := c.ShouldBindJSON(&values); err != nil || len(values) == 0 {
		response.BadRequest(c, "إعدادات غير صالحة")
		return
	}

	settings, err := h.svc.UpdateSettings(values)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, settings)
}
