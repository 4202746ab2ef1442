package category

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/qalam/cms-core/internal/middleware"
	"github.com/qalam/cms-core/internal/pkg/response"
)

// Handler exposes the category endpoints. Reads are public, writes require an
// admin.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the category endpoints under rg.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc, activity func(action, entityType string) gin.HandlerFunc) {
	g := rg.Group("/categories")
	g.GET("", h.List)
	g.GET("/:id", h.Get)

	write := g.Group("", authMW, middleware.AdminOnly())
	write.POST("", activity(middleware.ActionCreate, "category"), h.Create)
	write.PUT("/:id", activity(middleware.ActionUpdate, "category"), h.Update)
	write.DELETE("/:id", activity(middleware.ActionDelete, "category"), h.Delete)
}

func (h *Handler) List(c *gin.Context) {
	categories, err := h.svc.List()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, categories)
}

func (h *Handler) Get(c *gin.Context) {
	category, err := h.svc.Get(c.Param("id"))
	switch {
	case errors.Is(err, errCategoryNotFound):
		response.NotFound(c, "التصنيف غير موجود")
	case err != nil:
		response.InternalError(c, err)
	default:
		response.OK(c, category)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "اسم التصنيف مطلوب")
		return
	}

	category, err := h.svc.Create(req)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, category)
}

func (h *Handler) Update(c *gin.Context) {
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "بيانات غير صالحة")
		return
	}

	category, err := h.svc.Update(c.Param("id"), req)
	switch {
	case errors.Is(err, errCategoryNotFound):
		response.NotFound(c, "التصنيف غير موجود")
	case err != nil:
		response.InternalError(c, err)
	default:
		response.OK(c, category)
	}
}

func (h *Handler) Delete(c *gin.Context) {
	err := h.svc.Delete(c.Param("id"))
	switch {
	case errors.Is(err, errCategoryNotFound):
		response.NotFound(c, "التصنيف غير موجود")
	case err != nil:
		response.InternalError(c, err)
	default:
		response.OK(c, gin.H{"message": "تم حذف التصنيف بنجاح"})
	}
}
