package article

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/qalam/cms-core/internal/middleware"
	"github.com/qalam/cms-core/internal/pkg/pagination"
	"github.com/qalam/cms-core/internal/pkg/response"
)

// Handler exposes the article endpoints. Reads are public, writes require an
// editor or admin.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the article endpoints under rg.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc, activity func(action, entityType string) gin.HandlerFunc) {
	g := rg.Group("/articles")
	g.GET("", h.List)
	g.GET("/:id", h.Get)

	write := g.Group("", authMW, middleware.EditorOrAdmin())
	write.POST("", activity(middleware.ActionCreate, "article"), h.Create)
	write.PUT("/:id", activity(middleware.ActionUpdate, "article"), h.Update)
	write.DELETE("/:id", activity(middleware.ActionDelete, "article"), h.Delete)
}

func (h *Handler) List(c *gin.Context) {
	f := listFilter{
		Search:   c.Query("search"),
		Status:   c.Query("status"),
		Category: c.Query("category"),
		Author:   c.Query("author"),
	}
	articles, meta, err := h.svc.List(pagination.FromContext(c), f)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"articles": articles, "pagination": meta})
}

func (h *Handler) Get(c *gin.Context) {
	article, err := h.svc.Get(c.Param("id"))
	switch {
	case errors.Is(err, errArticleNotFound):
		response.NotFound(c, "المقال غير موجود")
	case err != nil:
		response.InternalError(c, err)
	default:
		response.OK(c, article)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "العنوان والمحتوى مطلوبان")
		return
	}

	article, err := h.svc.Create(req, middleware.CurrentUser(c).ID)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, article)
}

func (h *Handler) Update(c *gin.Context) {
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "بيانات غير صالحة")
		return
	}

	article, err := h.svc.Update(c.Param("id"), req, middleware.CurrentUser(c))
	switch {
	case errors.Is(err, errArticleNotFound):
		response.NotFound(c, "المقال غير موجود")
	case errors.Is(err, errNotOwner):
		response.Forbidden(c, "ليس لديك صلاحية تعديل هذا المقال")
	case err != nil:
		response.InternalError(c, err)
	default:
		response.OK(c, article)
	}
}

func (h *Handler) Delete(c *gin.Context) {
	err := h.svc.Delete(c.Param("id"), middleware.CurrentUser(c))
	switch {
	case errors.Is(err, errArticleNotFound):
		response.NotFound(c, "المقال غير موجود")
	case errors.Is(err, errNotOwner):
		response.Forbidden(c, "ليس لديك صلاحية حذف هذا المقال")
	case err != nil:
		response.InternalError(c, err)
	default:
		response.OK(c, gin.H{"message": "تم حذف المقال بنجاح"})
	}
}
