package user

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/qalam/cms-core/internal/middleware"
	"github.com/qalam/cms-core/internal/pkg/pagination"
	"github.com/qalam/cms-core/internal/pkg/response"
)

// Handler exposes the admin-only user management endpoints.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the user endpoints under rg. Every route requires an
// authenticated admin; writes are audited.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc, activity func(action, entityType string) gin.HandlerFunc) {
	g := rg.Group("/users", authMW, middleware.AdminOnly())
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.POST("", activity(middleware.ActionCreate, "user"), h.Create)
	g.PUT("/:id", activity(middleware.ActionUpdate, "user"), h.Update)
	g.DELETE("/:id", activity(middleware.ActionDelete, "user"), h.Delete)
}

func (h *Handler) List(c *gin.Context) {
	f := listFilter{
		Search: c.Query("search"),
		Role:   c.Query("role"),
		Status: c.Query("status"),
	}
	users, meta, err := h.svc.List(pagination.FromContext(c), f)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"users": users, "pagination": meta})
}

func (h *Handler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.BadRequest(c, "معرف غير صالح")
		return
	}

	user, err := h.svc.Get(id)
	switch {
	case errors.Is(err, errUserNotFound):
		response.NotFound(c, "المستخدم غير موجود")
	case err != nil:
		response.InternalError(c, err)
	default:
		response.OK(c, user)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "بيانات المستخدم غير مكتملة")
		return
	}

	user, err := h.svc.Create(req)
	switch {
	case errors.Is(err, errDuplicateUser):
		response.BadRequest(c, "اسم المستخدم أو البريد الإلكتروني مستخدم بالفعل")
	case err != nil:
		response.InternalError(c, err)
	default:
		response.Created(c, user)
	}
}

func (h *Handler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.BadRequest(c, "معرف غير صالح")
		return
	}

	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "بيانات غير صالحة")
		return
	}

	user, err := h.svc.Update(id, req)
	switch {
	case errors.Is(err, errUserNotFound):
		response.NotFound(c, "المستخدم غير موجود")
	case errors.Is(err, errDuplicateUser):
		response.BadRequest(c, "اسم المستخدم أو البريد الإلكتروني مستخدم بالفعل")
	case err != nil:
		response.InternalError(c, err)
	default:
		response.OK(c, user)
	}
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.BadRequest(c, "معرف غير صالح")
		return
	}

	err = h.svc.Delete(id, middleware.CurrentUser(c).ID)
	switch {
	case errors.Is(err, errDeleteSelf):
		response.BadRequest(c, "لا يمكنك حذف حسابك الخاص")
	case errors.Is(err, errUserNotFound):
		response.NotFound(c, "المستخدم غير موجود")
	case err != nil:
		response.InternalError(c, err)
	default:
		response.OK(c, gin.H{"message": "تم حذف المستخدم بنجاح"})
	}
}

func parseID(c *gin.Context) (uint, error) {
	n, err := strconv.ParseUint(c.Param("id"), 10, 32)
	return uint(n), err
}
