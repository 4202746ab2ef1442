package auth

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/qalam/cms-core/internal/middleware"
	"github.com/qalam/cms-core/internal/pkg/response"
)

// Handler exposes the authentication endpoints.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the auth endpoints under rg.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW, loginRateMW gin.HandlerFunc) {
	g := rg.Group("/auth")
	g.POST("/login", loginRateMW, h.Login)
	g.POST("/register", h.Register)
	g.GET("/me", authMW, h.Me)
	g.PUT("/profile", authMW, h.UpdateProfile)
	g.POST("/logout", authMW, h.Logout)
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "البريد الإلكتروني وكلمة المرور مطلوبان")
		return
	}

	res, err := h.svc.Login(req, c.ClientIP())
	switch {
	case errors.Is(err, errBadCredentials):
		response.Unauthorized(c, "بيانات الدخول غير صحيحة")
	case errors.Is(err, errAccountInactive):
		response.Forbidden(c, "الحساب غير مفعل")
	case err != nil:
		response.InternalError(c, err)
	default:
		response.OK(c, res)
	}
}

func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "بيانات التسجيل غير مكتملة")
		return
	}

	user, err := h.svc.Register(req)
	switch {
	case errors.Is(err, errDuplicateAccount):
		response.BadRequest(c, "اسم المستخدم أو البريد الإلكتروني مستخدم بالفعل")
	case err != nil:
		response.InternalError(c, err)
	default:
		response.Created(c, user)
	}
}

func (h *Handler) Me(c *gin.Context) {
	response.OK(c, middleware.CurrentUser(c))
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "بيانات غير صالحة")
		return
	}

	user, err := h.svc.UpdateProfile(middleware.CurrentUser(c).ID, req)
	switch {
	case errors.Is(err, errWrongPassword):
		response.BadRequest(c, "كلمة المرور الحالية غير صحيحة")
	case errors.Is(err, errDuplicateAccount):
		response.BadRequest(c, "اسم المستخدم أو البريد الإلكتروني مستخدم بالفعل")
	case err != nil:
		response.InternalError(c, err)
	default:
		response.OK(c, user)
	}
}

func (h *Handler) Logout(c *gin.Context) {
	h.svc.Logout(middleware.CurrentUser(c).ID, c.ClientIP())
	response.OK(c, gin.H{"message": "تم تسجيل الخروج بنجاح"})
}
