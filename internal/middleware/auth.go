package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/qalam/cms-core/internal/models"
	"github.com/qalam/cms-core/internal/pkg/jwt"
	"github.com/qalam/cms-core/internal/pkg/response"
)

// ContextKeyUser is the gin context key the authenticated user is stored
// under.
const ContextKeyUser = "auth.user"

// Auth verifies the Bearer token, loads the account it names and aborts with
// 401/403 when any step fails. On success the user is available via
// CurrentUser.
func Auth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			response.Unauthorized(c, "غير مصرح - يرجى تسجيل الدخول")
			c.Abort()
			return
		}

		claims, err := jwt.Parse(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			response.Unauthorized(c, "جلسة غير صالحة - يرجى إعادة تسجيل الدخول")
			c.Abort()
			return
		}

		var user models.UserModel
		err = db.Select("id, username, email, role, status, avatar, created_at, updated_at").
			First(&user, claims.UserID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Unauthorized(c, "المستخدم غير موجود")
			c.Abort()
			return
		}
		if err != nil {
			response.InternalError(c, err)
			c.Abort()
			return
		}
		if user.Status != models.UserStatusActive {
			response.Forbidden(c, "الحساب غير مفعل")
			c.Abort()
			return
		}

		c.Set(ContextKeyUser, &user)
		c.Next()
	}
}

// CurrentUser returns the user set by Auth, or nil when the route ran without
// it.
func CurrentUser(c *gin.Context) *models.UserModel {
	v, ok := c.Get(ContextKeyUser)
	if !ok {
		return nil
	}
	user, _ := v.(*models.UserModel)
	return user
}

func requireRoles(msg string, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			response.Unauthorized(c, "غير مصرح - يرجى تسجيل الدخول")
			c.Abort()
			return
		}
		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}
		response.Forbidden(c, msg)
		c.Abort()
	}
}

// AdminOnly allows admins through. Must run after Auth.
func AdminOnly() gin.HandlerFunc {
	return requireRoles("هذا الإجراء يتطلب صلاحيات المدير", models.RoleAdmin)
}

// EditorOrAdmin allows editors and admins through. Must run after Auth.
func EditorOrAdmin() gin.HandlerFunc {
	return requireRoles("هذا الإجراء يتطلب صلاحيات المحرر أو المدير", models.RoleAdmin, models.RoleEditor)
}
