package middleware

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/qalam/cms-core/internal/models"
)

// Activity actions.
const (
	ActionCreate = "إنشاء"
	ActionUpdate = "تحديث"
	ActionDelete = "حذف"
	ActionLogin  = "تسجيل دخول"
	ActionLogout = "تسجيل خروج"
)

// bodyWriter tees the response body so the middleware can pull the created
// entity id out of it after the handler runs.
type bodyWriter struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *bodyWriter) Write(p []byte) (int, error) {
	w.buf.Write(p)
	return w.ResponseWriter.Write(p)
}

// RecordActivity appends an audit entry after the wrapped handler succeeds
// with a 2xx status. The entity id is taken from the response body's top-level
// "id" field, falling back to the :id route param. Audit storage failures are
// logged and swallowed so they never fail the request itself.
func RecordActivity(db *gorm.DB, log *zap.Logger, action, entityType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		bw := &bodyWriter{ResponseWriter: c.Writer}
		c.Writer = bw
		c.Next()

		status := c.Writer.Status()
		if status < 200 || status >= 300 {
			return
		}

		entry := models.ActivityLogModel{
			Action:     action,
			EntityType: entityType,
			EntityID:   entityID(bw.buf.Bytes(), c.Param("id")),
			IPAddress:  c.ClientIP(),
		}
		if user := CurrentUser(c); user != nil {
			entry.UserID = &user.ID
		}

		if err := db.Create(&entry).Error; err != nil {
			log.Warn("failed to record activity",
				zap.String("action", action),
				zap.String("entity_type", entityType),
				zap.Error(err),
			)
		}
	}
}

func entityID(body []byte, param string) *uint {
	var payload struct {
		ID *uint `json:"id"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.ID != nil {
		return payload.ID
	}
	if n, err := strconv.ParseUint(param, 10, 32); err == nil {
		id := uint(n)
		return &id
	}
	return nil
}
