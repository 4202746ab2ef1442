// Package response centralizes the JSON shapes handlers reply with. Success
// responses send the payload as-is; failures send {"error": "..."}.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Error is the failure envelope.
type Error struct {
	Error string `json:"error"`
}

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, Error{Error: msg})
}

func Unauthorized(c *gin.Context, msg string) {
	c.JSON(http.StatusUnauthorized, Error{Error: msg})
}

func Forbidden(c *gin.Context, msg string) {
	c.JSON(http.StatusForbidden, Error{Error: msg})
}

func NotFound(c *gin.Context, msg string) {
	c.JSON(http.StatusNotFound, Error{Error: msg})
}

func TooManyRequests(c *gin.Context, msg string) {
	c.JSON(http.StatusTooManyRequests, Error{Error: msg})
}

// InternalError logs the underlying cause and replies with a generic message
// so internals never leak to clients.
func InternalError(c *gin.Context, err error) {
	zap.L().Error("internal error",
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	c.JSON(http.StatusInternalServerError, Error{Error: "حدث خطأ في الخادم"})
}
