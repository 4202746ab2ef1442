// Package pagination implements the shared page/limit query handling and the
// list response metadata.
package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// MaxLimit caps the page size a client may request.
const MaxLimit = 100

// DefaultLimit is used when the query carries no limit.
const DefaultLimit = 10

// Query is the normalized page/limit pair taken from the request.
type Query struct {
	Page  int
	Limit int
}

// Meta describes one page of a list response.
type Meta struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// FromContext reads page and limit from the query string with the default
// page size.
func FromContext(c *gin.Context) Query {
	return WithDefaults(c, DefaultLimit)
}

// WithDefaults reads page and limit using defaultLimit when the client sends
// none. Non-numeric or non-positive values fall back to defaults and limit is
// capped at MaxLimit.
func WithDefaults(c *gin.Context, defaultLimit int) Query {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Query{Page: page, Limit: limit}
}

// Offset returns the row offset for the query's page.
func (q Query) Offset() int {
	return (q.Page - 1) * q.Limit
}

// Paginate counts tx, then fetches the requested page into dest. Filters and
// ordering applied to tx before the call govern both the count and the page,
// so the two can never disagree.
func Paginate[T any](tx *gorm.DB, q Query, dest *[]T) (Meta, error) {
	var total int64
	if err := tx.Session(&gorm.Session{}).Model(new(T)).Count(&total).Error; err != nil {
		return Meta{}, err
	}
	if err := tx.Offset(q.Offset()).Limit(q.Limit).Find(dest).Error; err != nil {
		return Meta{}, err
	}
	return Meta{
		Page:  q.Page,
		Limit: q.Limit,
		Total: total,
		Pages: pages(total, q.Limit),
	}, nil
}

func pages(total int64, limit int) int {
	if total == 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
