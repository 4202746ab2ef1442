package dashboard

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/qalam/cms-core/internal/models"
	"github.com/qalam/cms-core/internal/pkg/pagination"
)

// Stats is the admin dashboard summary.
type Stats struct {
	Totals              Totals              `json:"totals"`
	UsersByRole         []CountByKey        `json:"usersByRole"`
	ArticlesByStatus    []CountByKey        `json:"articlesByStatus"`
	RecentArticles      []RecentArticle     `json:"recentArticles"`
	RecentActivities    []ActivityEntry     `json:"recentActivities"`
	TopArticles         []RecentArticle     `json:"topArticles"`
	ArticlesPerCategory []CategoryBreakdown `json:"articlesPerCategory"`
}

// Totals carries the headline counters.
type Totals struct {
	Users      int64 `json:"users"`
	Articles   int64 `json:"articles"`
	Categories int64 `json:"categories"`
	Views      int64 `json:"views"`
}

// CountByKey is one row of a grouped count.
type CountByKey struct {
	Key   string `json:"key"   gorm:"column:grp"`
	Count int64  `json:"count" gorm:"column:cnt"`
}

// RecentArticle is the trimmed article row shown on the dashboard.
type RecentArticle struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Status    string    `json:"status"`
	Views     int       `json:"views"`
	Author    string    `json:"author" gorm:"column:author"`
	CreatedAt time.Time `json:"created_at"`
}

// ActivityEntry is an audit row joined with the acting user's name.
type ActivityEntry struct {
	models.ActivityLogModel
	Username *string `json:"username" gorm:"column:username"`
}

// CategoryBreakdown is the per-category article count.
type CategoryBreakdown struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Count int64  `json:"count" gorm:"column:cnt"`
}

type settingValue struct {
	Value string `json:"value"`
	Type  string `json:"type"`
}

// Service implements the dashboard queries and the site settings store.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Stats assembles the dashboard summary.
func (s *Service) Stats() (*Stats, error) {
	stats := &Stats{}

	if err := s.db.Model(&models.UserModel{}).Count(&stats.Totals.Users).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.ArticleModel{}).Count(&stats.Totals.Articles).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.CategoryModel{}).Count(&stats.Totals.Categories).Error; err != nil {
		return nil, err
	}
	err := s.db.Model(&models.ArticleModel{}).
		Select("COALESCE(SUM(views), 0)").
		Scan(&stats.Totals.Views).Error
	if err != nil {
		return nil, err
	}

	err = s.db.Model(&models.UserModel{}).
		Select("role AS grp, COUNT(*) AS cnt").
		Group("role").
		Scan(&stats.UsersByRole).Error
	if err != nil {
		return nil, err
	}

	err = s.db.Model(&models.ArticleModel{}).
		Select("status AS grp, COUNT(*) AS cnt").
		Group("status").
		Scan(&stats.ArticlesByStatus).Error
	if err != nil {
		return nil, err
	}

	err = s.db.Model(&models.ArticleModel{}).
		Select("articles.id, articles.title, articles.slug, articles.status, articles.views, articles.created_at, users.username AS author").
		Joins("LEFT JOIN users ON users.id = articles.author_id").
		Order("articles.created_at DESC, articles.id DESC").
		Limit(5).
		Scan(&stats.RecentArticles).Error
	if err != nil {
		return nil, err
	}

	err = s.activityQuery().
		Limit(10).
		Scan(&stats.RecentActivities).Error
	if err != nil {
		return nil, err
	}

	err = s.db.Model(&models.ArticleModel{}).
		Select("articles.id, articles.title, articles.slug, articles.status, articles.views, articles.created_at, users.username AS author").
		Joins("LEFT JOIN users ON users.id = articles.author_id").
		Order("articles.views DESC").
		Limit(5).
		Scan(&stats.TopArticles).Error
	if err != nil {
		return nil, err
	}

	err = s.db.Model(&models.CategoryModel{}).
		Select("categories.id, categories.name, COUNT(articles.id) AS cnt").
		Joins("LEFT JOIN articles ON articles.category_id = categories.id").
		Group("categories.id").
		Order("cnt DESC").
		Scan(&stats.ArticlesPerCategory).Error
	if err != nil {
		return nil, err
	}

	return stats, nil
}

// Activities returns one page of audit entries, newest first, with the acting
// user's name joined in. Entries whose user was deleted come back with a null
// username.
func (s *Service) Activities(q pagination.Query) ([]ActivityEntry, pagination.Meta, error) {
	var total int64
	if err := s.db.Model(&models.ActivityLogModel{}).Count(&total).Error; err != nil {
		return nil, pagination.Meta{}, err
	}

	var entries []ActivityEntry
	err := s.activityQuery().
		Offset(q.Offset()).
		Limit(q.Limit).
		Scan(&entries).Error
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	pages := 0
	if total > 0 {
		pages = int((total + int64(q.Limit) - 1) / int64(q.Limit))
	}
	meta := pagination.Meta{Page: q.Page, Limit: q.Limit, Total: total, Pages: pages}
	return entries, meta, nil
}

func (s *Service) activityQuery() *gorm.DB {
	return s.db.Model(&models.ActivityLogModel{}).
		Select("activity_logs.*, users.username AS username").
		Joins("LEFT JOIN users ON users.id = activity_logs.user_id").
		Order("activity_logs.created_at DESC, activity_logs.id DESC")
}

// Settings returns the full settings table as a key-indexed map.
func (s *Service) Settings() (map[string]settingValue, error) {
	var rows []models.SettingModel
	if err := s.db.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make(map[string]settingValue, len(rows))
	for _, row := range rows {
		out[row.Key] = settingValue{Value: row.Value, Type: row.Type}
	}
	return out, nil
}

// UpdateSettings upserts every submitted key and returns the resulting map.
func (s *Service) UpdateSettings(values map[string]settingValue) (map[string]settingValue, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for key, val := range values {
			typ := val.Type
			if typ == "" {
				typ = models.SettingTypeText
			}

			var existing models.SettingModel
			err := tx.Where("`key` = ?", key).First(&existing).Error
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				row := models.SettingModel{Key: key, Value: val.Value, Type: typ}
				if err := tx.Create(&row).Error; err != nil {
					return err
				}
			case err != nil:
				return err
			default:
				err := tx.Model(&existing).
					Updates(map[string]any{"value": val.Value, "type": typ}).Error
				if err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Settings()
}
