package models

import "time"

// Article statuses.
const (
	ArticleStatusDraft     = "draft"
	ArticleStatusPublished = "published"
	ArticleStatusArchived  = "archived"
)

// ArticleModel is a CMS article.
type ArticleModel struct {
	Base
	Title         string         `json:"title"          gorm:"not null"`
	Slug          string         `json:"slug"           gorm:"uniqueIndex;size:191;not null"`
	Content       string         `json:"content"        gorm:"type:longtext"`
	Excerpt       string         `json:"excerpt"        gorm:"type:text"`
	FeaturedImage string         `json:"featured_image"`
	Status        string         `json:"status"         gorm:"size:20;default:draft;index"`
	CategoryID    *uint          `json:"category_id"    gorm:"index"`
	Category      *CategoryModel `json:"category,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL"`
	AuthorID      uint           `json:"author_id"      gorm:"index;not null"`
	Author        *UserModel     `json:"author,omitempty"   gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Views         int            `json:"views"          gorm:"default:0"`
	// Set exactly once, on the first transition into the published status.
	PublishedAt *time.Time `json:"published_at"`
}

func (ArticleModel) TableName() string { return "articles" }
