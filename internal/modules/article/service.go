package article

import (
	"errors"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/qalam/cms-core/internal/models"
	"github.com/qalam/cms-core/internal/pkg/pagination"
	"github.com/qalam/cms-core/internal/pkg/slug"
)

var (
	errArticleNotFound = errors.New("article not found")
	errNotOwner        = errors.New("not the article owner")
)

type createRequest struct {
	Title         string `json:"title"   binding:"required"`
	Content       string `json:"content" binding:"required"`
	Excerpt       string `json:"excerpt"`
	FeaturedImage string `json:"featured_image"`
	Status        string `json:"status"      binding:"omitempty,oneof=draft published archived"`
	CategoryID    *uint  `json:"category_id"`
}

type updateRequest struct {
	Title         *string `json:"title"`
	Content       *string `json:"content"`
	Excerpt       *string `json:"excerpt"`
	FeaturedImage *string `json:"featured_image"`
	Status        *string `json:"status" binding:"omitempty,oneof=draft published archived"`
	CategoryID    *uint   `json:"category_id"`
}

type listFilter struct {
	Search   string
	Status   string
	Category string
	Author   string
}

// Service implements article management.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func preloadRefs(tx *gorm.DB) *gorm.DB {
	return tx.
		Preload("Author", func(tx *gorm.DB) *gorm.DB {
			return tx.Select("id, username, avatar")
		}).
		Preload("Category", func(tx *gorm.DB) *gorm.DB {
			return tx.Select("id, name, slug")
		})
}

// List returns one page of articles, newest first. created_at ties break on
// id so the ordering stays stable under rapid inserts.
func (s *Service) List(q pagination.Query, f listFilter) ([]models.ArticleModel, pagination.Meta, error) {
	tx := s.db.Model(&models.ArticleModel{})
	if f.Search != "" {
		like := "%" + f.Search + "%"
		tx = tx.Where("title LIKE ? OR content LIKE ?", like, like)
	}
	if f.Status != "" {
		tx = tx.Where("status = ?", f.Status)
	}
	if f.Category != "" {
		tx = tx.Where("category_id = ?", f.Category)
	}
	if f.Author != "" {
		tx = tx.Where("author_id = ?", f.Author)
	}
	tx = preloadRefs(tx).Order("created_at DESC, id DESC")

	var articles []models.ArticleModel
	meta, err := pagination.Paginate(tx, q, &articles)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return articles, meta, nil
}

// Get fetches one article by numeric id or slug and counts the view.
func (s *Service) Get(idOrSlug string) (*models.ArticleModel, error) {
	var article models.ArticleModel
	err := preloadRefs(byIDOrSlug(s.db, idOrSlug)).First(&article).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errArticleNotFound
	}
	if err != nil {
		return nil, err
	}

	err = s.db.Model(&models.ArticleModel{}).
		Where("id = ?", article.ID).
		Update("views", gorm.Expr("views + 1")).Error
	if err != nil {
		return nil, err
	}
	article.Views++
	return &article, nil
}

// Create stores a new article for authorID. Publishing immediately stamps
// published_at.
func (s *Service) Create(req createRequest, authorID uint) (*models.ArticleModel, error) {
	status := req.Status
	if status == "" {
		status = models.ArticleStatusDraft
	}

	articleSlug, err := s.uniqueSlug(req.Title, 0)
	if err != nil {
		return nil, err
	}

	article := models.ArticleModel{
		Title:         req.Title,
		Slug:          articleSlug,
		Content:       req.Content,
		Excerpt:       req.Excerpt,
		FeaturedImage: req.FeaturedImage,
		Status:        status,
		CategoryID:    req.CategoryID,
		AuthorID:      authorID,
	}
	if status == models.ArticleStatusPublished {
		now := time.Now()
		article.PublishedAt = &now
	}

	if err := s.db.Create(&article).Error; err != nil {
		return nil, err
	}
	return s.reload(article.ID)
}

// Update applies the present fields. Editors may only touch their own
// articles; admins may touch any. A title change regenerates the slug and
// the first transition to published stamps published_at, once.
func (s *Service) Update(idOrSlug string, req updateRequest, caller *models.UserModel) (*models.ArticleModel, error) {
	var article models.ArticleModel
	err := byIDOrSlug(s.db, idOrSlug).First(&article).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errArticleNotFound
	}
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin() && article.AuthorID != caller.ID {
		return nil, errNotOwner
	}

	updates := map[string]any{}
	if req.Title != nil && *req.Title != article.Title {
		newSlug, err := s.uniqueSlug(*req.Title, article.ID)
		if err != nil {
			return nil, err
		}
		updates["title"] = *req.Title
		updates["slug"] = newSlug
	}
	if req.Content != nil {
		updates["content"] = *req.Content
	}
	if req.Excerpt != nil {
		updates["excerpt"] = *req.Excerpt
	}
	if req.FeaturedImage != nil {
		updates["featured_image"] = *req.FeaturedImage
	}
	if req.CategoryID != nil {
		updates["category_id"] = *req.CategoryID
	}
	if req.Status != nil {
		updates["status"] = *req.Status
		if *req.Status == models.ArticleStatusPublished && article.PublishedAt == nil {
			updates["published_at"] = time.Now()
		}
	}

	if len(updates) > 0 {
		if err := s.db.Model(&article).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return s.reload(article.ID)
}

// Delete removes one article, subject to the same ownership rule as Update.
func (s *Service) Delete(idOrSlug string, caller *models.UserModel) error {
	var article models.ArticleModel
	err := byIDOrSlug(s.db, idOrSlug).First(&article).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errArticleNotFound
	}
	if err != nil {
		return err
	}
	if !caller.IsAdmin() && article.AuthorID != caller.ID {
		return errNotOwner
	}
	return s.db.Delete(&article).Error
}

func (s *Service) reload(id uint) (*models.ArticleModel, error) {
	var article models.ArticleModel
	if err := preloadRefs(s.db).First(&article, id).Error; err != nil {
		return nil, err
	}
	return &article, nil
}

// uniqueSlug normalizes title and appends a timestamp suffix when the slug is
// already taken by a different article. The unique index remains the final
// guard against a concurrent insert of the same slug.
func (s *Service) uniqueSlug(title string, excludeID uint) (string, error) {
	candidate := slug.Normalize(title)
	if candidate == "" {
		candidate = "article"
	}

	var count int64
	err := s.db.Model(&models.ArticleModel{}).
		Where("slug = ? AND id <> ?", candidate, excludeID).
		Count(&count).Error
	if err != nil {
		return "", err
	}
	if count > 0 {
		candidate = slug.WithSuffix(candidate)
	}
	return candidate, nil
}

// byIDOrSlug matches the path parameter against the id when it is numeric,
// and against the slug otherwise. Numeric values still match slugs so purely
// numeric slugs stay reachable.
func byIDOrSlug(tx *gorm.DB, param string) *gorm.DB {
	if n, err := strconv.ParseUint(param, 10, 32); err == nil {
		return tx.Where("id = ? OR slug = ?", n, param)
	}
	return tx.Where("slug = ?", param)
}
