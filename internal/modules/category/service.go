package category

import (
	"errors"
	"strconv"

	"gorm.io/gorm"

	"github.com/qalam/cms-core/internal/models"
	"github.com/qalam/cms-core/internal/pkg/slug"
)

var errCategoryNotFound = errors.New("category not found")

type createRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type updateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// categoryWithCount is a category row carrying its article count.
type categoryWithCount struct {
	models.CategoryModel
	ArticleCount int64 `json:"article_count" gorm:"column:article_count"`
}

// Service implements category management.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// List returns all categories with their article counts, unpaginated.
func (s *Service) List() ([]categoryWithCount, error) {
	var categories []categoryWithCount
	err := s.db.Model(&models.CategoryModel{}).
		Select("categories.*, COUNT(articles.id) AS article_count").
		Joins("LEFT JOIN articles ON articles.category_id = categories.id").
		Group("categories.id").
		Order("categories.name ASC").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// Get fetches one category by numeric id or slug.
func (s *Service) Get(idOrSlug string) (*models.CategoryModel, error) {
	var category models.CategoryModel
	err := byIDOrSlug(s.db, idOrSlug).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errCategoryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// Create stores a new category with a slug derived from its name.
func (s *Service) Create(req createRequest) (*models.CategoryModel, error) {
	categorySlug, err := s.uniqueSlug(req.Name, 0)
	if err != nil {
		return nil, err
	}

	category := models.CategoryModel{
		Name:        req.Name,
		Slug:        categorySlug,
		Description: req.Description,
	}
	if err := s.db.Create(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// Update applies the present fields; a name change regenerates the slug.
func (s *Service) Update(idOrSlug string, req updateRequest) (*models.CategoryModel, error) {
	var category models.CategoryModel
	err := byIDOrSlug(s.db, idOrSlug).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errCategoryNotFound
	}
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if req.Name != nil && *req.Name != category.Name {
		newSlug, err := s.uniqueSlug(*req.Name, category.ID)
		if err != nil {
			return nil, err
		}
		updates["name"] = *req.Name
		updates["slug"] = newSlug
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}

	if len(updates) > 0 {
		if err := s.db.Model(&category).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	if err := s.db.First(&category, category.ID).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// Delete removes the category. Its articles survive with category_id cleared.
func (s *Service) Delete(idOrSlug string) error {
	var category models.CategoryModel
	err := byIDOrSlug(s.db, idOrSlug).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errCategoryNotFound
	}
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.ArticleModel{}).
			Where("category_id = ?", category.ID).
			Update("category_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&category).Error
	})
}

func (s *Service) uniqueSlug(name string, excludeID uint) (string, error) {
	candidate := slug.Normalize(name)
	if candidate == "" {
		candidate = "category"
	}

	var count int64
	err := s.db.Model(&models.CategoryModel{}).
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

func byIDOrSlug(tx *gorm.DB, param string) *gorm.DB {
	if n, err := strconv.ParseUint(param, 10, 32); err == nil {
		return tx.Where("id = ? OR slug = ?", n, param)
	}
	return tx.Where("slug = ?", param)
}
