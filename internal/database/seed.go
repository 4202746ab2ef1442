package database

import (
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/qalam/cms-core/internal/models"
)

// Seed populates an empty database with the default admin and editor
// accounts, the starter categories and the site settings. Tables that already
// hold rows are left alone, so running it on every boot is safe.
func Seed(db *gorm.DB, log *zap.Logger) error {
	if err := seedUsers(db, log); err != nil {
		return err
	}
	if err := seedCategories(db); err != nil {
		return err
	}
	return seedSettings(db)
}

func seedUsers(db *gorm.DB, log *zap.Logger) error {
	var count int64
	if err := db.Model(&models.UserModel{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	adminHash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	editorHash, err := bcrypt.GenerateFromPassword([]byte("editor123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	users := []models.UserModel{
		{Username: "admin", Email: "admin@cms.com", Password: string(adminHash), Role: models.RoleAdmin, Status: models.UserStatusActive},
		{Username: "editor", Email: "editor@cms.com", Password: string(editorHash), Role: models.RoleEditor, Status: models.UserStatusActive},
	}
	if err := db.Create(&users).Error; err != nil {
		return err
	}
	log.Info("seeded default accounts", zap.String("admin", "admin@cms.com"))
	return nil
}

func seedCategories(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.CategoryModel{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	categories := []models.CategoryModel{
		{Name: "أخبار", Slug: "news", Description: "آخر الأخبار والمستجدات"},
		{Name: "تقنية", Slug: "tech", Description: "مقالات تقنية"},
		{Name: "رياضة", Slug: "sports", Description: "أخبار رياضية"},
		{Name: "ثقافة", Slug: "culture", Description: "مقالات ثقافية"},
	}
	return db.Create(&categories).Error
}

func seedSettings(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.SettingModel{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	settings := []models.SettingModel{
		{Key: "site_name", Value: "نظام إدارة المحتوى", Type: models.SettingTypeText},
		{Key: "site_description", Value: "نظام متكامل لإدارة المحتوى العربي", Type: models.SettingTypeText},
		{Key: "posts_per_page", Value: "10", Type: models.SettingTypeNumber},
		{Key: "allow_comments", Value: "true", Type: models.SettingTypeBoolean},
	}
	return db.Create(&settings).Error
}
