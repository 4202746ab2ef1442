package user

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/qalam/cms-core/internal/models"
	"github.com/qalam/cms-core/internal/pkg/pagination"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.UserModel{},
		&models.ArticleModel{},
		&models.ActivityLogModel{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username, role string) *models.UserModel {
	t.Helper()
	user := &models.UserModel{
		Username: username,
		Email:    username + "@test.com",
		Password: "hash",
		Role:     role,
		Status:   models.UserStatusActive,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestListFilters(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	seedUser(t, db, "admin1", models.RoleAdmin)
	seedUser(t, db, "editor1", models.RoleEditor)
	seedUser(t, db, "editor2", models.RoleEditor)

	users, meta, err := svc.List(pagination.Query{Page: 1, Limit: 10}, listFilter{Role: models.RoleEditor})
	require.NoError(t, err)
	assert.Equal(t, int64(2), meta.Total)
	assert.Len(t, users, 2)

	users, _, err = svc.List(pagination.Query{Page: 1, Limit: 10}, listFilter{Search: "admin"})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "admin1", users[0].Username)
	assert.Empty(t, users[0].Password)
}

func TestListNewestFirst(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	for i := 0; i < 5; i++ {
		seedUser(t, db, fmt.Sprintf("user%d", i), models.RoleUser)
	}

	users, _, err := svc.List(pagination.Query{Page: 1, Limit: 10}, listFilter{})
	require.NoError(t, err)
	require.Len(t, users, 5)
	for i := 1; i < len(users); i++ {
		assert.Greater(t, users[i-1].ID, users[i].ID)
	}
}

func TestCreate(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	user, err := svc.Create(createRequest{
		Username: "fresh",
		Email:    "fresh@test.com",
		Password: "secret123",
		Role:     models.RoleEditor,
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleEditor, user.Role)
	assert.Equal(t, models.UserStatusActive, user.Status)
	assert.Empty(t, user.Password)

	var stored models.UserModel
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.NotEqual(t, "secret123", stored.Password)
}

func TestCreateDuplicate(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	seedUser(t, db, "taken", models.RoleUser)

	_, err := svc.Create(createRequest{
		Username: "taken",
		Email:    "new@test.com",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, errDuplicateUser)
}

func TestUpdate(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	user := seedUser(t, db, "mutable", models.RoleUser)

	updated, err := svc.Update(user.ID, updateRequest{
		Role:   models.RoleEditor,
		Status: models.UserStatusInactive,
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleEditor, updated.Role)
	assert.Equal(t, models.UserStatusInactive, updated.Status)
	assert.Equal(t, "mutable", updated.Username)
}

func TestUpdateNotFound(t *testing.T) {
	svc := NewService(newTestDB(t))

	_, err := svc.Update(999, updateRequest{Role: models.RoleEditor})
	assert.ErrorIs(t, err, errUserNotFound)
}

func TestDeleteSelf(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	admin := seedUser(t, db, "boss", models.RoleAdmin)

	err := svc.Delete(admin.ID, admin.ID)
	assert.ErrorIs(t, err, errDeleteSelf)
}

func TestDeleteCleansUp(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	admin := seedUser(t, db, "boss", models.RoleAdmin)
	victim := seedUser(t, db, "victim", models.RoleEditor)

	article := models.ArticleModel{Title: "t", Slug: "t", AuthorID: victim.ID}
	require.NoError(t, db.Create(&article).Error)
	entry := models.ActivityLogModel{UserID: &victim.ID, Action: "x"}
	require.NoError(t, db.Create(&entry).Error)

	require.NoError(t, svc.Delete(victim.ID, admin.ID))

	var userCount, articleCount int64
	require.NoError(t, db.Model(&models.UserModel{}).Where("id = ?", victim.ID).Count(&userCount).Error)
	require.NoError(t, db.Model(&models.ArticleModel{}).Where("author_id = ?", victim.ID).Count(&articleCount).Error)
	assert.Equal(t, int64(0), userCount)
	assert.Equal(t, int64(0), articleCount)

	// The audit entry survives with its user reference cleared.
	var kept models.ActivityLogModel
	require.NoError(t, db.First(&kept, entry.ID).Error)
	assert.Nil(t, kept.UserID)
}

func TestDeleteNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	admin := seedUser(t, db, "boss", models.RoleAdmin)

	err := svc.Delete(999, admin.ID)
	assert.ErrorIs(t, err, errUserNotFound)
}
