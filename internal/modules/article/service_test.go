package article

import (
	"strconv"
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
		&models.CategoryModel{},
		&models.ArticleModel{},
	))
	return db
}

func seedAuthor(t *testing.T, db *gorm.DB, username, role string) *models.UserModel {
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

func strptr(s string) *string { return &s }

func TestCreateDraft(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	author := seedAuthor(t, db, "writer", models.RoleEditor)

	article, err := svc.Create(createRequest{Title: "خبر عاجل اليوم", Content: "نص"}, author.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ArticleStatusDraft, article.Status)
	assert.Equal(t, "خبر-عاجل-اليوم", article.Slug)
	assert.Nil(t, article.PublishedAt)
	require.NotNil(t, article.Author)
	assert.Equal(t, "writer", article.Author.Username)
}

func TestCreatePublishedStampsDate(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	author := seedAuthor(t, db, "writer", models.RoleEditor)

	article, err := svc.Create(createRequest{
		Title:   "Launch Day",
		Content: "body",
		Status:  models.ArticleStatusPublished,
	}, author.ID)
	require.NoError(t, err)
	assert.NotNil(t, article.PublishedAt)
}

func TestCreateSlugCollision(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	author := seedAuthor(t, db, "writer", models.RoleEditor)

	first, err := svc.Create(createRequest{Title: "Same Title", Content: "a"}, author.ID)
	require.NoError(t, err)
	second, err := svc.Create(createRequest{Title: "Same Title", Content: "b"}, author.ID)
	require.NoError(t, err)

	assert.Equal(t, "same-title", first.Slug)
	assert.NotEqual(t, first.Slug, second.Slug)
	assert.Contains(t, second.Slug, "same-title-")
}

func TestGetByIDOrSlugIncrementsViews(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	author := seedAuthor(t, db, "writer", models.RoleEditor)
	created, err := svc.Create(createRequest{Title: "Readable", Content: "x"}, author.ID)
	require.NoError(t, err)

	byID, err := svc.Get(strconv.Itoa(int(created.ID)))
	require.NoError(t, err)
	assert.Equal(t, 1, byID.Views)

	bySlug, err := svc.Get("readable")
	require.NoError(t, err)
	assert.Equal(t, 2, bySlug.Views)
}

func TestGetNotFound(t *testing.T) {
	svc := NewService(newTestDB(t))

	_, err := svc.Get("missing")
	assert.ErrorIs(t, err, errArticleNotFound)
}

func TestUpdateFirstPublishOnly(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	author := seedAuthor(t, db, "writer", models.RoleEditor)
	created, err := svc.Create(createRequest{Title: "Drafted", Content: "x"}, author.ID)
	require.NoError(t, err)

	id := strconv.Itoa(int(created.ID))

	published, err := svc.Update(id, updateRequest{Status: strptr(models.ArticleStatusPublished)}, author)
	require.NoError(t, err)
	require.NotNil(t, published.PublishedAt)
	firstPublish := *published.PublishedAt

	archived, err := svc.Update(id, updateRequest{Status: strptr(models.ArticleStatusArchived)}, author)
	require.NoError(t, err)

	republished, err := svc.Update(id, updateRequest{Status: strptr(models.ArticleStatusPublished)}, author)
	require.NoError(t, err)
	require.NotNil(t, republished.PublishedAt)
	assert.Equal(t, firstPublish.Unix(), republished.PublishedAt.Unix())
	assert.Equal(t, models.ArticleStatusArchived, archived.Status)
}

func TestUpdateTitleRegeneratesSlug(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	author := seedAuthor(t, db, "writer", models.RoleEditor)
	created, err := svc.Create(createRequest{Title: "Old Title", Content: "x"}, author.ID)
	require.NoError(t, err)

	updated, err := svc.Update(strconv.Itoa(int(created.ID)),
		updateRequest{Title: strptr("New Title")}, author)
	require.NoError(t, err)
	assert.Equal(t, "new-title", updated.Slug)
}

func TestUpdateOwnership(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	owner := seedAuthor(t, db, "owner", models.RoleEditor)
	other := seedAuthor(t, db, "other", models.RoleEditor)
	admin := seedAuthor(t, db, "admin", models.RoleAdmin)

	created, err := svc.Create(createRequest{Title: "Mine", Content: "x"}, owner.ID)
	require.NoError(t, err)
	id := strconv.Itoa(int(created.ID))

	_, err = svc.Update(id, updateRequest{Content: strptr("hijack")}, other)
	assert.ErrorIs(t, err, errNotOwner)

	_, err = svc.Update(id, updateRequest{Content: strptr("moderated")}, admin)
	assert.NoError(t, err)
}

func TestDeleteOwnership(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	owner := seedAuthor(t, db, "owner", models.RoleEditor)
	other := seedAuthor(t, db, "other", models.RoleEditor)

	created, err := svc.Create(createRequest{Title: "Gone Soon", Content: "x"}, owner.ID)
	require.NoError(t, err)
	id := strconv.Itoa(int(created.ID))

	err = svc.Delete(id, other)
	assert.ErrorIs(t, err, errNotOwner)

	require.NoError(t, svc.Delete(id, owner))
	_, err = svc.Get(id)
	assert.ErrorIs(t, err, errArticleNotFound)
}

func TestListFiltersAndOrder(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	author := seedAuthor(t, db, "writer", models.RoleEditor)

	_, err := svc.Create(createRequest{Title: "First Post", Content: "alpha"}, author.ID)
	require.NoError(t, err)
	_, err = svc.Create(createRequest{Title: "Second Post", Content: "beta",
		Status: models.ArticleStatusPublished}, author.ID)
	require.NoError(t, err)
	_, err = svc.Create(createRequest{Title: "Third Post", Content: "gamma",
		Status: models.ArticleStatusPublished}, author.ID)
	require.NoError(t, err)

	articles, meta, err := svc.List(pagination.Query{Page: 1, Limit: 10},
		listFilter{Status: models.ArticleStatusPublished})
	require.NoError(t, err)
	assert.Equal(t, int64(2), meta.Total)
	require.Len(t, articles, 2)
	assert.Equal(t, "Third Post", articles[0].Title)

	articles, _, err = svc.List(pagination.Query{Page: 1, Limit: 10},
		listFilter{Search: "alpha"})
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, "First Post", articles[0].Title)
}
