package repository

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/inkwell/inkwell-backend/internal/domain"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Blog{}, &domain.BlogVersion{}))

	t.Cleanup(func() {
		db.Exec("DELETE FROM blog_versions")
		db.Exec("DELETE FROM blogs")
		db.Exec("DELETE FROM users")
	})

	return db
}

func createTestBlog(t *testing.T, db *gorm.DB, slug string) *domain.Blog {
	t.Helper()
	blog := &domain.Blog{
		Title:    "Test Blog",
		Slug:     slug,
		Content:  "content",
		AuthorID: "user-1",
	}
	require.NoError(t, db.Create(blog).Error)
	return blog
}

func TestNextVersionStartsAtOne(t *testing.T) {
	db := setupTestDB(t)
	repo := NewVersionRepository(db)
	blog := createTestBlog(t, db, "next-version-one")

	next, err := repo.NextVersion(blog.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, next)
}

func TestNextVersionIncrements(t *testing.T) {
	db := setupTestDB(t)
	repo := NewVersionRepository(db)
	blog := createTestBlog(t, db, "next-version-inc")

	for want := 1; want <= 3; want++ {
		next, err := repo.NextVersion(blog.ID)
		require.NoError(t, err)
		assert.Equal(t, want, next)

		require.NoError(t, repo.Create(&domain.BlogVersion{
			BlogID:    blog.ID,
			Version:   next,
			Title:     blog.Title,
			Content:   blog.Content,
			ChangedBy: "user-1",
		}))
	}
}

func TestNextVersionIsPerBlog(t *testing.T) {
	db := setupTestDB(t)
	repo := NewVersionRepository(db)
	blogA := createTestBlog(t, db, "per-blog-a")
	blogB := createTestBlog(t, db, "per-blog-b")

	require.NoError(t, repo.Create(&domain.BlogVersion{
		BlogID: blogA.ID, Version: 1, Title: "t", Content: "c", ChangedBy: "u",
	}))
	require.NoError(t, repo.Create(&domain.BlogVersion{
		BlogID: blogA.ID, Version: 2, Title: "t", Content: "c", ChangedBy: "u",
	}))

	next, err := repo.NextVersion(blogB.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, next, "numbering is independent per blog")
}

func TestFindByBlogIDNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	repo := NewVersionRepository(db)
	blog := createTestBlog(t, db, "ordering")

	for i := 1; i <= 4; i++ {
		require.NoError(t, repo.Create(&domain.BlogVersion{
			BlogID:    blog.ID,
			Version:   i,
			Title:     fmt.Sprintf("title %d", i),
			Content:   "c",
			ChangedBy: "u",
		}))
	}

	versions, err := repo.FindByBlogID(blog.ID)
	require.NoError(t, err)
	require.Len(t, versions, 4)
	for i, v := range versions {
		assert.Equal(t, 4-i, v.Version)
	}
}

func TestFindByIDMissingReturnsNil(t *testing.T) {
	db := setupTestDB(t)
	repo := NewVersionRepository(db)

	version, err := repo.FindByID("does-not-exist")
	require.NoError(t, err)
	assert.Nil(t, version)
}

func TestUniqueIndexRejectsDuplicateNumbering(t *testing.T) {
	db := setupTestDB(t)
	repo := NewVersionRepository(db)
	blog := createTestBlog(t, db, "unique-index")

	require.NoError(t, repo.Create(&domain.BlogVersion{
		BlogID: blog.ID, Version: 1, Title: "t", Content: "c", ChangedBy: "u",
	}))

	err := repo.Create(&domain.BlogVersion{
		BlogID: blog.ID, Version: 1, Title: "t2", Content: "c2", ChangedBy: "u",
	})
	assert.Error(t, err, "duplicate (blog_id, version) must be rejected")
}

func TestTxManagerRollsBackOnError(t *testing.T) {
	db := setupTestDB(t)
	blogRepo := NewBlogRepository(db)
	versionRepo := NewVersionRepository(db)
	tx := NewTxManager(db, blogRepo, versionRepo)
	blog := createTestBlog(t, db, "rollback")

	boom := fmt.Errorf("boom")
	err := tx.WithinTransaction(func(blogs BlogRepository, versions VersionRepository) error {
		if err := versions.Create(&domain.BlogVersion{
			BlogID: blog.ID, Version: 1, Title: "t", Content: "c", ChangedBy: "u",
		}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	versions, err := versionRepo.FindByBlogID(blog.ID)
	require.NoError(t, err)
	assert.Empty(t, versions, "insert inside a failed transaction must not persist")
}

func TestTxManagerCommits(t *testing.T) {
	db := setupTestDB(t)
	blogRepo := NewBlogRepository(db)
	versionRepo := NewVersionRepository(db)
	tx := NewTxManager(db, blogRepo, versionRepo)
	blog := createTestBlog(t, db, "commit")

	err := tx.WithinTransaction(func(blogs BlogRepository, versions VersionRepository) error {
		next, err := versions.NextVersion(blog.ID)
		if err != nil {
			return err
		}
		return versions.Create(&domain.BlogVersion{
			BlogID: blog.ID, Version: next, Title: "t", Content: "c", ChangedBy: "u",
		})
	})
	require.NoError(t, err)

	versions, err := versionRepo.FindByBlogID(blog.ID)
	require.NoError(t, err)
	require.Len(t, versions, 1)
	assert.Equal(t, 1, versions[0].Version)
}
