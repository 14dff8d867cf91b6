package service

import (
	"context"
	"fmt"
	"time"

	"github.com/inkwell/inkwell-backend/internal/common"
	"github.com/inkwell/inkwell-backend/internal/domain"
	"github.com/inkwell/inkwell-backend/internal/repository"
	"github.com/inkwell/inkwell-backend/pkg/cache"
)

// Change notes written by the restore workflow. The before-snapshot note
// marks the state saved right before a restore overwrites the live row;
// the after-snapshot note makes the restore itself a revertible checkpoint.
const (
	noteAutoSaveBeforeRestore = "Auto-save before restore"
	noteRestoredToVersion     = "Restored to version %d"
)

// VersionService owns the append-only version history of a blog:
// snapshot creation with serialized per-blog numbering, retrieval, the
// restore-with-audit-trail workflow, and snapshot comparison.
type VersionService interface {
	// CreateVersion snapshots the blog's current content as the next
	// sequential version
	CreateVersion(blogID, userID string, changeNote *string) (*domain.BlogVersion, error)
	// GetVersions lists all snapshots for a blog, most recent first
	GetVersions(blogID string) ([]*domain.BlogVersion, error)
	// GetVersion returns a snapshot by id, or nil when absent
	GetVersion(versionID string) (*domain.BlogVersion, error)
	// RestoreVersion overwrites the live blog with a snapshot's content,
	// bracketing the mutation with before- and after-snapshots
	RestoreVersion(blogID, versionID, userID string) error
	// CompareVersions diffs two snapshots of the same blog
	CompareVersions(versionID1, versionID2 string) (*domain.VersionComparison, error)
}

type versionService struct {
	versions repository.VersionRepository
	tx       repository.TxManager
	cache    cache.Service
}

// NewVersionService creates a new VersionService
func NewVersionService(versions repository.VersionRepository, tx repository.TxManager, cacheSvc cache.Service) VersionService {
	return &versionService{versions: versions, tx: tx, cache: cacheSvc}
}

func (s *versionService) CreateVersion(blogID, userID string, changeNote *string) (*domain.BlogVersion, error) {
	var created *domain.BlogVersion

	// The max-version read and the insert run in one transaction so two
	// concurrent callers cannot compute the same next number. Conflicts
	// that slip past the row lock hit the unique (blog_id, version) index
	// and surface as errors; the caller owns any retry.
	err := s.tx.WithinTransaction(func(blogs repository.BlogRepository, versions repository.VersionRepository) error {
		blog, err := blogs.FindByID(blogID)
		if err != nil {
			return err
		}
		if blog == nil {
			return common.ErrBlogNotFound
		}

		created, err = snapshotBlog(versions, blog, userID, changeNote)
		return err
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

func (s *versionService) GetVersions(blogID string) ([]*domain.BlogVersion, error) {
	return s.versions.FindByBlogID(blogID)
}

func (s *versionService) GetVersion(versionID string) (*domain.BlogVersion, error) {
	return s.versions.FindByID(versionID)
}

// RestoreVersion runs the restore contract in strict order inside one
// transaction:
//  1. load the target snapshot and validate it belongs to the blog,
//  2. snapshot the blog's current (pre-restore) state,
//  3. overwrite the live blog row with the target's content,
//  4. snapshot the post-restore state.
//
// One restore therefore appends exactly two versions and mutates the live
// row once. A failure at any step rolls the whole sequence back, so a
// before-snapshot can never outlive a restore that did not happen.
func (s *versionService) RestoreVersion(blogID, versionID, userID string) error {
	var restoredSlug string

	err := s.tx.WithinTransaction(func(blogs repository.BlogRepository, versions repository.VersionRepository) error {
		version, err := versions.FindByID(versionID)
		if err != nil {
			return err
		}
		if version == nil {
			return common.ErrVersionNotFound
		}
		if version.BlogID != blogID {
			return common.ErrVersionMismatch
		}

		blog, err := blogs.FindByID(blogID)
		if err != nil {
			return err
		}
		if blog == nil {
			return common.ErrBlogNotFound
		}
		restoredSlug = blog.Slug

		before := noteAutoSaveBeforeRestore
		if _, err := snapshotBlog(versions, blog, userID, &before); err != nil {
			return err
		}

		fields := map[string]interface{}{
			"title":       version.Title,
			"content":     version.Content,
			"summary":     version.Summary,
			"cover_image": version.CoverImage,
			"updated_at":  time.Now().UTC(),
		}
		if err := blogs.Update(blogID, fields); err != nil {
			return err
		}

		restored := *blog
		restored.Title = version.Title
		restored.Content = version.Content
		restored.Summary = version.Summary
		restored.CoverImage = version.CoverImage

		after := fmt.Sprintf(noteRestoredToVersion, version.Version)
		_, err = snapshotBlog(versions, &restored, userID, &after)
		return err
	})
	if err != nil {
		return err
	}

	if s.cache != nil {
		_ = s.cache.InvalidateBlog(context.Background(), restoredSlug)
	}

	return nil
}

func (s *versionService) CompareVersions(versionID1, versionID2 string) (*domain.VersionComparison, error) {
	v1, err := s.versions.FindByID(versionID1)
	if err != nil {
		return nil, err
	}
	v2, err := s.versions.FindByID(versionID2)
	if err != nil {
		return nil, err
	}
	if v1 == nil || v2 == nil {
		return nil, common.ErrVersionNotFound
	}
	if v1.BlogID != v2.BlogID {
		return nil, common.ErrVersionMismatch
	}

	diff := CompareSnapshots(v1, v2)

	return &domain.VersionComparison{
		Version1: v1,
		Version2: v2,
		Diff:     diff,
		Summary:  GetChangeSummary(diff),
	}, nil
}

// snapshotBlog captures the blog's content fields as the next sequential
// version. Must run inside the caller's transaction.
func snapshotBlog(versions repository.VersionRepository, blog *domain.Blog, userID string, changeNote *string) (*domain.BlogVersion, error) {
	next, err := versions.NextVersion(blog.ID)
	if err != nil {
		return nil, err
	}

	version := &domain.BlogVersion{
		BlogID:     blog.ID,
		Version:    next,
		Title:      blog.Title,
		Content:    blog.Content,
		Summary:    blog.Summary,
		CoverImage: blog.CoverImage,
		ChangedBy:  userID,
		ChangeNote: changeNote,
	}

	if err := versions.Create(version); err != nil {
		return nil, err
	}
	return version, nil
}
