package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/inkwell/inkwell-backend/internal/common"
	"github.com/inkwell/inkwell-backend/internal/domain"
	"github.com/inkwell/inkwell-backend/internal/repository"
	"github.com/inkwell/inkwell-backend/pkg/cache"
	"github.com/inkwell/inkwell-backend/pkg/logger"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// notePublishTransition is the change note for the snapshot recorded when a
// blog moves from draft to published.
const notePublishTransition = "Initial publish"

// BlogService business logic for the live blog rows. Version snapshots are
// delegated to VersionService; this layer decides WHEN a snapshot happens.
type BlogService interface {
	CreateBlog(req *domain.CreateBlogRequest, authorID string) (*domain.Blog, error)
	GetBlog(id string) (*domain.Blog, error)
	// GetBlogBySlug serves the public blog page; published blogs are cached
	GetBlogBySlug(slug string) (*domain.Blog, error)
	ListBlogs(opts domain.BlogListOptions) ([]*domain.Blog, int64, error)
	UpdateBlog(id string, req *domain.UpdateBlogRequest, userID string) (*domain.Blog, error)
	DeleteBlog(id string) error
}

type blogService struct {
	blogs    repository.BlogRepository
	versions VersionService
	cache    cache.Service
}

// NewBlogService creates a new BlogService
func NewBlogService(blogs repository.BlogRepository, versions VersionService, cacheSvc cache.Service) BlogService {
	return &blogService{blogs: blogs, versions: versions, cache: cacheSvc}
}

func (s *blogService) CreateBlog(req *domain.CreateBlogRequest, authorID string) (*domain.Blog, error) {
	available, err := s.blogs.IsSlugAvailable(req.Slug, "")
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, common.ErrSlugTaken
	}

	blog := &domain.Blog{
		Title:      req.Title,
		Slug:       req.Slug,
		Content:    req.Content,
		Summary:    req.Summary,
		CoverImage: req.CoverImage,
		Published:  req.Published,
		Preview:    req.Preview,
		AuthorID:   authorID,
	}

	if err := s.blogs.Create(blog); err != nil {
		return nil, err
	}

	// A blog born published gets its baseline snapshot immediately
	if blog.Published {
		note := notePublishTransition
		if _, err := s.versions.CreateVersion(blog.ID, authorID, &note); err != nil {
			logger.Error("failed to create initial version for blog %s: %v", blog.ID, err)
		}
	}

	return blog, nil
}

func (s *blogService) GetBlog(id string) (*domain.Blog, error) {
	blog, err := s.blogs.FindByID(id)
	if err != nil {
		return nil, err
	}
	if blog == nil {
		return nil, common.ErrBlogNotFound
	}
	return blog, nil
}

func (s *blogService) GetBlogBySlug(slug string) (*domain.Blog, error) {
	ctx := context.Background()

	if s.cache != nil && s.cache.IsAvailable() {
		if data, err := s.cache.GetBlogBySlug(ctx, slug); err == nil {
			var cached domain.Blog
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	blog, err := s.blogs.FindBySlug(slug)
	if err != nil {
		return nil, err
	}
	if blog == nil {
		return nil, common.ErrBlogNotFound
	}

	// Only published pages are cacheable; drafts must always read fresh
	if blog.Published && s.cache != nil {
		if err := s.cache.SetBlogBySlug(ctx, slug, blog); err != nil {
			logger.Warn("failed to cache blog %s: %v", slug, err)
		}
	}

	return blog, nil
}

func (s *blogService) ListBlogs(opts domain.BlogListOptions) ([]*domain.Blog, int64, error) {
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit < 1 || opts.Limit > maxPageLimit {
		opts.Limit = defaultPageLimit
	}
	return s.blogs.List(opts)
}

func (s *blogService) UpdateBlog(id string, req *domain.UpdateBlogRequest, userID string) (*domain.Blog, error) {
	old, err := s.blogs.FindByID(id)
	if err != nil {
		return nil, err
	}
	if old == nil {
		return nil, common.ErrBlogNotFound
	}

	fields := map[string]interface{}{}

	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Slug != nil && *req.Slug != old.Slug {
		available, err := s.blogs.IsSlugAvailable(*req.Slug, id)
		if err != nil {
			return nil, err
		}
		if !available {
			return nil, common.ErrSlugTaken
		}
		fields["slug"] = *req.Slug
	}
	if req.Content != nil {
		fields["content"] = *req.Content
	}
	if req.Summary != nil {
		fields["summary"] = *req.Summary
	}
	if req.CoverImage != nil {
		fields["cover_image"] = *req.CoverImage
	}
	if req.Published != nil {
		fields["published"] = *req.Published
	}
	if req.Preview != nil {
		fields["preview"] = *req.Preview
	}

	if len(fields) == 0 {
		return old, nil
	}
	fields["updated_at"] = time.Now().UTC()

	if err := s.blogs.Update(id, fields); err != nil {
		return nil, err
	}

	updated, err := s.blogs.FindByID(id)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, common.ErrBlogNotFound
	}

	// Crossing the draft-to-published boundary records a snapshot of the
	// newly public state. Re-saving an already published blog does not.
	if req.Published != nil && shouldCreateVersion(old.Published, *req.Published) {
		note := notePublishTransition
		if _, err := s.versions.CreateVersion(id, userID, &note); err != nil {
			logger.Error("failed to create publish version for blog %s: %v", id, err)
		}
	}

	if s.cache != nil {
		ctx := context.Background()
		_ = s.cache.InvalidateBlog(ctx, old.Slug)
		if updated.Slug != old.Slug {
			_ = s.cache.InvalidateBlog(ctx, updated.Slug)
		}
	}

	return updated, nil
}

func (s *blogService) DeleteBlog(id string) error {
	blog, err := s.blogs.FindByID(id)
	if err != nil {
		return err
	}
	if blog == nil {
		return common.ErrBlogNotFound
	}

	if err := s.blogs.Delete(id); err != nil {
		return err
	}

	if s.cache != nil {
		_ = s.cache.InvalidateBlog(context.Background(), blog.Slug)
	}

	return nil
}

// shouldCreateVersion reports whether a publish-state transition warrants an
// automatic snapshot. Only the draft-to-published edge does.
func shouldCreateVersion(oldPublished, newPublished bool) bool {
	return newPublished && !oldPublished
}
