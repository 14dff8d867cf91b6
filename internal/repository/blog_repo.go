package repository

import (
	"errors"

	"github.com/inkwell/inkwell-backend/internal/domain"
	"gorm.io/gorm"
)

// BlogRepository data access for the live blog rows
type BlogRepository interface {
	FindByID(id string) (*domain.Blog, error)
	FindBySlug(slug string) (*domain.Blog, error)
	List(opts domain.BlogListOptions) ([]*domain.Blog, int64, error)
	Create(blog *domain.Blog) error
	// Update applies the given column map to one blog row
	Update(id string, fields map[string]interface{}) error
	Delete(id string) error
	IsSlugAvailable(slug string, excludeID string) (bool, error)
	// WithTx returns a copy of the repository bound to the given transaction
	WithTx(tx *gorm.DB) BlogRepository
}

type blogRepository struct {
	db *gorm.DB
}

// NewBlogRepository creates a new BlogRepository
func NewBlogRepository(db *gorm.DB) BlogRepository {
	return &blogRepository{db: db}
}

func (r *blogRepository) WithTx(tx *gorm.DB) BlogRepository {
	return &blogRepository{db: tx}
}

// FindByID returns the blog or nil when it does not exist
func (r *blogRepository) FindByID(id string) (*domain.Blog, error) {
	var blog domain.Blog
	err := r.db.Where("id = ?", id).First(&blog).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &blog, nil
}

// FindBySlug returns the blog or nil when it does not exist
func (r *blogRepository) FindBySlug(slug string) (*domain.Blog, error) {
	var blog domain.Blog
	err := r.db.Where("slug = ?", slug).First(&blog).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &blog, nil
}

func (r *blogRepository) List(opts domain.BlogListOptions) ([]*domain.Blog, int64, error) {
	q := r.db.Model(&domain.Blog{})

	if opts.Published != nil {
		q = q.Where("published = ?", *opts.Published)
	}
	if opts.AuthorID != "" {
		q = q.Where("author_id = ?", opts.AuthorID)
	}
	if opts.Search != "" {
		like := "%" + opts.Search + "%"
		q = q.Where("title LIKE ? OR content LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var blogs []*domain.Blog
	offset := (opts.Page - 1) * opts.Limit
	err := q.Order("created_at DESC").
		Limit(opts.Limit).
		Offset(offset).
		Find(&blogs).Error
	if err != nil {
		return nil, 0, err
	}

	return blogs, total, nil
}

func (r *blogRepository) Create(blog *domain.Blog) error {
	return r.db.Create(blog).Error
}

func (r *blogRepository) Update(id string, fields map[string]interface{}) error {
	return r.db.Model(&domain.Blog{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *blogRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&domain.Blog{}).Error
}

// IsSlugAvailable reports whether no other blog uses the slug. excludeID
// skips the blog being updated.
func (r *blogRepository) IsSlugAvailable(slug string, excludeID string) (bool, error) {
	q := r.db.Model(&domain.Blog{}).Where("slug = ?", slug)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count == 0, nil
}
