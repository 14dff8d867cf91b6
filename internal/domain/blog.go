package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Blog is the live, mutable state of a post. Historical states live in
// BlogVersion rows; mutating this row never touches existing versions.
type Blog struct {
	ID         string    `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	Title      string    `gorm:"column:title;type:varchar(255);not null" json:"title"`
	Slug       string    `gorm:"column:slug;type:varchar(255);uniqueIndex;not null" json:"slug"`
	Content    string    `gorm:"column:content;type:mediumtext;not null" json:"content"`
	Summary    *string   `gorm:"column:summary;type:text" json:"summary"`
	CoverImage *string   `gorm:"column:cover_image;type:varchar(512)" json:"cover_image"`
	Published  bool      `gorm:"column:published;not null;default:false" json:"published"`
	Preview    bool      `gorm:"column:preview;not null;default:false" json:"preview"`
	AuthorID   string    `gorm:"column:author_id;type:varchar(36);index;not null" json:"author_id"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Blog) TableName() string { return "blogs" }

// BeforeCreate assigns a UUID when none was set by the caller
func (b *Blog) BeforeCreate(*gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return nil
}

// CreateBlogRequest payload for POST /blogs
type CreateBlogRequest struct {
	Title      string  `json:"title" binding:"required,max=255"`
	Slug       string  `json:"slug" binding:"required,max=255"`
	Content    string  `json:"content" binding:"required"`
	Summary    *string `json:"summary"`
	CoverImage *string `json:"cover_image"`
	Published  bool    `json:"published"`
	Preview    bool    `json:"preview"`
}

// UpdateBlogRequest payload for PUT /blogs/:id. Nil fields are left untouched.
type UpdateBlogRequest struct {
	Title      *string `json:"title" binding:"omitempty,max=255"`
	Slug       *string `json:"slug" binding:"omitempty,max=255"`
	Content    *string `json:"content"`
	Summary    *string `json:"summary"`
	CoverImage *string `json:"cover_image"`
	Published  *bool   `json:"published"`
	Preview    *bool   `json:"preview"`
}

// BlogListOptions filters for the blog list endpoint
type BlogListOptions struct {
	Page      int
	Limit     int
	Published *bool
	AuthorID  string
	Search    string
}
