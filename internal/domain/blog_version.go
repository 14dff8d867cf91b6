package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BlogVersion is an immutable, sequentially numbered snapshot of a blog's
// content fields. Rows are append-only: they are never updated, and they are
// deleted only by cascade when the owning blog is deleted. Version numbers
// per blog start at 1 and increase without gaps; the unique index on
// (blog_id, version) backstops the serialized numbering in the repository.
type BlogVersion struct {
	ID         string    `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	BlogID     string    `gorm:"column:blog_id;type:varchar(36);not null;uniqueIndex:uk_blog_version,priority:1" json:"blog_id"`
	Version    int       `gorm:"column:version;not null;uniqueIndex:uk_blog_version,priority:2" json:"version"`
	Title      string    `gorm:"column:title;type:varchar(255);not null" json:"title"`
	Content    string    `gorm:"column:content;type:mediumtext;not null" json:"content"`
	Summary    *string   `gorm:"column:summary;type:text" json:"summary"`
	CoverImage *string   `gorm:"column:cover_image;type:varchar(512)" json:"cover_image"`
	ChangedBy  string    `gorm:"column:changed_by;type:varchar(36);not null" json:"changed_by"`
	ChangeNote *string   `gorm:"column:change_note;type:varchar(255)" json:"change_note"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	Blog *Blog `gorm:"foreignKey:BlogID;constraint:OnDelete:CASCADE" json:"-"`
}

func (BlogVersion) TableName() string { return "blog_versions" }

// BeforeCreate assigns a UUID when none was set by the caller
func (v *BlogVersion) BeforeCreate(*gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	return nil
}

// CreateVersionRequest payload for a manual snapshot (POST /blogs/:id/versions)
type CreateVersionRequest struct {
	ChangeNote *string `json:"change_note" binding:"omitempty,max=255"`
}

// VersionComparison pairs two snapshots with their structural diff
type VersionComparison struct {
	Version1 *BlogVersion `json:"version1"`
	Version2 *BlogVersion `json:"version2"`
	Diff     *DiffResult  `json:"diff"`
	Summary  string       `json:"summary"`
}
