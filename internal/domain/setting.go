package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Well-known setting keys
const (
	SettingSiteTitle = "site_title"
	SettingTheme     = "theme"
)

// Setting is a site-wide key-value entry (theme, site metadata).
// Values are stored as JSON-encoded strings.
type Setting struct {
	ID          string    `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	Key         string    `gorm:"column:setting_key;type:varchar(100);uniqueIndex;not null" json:"key"`
	Value       string    `gorm:"column:setting_value;type:text;not null" json:"value"`
	Description *string   `gorm:"column:description;type:varchar(255)" json:"description"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Setting) TableName() string { return "settings" }

func (s *Setting) BeforeCreate(*gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}

// UpdateSettingRequest payload for PUT /settings/:key
type UpdateSettingRequest struct {
	Value       string  `json:"value" binding:"required"`
	Description *string `json:"description"`
}
