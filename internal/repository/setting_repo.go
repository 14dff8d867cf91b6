package repository

import (
	"errors"

	"github.com/inkwell/inkwell-backend/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingRepository data access for site settings
type SettingRepository interface {
	FindByKey(key string) (*domain.Setting, error)
	FindAll() ([]*domain.Setting, error)
	// Upsert inserts or replaces the value for the setting's key
	Upsert(setting *domain.Setting) error
	Delete(key string) error
}

type settingRepository struct {
	db *gorm.DB
}

// NewSettingRepository creates a new SettingRepository
func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &settingRepository{db: db}
}

func (r *settingRepository) FindByKey(key string) (*domain.Setting, error) {
	var setting domain.Setting
	err := r.db.Where("setting_key = ?", key).First(&setting).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &setting, nil
}

func (r *settingRepository) FindAll() ([]*domain.Setting, error) {
	var settings []*domain.Setting
	err := r.db.Order("setting_key ASC").Find(&settings).Error
	return settings, err
}

func (r *settingRepository) Upsert(setting *domain.Setting) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "setting_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"setting_value", "description", "updated_at"}),
	}).Create(setting).Error
}

func (r *settingRepository) Delete(key string) error {
	return r.db.Where("setting_key = ?", key).Delete(&domain.Setting{}).Error
}
