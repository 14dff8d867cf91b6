package service

import (
	"context"
	"encoding/json"

	"github.com/inkwell/inkwell-backend/internal/common"
	"github.com/inkwell/inkwell-backend/internal/domain"
	"github.com/inkwell/inkwell-backend/internal/repository"
	"github.com/inkwell/inkwell-backend/pkg/cache"
	"github.com/inkwell/inkwell-backend/pkg/logger"
)

// SettingsService site-wide key-value settings
type SettingsService interface {
	Get(key string) (*domain.Setting, error)
	GetAll() ([]*domain.Setting, error)
	Set(key string, req *domain.UpdateSettingRequest) (*domain.Setting, error)
	Delete(key string) error
}

type settingsService struct {
	settings repository.SettingRepository
	cache    cache.Service
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(settings repository.SettingRepository, cacheSvc cache.Service) SettingsService {
	return &settingsService{settings: settings, cache: cacheSvc}
}

func (s *settingsService) Get(key string) (*domain.Setting, error) {
	setting, err := s.settings.FindByKey(key)
	if err != nil {
		return nil, err
	}
	if setting == nil {
		return nil, common.ErrSettingNotFound
	}
	return setting, nil
}

func (s *settingsService) GetAll() ([]*domain.Setting, error) {
	ctx := context.Background()

	if s.cache != nil && s.cache.IsAvailable() {
		if data, err := s.cache.GetSettings(ctx); err == nil {
			var cached []*domain.Setting
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached, nil
			}
		}
	}

	settings, err := s.settings.FindAll()
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetSettings(ctx, settings); err != nil {
			logger.Warn("failed to cache settings: %v", err)
		}
	}

	return settings, nil
}

func (s *settingsService) Set(key string, req *domain.UpdateSettingRequest) (*domain.Setting, error) {
	setting := &domain.Setting{
		Key:         key,
		Value:       req.Value,
		Description: req.Description,
	}

	if err := s.settings.Upsert(setting); err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.InvalidateSettings(context.Background())
	}

	// Re-read so the caller sees the stored row (id, updated_at)
	return s.Get(key)
}

func (s *settingsService) Delete(key string) error {
	setting, err := s.settings.FindByKey(key)
	if err != nil {
		return err
	}
	if setting == nil {
		return common.ErrSettingNotFound
	}

	if err := s.settings.Delete(key); err != nil {
		return err
	}

	if s.cache != nil {
		_ = s.cache.InvalidateSettings(context.Background())
	}

	return nil
}
