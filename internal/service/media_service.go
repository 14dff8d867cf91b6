package service

import (
	"context"
	"fmt"
	"io"

	"github.com/inkwell/inkwell-backend/internal/common"
	"github.com/inkwell/inkwell-backend/pkg/storage"
)

// MaxUploadSize caps cover image uploads at 10 MiB
const MaxUploadSize = 10 << 20

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// Uploader is the storage surface MediaService needs. *storage.Client
// satisfies it; tests substitute a fake.
type Uploader interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string, size int64) (*storage.UploadResult, error)
	Delete(ctx context.Context, key string) error
}

// MediaService validates and stores uploaded images
type MediaService interface {
	UploadImage(ctx context.Context, filename, contentType string, size int64, body io.Reader) (*storage.UploadResult, error)
	DeleteImage(ctx context.Context, key string) error
}

type mediaService struct {
	uploader Uploader
}

// NewMediaService creates a new MediaService
func NewMediaService(uploader Uploader) MediaService {
	return &mediaService{uploader: uploader}
}

func (s *mediaService) UploadImage(ctx context.Context, filename, contentType string, size int64, body io.Reader) (*storage.UploadResult, error) {
	if s.uploader == nil {
		return nil, fmt.Errorf("object storage is not configured")
	}
	if !allowedImageTypes[contentType] {
		return nil, fmt.Errorf("%w: unsupported content type %q", common.ErrInvalidInput, contentType)
	}
	if size <= 0 || size > MaxUploadSize {
		return nil, fmt.Errorf("%w: file size must be between 1 byte and %d bytes", common.ErrInvalidInput, MaxUploadSize)
	}

	key := storage.GenerateKey(filename)
	return s.uploader.Upload(ctx, key, body, contentType, size)
}

func (s *mediaService) DeleteImage(ctx context.Context, key string) error {
	if s.uploader == nil {
		return fmt.Errorf("object storage is not configured")
	}
	return s.uploader.Delete(ctx, key)
}
