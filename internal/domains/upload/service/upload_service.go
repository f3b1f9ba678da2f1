package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"b2bees-backend/internal/domains/upload/model"
	"b2bees-backend/internal/infrastructure/storage"
	"b2bees-backend/internal/shared/utils"
)

type Config struct {
	// Primary là store chính (imgur hoặc minio)
	Primary storage.ObjectStore
	// Fallback là disk local, chỉ dùng ngoài production
	Fallback   storage.ObjectStore
	Processor  *storage.ImageProcessor
	Production bool
}

type uploadService struct {
	primary    storage.ObjectStore
	fallback   storage.ObjectStore
	processor  *storage.ImageProcessor
	production bool
	now        func() time.Time
}

func NewUploadService(cfg Config) Service {
	processor := cfg.Processor
	if processor == nil {
		processor = storage.NewImageProcessor(0)
	}

	primary := cfg.Primary
	fallback := cfg.Fallback
	if primary == nil {
		// UPLOAD_PROVIDER=local
		primary, fallback = fallback, nil
	}

	return &uploadService{
		primary:    primary,
		fallback:   fallback,
		processor:  processor,
		production: cfg.Production,
		now:        time.Now,
	}
}

func (s *uploadService) Upload(ctx context.Context, file model.File) (*model.UploadResult, error) {
	if len(file.Data) == 0 {
		return nil, model.NewNoFile()
	}

	contentType, err := s.processor.ValidateImage(file.Data, file.ContentType)
	if err != nil {
		if errors.Is(err, storage.ErrImageTooLarge) {
			return nil, model.NewFileTooLarge(err)
		}
		return nil, model.NewInvalidFile(err)
	}

	if s.primary == nil {
		return nil, model.NewUploadFailed(fmt.Errorf("no upload provider configured"))
	}

	key := s.objectKey(file, storage.ExtensionFor(contentType))

	url, err := s.primary.Upload(ctx, key, file.Data, contentType)
	if err == nil {
		result := &model.UploadResult{URL: url, Source: s.primary.Name()}
		if s.primary.Name() == storage.ProviderMinIO {
			result.PreviewURL = s.uploadPreview(ctx, key, file.Data)
		}
		return result, nil
	}

	if s.production || s.fallback == nil {
		return nil, model.NewUploadFailed(err)
	}

	log.Warn().Err(err).
		Str("provider", s.primary.Name()).
		Str("key", key).
		Msg("⚠️ Primary upload failed, falling back to local storage")

	url, fbErr := s.fallback.Upload(ctx, key, file.Data, contentType)
	if fbErr != nil {
		return nil, model.NewUploadFailed(errors.Join(err, fbErr))
	}

	return &model.UploadResult{URL: url, Source: s.fallback.Name()}, nil
}

// objectKey: bees/YYYY/MM/<slug>-<uuid8><ext>
func (s *uploadService) objectKey(file model.File, ext string) string {
	base := file.Slug
	if base == "" {
		base = strings.TrimSuffix(path.Base(file.Filename), path.Ext(file.Filename))
	}
	slug := utils.GenerateSlug(base)
	if slug == "" {
		slug = "image"
	}

	now := s.now().UTC()
	return fmt.Sprintf("bees/%04d/%02d/%s-%s%s", now.Year(), int(now.Month()), slug, uuid.NewString()[:8], ext)
}

// uploadPreview không làm fail request chính, lỗi chỉ log
func (s *uploadService) uploadPreview(ctx context.Context, key string, data []byte) string {
	preview, err := s.processor.SocialPreview(data)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Cannot build social preview")
		return ""
	}

	previewKey := strings.TrimSuffix(key, path.Ext(key)) + "-preview.jpg"
	url, err := s.primary.Upload(ctx, previewKey, preview, "image/jpeg")
	if err != nil {
		log.Warn().Err(err).Str("key", previewKey).Msg("Cannot upload social preview")
		return ""
	}
	return url
}
