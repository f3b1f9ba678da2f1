package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"b2bees-backend/internal/domains/bee/model"
	"b2bees-backend/internal/domains/bee/repository"
	"b2bees-backend/internal/shared/utils"
	"b2bees-backend/pkg/cache"
)

const (
	cacheKeyList       = "bees:list"
	cacheKeySlugPrefix = "bees:slug:"
	cachePattern       = "bees:*"

	DefaultCacheTTL = 5 * time.Minute

	maxSlugAttempts = 50
)

type beeService struct {
	repo     repository.Repository
	cache    cache.Cache
	cacheTTL time.Duration
}

func NewBeeService(repo repository.Repository, cache cache.Cache, cacheTTL time.Duration) Service {
	if cacheTTL <= 0 {
		cacheTTL = DefaultCacheTTL
	}
	return &beeService{repo: repo, cache: cache, cacheTTL: cacheTTL}
}

// ============================================
// PUBLIC
// ============================================

func (s *beeService) ListBees(ctx context.Context) ([]*model.BeeResponse, error) {
	var cached []*model.BeeResponse
	found, err := s.cache.Get(ctx, cacheKeyList, &cached)
	if err != nil {
		log.Warn().Err(err).Str("key", cacheKeyList).Msg("Cache GET error")
	}
	if found {
		return cached, nil
	}

	bees, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, model.NewListBeeError(err)
	}

	result := model.NewBeeResponses(bees)
	if err := s.cache.Set(ctx, cacheKeyList, result, s.cacheTTL); err != nil {
		log.Warn().Err(err).Str("key", cacheKeyList).Msg("Cache SET error")
	}

	return result, nil
}

func (s *beeService) GetBeeBySlug(ctx context.Context, slug string, displayCurrency model.Currency) (*model.BeeResponse, error) {
	if !model.IsValidSlug(slug) {
		return nil, model.NewBeeNotFound()
	}

	key := cacheKeySlugPrefix + slug

	var resp model.BeeResponse
	found, err := s.cache.Get(ctx, key, &resp)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Cache GET error")
	}

	if !found {
		bee, err := s.repo.FindPublicBySlug(ctx, slug)
		if err != nil {
			return nil, err
		}
		resp = *model.NewBeeResponse(bee)

		if err := s.cache.Set(ctx, key, resp, s.cacheTTL); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("Cache SET error")
		}
	}

	if !displayCurrency.IsValid() {
		displayCurrency = model.CurrencyUSD
	}
	resp.DisplayCurrency = displayCurrency

	return &resp, nil
}

// ============================================
// ADMIN
// ============================================

func (s *beeService) ListAllBees(ctx context.Context) ([]*model.BeeResponse, error) {
	bees, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, model.NewListBeeError(err)
	}
	return model.NewBeeResponses(bees), nil
}

func (s *beeService) GetBeeByID(ctx context.Context, id int64) (*model.BeeResponse, error) {
	bee, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return model.NewBeeResponse(bee), nil
}

func (s *beeService) GetBeeForm(ctx context.Context, id int64) (*model.FormData, error) {
	bee, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	form := model.NewFormData(model.PayloadFromEntity(bee))
	return &form, nil
}

func (s *beeService) CreateBee(ctx context.Context, payload model.BeePayload) (*model.BeeResponse, error) {
	payload.Normalize()
	if err := payload.Validate(); err != nil {
		return nil, model.NewValidationError(err)
	}

	created, err := s.repo.Create(ctx, payload.ToEntity())
	if err != nil {
		return nil, err
	}

	log.Info().Int64("bee_id", created.ID).Str("slug", created.Slug).Msg("✅ Bee created")
	s.invalidate(ctx)

	return model.NewBeeResponse(created), nil
}

func (s *beeService) UpdateBee(ctx context.Context, payload model.BeePayload) (*model.BeeResponse, error) {
	if payload.ID == nil || *payload.ID <= 0 {
		return nil, model.NewInvalidBeeID("id is required")
	}

	payload.Normalize()
	if err := payload.Validate(); err != nil {
		return nil, model.NewValidationError(err)
	}

	updated, err := s.repo.Update(ctx, payload.ToEntity())
	if err != nil {
		return nil, err
	}

	log.Info().Int64("bee_id", updated.ID).Str("slug", updated.Slug).Msg("✅ Bee updated")
	s.invalidate(ctx)

	return model.NewBeeResponse(updated), nil
}

// SubmitForm: form schema → transform → API schema → persist.
// id nil = create.
func (s *beeService) SubmitForm(ctx context.Context, id *int64, form model.FormData) (*model.BeeResponse, error) {
	if err := form.Validate(); err != nil {
		return nil, model.NewValidationError(err)
	}

	payload := form.ToPayload()
	if id == nil {
		return s.CreateBee(ctx, payload)
	}

	payload.ID = id
	return s.UpdateBee(ctx, payload)
}

func (s *beeService) DeleteBeeBySlug(ctx context.Context, slug string) error {
	if !model.IsValidSlug(slug) {
		return model.NewInvalidSlug(slug)
	}
	if err := s.repo.SoftDeleteBySlug(ctx, slug); err != nil {
		return err
	}

	log.Info().Str("slug", slug).Msg("🗑️ Bee soft deleted")
	s.invalidate(ctx)
	return nil
}

func (s *beeService) DeleteBeeByID(ctx context.Context, id int64) error {
	if id <= 0 {
		return model.NewInvalidBeeID(strconv.FormatInt(id, 10))
	}
	if err := s.repo.SoftDeleteByID(ctx, id); err != nil {
		return err
	}

	log.Info().Int64("bee_id", id).Msg("🗑️ Bee soft deleted")
	s.invalidate(ctx)
	return nil
}

// SuggestSlug sinh slug từ tên, thêm hậu tố -2, -3... nếu đã bị dùng
func (s *beeService) SuggestSlug(ctx context.Context, name string) (string, error) {
	base := utils.GenerateSlug(name)
	if base == "" {
		return "", model.NewInvalidSlug(name)
	}

	candidate := base
	for i := 2; i <= maxSlugAttempts; i++ {
		exists, err := s.repo.SlugExists(ctx, candidate)
		if err != nil {
			return "", model.NewListBeeError(err)
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}

	return "", model.NewSlugAlreadyExists(base)
}

// ============================================
// CACHE
// ============================================

// WarmCache nạp lại list + detail của mọi bee active vào cache
func (s *beeService) WarmCache(ctx context.Context) error {
	bees, err := s.repo.ListActive(ctx)
	if err != nil {
		return model.NewListBeeError(err)
	}

	responses := model.NewBeeResponses(bees)
	if err := s.cache.Set(ctx, cacheKeyList, responses, s.cacheTTL); err != nil {
		return fmt.Errorf("cache list: %w", err)
	}
	for _, resp := range responses {
		if err := s.cache.Set(ctx, cacheKeySlugPrefix+resp.Slug, resp, s.cacheTTL); err != nil {
			return fmt.Errorf("cache bee %s: %w", resp.Slug, err)
		}
	}

	log.Debug().Int("count", len(responses)).Msg("[CACHE] Catalog warmed")
	return nil
}

func (s *beeService) invalidate(ctx context.Context) {
	if err := s.cache.DeletePattern(ctx, cachePattern); err != nil {
		log.Warn().Err(err).Str("pattern", cachePattern).Msg("Cache invalidation error")
	}
}
