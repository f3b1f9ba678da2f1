package repository

import (
	"context"

	"b2bees-backend/internal/domains/bee/model"
)

// Repository là persistence contract của bee domain.
// Not found luôn trả *model.BeeError code BEE_NOT_FOUND.
type Repository interface {
	// ListActive: status = active, chưa soft delete, order theo name
	ListActive(ctx context.Context) ([]*model.Bee, error)
	// ListAll: mọi bee chưa soft delete (kể cả draft) cho admin
	ListAll(ctx context.Context) ([]*model.Bee, error)

	// FindPublicBySlug không bao giờ trả bee draft
	FindPublicBySlug(ctx context.Context, slug string) (*model.Bee, error)
	FindByID(ctx context.Context, id int64) (*model.Bee, error)
	SlugExists(ctx context.Context, slug string) (bool, error)

	// Create/Update ghi bee + prices + usage pricing trong một transaction
	Create(ctx context.Context, bee *model.Bee) (*model.Bee, error)
	Update(ctx context.Context, bee *model.Bee) (*model.Bee, error)

	SoftDeleteBySlug(ctx context.Context, slug string) error
	SoftDeleteByID(ctx context.Context, id int64) error
}
