package service

import (
	"context"

	"b2bees-backend/internal/domains/bee/model"
)

// Service là business layer của catalog
type Service interface {
	// Public
	ListBees(ctx context.Context) ([]*model.BeeResponse, error)
	GetBeeBySlug(ctx context.Context, slug string, displayCurrency model.Currency) (*model.BeeResponse, error)

	// Admin
	ListAllBees(ctx context.Context) ([]*model.BeeResponse, error)
	GetBeeByID(ctx context.Context, id int64) (*model.BeeResponse, error)
	GetBeeForm(ctx context.Context, id int64) (*model.FormData, error)
	CreateBee(ctx context.Context, payload model.BeePayload) (*model.BeeResponse, error)
	UpdateBee(ctx context.Context, payload model.BeePayload) (*model.BeeResponse, error)
	SubmitForm(ctx context.Context, id *int64, form model.FormData) (*model.BeeResponse, error)
	DeleteBeeBySlug(ctx context.Context, slug string) error
	DeleteBeeByID(ctx context.Context, id int64) error
	SuggestSlug(ctx context.Context, name string) (string, error)

	// Job
	WarmCache(ctx context.Context) error
}
