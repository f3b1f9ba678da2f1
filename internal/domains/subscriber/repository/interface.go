package repository

import (
	"context"

	"b2bees-backend/internal/domains/subscriber/model"
)

type Repository interface {
	// Upsert tạo subscriber mới hoặc reactivate row inactive cùng email.
	// Email đang active → ALREADY_SUBSCRIBED.
	Upsert(ctx context.Context, s *model.Subscriber) (*model.SubscribeResult, error)
	Deactivate(ctx context.Context, email string) error
	List(ctx context.Context) ([]*model.Subscriber, error)
	CountActive(ctx context.Context) (int64, error)
}
