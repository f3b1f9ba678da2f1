package service

import (
	"context"

	"b2bees-backend/internal/domains/subscriber/model"
)

type Service interface {
	Subscribe(ctx context.Context, req model.SubscribeRequest) (*model.SubscribeResult, error)
	Unsubscribe(ctx context.Context, req model.UnsubscribeRequest) error
	ListSubscribers(ctx context.Context) ([]*model.Subscriber, error)
	ExportXLSX(ctx context.Context) ([]byte, error)

	// CountActive được analytics dùng cho total_subscribers
	CountActive(ctx context.Context) (int64, error)
}
