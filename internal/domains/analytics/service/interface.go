package service

import (
	"context"

	"b2bees-backend/internal/domains/analytics/model"
)

type Service interface {
	Track(ctx context.Context, req model.TrackRequest, userAgent, ip string) error
	Summary(ctx context.Context) (*model.Summary, error)
}

// SubscriberCounter được subscriber service implement
type SubscriberCounter interface {
	CountActive(ctx context.Context) (int64, error)
}
