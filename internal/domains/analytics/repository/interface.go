package repository

import (
	"context"

	"b2bees-backend/internal/domains/analytics/model"
)

type Repository interface {
	Insert(ctx context.Context, event *model.Event) error

	// CountByTypes trả về count theo event_type, type không có event thì không có key
	CountByTypes(ctx context.Context, eventTypes []string) (map[string]int64, error)
}
