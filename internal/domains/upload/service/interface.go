package service

import (
	"context"

	"b2bees-backend/internal/domains/upload/model"
)

type Service interface {
	Upload(ctx context.Context, file model.File) (*model.UploadResult, error)
}
