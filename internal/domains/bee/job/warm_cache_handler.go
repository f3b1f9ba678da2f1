package job

import (
	"context"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"b2bees-backend/internal/domains/bee/service"
	"b2bees-backend/pkg/logger"
)

// WarmCacheHandler xử lý task catalog:warm_cache (scheduler chạy mỗi 10 phút)
type WarmCacheHandler struct {
	beeService service.Service
}

func NewWarmCacheHandler(beeService service.Service) *WarmCacheHandler {
	return &WarmCacheHandler{beeService: beeService}
}

func (h *WarmCacheHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	start := time.Now()

	if err := h.beeService.WarmCache(ctx); err != nil {
		logger.Error("Warm catalog cache failed", err)
		return err
	}

	log.Info().
		Dur("duration", time.Since(start)).
		Msg("Catalog cache warmed")
	return nil
}
