package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"b2bees-backend/internal/shared"
	"b2bees-backend/pkg/logger"
)

// CatalogWarmSpec: refresh cache catalog mỗi 10 phút
const CatalogWarmSpec = "*/10 * * * *"

type Scheduler struct {
	scheduler *asynq.Scheduler
}

func NewScheduler(redisOpt asynq.RedisClientOpt) *Scheduler {
	scheduler := asynq.NewScheduler(
		redisOpt,
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{scheduler: scheduler}
}

func (s *Scheduler) RegisterJobs() error {
	return s.registerWarmCatalogCacheJob()
}

func (s *Scheduler) registerWarmCatalogCacheJob() error {
	payload, err := json.Marshal(shared.WarmCatalogCachePayload{})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypeWarmCatalogCache, payload)

	_, err = s.scheduler.Register(
		CatalogWarmSpec,
		task,
		asynq.Queue(shared.QueueLow),
		asynq.MaxRetry(1),
		asynq.Timeout(time.Minute),
		asynq.Unique(5*time.Minute),
	)
	if err != nil {
		logger.Error("Failed to register WarmCatalogCache job", err)
		return err
	}

	logger.Info("✓ Registered WarmCatalogCache", map[string]interface{}{"cron": CatalogWarmSpec})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Start()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
