package job

import (
	"context"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"

	"b2bees-backend/internal/domains/bee/service"
)

// stubService chỉ implement WarmCache, các method khác không được gọi
type stubService struct {
	service.Service
	err   error
	calls int
}

func (s *stubService) WarmCache(context.Context) error {
	s.calls++
	return s.err
}


func TestWarmCacheHandler_ProcessTask(t *testing.T) {
	task := asynq.NewTask("catalog:warm_cache", []byte(`{}`))

	ok := &stubService{}
	assert.NoError(t, NewWarmCacheHandler(ok).ProcessTask(context.Background(), task))
	assert.Equal(t, 1, ok.calls)

	failing := &stubService{err: errors.New("db down")}
	assert.Error(t, NewWarmCacheHandler(failing).ProcessTask(context.Background(), task))
}
