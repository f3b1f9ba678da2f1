package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"b2bees-backend/internal/domains/subscriber/model"
	"b2bees-backend/internal/shared"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Upsert(ctx context.Context, s *model.Subscriber) (*model.SubscribeResult, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SubscribeResult), args.Error(1)
}

func (m *MockRepository) Deactivate(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *MockRepository) List(ctx context.Context) ([]*model.Subscriber, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Subscriber), args.Error(1)
}

func (m *MockRepository) CountActive(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockEnqueuer struct {
	mock.Mock
}

func (m *MockEnqueuer) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	args := m.Called(ctx, task)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*asynq.TaskInfo), args.Error(1)
}

func TestSubscribe_NewSubscriber(t *testing.T) {
	repo := new(MockRepository)
	enq := new(MockEnqueuer)
	svc := NewSubscriberService(repo, enq)
	ctx := context.Background()
	beeID := int64(3)

	repo.On("Upsert", ctx, mock.MatchedBy(func(s *model.Subscriber) bool {
		return s.Email == "jane@example.com" && s.Source == model.DefaultSource && s.IsActive && *s.BeeID == 3
	})).Return(&model.SubscribeResult{
		Subscriber: &model.Subscriber{ID: 10, Email: "jane@example.com", IsActive: true, BeeID: &beeID},
		Created:    true,
	}, nil)

	enq.On("EnqueueContext", ctx, mock.MatchedBy(func(task *asynq.Task) bool {
		var payload shared.WelcomeEmailPayload
		_ = json.Unmarshal(task.Payload(), &payload)
		return task.Type() == shared.TypeSendWelcomeEmail && payload.SubscriberID == 10
	})).Return(&asynq.TaskInfo{}, nil)

	result, err := svc.Subscribe(ctx, model.SubscribeRequest{Email: "  Jane@Example.COM ", BeeID: &beeID})
	require.NoError(t, err)
	assert.True(t, result.Created)

	repo.AssertExpectations(t)
	enq.AssertExpectations(t)
}

func TestSubscribe_ReactivatedAndQueueFailureIgnored(t *testing.T) {
	repo := new(MockRepository)
	enq := new(MockEnqueuer)
	svc := NewSubscriberService(repo, enq)
	ctx := context.Background()

	repo.On("Upsert", ctx, mock.Anything).Return(&model.SubscribeResult{
		Subscriber: &model.Subscriber{ID: 4, Email: "old@example.com", IsActive: true},
		Created:    false,
	}, nil)
	enq.On("EnqueueContext", ctx, mock.Anything).Return(nil, errors.New("redis down"))

	result, err := svc.Subscribe(ctx, model.SubscribeRequest{Email: "old@example.com"})
	require.NoError(t, err)
	assert.False(t, result.Created)
	assert.True(t, result.Subscriber.IsActive)
}

func TestSubscribe_Errors(t *testing.T) {
	repo := new(MockRepository)
	svc := NewSubscriberService(repo, nil)
	ctx := context.Background()

	_, err := svc.Subscribe(ctx, model.SubscribeRequest{Email: "not-an-email"})
	status, code, _ := model.MapErrorToHTTP(err)
	assert.Equal(t, 400, status)
	assert.Equal(t, model.CodeInvalidRequest, code)
	repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)

	repo.On("Upsert", ctx, mock.Anything).Return(nil, model.NewAlreadySubscribed("a@example.com"))
	_, err = svc.Subscribe(ctx, model.SubscribeRequest{Email: "a@example.com"})
	assert.True(t, model.IsAlreadySubscribed(err))
	status, _, _ = model.MapErrorToHTTP(err)
	assert.Equal(t, 400, status)
}

func TestUnsubscribe(t *testing.T) {
	repo := new(MockRepository)
	svc := NewSubscriberService(repo, nil)
	ctx := context.Background()

	repo.On("Deactivate", ctx, "jane@example.com").Return(nil)
	repo.On("Deactivate", ctx, "ghost@example.com").Return(model.NewSubscriberNotFound())

	assert.NoError(t, svc.Unsubscribe(ctx, model.UnsubscribeRequest{Email: "Jane@example.com"}))
	assert.True(t, model.IsSubscriberNotFound(svc.Unsubscribe(ctx, model.UnsubscribeRequest{Email: "ghost@example.com"})))
}

func TestExportXLSX(t *testing.T) {
	repo := new(MockRepository)
	svc := NewSubscriberService(repo, nil)
	ctx := context.Background()
	beeID := int64(2)
	slug := "call-center"

	repo.On("List", ctx).Return([]*model.Subscriber{
		{ID: 2, Email: "new@example.com", IsActive: true, Source: "website", BeeID: &beeID, UseCaseSlug: &slug,
			CreatedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)},
		{ID: 1, Email: "old@example.com", IsActive: false, Source: "footer",
			CreatedAt: time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)},
	}, nil)

	data, err := svc.ExportXLSX(ctx)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(subscribersSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, subscriberHeaders, rows[0])
	assert.Equal(t, "new@example.com", rows[1][1])
	assert.Equal(t, "call-center", rows[1][5])
	assert.Equal(t, "2026-03-01 10:00:00", rows[1][6])
	assert.Equal(t, "old@example.com", rows[2][1])

	width, err := f.GetColWidth(subscribersSheet, "B")
	require.NoError(t, err)
	assert.Equal(t, 36.0, width)

	styleID, err := f.GetCellStyle(subscribersSheet, "G1")
	require.NoError(t, err)
	style, err := f.GetStyle(styleID)
	require.NoError(t, err)
	require.NotNil(t, style.Font)
	assert.True(t, style.Font.Bold)
}
