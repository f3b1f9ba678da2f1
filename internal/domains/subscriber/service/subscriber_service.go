package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"b2bees-backend/internal/domains/subscriber/model"
	"b2bees-backend/internal/domains/subscriber/repository"
	"b2bees-backend/internal/infrastructure/queue"
	"b2bees-backend/internal/shared"
	"b2bees-backend/internal/shared/utils"
)

type subscriberService struct {
	repo     repository.Repository
	enqueuer queue.Enqueuer
}

// NewSubscriberService: enqueuer có thể nil (không gửi welcome email)
func NewSubscriberService(repo repository.Repository, enqueuer queue.Enqueuer) Service {
	return &subscriberService{repo: repo, enqueuer: enqueuer}
}

func (s *subscriberService) Subscribe(ctx context.Context, req model.SubscribeRequest) (*model.SubscribeResult, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, model.NewInvalidRequest(err)
	}

	result, err := s.repo.Upsert(ctx, req.ToEntity())
	if err != nil {
		return nil, err
	}

	log.Info().
		Int64("subscriber_id", result.Subscriber.ID).
		Bool("created", result.Created).
		Str("source", result.Subscriber.Source).
		Msg("📬 Subscriber saved")

	s.enqueueWelcomeEmail(ctx, result.Subscriber)
	return result, nil
}

// enqueueWelcomeEmail là best effort: lỗi queue không làm fail request
func (s *subscriberService) enqueueWelcomeEmail(ctx context.Context, sub *model.Subscriber) {
	if s.enqueuer == nil {
		return
	}

	payload := shared.WelcomeEmailPayload{
		SubscriberID: sub.ID,
		Email:        sub.Email,
		BeeID:        sub.BeeID,
		UseCaseSlug:  utils.StringValue(sub.UseCaseSlug),
	}

	data, err := json.Marshal(payload)
	if err != nil {
		log.Warn().Err(err).Msg("Marshal welcome email payload failed")
		return
	}

	task := asynq.NewTask(shared.TypeSendWelcomeEmail, data)
	if _, err := s.enqueuer.EnqueueContext(ctx, task,
		asynq.Queue(shared.QueueDefault),
		asynq.MaxRetry(3),
	); err != nil {
		log.Warn().Err(err).Int64("subscriber_id", sub.ID).Msg("Enqueue welcome email failed")
	}
}

func (s *subscriberService) Unsubscribe(ctx context.Context, req model.UnsubscribeRequest) error {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := req.Validate(); err != nil {
		return model.NewInvalidRequest(err)
	}
	return s.repo.Deactivate(ctx, req.Email)
}

func (s *subscriberService) ListSubscribers(ctx context.Context) ([]*model.Subscriber, error) {
	subscribers, err := s.repo.List(ctx)
	if err != nil {
		return nil, model.NewListSubscribersError(err)
	}
	return subscribers, nil
}

func (s *subscriberService) CountActive(ctx context.Context) (int64, error) {
	return s.repo.CountActive(ctx)
}

// ExportXLSX xuất toàn bộ subscriber (mới nhất trước) ra file Excel
func (s *subscriberService) ExportXLSX(ctx context.Context) ([]byte, error) {
	subscribers, err := s.repo.List(ctx)
	if err != nil {
		return nil, model.NewExportSubscribersError(err)
	}

	f, err := buildSubscribersExcelFile(subscribers)
	if err != nil {
		return nil, model.NewExportSubscribersError(err)
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, model.NewExportSubscribersError(err)
	}
	return buf.Bytes(), nil
}

const subscribersSheet = "Subscribers"

var subscriberHeaders = []string{"ID", "Email", "Active", "Source", "Bee ID", "Use Case", "Subscribed At"}

func buildSubscribersExcelFile(subscribers []*model.Subscriber) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", subscribersSheet); err != nil {
		return nil, err
	}

	for colIdx, header := range subscriberHeaders {
		cell, _ := excelize.CoordinatesToCellName(colIdx+1, 1)
		if err := f.SetCellValue(subscribersSheet, cell, header); err != nil {
			return nil, err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	lastCol, err := excelize.CoordinatesToCellName(len(subscriberHeaders), 1)
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(subscribersSheet, "A1", lastCol, headerStyle); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(subscribersSheet, "B", "B", 36); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(subscribersSheet, "G", "G", 22); err != nil {
		return nil, err
	}

	for i, sub := range subscribers {
		row := i + 2
		values := []interface{}{
			sub.ID,
			sub.Email,
			sub.IsActive,
			sub.Source,
			nil,
			"",
			sub.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
		}
		if sub.BeeID != nil {
			values[4] = *sub.BeeID
		}
		if sub.UseCaseSlug != nil {
			values[5] = *sub.UseCaseSlug
		}

		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(subscribersSheet, cell, &values); err != nil {
			return nil, fmt.Errorf("write row %d: %w", row, err)
		}
	}

	return f, nil
}
