package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"b2bees-backend/internal/infrastructure/email"
	"b2bees-backend/internal/shared"
	"b2bees-backend/pkg/logger"
)

// BeeNameLookup trả tên bee để cá nhân hóa email, "" nếu không tìm thấy
type BeeNameLookup func(ctx context.Context, beeID int64) string

// WelcomeEmailHandler xử lý task subscriber:send_welcome
type WelcomeEmailHandler struct {
	emailService email.EmailService
	beeName      BeeNameLookup
}

func NewWelcomeEmailHandler(emailService email.EmailService, beeName BeeNameLookup) *WelcomeEmailHandler {
	return &WelcomeEmailHandler{emailService: emailService, beeName: beeName}
}

func (h *WelcomeEmailHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.WelcomeEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Error("Unmarshal welcome email payload failed", err)
		// payload hỏng thì retry cũng vô ích
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	data := email.WelcomeEmailData{
		Email:       payload.Email,
		UseCaseSlug: payload.UseCaseSlug,
	}
	if payload.BeeID != nil && h.beeName != nil {
		data.BeeName = h.beeName(ctx, *payload.BeeID)
	}

	if err := h.emailService.SendWelcomeEmail(ctx, data); err != nil {
		return err
	}

	log.Info().
		Int64("subscriber_id", payload.SubscriberID).
		Msg("📧 Welcome email sent")
	return nil
}
