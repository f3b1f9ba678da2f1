package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"b2bees-backend/internal/domains/chat/model"
	"b2bees-backend/internal/infrastructure/llm"
)

type Service interface {
	Chat(ctx context.Context, req model.ChatRequest) (*model.ChatResponse, error)
}

type chatService struct {
	client llm.Client
}

// NewChatService: client nil nghĩa là chưa cấu hình API key
func NewChatService(client llm.Client) Service {
	return &chatService{client: client}
}

func (s *chatService) Chat(ctx context.Context, req model.ChatRequest) (*model.ChatResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, model.NewInvalidRequest(err)
	}

	if s.client == nil {
		return nil, model.NewUnavailable()
	}

	text, err := s.client.CompleteWithSystem(ctx, model.SystemPrompt, req.Message)
	if err != nil {
		return nil, model.NewCompletionError(err)
	}

	log.Debug().Str("provider", s.client.Name()).Int("chars", len(text)).Msg("Chat completion")
	return &model.ChatResponse{Response: text}, nil
}
