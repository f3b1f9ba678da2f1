package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"b2bees-backend/internal/domains/chat/model"
	"b2bees-backend/internal/domains/chat/service"
	"b2bees-backend/internal/shared/response"
)

type ChatHandler struct {
	service service.Service
}

func NewChatHandler(service service.Service) *ChatHandler {
	return &ChatHandler{service: service}
}

// Chat handles POST /api/chat
func (h *ChatHandler) Chat(c *gin.Context) {
	var req model.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleError(c, model.NewInvalidRequest(err))
		return
	}

	resp, err := h.service.Chat(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

func (h *ChatHandler) handleError(c *gin.Context, err error) {
	status, code, message := model.MapErrorToHTTP(err)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("request_id", c.GetString("request_id")).Msg("Chat request failed")
	}
	response.ErrorResponse(c, status, code, message)
}
