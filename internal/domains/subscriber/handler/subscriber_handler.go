package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"b2bees-backend/internal/domains/subscriber/model"
	"b2bees-backend/internal/domains/subscriber/service"
	"b2bees-backend/internal/shared/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type SubscriberHandler struct {
	service service.Service
}

func NewSubscriberHandler(service service.Service) *SubscriberHandler {
	return &SubscriberHandler{service: service}
}

// Subscribe handles POST /api/subscribe
// 201 subscriber mới, 200 reactivate, 400 email sai hoặc đã subscribe
func (h *SubscriberHandler) Subscribe(c *gin.Context) {
	var req model.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	result, err := h.service.Subscribe(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	if result.Created {
		response.Success(c, http.StatusCreated, gin.H{
			"message":    "Successfully subscribed",
			"subscriber": result.Subscriber,
		})
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message":    "Welcome back! Your subscription has been reactivated",
		"subscriber": result.Subscriber,
	})
}

// Unsubscribe handles POST /api/unsubscribe
func (h *SubscriberHandler) Unsubscribe(c *gin.Context) {
	var req model.UnsubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	if err := h.service.Unsubscribe(c.Request.Context(), req); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Successfully unsubscribed"})
}

// ListSubscribers handles GET /api/subscribers (admin)
func (h *SubscriberHandler) ListSubscribers(c *gin.Context) {
	subscribers, err := h.service.ListSubscribers(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, subscribers, &response.Meta{Total: len(subscribers)})
}

// ExportSubscribers handles GET /api/subscribers/export (admin)
func (h *SubscriberHandler) ExportSubscribers(c *gin.Context) {
	data, err := h.service.ExportXLSX(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	filename := fmt.Sprintf("subscribers-%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}

func (h *SubscriberHandler) handleError(c *gin.Context, err error) {
	status, code, message := model.MapErrorToHTTP(err)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("request_id", c.GetString("request_id")).Msg("Subscriber request failed")
	}
	response.ErrorResponse(c, status, code, message)
}
