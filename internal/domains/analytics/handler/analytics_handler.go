package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"b2bees-backend/internal/domains/analytics/model"
	"b2bees-backend/internal/domains/analytics/service"
	"b2bees-backend/internal/shared/middleware"
	"b2bees-backend/internal/shared/response"
)

type AnalyticsHandler struct {
	service service.Service
}

func NewAnalyticsHandler(service service.Service) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// Track handles POST /api/analytics
// Body không parse được cũng là 500, endpoint này chỉ có 200/500
func (h *AnalyticsHandler) Track(c *gin.Context) {
	var req model.TrackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleError(c, model.NewTrackEventError(err))
		return
	}

	if err := h.service.Track(c.Request.Context(), req, c.Request.UserAgent(), middleware.GetClientIP(c)); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"tracked": true})
}

// Summary handles GET /api/analytics
func (h *AnalyticsHandler) Summary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, summary)
}

func (h *AnalyticsHandler) handleError(c *gin.Context, err error) {
	status, code, message := model.MapErrorToHTTP(err)
	log.Error().Err(err).Str("request_id", c.GetString("request_id")).Msg("Analytics request failed")
	response.ErrorResponse(c, status, code, message)
}
