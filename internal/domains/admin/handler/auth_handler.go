package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"b2bees-backend/internal/domains/admin/model"
	"b2bees-backend/internal/domains/admin/service"
	"b2bees-backend/internal/shared/middleware"
	"b2bees-backend/internal/shared/response"
)

type AuthHandler struct {
	service service.Service
}

func NewAuthHandler(service service.Service) *AuthHandler {
	return &AuthHandler{service: service}
}

// Login handles POST /api/admin/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleError(c, model.NewInvalidRequest(err))
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req, middleware.GetClientIP(c))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

func (h *AuthHandler) handleError(c *gin.Context, err error) {
	status, code, message := model.MapErrorToHTTP(err)

	var authErr *model.AuthError
	if errors.As(err, &authErr) && authErr.RetryAfter > 0 {
		c.Header("Retry-After", strconv.Itoa(int(authErr.RetryAfter.Seconds())))
	}
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("request_id", c.GetString("request_id")).Msg("Admin login failed")
	}

	response.ErrorResponse(c, status, code, message)
}
