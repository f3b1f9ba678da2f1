package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"b2bees-backend/internal/domains/bee/model"
	"b2bees-backend/internal/domains/bee/service"
	"b2bees-backend/internal/shared/middleware"
	"b2bees-backend/internal/shared/response"
)

// BeeHandler handles HTTP requests cho catalog
type BeeHandler struct {
	service service.Service
}

func NewBeeHandler(service service.Service) *BeeHandler {
	return &BeeHandler{service: service}
}

// ============================================
// PUBLIC
// ============================================

// ListBees handles GET /api/bees
func (h *BeeHandler) ListBees(c *gin.Context) {
	bees, err := h.service.ListBees(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, bees, &response.Meta{Total: len(bees)})
}

// GetBeeBySlug handles GET /api/bees/slug/:slug
func (h *BeeHandler) GetBeeBySlug(c *gin.Context) {
	bee, err := h.service.GetBeeBySlug(c.Request.Context(), c.Param("slug"), displayCurrency(c))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, bee)
}

// displayCurrency: cookie currencyPreference → giá trị middleware vừa resolve → USD
func displayCurrency(c *gin.Context) model.Currency {
	if raw, err := c.Cookie(middleware.CurrencyCookieName); err == nil {
		if cur, ok := model.ParseCurrency(raw); ok {
			return cur
		}
	}
	if cur, ok := model.ParseCurrency(middleware.GetCurrency(c)); ok {
		return cur
	}
	return model.CurrencyUSD
}

// ============================================
// ADMIN (API shape)
// ============================================

// CreateBee handles POST /api/bees
func (h *BeeHandler) CreateBee(c *gin.Context) {
	var payload model.BeePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	bee, err := h.service.CreateBee(c.Request.Context(), payload)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, bee)
}

// UpdateBee handles PUT /api/bees (id nằm trong body)
func (h *BeeHandler) UpdateBee(c *gin.Context) {
	var payload model.BeePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	bee, err := h.service.UpdateBee(c.Request.Context(), payload)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, bee)
}

// DeleteBeeBySlug handles DELETE /api/bees/slug/:slug
func (h *BeeHandler) DeleteBeeBySlug(c *gin.Context) {
	if err := h.service.DeleteBeeBySlug(c.Request.Context(), c.Param("slug")); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// DeleteBeeByID handles DELETE /api/bees/:id
func (h *BeeHandler) DeleteBeeByID(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteBeeByID(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// ============================================
// ADMIN (dashboard + form shape)
// ============================================

// ListAllBees handles GET /api/admin/bees
func (h *BeeHandler) ListAllBees(c *gin.Context) {
	bees, err := h.service.ListAllBees(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, bees, &response.Meta{Total: len(bees)})
}

// GetBeeByID handles GET /api/admin/bees/:id
func (h *BeeHandler) GetBeeByID(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	bee, err := h.service.GetBeeByID(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, bee)
}

// GetBeeForm handles GET /api/admin/bees/:id/form
func (h *BeeHandler) GetBeeForm(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	form, err := h.service.GetBeeForm(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, form)
}

// CreateBeeFromForm handles POST /api/admin/bees/form
func (h *BeeHandler) CreateBeeFromForm(c *gin.Context) {
	var form model.FormData
	if err := c.ShouldBindJSON(&form); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	bee, err := h.service.SubmitForm(c.Request.Context(), nil, form)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, bee)
}

// UpdateBeeFromForm handles PUT /api/admin/bees/:id/form
func (h *BeeHandler) UpdateBeeFromForm(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var form model.FormData
	if err := c.ShouldBindJSON(&form); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	bee, err := h.service.SubmitForm(c.Request.Context(), &id, form)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, bee)
}

// SuggestSlug handles GET /api/admin/bees/slug-suggestion?name=
func (h *BeeHandler) SuggestSlug(c *gin.Context) {
	slug, err := h.service.SuggestSlug(c.Request.Context(), c.Query("name"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"slug": slug})
}

// ============================================
// HELPERS
// ============================================

func (h *BeeHandler) parseID(c *gin.Context) (int64, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		h.handleError(c, model.NewInvalidBeeID(raw))
		return 0, false
	}
	return id, true
}

func (h *BeeHandler) handleError(c *gin.Context, err error) {
	status, code, message, details := model.MapErrorToHTTP(err)

	if status >= http.StatusInternalServerError {
		log.Error().Err(err).
			Str("request_id", c.GetString("request_id")).
			Str("path", c.Request.URL.Path).
			Msg("Bee request failed")
	}

	if len(details) > 0 {
		response.ErrorWithDetails(c, status, code, message, details)
		return
	}
	response.ErrorResponse(c, status, code, message)
}
