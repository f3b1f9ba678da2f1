package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"b2bees-backend/internal/domains/upload/model"
	"b2bees-backend/internal/domains/upload/service"
	"b2bees-backend/internal/shared/response"
)

type UploadHandler struct {
	service service.Service
	maxSize int64
}

func NewUploadHandler(service service.Service, maxSize int64) *UploadHandler {
	if maxSize <= 0 {
		maxSize = 5 * 1024 * 1024
	}
	return &UploadHandler{service: service, maxSize: maxSize}
}

// Upload handles POST /api/upload (admin)
// multipart: file (bắt buộc), slug (tùy chọn)
func (h *UploadHandler) Upload(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		h.handleError(c, model.NewNoFile())
		return
	}

	// chặn sớm trước khi đọc vào memory
	if header.Size > h.maxSize {
		h.handleError(c, model.NewFileTooLarge(nil))
		return
	}

	f, err := header.Open()
	if err != nil {
		h.handleError(c, model.NewUploadFailed(err))
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, h.maxSize+1))
	if err != nil {
		h.handleError(c, model.NewUploadFailed(err))
		return
	}

	result, err := h.service.Upload(c.Request.Context(), model.File{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
		Slug:        c.PostForm("slug"),
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	log.Info().
		Str("source", result.Source).
		Str("url", result.URL).
		Msg("🖼️ Image uploaded")

	response.Success(c, http.StatusOK, result)
}

func (h *UploadHandler) handleError(c *gin.Context, err error) {
	status, code, message := model.MapErrorToHTTP(err)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("request_id", c.GetString("request_id")).Msg("Upload failed")
	}
	response.ErrorResponse(c, status, code, message)
}
