package handler

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"b2bees-backend/internal/domains/upload/model"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Upload(ctx context.Context, file model.File) (*model.UploadResult, error) {
	args := m.Called(ctx, file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UploadResult), args.Error(1)
}

func multipartBody(t *testing.T, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="hero.png"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.WriteField("slug", "sales-bee"))
	require.NoError(t, w.Close())

	return body, w.FormDataContentType()
}

func setupRouter(svc *MockService, maxSize int64) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/upload", NewUploadHandler(svc, maxSize).Upload)
	return r
}

func TestUpload_Success(t *testing.T) {
	svc := new(MockService)
	r := setupRouter(svc, 0)

	svc.On("Upload", mock.Anything, mock.MatchedBy(func(f model.File) bool {
		return f.Filename == "hero.png" && f.ContentType == "image/png" && f.Slug == "sales-bee" && string(f.Data) == "png-bytes"
	})).Return(&model.UploadResult{URL: "https://i.imgur.com/x.png", Source: "imgur"}, nil)

	body, ct := multipartBody(t, "image/png", []byte("png-bytes"))
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"data":{"url":"https://i.imgur.com/x.png","source":"imgur"}}`, w.Body.String())
}

func TestUpload_Rejections(t *testing.T) {
	svc := new(MockService)
	r := setupRouter(svc, 4)

	// không có field file
	req := httptest.NewRequest(http.MethodPost, "/api/upload", bytes.NewBufferString("x"))
	req.Header.Set("Content-Type", "text/plain")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), model.CodeNoFile)

	// vượt max size
	body, ct := multipartBody(t, "image/png", []byte("too-big"))
	req = httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", ct)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), model.CodeFileTooLarge)

	svc.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}

func TestUpload_ServiceFailure(t *testing.T) {
	svc := new(MockService)
	r := setupRouter(svc, 0)

	svc.On("Upload", mock.Anything, mock.Anything).Return(nil, model.NewUploadFailed(assert.AnError))

	body, ct := multipartBody(t, "image/png", []byte("png"))
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), assert.AnError.Error())
}
