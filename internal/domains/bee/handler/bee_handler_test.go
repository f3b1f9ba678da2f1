package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"b2bees-backend/internal/domains/bee/model"
	"b2bees-backend/internal/shared/middleware"
	"b2bees-backend/pkg/jwt"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) ListBees(ctx context.Context) ([]*model.BeeResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.BeeResponse), args.Error(1)
}

func (m *MockService) GetBeeBySlug(ctx context.Context, slug string, cur model.Currency) (*model.BeeResponse, error) {
	args := m.Called(ctx, slug, cur)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BeeResponse), args.Error(1)
}

func (m *MockService) ListAllBees(ctx context.Context) ([]*model.BeeResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.BeeResponse), args.Error(1)
}

func (m *MockService) GetBeeByID(ctx context.Context, id int64) (*model.BeeResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BeeResponse), args.Error(1)
}

func (m *MockService) GetBeeForm(ctx context.Context, id int64) (*model.FormData, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FormData), args.Error(1)
}

func (m *MockService) CreateBee(ctx context.Context, p model.BeePayload) (*model.BeeResponse, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BeeResponse), args.Error(1)
}

func (m *MockService) UpdateBee(ctx context.Context, p model.BeePayload) (*model.BeeResponse, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BeeResponse), args.Error(1)
}

func (m *MockService) SubmitForm(ctx context.Context, id *int64, f model.FormData) (*model.BeeResponse, error) {
	args := m.Called(ctx, id, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BeeResponse), args.Error(1)
}

func (m *MockService) DeleteBeeBySlug(ctx context.Context, slug string) error {
	return m.Called(ctx, slug).Error(0)
}

func (m *MockService) DeleteBeeByID(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockService) SuggestSlug(ctx context.Context, name string) (string, error) {
	args := m.Called(ctx, name)
	return args.String(0), args.Error(1)
}

func (m *MockService) WarmCache(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string             `json:"code"`
		Message string             `json:"message"`
		Details []model.FieldError `json:"details"`
	} `json:"error"`
}

func setupRouter(svc *MockService) (*gin.Engine, string) {
	gin.SetMode(gin.TestMode)
	manager := jwt.NewManager("handler-test-secret", time.Hour)
	token, _, _ := manager.GenerateAccessToken("admin", jwt.RoleAdmin)

	h := NewBeeHandler(svc)
	r := gin.New()
	r.Use(middleware.CurrencyMiddleware(middleware.DefaultCurrencyMiddlewareConfig()))

	api := r.Group("/api")
	api.GET("/bees", h.ListBees)
	api.GET("/bees/slug/:slug", h.GetBeeBySlug)

	admin := api.Group("", middleware.AdminAuth(manager))
	admin.POST("/bees", h.CreateBee)
	admin.PUT("/bees", h.UpdateBee)
	admin.DELETE("/bees/slug/:slug", h.DeleteBeeBySlug)
	admin.DELETE("/bees/:id", h.DeleteBeeByID)
	admin.GET("/admin/bees/:id/form", h.GetBeeForm)
	admin.PUT("/admin/bees/:id/form", h.UpdateBeeFromForm)

	return r, token
}

func doRequest(r *gin.Engine, method, path, token string, body interface{}, cookies ...*http.Cookie) (*httptest.ResponseRecorder, envelope) {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func TestCreateBee_AuthCheckedBeforeValidation(t *testing.T) {
	svc := new(MockService)
	r, _ := setupRouter(svc)

	w, env := doRequest(r, http.MethodPost, "/api/bees", "", map[string]string{"slug": "BAD"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, env.Success)
	svc.AssertNotCalled(t, "CreateBee", mock.Anything, mock.Anything)
}

func TestCreateBee_ValidationDetails(t *testing.T) {
	svc := new(MockService)
	r, token := setupRouter(svc)

	svc.On("CreateBee", mock.Anything, mock.Anything).
		Return(nil, model.NewValidationError(model.BeePayload{FAQs: []model.FAQ{{Question: "Q"}}}.Validate()))

	w, env := doRequest(r, http.MethodPost, "/api/bees", token, map[string]interface{}{
		"faqs": []map[string]string{{"question": "Q"}},
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, model.CodeValidation, env.Error.Code)

	var paths []string
	for _, d := range env.Error.Details {
		paths = append(paths, d.Path)
	}
	assert.Contains(t, paths, "faqs.0.answer")
}

func TestCreateBee_Created(t *testing.T) {
	svc := new(MockService)
	r, token := setupRouter(svc)

	svc.On("CreateBee", mock.Anything, mock.MatchedBy(func(p model.BeePayload) bool {
		return p.Slug == "support-bee" && p.Prices[model.CurrencyUSD].String() == "29.99"
	})).Return(&model.BeeResponse{ID: 5, Slug: "support-bee"}, nil)

	w, env := doRequest(r, http.MethodPost, "/api/bees", token, map[string]interface{}{
		"slug":   "support-bee",
		"prices": map[string]float64{"USD": 29.99},
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, env.Success)
	assert.Contains(t, string(env.Data), `"id":5`)
}

func TestCreateBee_MalformedJSON(t *testing.T) {
	svc := new(MockService)
	r, token := setupRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/bees", bytes.NewBufferString("{not json"))
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateBee_Errors(t *testing.T) {
	svc := new(MockService)
	r, token := setupRouter(svc)

	svc.On("UpdateBee", mock.Anything, mock.MatchedBy(func(p model.BeePayload) bool { return p.ID == nil })).
		Return(nil, model.NewInvalidBeeID("id is required"))
	svc.On("UpdateBee", mock.Anything, mock.MatchedBy(func(p model.BeePayload) bool { return p.ID != nil })).
		Return(nil, model.NewBeeNotFound())

	w, _ := doRequest(r, http.MethodPut, "/api/bees", token, map[string]interface{}{"slug": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = doRequest(r, http.MethodPut, "/api/bees", token, map[string]interface{}{"id": 404, "slug": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetBeeBySlug_UsesCurrencyCookie(t *testing.T) {
	svc := new(MockService)
	r, _ := setupRouter(svc)

	svc.On("GetBeeBySlug", mock.Anything, "support-bee", model.CurrencyEUR).
		Return(&model.BeeResponse{Slug: "support-bee", DisplayCurrency: model.CurrencyEUR}, nil)
	svc.On("GetBeeBySlug", mock.Anything, "support-bee", model.CurrencyGBP).
		Return(&model.BeeResponse{Slug: "support-bee", DisplayCurrency: model.CurrencyGBP}, nil)

	w, env := doRequest(r, http.MethodGet, "/api/bees/slug/support-bee", "", nil,
		&http.Cookie{Name: middleware.CurrencyCookieName, Value: "EUR"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"display_currency":"EUR"`)

	// không có cookie: lấy giá trị middleware resolve từ country header
	req := httptest.NewRequest(http.MethodGet, "/api/bees/slug/support-bee", nil)
	req.Header.Set("X-Vercel-IP-Country", "GB")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"display_currency":"GBP"`)
}

func TestGetBeeBySlug_NotFound(t *testing.T) {
	svc := new(MockService)
	r, _ := setupRouter(svc)

	svc.On("GetBeeBySlug", mock.Anything, "missing", model.CurrencyUSD).Return(nil, model.NewBeeNotFound())

	w, env := doRequest(r, http.MethodGet, "/api/bees/slug/missing", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, model.CodeBeeNotFound, env.Error.Code)
}

func TestDeleteBee(t *testing.T) {
	svc := new(MockService)
	r, token := setupRouter(svc)

	svc.On("DeleteBeeBySlug", mock.Anything, "support-bee").Return(nil)
	svc.On("DeleteBeeByID", mock.Anything, int64(3)).Return(nil)

	w, _ := doRequest(r, http.MethodDelete, "/api/bees/slug/support-bee", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = doRequest(r, http.MethodDelete, "/api/bees/3", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = doRequest(r, http.MethodDelete, "/api/bees/abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = doRequest(r, http.MethodDelete, "/api/bees/3", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	svc.AssertNumberOfCalls(t, "DeleteBeeByID", 1)
}

func TestFormEndpoints(t *testing.T) {
	svc := new(MockService)
	r, token := setupRouter(svc)

	svc.On("GetBeeForm", mock.Anything, int64(7)).Return(&model.FormData{Slug: "ops-bee", PriceGBP: "12"}, nil)
	svc.On("SubmitForm", mock.Anything, mock.MatchedBy(func(id *int64) bool { return id != nil && *id == 7 }), mock.Anything).
		Return(&model.BeeResponse{ID: 7}, nil)

	w, env := doRequest(r, http.MethodGet, "/api/admin/bees/7/form", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"price_gbp":"12"`)

	w, _ = doRequest(r, http.MethodPut, "/api/admin/bees/7/form", token, map[string]string{"slug": "ops-bee", "price_gbp": "12"})
	assert.Equal(t, http.StatusOK, w.Code)
}
