package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"b2bees-backend/internal/domains/analytics/model"
	"b2bees-backend/internal/shared/middleware"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Track(ctx context.Context, req model.TrackRequest, userAgent, ip string) error {
	return m.Called(ctx, req, userAgent, ip).Error(0)
}

func (m *MockService) Summary(ctx context.Context) (*model.Summary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Summary), args.Error(1)
}

func setupRouter(svc *MockService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAnalyticsHandler(svc)
	r := gin.New()
	r.Use(middleware.ClientIPMiddleware())
	r.POST("/api/analytics", h.Track)
	r.GET("/api/analytics", h.Summary)
	return r
}

func TestTrack(t *testing.T) {
	svc := new(MockService)
	r := setupRouter(svc)

	svc.On("Track", mock.Anything, mock.MatchedBy(func(req model.TrackRequest) bool {
		return req.EventType == "page_view"
	}), "test-agent", mock.AnythingOfType("string")).Return(nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/api/analytics", bytes.NewBufferString(`{"eventType":"page_view","eventData":{"path":"/"}}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "test-agent")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestTrack_Failures(t *testing.T) {
	svc := new(MockService)
	r := setupRouter(svc)

	svc.On("Track", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(model.NewTrackEventError(errors.New("db down")))

	for _, body := range []string{`{"eventType":"x"}`, `{broken`} {
		req := httptest.NewRequest(http.MethodPost, "/api/analytics", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code, body)
	}
}

func TestSummary(t *testing.T) {
	svc := new(MockService)
	r := setupRouter(svc)

	svc.On("Summary", mock.Anything).Return(&model.Summary{PageViews: 3, ButtonClicks: 2, SocialClicks: 1, TotalSubscribers: 9}, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/analytics", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data map[string]int64 `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, map[string]int64{
		"page_views":        3,
		"button_clicks":     2,
		"social_clicks":     1,
		"total_subscribers": 9,
	}, body.Data)
}
