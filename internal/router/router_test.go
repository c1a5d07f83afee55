package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"recipe-api/internal/handler"
	"recipe-api/internal/middleware"
	"recipe-api/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

// recordingService records which operation served a request and its key.
type recordingService struct {
	called string
	key    string
}

func (s *recordingService) record(op, key string) {
	s.called, s.key = op, key
}

func (s *recordingService) Create(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error) {
	s.record("Create", recipe.Title)
	return recipe, nil
}

func (s *recordingService) GetAll(ctx context.Context) ([]model.Recipe, error) {
	s.record("GetAll", "")
	return []model.Recipe{}, nil
}

func (s *recordingService) GetByTitle(ctx context.Context, title string) (*model.Recipe, error) {
	s.record("GetByTitle", title)
	return &model.Recipe{Title: title}, nil
}

func (s *recordingService) GetByAuthor(ctx context.Context, author string) ([]model.Recipe, error) {
	s.record("GetByAuthor", author)
	return []model.Recipe{}, nil
}

func (s *recordingService) GetByDifficulty(ctx context.Context, level string) ([]model.Recipe, error) {
	s.record("GetByDifficulty", level)
	return []model.Recipe{}, nil
}

func (s *recordingService) GetByID(ctx context.Context, id string) (*model.Recipe, error) {
	s.record("GetByID", id)
	return &model.Recipe{ID: id}, nil
}

func (s *recordingService) UpdateByID(ctx context.Context, id string, patch *model.RecipePatch) (*model.Recipe, error) {
	s.record("UpdateByID", id)
	return &model.Recipe{ID: id}, nil
}

func (s *recordingService) UpdateByTitle(ctx context.Context, title string, patch *model.RecipePatch) (*model.Recipe, error) {
	s.record("UpdateByTitle", title)
	return &model.Recipe{Title: title}, nil
}

func (s *recordingService) DeleteByID(ctx context.Context, id string) (*model.Recipe, error) {
	s.record("DeleteByID", id)
	return &model.Recipe{ID: id}, nil
}

func (s *recordingService) Ping(ctx context.Context) error {
	return nil
}

func newTestRouter(svc *recordingService) http.Handler {
	logger := zerolog.Nop()
	return New(
		handler.NewRecipeHandler(svc, logger),
		handler.NewHealthHandler(svc, time.Second),
		Options{AllowedOrigins: []string{"*"}, RateLimitBurst: 10},
		logger,
	)
}

func TestRouter_Dispatch(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		expectedOp     string
		expectedKey    string
		expectedStatus int
	}{
		{"Create", http.MethodPost, "/recipes", `{"title":"Tea"}`, "Create", "Tea", http.StatusCreated},
		{"GetAll", http.MethodGet, "/recipes", "", "GetAll", "", http.StatusOK},
		{"GetByTitle", http.MethodGet, "/recipes/Tea", "", "GetByTitle", "Tea", http.StatusOK},
		{"GetByTitle with escaped space", http.MethodGet, "/recipes/Green%20Tea", "", "GetByTitle", "Green Tea", http.StatusOK},
		{"GetByAuthor", http.MethodGet, "/recipes/author/Ann", "", "GetByAuthor", "Ann", http.StatusOK},
		{"GetByDifficulty", http.MethodGet, "/recipes/difficulty/Easy", "", "GetByDifficulty", "Easy", http.StatusOK},
		{"GetByID", http.MethodGet, "/recipes/id/abc", "", "GetByID", "abc", http.StatusOK},
		{"UpdateByID", http.MethodPost, "/recipes/abc", `{"prepTime":1}`, "UpdateByID", "abc", http.StatusOK},
		{"UpdateByTitle", http.MethodPost, "/recipes/title/Tea", `{"prepTime":1}`, "UpdateByTitle", "Tea", http.StatusOK},
		{"DeleteByID", http.MethodDelete, "/recipes/abc", "", "DeleteByID", "abc", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &recordingService{}
			r := newTestRouter(svc)

			var req *http.Request
			if tt.body != "" {
				req = httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			} else {
				req = httptest.NewRequest(tt.method, tt.path, nil)
			}
			w := httptest.NewRecorder()

			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedOp, svc.called)
			assert.Equal(t, tt.expectedKey, svc.key)
			assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
		})
	}
}

func TestRouter_Unrouted(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
	}{
		{"Unknown path", http.MethodGet, "/unknown", http.StatusNotFound},
		{"Too many segments", http.MethodGet, "/recipes/a/b/c", http.StatusNotFound},
		{"Wrong method", http.MethodPut, "/recipes", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &recordingService{}
			r := newTestRouter(svc)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Empty(t, svc.called)
		})
	}
}

func TestRouter_AmbientRoutes(t *testing.T) {
	r := newTestRouter(&recordingService{})

	for _, path := range []string{"/health", "/ready"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}

	// Serve one recipe request so the counter has a sample to expose.
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/recipes", nil))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "recipe_api_http_requests_total")
}
