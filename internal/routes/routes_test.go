package routes

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/userdesk/userdesk/internal/config"
	"github.com/userdesk/userdesk/internal/handlers"
	"github.com/userdesk/userdesk/internal/models"
	"github.com/userdesk/userdesk/internal/query"
)

func newTestRouter(svc handlers.UserService, authCfg config.AuthConfig) *chi.Mux {
	router := chi.NewRouter()
	RegisterRoutes(router, handlers.NewUserHandler(svc), authCfg)
	return router
}

func TestSearchAndListRouteAheadOfID(t *testing.T) {
	searched := false
	listed := false

	svc := &handlers.MockUserService{
		SearchUsersFunc: func(ctx context.Context, filter query.Filter) ([]*models.User, error) {
			searched = true
			return []*models.User{}, nil
		},
		ListUsersFunc: func(ctx context.Context, filter query.Filter, order query.Order, window query.Window) ([]*models.User, query.PageInfo, error) {
			listed = true
			return []*models.User{}, window.PageInfo(0), nil
		},
		GetUserFunc: func(ctx context.Context, id string) (*models.User, error) {
			t.Fatalf("GetUser must not handle /search or /list, got id %q", id)
			return nil, nil
		},
	}

	router := newTestRouter(svc, config.AuthConfig{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/users/search?fullname=ann", nil))
	assert.Equal(t, 200, w.Code)
	assert.True(t, searched)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/users/list", nil))
	assert.Equal(t, 200, w.Code)
	assert.True(t, listed)
}

func TestRoutesUnauthenticatedByDefault(t *testing.T) {
	router := newTestRouter(&handlers.MockUserService{}, config.AuthConfig{Required: false})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/users", nil))

	assert.Equal(t, 200, w.Code)
}

func TestRoutesGatedWhenAuthRequired(t *testing.T) {
	router := newTestRouter(&handlers.MockUserService{}, config.AuthConfig{Required: true, APIKey: "k"})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/users", nil))
	assert.Equal(t, 401, w.Code)

	req := httptest.NewRequest("GET", "/api/v1/users", nil)
	req.Header.Set("Authorization", "Bearer k")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, 200, w.Code)
}
