package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/userdesk/userdesk/internal/models"
	"github.com/userdesk/userdesk/internal/query"
	pkghttp "github.com/userdesk/userdesk/pkg/http"
)

// MockUserService implements UserService for testing
type MockUserService struct {
	GetUserFunc     func(ctx context.Context, id string) (*models.User, error)
	FetchUsersFunc  func(ctx context.Context) ([]*models.User, error)
	CreateUserFunc  func(ctx context.Context, user *models.User) (*models.User, error)
	UpdateUserFunc  func(ctx context.Context, id string, upd models.UserUpdate) (*models.User, error)
	DeleteUserFunc  func(ctx context.Context, id string) error
	SearchUsersFunc func(ctx context.Context, filter query.Filter) ([]*models.User, error)
	ListUsersFunc   func(ctx context.Context, filter query.Filter, order query.Order, window query.Window) ([]*models.User, query.PageInfo, error)
}

func (m *MockUserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	if m.GetUserFunc != nil {
		return m.GetUserFunc(ctx, id)
	}
	return nil, models.ErrNotFound
}

func (m *MockUserService) FetchUsers(ctx context.Context) ([]*models.User, error) {
	if m.FetchUsersFunc != nil {
		return m.FetchUsersFunc(ctx)
	}
	return []*models.User{}, nil
}

func (m *MockUserService) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	if m.CreateUserFunc != nil {
		return m.CreateUserFunc(ctx, user)
	}
	return user, nil
}

func (m *MockUserService) UpdateUser(ctx context.Context, id string, upd models.UserUpdate) (*models.User, error) {
	if m.UpdateUserFunc != nil {
		return m.UpdateUserFunc(ctx, id, upd)
	}
	return nil, models.ErrNotFound
}

func (m *MockUserService) DeleteUser(ctx context.Context, id string) error {
	if m.DeleteUserFunc != nil {
		return m.DeleteUserFunc(ctx, id)
	}
	return nil
}

func (m *MockUserService) SearchUsers(ctx context.Context, filter query.Filter) ([]*models.User, error) {
	if m.SearchUsersFunc != nil {
		return m.SearchUsersFunc(ctx, filter)
	}
	return []*models.User{}, nil
}

func (m *MockUserService) ListUsers(ctx context.Context, filter query.Filter, order query.Order, window query.Window) ([]*models.User, query.PageInfo, error) {
	if m.ListUsersFunc != nil {
		return m.ListUsersFunc(ctx, filter, order, window)
	}
	return []*models.User{}, window.PageInfo(0), nil
}

// NewTestRequest creates an HTTP request with JSON body for testing
func NewTestRequest(t *testing.T, method, url string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// WithChiID injects a chi route context carrying the {id} path parameter,
// matching what the router would provide.
func WithChiID(req *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

// WithChiIDFromURL derives the {id} parameter from the request URL's last
// path segment.
func WithChiIDFromURL(req *http.Request) *http.Request {
	parts := strings.Split(strings.Trim(req.URL.Path, "/"), "/")
	return WithChiID(req, parts[len(parts)-1])
}

// AssertEnvelope checks status and decodes the versioned response envelope.
func AssertEnvelope(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int) pkghttp.Envelope {
	assert.Equal(t, expectedStatus, w.Code, "Response status mismatch")
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var env pkghttp.Envelope
	err := json.Unmarshal(w.Body.Bytes(), &env)
	assert.NoError(t, err, "Failed to decode response JSON")
	assert.Equal(t, pkghttp.Version, env.Version, "Version must be echoed in every response")
	return env
}

// AssertErrorEnvelope checks status and the error field of the envelope.
func AssertErrorEnvelope(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedError string) {
	env := AssertEnvelope(t, w, expectedStatus)
	if expectedError != "" {
		assert.Equal(t, expectedError, env.Error)
	} else {
		assert.NotEmpty(t, env.Error)
	}
}

// DecodeData re-marshals the envelope's data field into target.
func DecodeData(t *testing.T, env pkghttp.Envelope, target interface{}) {
	raw, err := json.Marshal(env.Data)
	assert.NoError(t, err)
	assert.NoError(t, json.Unmarshal(raw, target))
}
