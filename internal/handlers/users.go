package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/userdesk/userdesk/internal/models"
	"github.com/userdesk/userdesk/internal/query"
	pkghttp "github.com/userdesk/userdesk/pkg/http"
)

// UserService defines the interface for user business logic
type UserService interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
	FetchUsers(ctx context.Context) ([]*models.User, error)
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	UpdateUser(ctx context.Context, id string, upd models.UserUpdate) (*models.User, error)
	DeleteUser(ctx context.Context, id string) error
	SearchUsers(ctx context.Context, filter query.Filter) ([]*models.User, error)
	ListUsers(ctx context.Context, filter query.Filter, order query.Order, window query.Window) ([]*models.User, query.PageInfo, error)
}

// UserHandler handles user-related HTTP requests
type UserHandler struct {
	service UserService
}

func NewUserHandler(service UserService) *UserHandler {
	return &UserHandler{
		service: service,
	}
}

// Request/Response DTOs

// CreateUserRequest represents the request body for creating a user. Roles
// is a list on the wire for compatibility with the admin UI, but only the
// first element is persisted.
type CreateUserRequest struct {
	FullName string        `json:"fullName" validate:"required,min=1"`
	Email    string        `json:"email" validate:"required,email"`
	Password string        `json:"password" validate:"required"`
	Roles    []models.Role `json:"roles" validate:"omitempty,dive,oneof=admin editor member"`
}

// UpdateUserRequest represents the request body for updating a user. Every
// field is optional; absent fields leave the record untouched. An empty
// roles list also leaves the role unchanged.
type UpdateUserRequest struct {
	FullName *string       `json:"fullName" validate:"omitempty,min=1"`
	Email    *string       `json:"email" validate:"omitempty,email"`
	Password *string       `json:"password" validate:"omitempty,min=1"`
	Roles    []models.Role `json:"roles" validate:"omitempty,dive,oneof=admin editor member"`
}

// UserResponse represents a user in the HTTP response. The stored password
// is never echoed.
type UserResponse struct {
	ID        string      `json:"id"`
	FullName  string      `json:"fullName"`
	Email     string      `json:"email"`
	Role      models.Role `json:"role"`
	CreatedAt string      `json:"createdAt"`
	UpdatedAt string      `json:"updatedAt"`
}

func userModelToResponse(user *models.User) *UserResponse {
	return &UserResponse{
		ID:        user.ID,
		FullName:  user.FullName,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt: user.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func usersToResponse(users []*models.User) []*UserResponse {
	out := make([]*UserResponse, len(users))
	for i, user := range users {
		out[i] = userModelToResponse(user)
	}
	return out
}

// CreateUser creates a new user
//
// @Summary Create a new user
// @Accept json
// @Param request body CreateUserRequest true "Create user request"
// @Produce json
// @Success 201 {object} UserResponse
// @Failure 400 {object} pkghttp.Envelope
// @Failure 500 {object} pkghttp.Envelope
// @Router /api/v1/users [post]
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	user := &models.User{
		FullName: strings.TrimSpace(req.FullName),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Password: req.Password,
	}

	// Only the first submitted role is persisted.
	if len(req.Roles) > 0 {
		user.Role = req.Roles[0]
	}

	created, err := h.service.CreateUser(r.Context(), user)
	if err != nil {
		pkghttp.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	pkghttp.WriteData(w, http.StatusCreated, userModelToResponse(created))
}

// FetchUsers returns every user record
//
// @Summary Fetch all users
// @Produce json
// @Success 200 {array} UserResponse
// @Failure 500 {object} pkghttp.Envelope
// @Router /api/v1/users [get]
func (h *UserHandler) FetchUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.FetchUsers(r.Context())
	if err != nil {
		pkghttp.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	pkghttp.WriteData(w, http.StatusOK, usersToResponse(users))
}

// GetUser retrieves a user by ID
//
// @Summary Get user by ID
// @Param id path string true "User ID"
// @Produce json
// @Success 200 {object} UserResponse
// @Failure 404 {object} pkghttp.Envelope
// @Failure 500 {object} pkghttp.Envelope
// @Router /api/v1/users/{id} [get]
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	user, err := h.service.GetUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			pkghttp.WriteError(w, http.StatusNotFound, "User not found")
			return
		}
		pkghttp.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	pkghttp.WriteData(w, http.StatusOK, userModelToResponse(user))
}

// UpdateUser applies a sparse field update
//
// @Summary Update a user
// @Param id path string true "User ID"
// @Accept json
// @Param request body UpdateUserRequest true "Update user request"
// @Produce json
// @Success 200 {object} UserResponse
// @Failure 400 {object} pkghttp.Envelope
// @Failure 500 {object} pkghttp.Envelope
// @Router /api/v1/users/{id} [put]
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	var req UpdateUserRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	upd := models.UserUpdate{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
	}

	// An empty roles list leaves the current role in place.
	if len(req.Roles) > 0 {
		upd.Role = &req.Roles[0]
	}

	// An unknown id is not distinguished from other store failures here.
	updated, err := h.service.UpdateUser(r.Context(), userID, upd)
	if err != nil {
		pkghttp.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	pkghttp.WriteData(w, http.StatusOK, userModelToResponse(updated))
}

// DeleteUser removes a user
//
// @Summary Delete a user
// @Param id path string true "User ID"
// @Produce json
// @Success 200 {object} pkghttp.Envelope
// @Failure 500 {object} pkghttp.Envelope
// @Router /api/v1/users/{id} [delete]
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	if err := h.service.DeleteUser(r.Context(), userID); err != nil {
		pkghttp.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	pkghttp.WriteMessage(w, http.StatusOK, "User deleted successfully")
}

// SearchUsers runs the free-text OR search
//
// @Summary Search users by name or email substring
// @Param fullname query string false "Name substring"
// @Param email query string false "Email substring"
// @Param roles query []string false "Restrict to roles"
// @Produce json
// @Success 200 {array} UserResponse
// @Failure 500 {object} pkghttp.Envelope
// @Router /api/v1/users/search [get]
func (h *UserHandler) SearchUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := query.Filter{
		FullName:   q.Get("fullname"),
		Email:      q.Get("email"),
		Roles:      parseRoles(q["roles"]),
		Combinator: query.Any,
	}

	users, err := h.service.SearchUsers(r.Context(), filter)
	if err != nil {
		pkghttp.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	pkghttp.WriteData(w, http.StatusOK, usersToResponse(users))
}

// ListUsers runs the paginated, filterable, sortable listing
//
// @Summary List users with filters, sorting and pagination
// @Param fullname query string false "Name substring"
// @Param email query string false "Email substring"
// @Param role query string false "Exact role"
// @Param sortBy query string false "fullName | email | createdAt"
// @Param sortOrder query string false "asc | desc"
// @Param page query int false "1-based page" default(1)
// @Param limit query int false "Page size" default(10)
// @Produce json
// @Success 200 {object} pkghttp.Envelope
// @Failure 500 {object} pkghttp.Envelope
// @Router /api/v1/users/list [get]
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := query.Filter{
		FullName:   q.Get("fullname"),
		Email:      q.Get("email"),
		Role:       models.Role(q.Get("role")),
		Combinator: query.All,
	}
	order := query.ResolveSort(q.Get("sortBy"), q.Get("sortOrder"))
	window := query.ResolveWindow(q.Get("page"), q.Get("limit"))

	users, info, err := h.service.ListUsers(r.Context(), filter, order, window)
	if err != nil {
		pkghttp.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	pkghttp.WritePage(w, http.StatusOK, usersToResponse(users), info)
}

func parseRoles(raw []string) []models.Role {
	if len(raw) == 0 {
		return nil
	}
	roles := make([]models.Role, 0, len(raw))
	for _, r := range raw {
		if r != "" {
			roles = append(roles, models.Role(r))
		}
	}
	return roles
}
