package services

import (
	"context"
	"time"

	"github.com/userdesk/userdesk/internal/models"
	"github.com/userdesk/userdesk/internal/query"
)

// MockUserRepository implements UserRepository for testing
type MockUserRepository struct {
	GetByIDFunc  func(ctx context.Context, id string) (*models.User, error)
	ListAllFunc  func(ctx context.Context) ([]*models.User, error)
	CreateFunc   func(ctx context.Context, user *models.User) (*models.User, error)
	UpdateFunc   func(ctx context.Context, id string, upd models.UserUpdate) (*models.User, error)
	DeleteFunc   func(ctx context.Context, id string) error
	FindManyFunc func(ctx context.Context, pred query.Predicate, order query.Order) ([]*models.User, error)
	FindPageFunc func(ctx context.Context, pred query.Predicate, order query.Order, window query.Window) ([]*models.User, int, error)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, models.ErrNotFound
}

func (m *MockUserRepository) ListAll(ctx context.Context) ([]*models.User, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx)
	}
	return []*models.User{}, nil
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return user, nil
}

func (m *MockUserRepository) Update(ctx context.Context, id string, upd models.UserUpdate) (*models.User, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, upd)
	}
	return nil, models.ErrNotFound
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockUserRepository) FindMany(ctx context.Context, pred query.Predicate, order query.Order) ([]*models.User, error) {
	if m.FindManyFunc != nil {
		return m.FindManyFunc(ctx, pred, order)
	}
	return []*models.User{}, nil
}

func (m *MockUserRepository) FindPage(ctx context.Context, pred query.Predicate, order query.Order, window query.Window) ([]*models.User, int, error) {
	if m.FindPageFunc != nil {
		return m.FindPageFunc(ctx, pred, order, window)
	}
	return []*models.User{}, 0, nil
}

// NewTestUser builds a user record with sensible defaults for tests.
func NewTestUser(id, email, fullName string) *models.User {
	now := time.Now()
	return &models.User{
		ID:        id,
		Email:     email,
		FullName:  fullName,
		Password:  "secret",
		Role:      models.RoleMember,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
