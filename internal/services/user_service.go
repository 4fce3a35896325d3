package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/userdesk/userdesk/internal/models"
	"github.com/userdesk/userdesk/internal/query"
	pkglogger "github.com/userdesk/userdesk/pkg/logger"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	ListAll(ctx context.Context) ([]*models.User, error)
	Create(ctx context.Context, user *models.User) (*models.User, error)
	Update(ctx context.Context, id string, upd models.UserUpdate) (*models.User, error)
	Delete(ctx context.Context, id string) error
	FindMany(ctx context.Context, pred query.Predicate, order query.Order) ([]*models.User, error)
	FindPage(ctx context.Context, pred query.Predicate, order query.Order, window query.Window) ([]*models.User, int, error)
}

// UserService handles user business logic
type UserService struct {
	repo   UserRepository
	logger *slog.Logger
}

func NewUserService(repo UserRepository, logger *slog.Logger) *UserService {
	return &UserService{
		repo:   repo,
		logger: logger,
	}
}

// GetUser retrieves a user by ID. An unknown id is the only failure the API
// distinguishes, as models.ErrNotFound.
func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			s.logger.Info("user not found", slog.String("user_id", id))
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to get user", slog.String("user_id", id), slog.Any("error", err))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// FetchUsers returns every user record.
func (s *UserService) FetchUsers(ctx context.Context) ([]*models.User, error) {
	users, err := s.repo.ListAll(ctx)
	if err != nil {
		s.logger.Error("failed to fetch users", slog.Any("error", err))
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}

	return users, nil
}

// CreateUser writes a new record. Store rejections (including duplicate
// email) surface as a generic failure.
func (s *UserService) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	created, err := s.repo.Create(ctx, user)
	if err != nil {
		s.logger.Error("failed to create user", slog.String("email", pkglogger.SanitizedEmail(user.Email)), slog.Any("error", err))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user created", slog.String("user_id", created.ID))
	return created, nil
}

// UpdateUser applies a sparse field update. An unknown id is not
// distinguished from other store failures.
func (s *UserService) UpdateUser(ctx context.Context, id string, upd models.UserUpdate) (*models.User, error) {
	updated, err := s.repo.Update(ctx, id, upd)
	if err != nil {
		s.logger.Error("failed to update user", slog.String("user_id", id), slog.Any("error", err))
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.logger.Info("user updated", slog.String("user_id", id))
	return updated, nil
}

// DeleteUser removes a record. Deleting an unknown id fails generically.
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete user", slog.String("user_id", id), slog.Any("error", err))
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.logger.Info("user deleted", slog.String("user_id", id))
	return nil
}

// SearchUsers runs a free-text OR search over name and email, optionally
// restricted to a role set. Results use the default ordering.
func (s *UserService) SearchUsers(ctx context.Context, filter query.Filter) ([]*models.User, error) {
	filter.Combinator = query.Any

	users, err := s.repo.FindMany(ctx, filter.Predicate(), query.DefaultOrder)
	if err != nil {
		s.logger.Error("failed to search users", slog.Any("error", err))
		return nil, fmt.Errorf("failed to search users: %w", err)
	}

	return users, nil
}

// ListUsers runs the windowed listing: one predicate drives both the record
// slice and the total count, and the window is reconciled into page
// metadata.
func (s *UserService) ListUsers(ctx context.Context, filter query.Filter, order query.Order, window query.Window) ([]*models.User, query.PageInfo, error) {
	filter.Combinator = query.All

	users, total, err := s.repo.FindPage(ctx, filter.Predicate(), order, window)
	if err != nil {
		s.logger.Error("failed to list users", slog.Any("error", err))
		return nil, query.PageInfo{}, fmt.Errorf("failed to list users: %w", err)
	}

	return users, window.PageInfo(total), nil
}
