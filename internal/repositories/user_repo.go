package repositories

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/userdesk/userdesk/internal/database"
	"github.com/userdesk/userdesk/internal/models"
	"github.com/userdesk/userdesk/internal/query"
)

const userColumns = "id, full_name, email, password, role, created_at, updated_at"

type UserRepository struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{db: db}
}

// rowScanner covers both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUserRow(scanner rowScanner) (*models.User, error) {
	var user models.User
	err := scanner.Scan(
		&user.ID, &user.FullName, &user.Email, &user.Password,
		&user.Role, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}
	return &user, nil
}

func scanUserRows(rows pgx.Rows) ([]*models.User, error) {
	defer rows.Close()

	users := make([]*models.User, 0)

	for rows.Next() {
		user, err := scanUserRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return users, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUserRow(r.db.Pool.QueryRow(ctx, q, id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUserRow(r.db.Pool.QueryRow(ctx, q, email))
}

// ListAll returns every user record, newest first.
func (r *UserRepository) ListAll(ctx context.Context) ([]*models.User, error) {
	q := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`

	rows, err := r.db.Pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}

	return scanUserRows(rows)
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	user.ID = uuid.New().String()

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	if user.Role == "" {
		user.Role = models.DefaultRole
	}

	q := `
		INSERT INTO users (id, full_name, email, password, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + userColumns

	return scanUserRow(r.db.Pool.QueryRow(ctx, q,
		user.ID, user.FullName, user.Email, user.Password,
		user.Role, user.CreatedAt, user.UpdatedAt,
	))
}

// Update applies only the fields present in upd and returns the updated
// record. An unknown id surfaces as models.ErrNotFound.
func (r *UserRepository) Update(ctx context.Context, id string, upd models.UserUpdate) (*models.User, error) {
	set := make([]string, 0, 5)
	args := make([]any, 0, 6)

	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, column+" = $"+strconv.Itoa(len(args)))
	}

	if upd.FullName != nil {
		add("full_name", *upd.FullName)
	}
	if upd.Email != nil {
		add("email", *upd.Email)
	}
	if upd.Password != nil {
		add("password", *upd.Password)
	}
	if upd.Role != nil {
		add("role", string(*upd.Role))
	}
	add("updated_at", time.Now())

	args = append(args, id)
	q := `UPDATE users SET ` + strings.Join(set, ", ") +
		` WHERE id = $` + strconv.Itoa(len(args)) +
		` RETURNING ` + userColumns

	return scanUserRow(r.db.Pool.QueryRow(ctx, q, args...))
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return database.MapPostgresError(err)
	}

	if result.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}

// FindMany returns every record matching the predicate in the given order,
// without windowing. Used by the search endpoint.
func (r *UserRepository) FindMany(ctx context.Context, pred query.Predicate, order query.Order) ([]*models.User, error) {
	clause, args := pred.SQL()

	q := `SELECT ` + userColumns + ` FROM users`
	if clause != "" {
		q += ` WHERE ` + clause
	}
	q += ` ORDER BY ` + order.SQL()

	rows, err := r.db.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}

	return scanUserRows(rows)
}

// FindPage returns one window of records matching the predicate together
// with the total match count. Both reads run inside a single repeatable-read
// snapshot so the count is consistent with the returned slice.
func (r *UserRepository) FindPage(ctx context.Context, pred query.Predicate, order query.Order, window query.Window) ([]*models.User, int, error) {
	clause, args := pred.SQL()

	where := ""
	if clause != "" {
		where = ` WHERE ` + clause
	}

	selectQ := `SELECT ` + userColumns + ` FROM users` + where +
		` ORDER BY ` + order.SQL() +
		` LIMIT $` + strconv.Itoa(len(args)+1) +
		` OFFSET $` + strconv.Itoa(len(args)+2)
	selectArgs := append(append([]any{}, args...), window.PageSize, window.Offset())

	countQ := `SELECT COUNT(*) FROM users` + where

	var users []*models.User
	var total int

	err := r.db.WithSnapshot(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, selectQ, selectArgs...)
		if err != nil {
			return fmt.Errorf("failed to query users: %w", err)
		}

		users, err = scanUserRows(rows)
		if err != nil {
			return err
		}

		if err := tx.QueryRow(ctx, countQ, args...).Scan(&total); err != nil {
			return fmt.Errorf("failed to count users: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}
