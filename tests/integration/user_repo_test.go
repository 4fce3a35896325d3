//go:build integration

package integration

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/userdesk/userdesk/internal/models"
	"github.com/userdesk/userdesk/internal/query"
	"github.com/userdesk/userdesk/internal/repositories"
)

func seedUser(t *testing.T, repo *repositories.UserRepository, fullName, email string, role models.Role) *models.User {
	t.Helper()

	user, err := repo.Create(context.Background(), &models.User{
		FullName: fullName,
		Email:    email,
		Password: "p",
		Role:     role,
	})
	require.NoError(t, err)
	return user
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()

	testDB, err := SetupTestDatabase(ctx)
	require.NoError(t, err)
	defer testDB.Teardown(ctx)

	repo := repositories.NewUserRepository(testDB.DB)

	t.Run("create and get by id", func(t *testing.T) {
		defer testDB.CleanupTables(ctx)

		created := seedUser(t, repo, "Ann Lee", "ann@x.com", models.RoleMember)
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, models.RoleMember, created.Role)

		got, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Ann Lee", got.FullName)
		assert.Equal(t, "p", got.Password)
	})

	t.Run("get by unknown id returns not found", func(t *testing.T) {
		_, err := repo.GetByID(ctx, "00000000-0000-0000-0000-000000000000")
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("duplicate email maps to conflict", func(t *testing.T) {
		defer testDB.CleanupTables(ctx)

		seedUser(t, repo, "Ann Lee", "ann@x.com", models.RoleMember)

		_, err := repo.Create(ctx, &models.User{
			FullName: "Other Ann", Email: "ann@x.com", Password: "p",
		})
		assert.ErrorIs(t, err, models.ErrConflict)
	})

	t.Run("sparse update touches only given fields", func(t *testing.T) {
		defer testDB.CleanupTables(ctx)

		created := seedUser(t, repo, "Ann Lee", "ann@x.com", models.RoleMember)

		name := "Ann B. Lee"
		updated, err := repo.Update(ctx, created.ID, models.UserUpdate{FullName: &name})
		require.NoError(t, err)
		assert.Equal(t, "Ann B. Lee", updated.FullName)
		assert.Equal(t, "ann@x.com", updated.Email)
		assert.Equal(t, models.RoleMember, updated.Role)
		assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
	})

	t.Run("delete removes the record", func(t *testing.T) {
		defer testDB.CleanupTables(ctx)

		created := seedUser(t, repo, "Ann Lee", "ann@x.com", models.RoleMember)

		require.NoError(t, repo.Delete(ctx, created.ID))
		assert.ErrorIs(t, repo.Delete(ctx, created.ID), models.ErrNotFound)

		_, err := repo.GetByID(ctx, created.ID)
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("search ORs name and email, ANDs roles", func(t *testing.T) {
		defer testDB.CleanupTables(ctx)

		seedUser(t, repo, "Ann Lee", "ann@x.com", models.RoleMember)
		seedUser(t, repo, "Bob Ray", "bob@ann-mail.com", models.RoleAdmin)
		seedUser(t, repo, "Cara Dune", "cara@y.com", models.RoleMember)

		// "ann" matches Ann Lee by name and Bob by email substring.
		filter := query.Filter{FullName: "ann", Email: "ann", Combinator: query.Any}
		users, err := repo.FindMany(ctx, filter.Predicate(), query.DefaultOrder)
		require.NoError(t, err)
		assert.Len(t, users, 2)

		// Restricting the role set keeps only the member match.
		filter.Roles = []models.Role{models.RoleMember}
		users, err = repo.FindMany(ctx, filter.Predicate(), query.DefaultOrder)
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, "Ann Lee", users[0].FullName)
	})

	t.Run("matching is case-insensitive substring", func(t *testing.T) {
		defer testDB.CleanupTables(ctx)

		seedUser(t, repo, "Ann Lee", "ann@x.com", models.RoleMember)

		filter := query.Filter{FullName: "aNN", Combinator: query.Any}
		users, err := repo.FindMany(ctx, filter.Predicate(), query.DefaultOrder)
		require.NoError(t, err)
		assert.Len(t, users, 1)
	})

	t.Run("list pages with consistent count", func(t *testing.T) {
		defer testDB.CleanupTables(ctx)

		for i := 0; i < 23; i++ {
			seedUser(t, repo, "Ann Lee", string(rune('a'+i))+"@x.com", models.RoleMember)
			time.Sleep(time.Millisecond) // distinct created_at for stable ordering
		}

		filter := query.Filter{FullName: "ann", Combinator: query.All}
		window := query.Window{Page: 3, PageSize: 10}

		users, total, err := repo.FindPage(ctx, filter.Predicate(), query.DefaultOrder, window)
		require.NoError(t, err)
		assert.Equal(t, 23, total)
		assert.Len(t, users, 3)
		assert.Equal(t, 3, window.PageInfo(total).TotalPages)
	})

	t.Run("page beyond range is empty, totals intact", func(t *testing.T) {
		defer testDB.CleanupTables(ctx)

		seedUser(t, repo, "Ann Lee", "ann@x.com", models.RoleMember)

		users, total, err := repo.FindPage(ctx, query.Predicate{}, query.DefaultOrder, query.Window{Page: 9, PageSize: 10})
		require.NoError(t, err)
		assert.Empty(t, users)
		assert.Equal(t, 1, total)
	})

	t.Run("default order is newest first", func(t *testing.T) {
		defer testDB.CleanupTables(ctx)

		seedUser(t, repo, "First", "first@x.com", models.RoleMember)
		time.Sleep(5 * time.Millisecond)
		seedUser(t, repo, "Second", "second@x.com", models.RoleMember)

		users, _, err := repo.FindPage(ctx, query.Predicate{}, query.DefaultOrder, query.Window{Page: 1, PageSize: 10})
		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, "Second", users[0].FullName)
	})

	t.Run("sort by email ascending", func(t *testing.T) {
		defer testDB.CleanupTables(ctx)

		seedUser(t, repo, "B", "b@x.com", models.RoleMember)
		seedUser(t, repo, "A", "a@x.com", models.RoleMember)

		order := query.ResolveSort("email", "")
		users, _, err := repo.FindPage(ctx, query.Predicate{}, order, query.Window{Page: 1, PageSize: 10})
		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, "a@x.com", users[0].Email)
	})
}
