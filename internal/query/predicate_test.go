package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/userdesk/userdesk/internal/models"
)

func TestPredicate_NoFilters_Universal(t *testing.T) {
	for _, c := range []Combinator{All, Any} {
		pred := Filter{Combinator: c}.Predicate()

		assert.True(t, pred.Universal())

		clause, args := pred.SQL()
		assert.Empty(t, clause)
		assert.Empty(t, args)
	}
}

func TestPredicate_List_TextFiltersAreANDed(t *testing.T) {
	pred := Filter{
		FullName:   "ann",
		Email:      "example.com",
		Combinator: All,
	}.Predicate()

	clause, args := pred.SQL()
	assert.Equal(t, "(full_name ILIKE $1 AND email ILIKE $2)", clause)
	assert.Equal(t, []any{"%ann%", "%example.com%"}, args)
}

func TestPredicate_Search_TextFiltersAreORed(t *testing.T) {
	pred := Filter{
		FullName:   "ann",
		Email:      "example.com",
		Combinator: Any,
	}.Predicate()

	clause, args := pred.SQL()
	assert.Equal(t, "(full_name ILIKE $1 OR email ILIKE $2)", clause)
	assert.Equal(t, []any{"%ann%", "%example.com%"}, args)
}

func TestPredicate_AbsentFilterEmitsNoLeaf(t *testing.T) {
	// One text filter plus combinator Any must not produce an OR group with
	// an empty branch; the single leaf stands alone.
	pred := Filter{FullName: "ann", Combinator: Any}.Predicate()

	clause, args := pred.SQL()
	assert.Equal(t, "full_name ILIKE $1", clause)
	assert.Len(t, args, 1)
}

func TestPredicate_RoleAlwaysANDsWithORGroup(t *testing.T) {
	pred := Filter{
		FullName:   "ann",
		Email:      "x.com",
		Roles:      []models.Role{models.RoleAdmin, models.RoleEditor},
		Combinator: Any,
	}.Predicate()

	clause, args := pred.SQL()
	assert.Equal(t, "((full_name ILIKE $1 OR email ILIKE $2) AND role = ANY($3))", clause)
	assert.Equal(t, []any{"%ann%", "%x.com%", []string{"admin", "editor"}}, args)
}

func TestPredicate_SingleRoleEquality(t *testing.T) {
	pred := Filter{
		FullName:   "ann",
		Role:       models.RoleMember,
		Combinator: All,
	}.Predicate()

	clause, args := pred.SQL()
	assert.Equal(t, "(full_name ILIKE $1 AND role = $2)", clause)
	assert.Equal(t, []any{"%ann%", "member"}, args)
}

func TestPredicate_RoleOnly(t *testing.T) {
	pred := Filter{Role: models.RoleAdmin, Combinator: Any}.Predicate()

	clause, args := pred.SQL()
	assert.Equal(t, "role = $1", clause)
	assert.Equal(t, []any{"admin"}, args)
}

func TestPredicate_Deterministic(t *testing.T) {
	f := Filter{FullName: "a", Email: "b", Role: models.RoleAdmin, Combinator: All}

	c1, a1 := f.Predicate().SQL()
	c2, a2 := f.Predicate().SQL()
	assert.Equal(t, c1, c2)
	assert.Equal(t, a1, a2)
}

func TestPredicate_EscapesLikeMetacharacters(t *testing.T) {
	pred := Filter{FullName: `50%_\`, Combinator: All}.Predicate()

	_, args := pred.SQL()
	// contains-wrapped, metacharacters escaped
	assert.Equal(t, []any{`%50\%\_\\%`}, args)
}
