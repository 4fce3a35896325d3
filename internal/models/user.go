package models

import (
	"time"
)

// Role is the single role a user holds. The API accepts a list of roles for
// wire compatibility with the admin UI, but a record always carries exactly
// one role (the first element of the submitted list).
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleMember Role = "member"
)

// DefaultRole is assigned when a create request carries no roles.
const DefaultRole = RoleMember

type User struct {
	ID        string
	FullName  string
	Email     string
	Password  string // stored verbatim; see DESIGN.md
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserUpdate carries a sparse set of field changes. Nil fields are left
// untouched by the repository.
type UserUpdate struct {
	FullName *string
	Email    *string
	Password *string
	Role     *Role
}
