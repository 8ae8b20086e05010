package entities

import (
	"time"

	"github.com/google/uuid"
)

// UserRole represents an actor role
type UserRole string

const (
	UserRoleCustomer UserRole = "customer"
	UserRoleStaff    UserRole = "staff"
	UserRoleAdmin    UserRole = "admin"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r string) bool {
	switch UserRole(r) {
	case UserRoleCustomer, UserRoleStaff, UserRoleAdmin:
		return true
	}
	return false
}

// User represents a login identity
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Role         UserRole  `json:"role"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Actor identifies who is performing an operation. Role is taken from the
// verified auth token; the core trusts it as given.
type Actor struct {
	UserID uuid.UUID
	Role   UserRole
}

// IsStaffOrAdmin reports whether the actor holds a back-office role.
func (a Actor) IsStaffOrAdmin() bool {
	return a.Role == UserRoleStaff || a.Role == UserRoleAdmin
}

// AccessScope says whether an operation sees the actor's own records or all
// records. It is resolved once at the boundary from the actor role, so the
// core never branches on roles for queries.
type AccessScope int

const (
	ScopeOwn AccessScope = iota
	ScopeAll
)

// CreateUserInput represents input for admin user creation
type CreateUserInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

// LoginInput represents login credentials
type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}
