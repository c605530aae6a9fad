package models

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Role is the closed set of account roles recognised by the API.
type Role string

const (
	RoleSuperuser       Role = "superuser"
	RoleDepartmentAdmin Role = "department_admin"
	RoleUser            Role = "user"
)

// ParseRole normalises a stored role string. The legacy "admin" spelling maps
// to department_admin; barangay-scoped roles are not recognised.
func ParseRole(raw string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(RoleSuperuser):
		return RoleSuperuser, true
	case string(RoleDepartmentAdmin), "admin":
		return RoleDepartmentAdmin, true
	case string(RoleUser):
		return RoleUser, true
	default:
		return "", false
	}
}

// User represents an application account stored in the users table.
type User struct {
	ID           string    `db:"id" json:"id"`
	FullName     string    `db:"full_name" json:"fullName"`
	Role         Role      `db:"role" json:"role"`
	DepartmentID *string   `db:"department_id" json:"departmentId,omitempty"`
	Active       bool      `db:"active" json:"active"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

// Actor is the authenticated caller of a voucher or benefit operation.
type Actor struct {
	ID           string
	Name         string
	Role         Role
	DepartmentID string
}

// JWTClaims represents the JWT payload for access tokens.
type JWTClaims struct {
	UserID       string `json:"userId"`
	FullName     string `json:"fullName"`
	Role         Role   `json:"role"`
	DepartmentID string `json:"departmentId,omitempty"`
	jwt.RegisteredClaims
}

// Actor converts the token claims into the caller identity.
func (c *JWTClaims) Actor() Actor {
	return Actor{ID: c.UserID, Name: c.FullName, Role: c.Role, DepartmentID: c.DepartmentID}
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Count  int `json:"count"`
}
