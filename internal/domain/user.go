package domain

import "time"

// Role enumerates the access levels a user can hold.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAgent    Role = "agent"
	RoleAdmin    Role = "admin"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleAgent, RoleAdmin:
		return true
	}
	return false
}

// User is an account in the helpdesk: a customer filing tickets or a
// staff member (agent/admin) working them.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	Role         Role
	CompanyID    *int64
	Company      *Company
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Company groups customer accounts; referenced from users.
type Company struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}
