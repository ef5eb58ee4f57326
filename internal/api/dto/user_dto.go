package dto

import (
	"time"

	"github.com/supportdesk/helpdesk-service/internal/domain"
)

// CreateUserRequest payload.
type CreateUserRequest struct {
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	Password  string      `json:"password"`
	Role      domain.Role `json:"role"`
	CompanyID *int64      `json:"company_id"`
}

// UpdateUserRequest payload. Absent fields stay unchanged.
type UpdateUserRequest struct {
	Username  *string      `json:"username"`
	Email     *string      `json:"email"`
	Password  *string      `json:"password"`
	Role      *domain.Role `json:"role"`
	CompanyID *int64       `json:"company_id"`
}

// UserResponse represents an account.
type UserResponse struct {
	ID        int64            `json:"id"`
	Username  string           `json:"username"`
	Email     string           `json:"email"`
	Role      domain.Role      `json:"role"`
	CompanyID *int64           `json:"company_id"`
	Company   *CompanyResponse `json:"company,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

// NewUserResponse maps a domain user.
func NewUserResponse(user *domain.User) UserResponse {
	resp := UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Role:      user.Role,
		CompanyID: user.CompanyID,
		CreatedAt: user.CreatedAt,
	}
	if user.Company != nil {
		company := NewCompanyResponse(user.Company)
		resp.Company = &company
	}
	return resp
}
