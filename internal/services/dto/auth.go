package dto

import (
	"time"

	"bloodbank_backend/internal/models"
)

// Caller is the authenticated user as resolved by the auth middleware.
type Caller struct {
	UserID string
	Role   models.UserRole
}

func (c Caller) IsAdmin() bool {
	return c.Role == models.UserRoleAdmin
}

type RegisterRequest struct {
	Username        string          `json:"username" validate:"required,min=4,max=25"`
	Email           string          `json:"email" validate:"required,email,max=120"`
	Password        string          `json:"password" validate:"required,min=6"`
	ConfirmPassword string          `json:"confirm_password" validate:"required,eqfield=Password"`
	Role            models.UserRole `json:"role" validate:"required,is-user-role"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UserResponse struct {
	ID        string          `json:"id"`
	Username  string          `json:"username"`
	Email     string          `json:"email"`
	Role      models.UserRole `json:"role"`
	IsActive  bool            `json:"is_active"`
	CreatedAt time.Time       `json:"created_at"`
}

type LoginResponse struct {
	AccessToken string        `json:"access_token"`
	ExpiresAt   time.Time     `json:"expires_at"`
	User        *UserResponse `json:"user"`
}

func NewUserResponse(u *models.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}
