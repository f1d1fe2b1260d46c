package handler

import (
	"time"

	"github.com/cityreporter/city-reporter-api/internal/core/domain"
)

type registerRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name"     validate:"required,max=100"`
	Phone    string `json:"phoneNumber" validate:"max=20"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type updateProfileRequest struct {
	Name  *string `json:"name"        validate:"omitempty,min=1,max=100"`
	Phone *string `json:"phoneNumber" validate:"omitempty,max=20"`
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

// userResponse is the transport view of an account; the JSON contract
// matches the mobile client and is owned here, not by the domain type.
type userResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Phone     string    `json:"phoneNumber,omitempty"`
	Role      string    `json:"role"`
	Points    int       `json:"points"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

type loginResponse struct {
	Token        string       `json:"token"`
	RefreshToken string       `json:"refreshToken"`
	User         userResponse `json:"user"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Phone:     u.Phone,
		Role:      string(u.Role),
		Points:    u.Points,
		IsActive:  u.Active,
		CreatedAt: u.CreatedAt,
	}
}
