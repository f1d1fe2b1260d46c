package ports

import (
	"context"

	"github.com/cityreporter/city-reporter-api/internal/core/domain"
)

// RegisterInput carries the data needed to create a new account.
// New accounts always start as active citizens with zero points.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Phone    string
}

// UpdateProfileInput is a partial profile update; nil fields are untouched.
type UpdateProfileInput struct {
	Name  *string
	Phone *string
}

// LoginResult is the token pair plus profile returned by Login and Refresh.
type LoginResult struct {
	Token        string
	RefreshToken string
	User         *domain.User
}

// AuthService implements registration, login and profile self-service.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	// Refresh validates a refresh token and issues a new token pair.
	Refresh(ctx context.Context, refreshToken string) (*LoginResult, error)
	GetUser(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*domain.User, error)
	ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error
}
