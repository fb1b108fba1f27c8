package auth

import (
	"context"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
)

type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (user.UserResponse, error)
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	// Logout revokes the given access token until it expires.
	Logout(ctx context.Context, token string) error
}
