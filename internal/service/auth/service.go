package auth

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// employeeCodeAttempts bounds regeneration when a random code is already taken.
const employeeCodeAttempts = 5

type AuthServiceImpl struct {
	user.UserRepository
	jwt.Service
	now          func() time.Time
	employeeCode func() string
}

// NewAuthService builds the auth service. A nil clock means time.Now.
func NewAuthService(userRepository user.UserRepository, jwtService jwt.Service, clock func() time.Time) auth.AuthService {
	if clock == nil {
		clock = time.Now
	}
	return &AuthServiceImpl{
		UserRepository: userRepository,
		Service:        jwtService,
		now:            clock,
		employeeCode:   randomEmployeeCode,
	}
}

// randomEmployeeCode returns EMP followed by four digits, 1000 to 9999.
func randomEmployeeCode() string {
	return fmt.Sprintf("EMP%d", 1000+rand.Intn(9000))
}

func (a *AuthServiceImpl) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Register implements auth.AuthService.
func (a *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	// Fail fast before paying for bcrypt
	if _, err := a.UserRepository.GetByEmail(ctx, req.Email); err == nil {
		return user.UserResponse{}, user.ErrEmailExists
	} else if !errors.Is(err, user.ErrUserNotFound) {
		return user.UserResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	hashed, err := a.hashPassword(req.Password)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := a.now().UTC()
	newUser := user.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hashed,
		Role:         req.Role,
		Department:   req.Department,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	for attempt := 1; ; attempt++ {
		newUser.EmployeeCode = a.employeeCode()
		created, err := a.UserRepository.Create(ctx, newUser)
		if err == nil {
			return user.NewUserResponse(created), nil
		}
		if !errors.Is(err, user.ErrEmployeeCodeExists) {
			if errors.Is(err, user.ErrEmailExists) {
				return user.UserResponse{}, err
			}
			return user.UserResponse{}, fmt.Errorf("failed to create user: %w", err)
		}
		if attempt == employeeCodeAttempts {
			return user.UserResponse{}, fmt.Errorf("failed to allocate employee code after %d attempts: %w", attempt, err)
		}
	}
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	userData, err := a.UserRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userData.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	token, expiresAt, err := a.Service.GenerateAccessToken(userData.ID, userData.Email, userData.Role)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	return auth.LoginResponse{
		User:        user.NewUserResponse(userData),
		AccessToken: token,
		ExpiresAt:   expiresAt,
	}, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, token string) error {
	if token == "" {
		return auth.ErrInvalidToken
	}
	if err := a.Service.RevokeToken(ctx, token); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}
