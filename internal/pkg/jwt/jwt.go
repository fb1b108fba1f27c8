package jwt

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const tokenTypeAccess = "access"

type Service interface {
	GenerateAccessToken(userID string, email string, role user.Role) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
	// RevokeToken blacklists a token until its expiry.
	RevokeToken(ctx context.Context, token string) error
	IsTokenRevoked(ctx context.Context, token string) (bool, error)
}

type JWTService struct {
	accessTokenExpiration time.Duration
	tokenAuth             *jwtauth.JWTAuth
	revocations           RevocationStore
	now                   func() time.Time
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string, revocations RevocationStore) (Service, error) {
	expiration, err := time.ParseDuration(accessTokenExpirationTime)
	if err != nil {
		return nil, fmt.Errorf("invalid access token expiration: %w", err)
	}
	return &JWTService{
		accessTokenExpiration: expiration,
		tokenAuth:             jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		revocations:           revocations,
		now:                   time.Now,
	}, nil
}

func (j *JWTService) GenerateAccessToken(userID string, email string, role user.Role) (token string, expiresAt int64, err error) {
	expiresAt = j.now().Add(j.accessTokenExpiration).Unix()

	claims := map[string]interface{}{
		"user_id": userID,
		"email":   email,
		"role":    string(role),
		"type":    tokenTypeAccess,
		"exp":     expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

func (j *JWTService) RevokeToken(ctx context.Context, tokenString string) error {
	token, err := j.tokenAuth.Decode(tokenString)
	if err != nil {
		return fmt.Errorf("decode token: %w", err)
	}

	ttl := token.Expiration().Sub(j.now())
	if ttl <= 0 {
		return nil
	}
	return j.revocations.Revoke(ctx, tokenString, ttl)
}

func (j *JWTService) IsTokenRevoked(ctx context.Context, tokenString string) (bool, error) {
	return j.revocations.IsRevoked(ctx, tokenString)
}
