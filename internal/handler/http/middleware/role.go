package middleware

import (
	"context"
	"net/http"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
)

// Identity is the caller as described by the verified token.
type Identity struct {
	UserID string
	Email  string
	Role   user.Role
}

func (i Identity) IsManager() bool {
	return i.Role == user.RoleManager
}

// CanAccess reports whether the caller may read userID's attendance.
func (i Identity) CanAccess(userID string) bool {
	return i.UserID == userID || i.IsManager()
}

// IdentityFromContext reads the caller from the token claims.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Identity{}, false
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return Identity{}, false
	}
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)

	return Identity{UserID: userID, Email: email, Role: user.Role(role)}, true
}

// RequireManager requires manager role
func RequireManager(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r.Context())
		if !ok || !identity.IsManager() {
			response.HandleError(w, user.ErrManagerAccessRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireSelfOrManager lets the owner of the {param} user ID or any manager through.
func RequireSelfOrManager(param string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := IdentityFromContext(r.Context())
			if !ok || !identity.CanAccess(chi.URLParam(r, param)) {
				response.HandleError(w, user.ErrForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
