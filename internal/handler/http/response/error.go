package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		BadRequest(w, "Invalid credentials", nil)
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrTokenRevoked):
		Unauthorized(w, "Token has been revoked")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrManagerAccessRequired):
		Forbidden(w, "Manager access required")
	case errors.Is(err, user.ErrForbidden):
		Forbidden(w, "Not allowed to access another user's attendance")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		BadRequest(w, "Already checked in today", nil)
	case errors.Is(err, attendance.ErrMissingReason):
		BadRequest(w, "Reason is required for late check-in", map[string]string{"reason": "reason is required for late check-in"})
	case errors.Is(err, attendance.ErrNotCheckedIn):
		BadRequest(w, "Not checked in", nil)
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		BadRequest(w, "Already checked out today", nil)
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
