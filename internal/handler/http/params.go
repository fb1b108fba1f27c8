package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

// pathUserID returns the {param} URL parameter when it is a well-formed user ID.
func pathUserID(r *http.Request, param string) (string, error) {
	id := chi.URLParam(r, param)
	if !validator.IsValidUUID(id) {
		return "", validator.ValidationErrors{{
			Field:   param,
			Message: param + " must be a valid id",
		}}
	}
	return id, nil
}

// decodeOptionalJSON decodes the body into dst and accepts an empty body.
func decodeOptionalJSON(r *http.Request, dst any) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
