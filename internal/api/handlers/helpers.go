// Package handlers implements the HTTP endpoints of the API server.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/gymdesk/gymdesk/internal/pkg/errors"
	"github.com/gymdesk/gymdesk/internal/pkg/utils"
	"github.com/gymdesk/gymdesk/internal/pkg/validator"
)

// decodeAndValidate decodes the JSON body into dst and runs struct validation
func decodeAndValidate(r *http.Request, v *validator.Validator, dst interface{}) *errors.AppError {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.BadRequest("invalid JSON body")
	}
	if verrs := v.Validate(dst); len(verrs) > 0 {
		return errors.ValidationError("validation failed", verrs)
	}
	return nil
}

// idParam extracts a positive integer id from the route
func idParam(r *http.Request, name string) (int64, *errors.AppError) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.BadRequest("invalid " + name)
	}
	return id, nil
}

// respondErr writes any error as a JSON error envelope, wrapping non-AppErrors
// as internal errors so no raw messages leak.
func respondErr(w http.ResponseWriter, err error) {
	if appErr, ok := err.(*errors.AppError); ok {
		utils.WriteError(w, appErr)
		return
	}
	utils.WriteError(w, errors.Internal("internal server error", err))
}
