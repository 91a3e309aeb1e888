package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ironstrike-games/studio-api/internal/gateway"
	"github.com/ironstrike-games/studio-api/types"
)

type contextKey string

const contextProfileKey contextKey = "profile"

// ErrorResponse is the error payload returned by every endpoint. Code is a
// stable machine-readable kind so the UI can present the specific failure.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func profileFromContext(ctx context.Context) (types.UserProfile, bool) {
	profile, ok := ctx.Value(contextProfileKey).(types.UserProfile)
	return profile, ok
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

// writeGatewayError maps the gateway error taxonomy onto HTTP statuses and
// stable codes.
func writeGatewayError(w http.ResponseWriter, err error) {
	status, code := http.StatusInternalServerError, "internal"
	switch {
	case errors.Is(err, gateway.ErrAuth):
		status, code = http.StatusUnauthorized, "auth_failed"
	case errors.Is(err, gateway.ErrConfirmationRequired):
		status, code = http.StatusForbidden, "confirmation_required"
	case errors.Is(err, gateway.ErrProfileMissing):
		status, code = http.StatusConflict, "profile_missing"
	case errors.Is(err, gateway.ErrProfileCreation):
		status, code = http.StatusInternalServerError, "profile_creation_failed"
	case errors.Is(err, gateway.ErrPayloadTooLarge):
		status, code = http.StatusRequestEntityTooLarge, "payload_too_large"
	case errors.Is(err, gateway.ErrAuthorization):
		status, code = http.StatusForbidden, "forbidden"
	case errors.Is(err, gateway.ErrUpdate):
		status, code = http.StatusInternalServerError, "update_failed"
	case errors.Is(err, gateway.ErrDelete):
		status, code = http.StatusInternalServerError, "delete_failed"
	case errors.Is(err, gateway.ErrWrite):
		status, code = http.StatusInternalServerError, "write_failed"
	}
	writeJSON(w, status, ErrorResponse{Error: err.Error(), Code: code})
}
