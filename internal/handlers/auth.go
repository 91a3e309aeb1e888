package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/ironstrike-games/studio-api/internal/gateway"
	"github.com/ironstrike-games/studio-api/types"
)

// AuthHandler exposes the session/credential operations to the UI layer.
type AuthHandler struct {
	gw *gateway.Gateway
}

// NewAuthHandler constructs an AuthHandler over the gateway.
func NewAuthHandler(gw *gateway.Gateway) *AuthHandler {
	return &AuthHandler{gw: gw}
}

// AuthRouter registers auth routes on the given router.
func AuthRouter(r chi.Router, gw *gateway.Gateway) {
	handler := NewAuthHandler(gw)

	r.Post("/signup", handler.Signup)
	r.Post("/login", handler.Login)
	r.Post("/logout", handler.Logout)
	r.Get("/session", handler.Session)
	r.With(handler.RequireAuth).Put("/profile", handler.UpdateProfile)
}

// RequireAuth resolves the bearer token into the caller's profile and
// injects it into the request context. Requests without a valid session and
// profile are rejected.
func (h *AuthHandler) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := bearerToken(r)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		profile, ok := h.gw.CurrentSession(r.Context(), token)
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		ctx := context.WithValue(r.Context(), contextProfileKey, profile)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin rejects callers whose profile is not an Admin. Must run after
// RequireAuth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		profile, ok := profileFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		if profile.Role != types.RoleAdmin {
			writeError(w, http.StatusForbidden, "admin role required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SessionResponse struct {
	Token string            `json:"token"`
	User  types.UserProfile `json:"user"`
}

// Signup creates a credential record and profile, returning a session.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if req.Name == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "missing required fields")
		return
	}

	profile, token, err := h.gw.Signup(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeGatewayError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, SessionResponse{Token: token, User: profile})
}

// Login verifies credentials and returns a session.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "missing credentials")
		return
	}

	profile, token, err := h.gw.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeGatewayError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, SessionResponse{Token: token, User: profile})
}

// Logout invalidates the session. The UI always observes success; provider
// failures are logged server-side only.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if token, err := bearerToken(r); err == nil {
		_ = h.gw.Logout(r.Context(), token)
	}
	w.WriteHeader(http.StatusNoContent)
}

// Session returns the profile behind the presented token, or 204 when no
// valid session exists.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	token, err := bearerToken(r)
	if err != nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	profile, ok := h.gw.CurrentSession(r.Context(), token)
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// UpdateProfile applies name/avatar changes to the caller's own profile.
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	caller, ok := profileFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req types.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	// Callers can only update themselves; id, email, and role in the body
	// are ignored.
	req.ID = caller.ID
	updated, err := h.gw.UpdateProfile(r.Context(), req)
	if err != nil {
		writeGatewayError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func bearerToken(r *http.Request) (string, error) {
	auth := strings.TrimSpace(r.Header.Get("Authorization"))
	if auth == "" {
		return "", errors.New("missing authorization")
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid authorization")
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", errors.New("invalid authorization")
	}
	return token, nil
}
