package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ironstrike-games/studio-api/internal/gateway"
)

// RosterHandler serves the Admin user-management operations.
type RosterHandler struct {
	gw *gateway.Gateway
}

// NewRosterHandler constructs a RosterHandler over the gateway.
func NewRosterHandler(gw *gateway.Gateway) *RosterHandler {
	return &RosterHandler{gw: gw}
}

// RosterRouter registers the admin routes. Every route requires an Admin
// session; the gateway re-checks the role as a second layer.
func RosterRouter(r chi.Router, gw *gateway.Gateway, auth *AuthHandler) {
	handler := NewRosterHandler(gw)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth)
		r.Use(RequireAdmin)

		r.Get("/admin/profiles", handler.ListProfiles)
		r.Delete("/admin/profiles/{id}", handler.DeleteProfile)
		r.Post("/admin/reset", handler.ResetToDefaults)
	})
}

// ListProfiles returns every registered profile.
func (h *RosterHandler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	caller, ok := profileFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	profiles, err := h.gw.ListAllProfiles(r.Context(), caller)
	if err != nil {
		writeGatewayError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profiles)
}

// DeleteProfile removes a non-Admin profile and returns the fresh roster.
func (h *RosterHandler) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	caller, ok := profileFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	profiles, err := h.gw.DeleteProfile(r.Context(), caller, chi.URLParam(r, "id"))
	if err != nil {
		writeGatewayError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profiles)
}

// ResetToDefaults wipes stored games and changelogs so reads fall back to
// the built-in catalog.
func (h *RosterHandler) ResetToDefaults(w http.ResponseWriter, r *http.Request) {
	caller, ok := profileFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.gw.ResetToDefaults(r.Context(), caller); err != nil {
		writeGatewayError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
