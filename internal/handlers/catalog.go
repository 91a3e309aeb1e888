package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ironstrike-games/studio-api/internal/gateway"
	"github.com/ironstrike-games/studio-api/types"
)

// CatalogHandler serves the games and changelog catalogs.
type CatalogHandler struct {
	gw *gateway.Gateway
}

// NewCatalogHandler constructs a CatalogHandler over the gateway.
func NewCatalogHandler(gw *gateway.Gateway) *CatalogHandler {
	return &CatalogHandler{gw: gw}
}

// CatalogRouter registers catalog routes on the given router. Reads are
// public; writes require an Admin session.
func CatalogRouter(r chi.Router, gw *gateway.Gateway, auth *AuthHandler) {
	handler := NewCatalogHandler(gw)

	r.Get("/games", handler.ListGames)
	r.Get("/changelogs", handler.ListChangelogs)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth)
		r.Use(RequireAdmin)

		r.Post("/games", handler.SaveGame)
		r.Delete("/games/{id}", handler.DeleteGame)
		r.Post("/changelogs", handler.SaveChangelog)
		r.Delete("/changelogs/{id}", handler.DeleteChangelog)
	})
}

// ListGames returns the game catalog per the configured source policy.
func (h *CatalogHandler) ListGames(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.gw.ListGames(r.Context()))
}

// ListChangelogs returns the changelog feed per the configured source policy.
func (h *CatalogHandler) ListChangelogs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.gw.ListChangelogs(r.Context()))
}

// SaveGame creates or updates a game. The id field in the body decides which:
// empty or unsaved-prefixed ids insert, anything else updates in place.
func (h *CatalogHandler) SaveGame(w http.ResponseWriter, r *http.Request) {
	var game types.Game
	if err := json.NewDecoder(r.Body).Decode(&game); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if game.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	id := types.ParseGameID(game.ID)
	saved, err := h.gw.SaveGame(r.Context(), id, game)
	if err != nil {
		writeGatewayError(w, err)
		return
	}

	status := http.StatusOK
	if id.IsNew() {
		status = http.StatusCreated
	}
	writeJSON(w, status, saved)
}

// DeleteGame removes a game by id. Deleting an absent id succeeds.
func (h *CatalogHandler) DeleteGame(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.gw.DeleteGame(r.Context(), id); err != nil {
		writeGatewayError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SaveChangelog creates or updates a changelog entry.
func (h *CatalogHandler) SaveChangelog(w http.ResponseWriter, r *http.Request) {
	var log types.Changelog
	if err := json.NewDecoder(r.Body).Decode(&log); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if log.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	id := types.ParseChangelogID(log.ID)
	saved, err := h.gw.SaveChangelog(r.Context(), id, log)
	if err != nil {
		writeGatewayError(w, err)
		return
	}

	status := http.StatusOK
	if id.IsNew() {
		status = http.StatusCreated
	}
	writeJSON(w, status, saved)
}

// DeleteChangelog removes a changelog entry by id.
func (h *CatalogHandler) DeleteChangelog(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.gw.DeleteChangelog(r.Context(), id); err != nil {
		writeGatewayError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
