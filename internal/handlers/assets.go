package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ironstrike-games/studio-api/internal/assets"
	"github.com/ironstrike-games/studio-api/internal/gateway"
)

const maxMultipartMemory = 8 << 20

// AssetHandler accepts image uploads and hands back public URLs, so catalog
// entries can reference images instead of embedding them inline.
type AssetHandler struct {
	store        *assets.Store
	maxImageSize int64
}

// NewAssetHandler constructs an AssetHandler over the asset store.
func NewAssetHandler(store *assets.Store, maxImageSize int64) *AssetHandler {
	return &AssetHandler{store: store, maxImageSize: maxImageSize}
}

// AssetRouter registers asset routes. Uploads require an Admin session.
func AssetRouter(r chi.Router, store *assets.Store, maxImageSize int64, auth *AuthHandler) {
	handler := NewAssetHandler(store, maxImageSize)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth)
		r.Use(RequireAdmin)

		r.Post("/assets/images", handler.UploadImage)
	})
}

// UploadImageResponse carries the public URL of a stored image.
type UploadImageResponse struct {
	URL string `json:"url"`
}

// UploadImage stores the uploaded image and returns its public URL.
func (h *AssetHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	if h.maxImageSize > 0 && header.Size > h.maxImageSize {
		writeGatewayError(w, gateway.ErrPayloadTooLarge)
		return
	}

	url, err := h.store.UploadImage(r.Context(), file, header.Size, header.Header.Get("Content-Type"))
	if err != nil {
		if errors.Is(err, assets.ErrUnsupportedContentType) {
			writeError(w, http.StatusUnsupportedMediaType, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "upload failed")
		return
	}

	writeJSON(w, http.StatusCreated, UploadImageResponse{URL: url})
}
