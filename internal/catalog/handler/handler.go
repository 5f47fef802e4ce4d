package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"bommatch-service/internal/catalog"
)

// List serves GET /api/products.
func List(repo catalog.Repository, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products, err := repo.ListProducts(r.Context())
		if err != nil {
			logger.Error().Err(err).Msg("list products")
			writeError(w, "catalog unavailable", http.StatusServiceUnavailable)
			return
		}
		writeJSON(w, map[string]any{"products": products})
	}
}

// Get serves GET /api/products/{slug}.
func Get(repo catalog.Repository, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		p, err := repo.GetProductBySlug(r.Context(), slug)
		if err != nil {
			logger.Error().Err(err).Str("slug", slug).Msg("get product")
			writeError(w, "catalog unavailable", http.StatusServiceUnavailable)
			return
		}
		if p == nil {
			writeError(w, "product not found", http.StatusNotFound)
			return
		}
		writeJSON(w, p)
	}
}

// Categories serves GET /api/categories.
func Categories(repo catalog.Repository, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cats, err := repo.ListCategories(r.Context())
		if err != nil {
			logger.Error().Err(err).Msg("list categories")
			writeError(w, "catalog unavailable", http.StatusServiceUnavailable)
			return
		}
		writeJSON(w, map[string]any{"categories": cats})
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
