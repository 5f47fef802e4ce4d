package users

import (
	"encoding/json"
	"net/http"
	"net/mail"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Register serves POST /api/users. Registration is idempotent per email.
func Register(repo *Repo, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()

		var req struct {
			Email   string `json:"email"`
			Name    string `json:"name"`
			Company string `json:"company"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, "invalid body: "+err.Error(), http.StatusBadRequest)
			return
		}
		if _, err := mail.ParseAddress(req.Email); err != nil {
			writeError(w, "invalid email", http.StatusUnprocessableEntity)
			return
		}
		if strings.TrimSpace(req.Name) == "" {
			writeError(w, "name required", http.StatusUnprocessableEntity)
			return
		}

		u, err := repo.Create(r.Context(), req.Email, strings.TrimSpace(req.Name), strings.TrimSpace(req.Company))
		if err != nil {
			logger.Error().Err(err).Msg("user create")
			writeError(w, "could not create user", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(u)
	}
}

// Get serves GET /api/users/{id}.
func Get(repo *Repo, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		u, err := repo.GetByID(r.Context(), id)
		if err != nil {
			logger.Error().Err(err).Str("id", id).Msg("user get")
			writeError(w, "lookup failed", http.StatusInternalServerError)
			return
		}
		if u == nil {
			writeError(w, "user not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_ = json.NewEncoder(w).Encode(u)
	}
}

func writeError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
