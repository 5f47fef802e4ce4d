package rfq

import (
	"encoding/json"
	"net/http"
	"net/mail"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"bommatch-service/internal/metrics"
)

type submitRequest struct {
	Email   string `json:"email"`
	Company string `json:"company"`
	Phone   string `json:"phone"`
	Lines   []Line `json:"lines"`
}

// Submit serves POST /api/rfq: snapshot confirmed cart lines into a quote
// request and hand back its public reference.
func Submit(repo *Repo, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()

		var req submitRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, "invalid body: "+err.Error(), http.StatusBadRequest)
			return
		}
		if _, err := mail.ParseAddress(req.Email); err != nil {
			writeError(w, "invalid email", http.StatusUnprocessableEntity)
			return
		}
		if len(req.Lines) == 0 {
			writeError(w, "at least one line required", http.StatusUnprocessableEntity)
			return
		}
		for _, l := range req.Lines {
			if l.ProductID == "" || l.Quantity <= 0 {
				writeError(w, "every line needs a product and a positive quantity", http.StatusUnprocessableEntity)
				return
			}
		}

		q, err := repo.Create(r.Context(), RFQ{
			Email:   strings.ToLower(strings.TrimSpace(req.Email)),
			Company: strings.TrimSpace(req.Company),
			Phone:   strings.TrimSpace(req.Phone),
			Lines:   req.Lines,
		})
		if err != nil {
			logger.Error().Err(err).Msg("rfq create")
			writeError(w, "could not create rfq", http.StatusInternalServerError)
			return
		}

		metrics.RFQSubmitted.Inc()
		logger.Info().Str("ref", q.Ref).Int("lines", len(q.Lines)).Msg("rfq submitted")
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(q)
	}
}

// Get serves GET /api/rfq/{ref}.
func Get(repo *Repo, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ref := chi.URLParam(r, "ref")
		q, err := repo.GetByRef(r.Context(), ref)
		if err != nil {
			logger.Error().Err(err).Str("ref", ref).Msg("rfq get")
			writeError(w, "lookup failed", http.StatusInternalServerError)
			return
		}
		if q == nil {
			writeError(w, "rfq not found", http.StatusNotFound)
			return
		}
		writeJSON(w, q)
	}
}

// List serves GET /api/rfq?email=.
func List(repo *Repo, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("email")))
		if email == "" {
			writeError(w, "email query parameter required", http.StatusBadRequest)
			return
		}
		qs, err := repo.ListByEmail(r.Context(), email)
		if err != nil {
			logger.Error().Err(err).Msg("rfq list")
			writeError(w, "lookup failed", http.StatusInternalServerError)
			return
		}
		writeJSON(w, map[string]any{"rfqs": qs})
	}
}

// UpdateStatusHandler serves PATCH /api/rfq/{ref}/status.
func UpdateStatusHandler(repo *Repo, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		ref := chi.URLParam(r, "ref")

		var body struct {
			Status Status `json:"status"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, "invalid body: "+err.Error(), http.StatusBadRequest)
			return
		}

		q, err := repo.UpdateStatus(r.Context(), ref, body.Status)
		if err != nil {
			writeError(w, err.Error(), http.StatusConflict)
			return
		}
		if q == nil {
			writeError(w, "rfq not found", http.StatusNotFound)
			return
		}
		logger.Info().Str("ref", ref).Str("status", string(body.Status)).Msg("rfq status updated")
		writeJSON(w, q)
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
