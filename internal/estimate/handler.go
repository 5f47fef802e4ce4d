package estimate

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"bommatch-service/internal/catalog"
	"bommatch-service/internal/metrics"
)

type request struct {
	ProductID string `json:"productId"`
	Config    Config `json:"config"`
}

type response struct {
	Weight Weight `json:"weight"`
	Price  Price  `json:"price"`
	// presentation-rounded copies; raw floats stay in Price
	Display struct {
		UnitPrice float64 `json:"unitPrice"`
		Subtotal  float64 `json:"subtotal"`
		VAT       float64 `json:"vat"`
		Total     float64 `json:"total"`
		TotalKg   float64 `json:"totalKg"`
	} `json:"display"`
}

// Handler serves POST /api/estimate: look the product up, run the pure
// estimator, round only the display copy.
func Handler(repo catalog.Repository, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()

		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, "invalid body: "+err.Error(), http.StatusBadRequest)
			return
		}

		p, err := repo.GetProductByID(r.Context(), req.ProductID)
		if err != nil {
			logger.Error().Err(err).Str("product_id", req.ProductID).Msg("product lookup")
			writeError(w, "product lookup failed", http.StatusInternalServerError)
			return
		}
		if p == nil {
			writeError(w, "product not found", http.StatusNotFound)
			return
		}

		weight, price, err := Estimate(*p, req.Config)
		if err != nil {
			if errors.Is(err, ErrInvalidQuantity) || errors.Is(err, ErrInvalidLength) || errors.Is(err, ErrInvalidFinish) {
				writeError(w, err.Error(), http.StatusUnprocessableEntity)
				return
			}
			writeError(w, "estimate failed", http.StatusInternalServerError)
			return
		}

		metrics.EstimateCalls.Inc()

		var resp response
		resp.Weight = weight
		resp.Price = price
		resp.Display.UnitPrice = Round2(price.UnitPrice)
		resp.Display.Subtotal = Round2(price.Subtotal)
		resp.Display.VAT = Round2(price.VAT)
		resp.Display.Total = Round2(price.Total)
		resp.Display.TotalKg = Round2(weight.TotalKg)

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func writeError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
