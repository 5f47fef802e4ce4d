package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"bommatch-service/internal/bom"
	"bommatch-service/internal/catalog"
	"bommatch-service/internal/config"
	"bommatch-service/internal/fileio"
	"bommatch-service/internal/metrics"
)

// Response is the enriched row set plus its summary, as the review UI
// consumes it.
type Response struct {
	Rows      []bom.Row `json:"rows"`
	Stats     bom.Stats `json:"stats"`
	Attention []bom.Row `json:"attention"`
}

// MatchFile accepts a multipart BOM upload ("file" field, .xlsx/.xls/.csv),
// runs the matcher against the current catalog snapshot and returns the
// enriched rows. Bad rows degrade in place; only an unreadable file fails
// the request.
func MatchFile(cfg config.Config, store *catalog.Store, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log := reqLogger(logger, r)

		if err := r.ParseMultipartForm(int64(cfg.HTTP.MaxUploadMB) << 20); err != nil {
			httpError(w, "bad multipart form: "+err.Error(), http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		file, header, err := r.FormFile("file")
		if err != nil {
			httpError(w, "missing file: "+err.Error(), http.StatusBadRequest)
			return
		}
		defer file.Close()

		records, err := fileio.ReadAnyMaps(file, header.Filename, atoi(r.FormValue("header_row"), 1))
		if err != nil {
			httpError(w, "failed to read file: "+err.Error(), http.StatusBadRequest)
			return
		}

		metrics.BOMUploads.Inc()

		inputs := toRowInputs(records)
		threshold := toFloat(r.FormValue("loose_threshold"), cfg.Matching.LooseThreshold)
		resp := runMatch(store.Index(), inputs, threshold)
		writeJSON(w, log, resp)

		log.Info().
			Str("file", header.Filename).
			Int("rows", len(inputs)).
			Float64("match_rate", resp.Stats.MatchRate).
			Dur("elapsed", time.Since(start)).
			Msg("bom matched")
	}
}

// MatchRows is the pre-parsed variant: a JSON array of raw rows from
// clients that read the spreadsheet themselves.
func MatchRows(cfg config.Config, store *catalog.Store, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log := reqLogger(logger, r)
		defer r.Body.Close()

		var inputs []bom.RowInput
		if err := json.NewDecoder(r.Body).Decode(&inputs); err != nil {
			httpError(w, "invalid row set: "+err.Error(), http.StatusBadRequest)
			return
		}
		for i := range inputs {
			inputs[i].Index = i
		}

		resp := runMatch(store.Index(), inputs, cfg.Matching.LooseThreshold)
		writeJSON(w, log, resp)

		log.Info().
			Int("rows", len(inputs)).
			Float64("match_rate", resp.Stats.MatchRate).
			Dur("elapsed", time.Since(start)).
			Msg("bom rows matched")
	}
}

func runMatch(idx *catalog.Index, inputs []bom.RowInput, threshold float64) Response {
	timer := time.Now()
	rows := bom.NewMatcher(idx, threshold).Run(inputs)
	metrics.MatchDuration.Observe(time.Since(timer).Seconds())
	for _, row := range rows {
		metrics.RowsMatched.WithLabelValues(string(row.MatchConfidence)).Inc()
	}
	return Response{
		Rows:      rows,
		Stats:     bom.BuildStats(rows),
		Attention: bom.NeedsAttention(rows),
	}
}

func reqLogger(logger zerolog.Logger, r *http.Request) zerolog.Logger {
	if rid := r.Header.Get("X-Request-ID"); rid != "" {
		return logger.With().Str("req_id", rid).Logger()
	}
	return logger
}

func httpError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, log zerolog.Logger, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write json")
	}
}
