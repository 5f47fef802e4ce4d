package bom

import (
	"math"
	"sort"
)

// BuildStats aggregates a matched row set. An empty set yields a zero
// match rate, not a division error.
func BuildStats(rows []Row) Stats {
	s := Stats{TotalRows: len(rows)}
	for _, r := range rows {
		switch r.MatchConfidence {
		case ConfidenceHigh:
			s.High++
		case ConfidenceMedium:
			s.Medium++
		case ConfidenceLow:
			s.Low++
		default:
			s.Unmatched++
		}
	}
	if s.TotalRows > 0 {
		rate := 100 * float64(s.High+s.Medium+s.Low) / float64(s.TotalRows)
		s.MatchRate = math.Round(rate*10) / 10
	}
	return s
}

// NeedsAttention lists the rows a user has to look at before the set can
// become cart lines: low or no confidence, or any validation error.
// Ordered by original row index ascending, stable for UI and tests.
func NeedsAttention(rows []Row) []Row {
	var out []Row
	for _, r := range rows {
		if r.MatchConfidence == ConfidenceLow || r.MatchConfidence == ConfidenceNone || len(r.Errors) > 0 {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

// CartReadyRows filters the subset eligible for cart ingestion.
func CartReadyRows(rows []Row) []Row {
	var out []Row
	for _, r := range rows {
		if r.CartReady() {
			out = append(out, r)
		}
	}
	return out
}
