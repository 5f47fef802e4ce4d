package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BOMUploads = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bom_uploads_total",
		Help: "BOM files received for matching.",
	})

	RowsMatched = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bom_rows_matched_total",
		Help: "Matched BOM rows by confidence tier.",
	}, []string{"confidence"})

	MatchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "bom_match_seconds",
		Help:    "Wall time of one matching batch.",
		Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
	})

	EstimateCalls = promauto.NewCounter(prometheus.CounterOpts{
		Name: "estimate_calls_total",
		Help: "Weight/price estimate requests served.",
	})

	RFQSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rfq_submitted_total",
		Help: "Requests for quote created.",
	})
)
