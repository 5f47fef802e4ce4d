package serverhttp

import (
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	bomHnd "bommatch-service/internal/bom/handler"
	"bommatch-service/internal/catalog"
	catHnd "bommatch-service/internal/catalog/handler"
	"bommatch-service/internal/config"
	"bommatch-service/internal/estimate"
	"bommatch-service/internal/middleware"
	"bommatch-service/internal/rfq"
	"bommatch-service/internal/users"
	"bommatch-service/server/http/handlers"
)

// Deps are the wired collaborators of the HTTP surface.
type Deps struct {
	CatalogRepo  catalog.Repository
	CatalogStore *catalog.Store
	RFQRepo      *rfq.Repo
	UserRepo     *users.Repo
}

func NewRouter(cfg config.Config, logger zerolog.Logger, d Deps) *chi.Mux {
	r := chi.NewRouter()

	// order matters: recover -> requestID -> logging -> cors -> limit
	r.Use(middleware.Recover(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS(cfg.HTTP.AllowOrigins))
	r.Use(middleware.LimitBytes(int64(cfg.HTTP.MaxUploadMB) * 1024 * 1024))

	r.Get("/health", handlers.Health)
	if cfg.Metrics.Enabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/bom/match", bomHnd.MatchFile(cfg, d.CatalogStore, logger))
		r.Post("/bom/rows/match", bomHnd.MatchRows(cfg, d.CatalogStore, logger))

		r.Post("/estimate", estimate.Handler(d.CatalogRepo, logger))

		r.Get("/products", catHnd.List(d.CatalogRepo, logger))
		r.Get("/products/{slug}", catHnd.Get(d.CatalogRepo, logger))
		r.Get("/categories", catHnd.Categories(d.CatalogRepo, logger))

		r.Post("/rfq", rfq.Submit(d.RFQRepo, logger))
		r.Get("/rfq", rfq.List(d.RFQRepo, logger))
		r.Get("/rfq/{ref}", rfq.Get(d.RFQRepo, logger))
		r.Patch("/rfq/{ref}/status", rfq.UpdateStatusHandler(d.RFQRepo, logger))

		r.Post("/users", users.Register(d.UserRepo, logger))
		r.Get("/users/{id}", users.Get(d.UserRepo, logger))
	})

	return r
}
