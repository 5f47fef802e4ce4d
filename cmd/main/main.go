package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/subosito/gotenv"

	"bommatch-service/internal/catalog"
	"bommatch-service/internal/config"
	"bommatch-service/internal/rfq"
	"bommatch-service/internal/users"
	serverhttp "bommatch-service/server/http"
)

func runMigrations(dsn string) error {
	db, err := goose.OpenDBWithDriver("pgx", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	return goose.Up(db, "migrations")
}

func main() {
	_ = gotenv.Load()

	cfgPath := os.Getenv("CONFIG_FILE")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		panic(err)
	}
	logger := config.SetupLogger(cfg)

	if err := runMigrations(cfg.Postgres.DSN); err != nil {
		logger.Fatal().Err(err).Msg("migrations")
	}
	logger.Info().Msg("migrations applied")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Postgres.DSN)
	if err != nil {
		logger.Fatal().Err(err).Msg("db connect")
	}
	defer pool.Close()

	catRepo := catalog.NewRepo(pool)
	store := catalog.NewStore(catRepo, logger)
	if err := store.Reload(ctx); err != nil {
		// rows degrade to no-confidence results until the next reload
		logger.Warn().Msg("starting with empty catalog index")
	}
	store.StartReloader(ctx, time.Duration(cfg.Catalog.ReloadMinutes)*time.Minute)

	r := serverhttp.NewRouter(cfg, logger, serverhttp.Deps{
		CatalogRepo:  catRepo,
		CatalogStore: store,
		RFQRepo:      rfq.NewRepo(pool),
		UserRepo:     users.NewRepo(pool),
	})

	srv := &http.Server{Addr: cfg.Addr(), Handler: r}
	logger.Info().Str("addr", cfg.Addr()).Msg("server starting")

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("listen")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	logger.Info().Msg("bye")
}
