// Accounts is the maintenance tool for storefront user accounts.
//
//	go run ./cmd/accounts -dsn postgres://... -deactivate buyer@firma.ro
//	go run ./cmd/accounts -dsn postgres://... -list-domain firma.ro
package main

import (
	"context"
	"flag"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/subosito/gotenv"

	"bommatch-service/internal/users"
)

func main() {
	dsn := flag.String("dsn", os.Getenv("DATABASE_DSN"), "postgres DSN")
	deactivate := flag.String("deactivate", "", "email of the account to deactivate")
	listDomain := flag.String("list-domain", "", "list accounts under an email domain")
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	_ = gotenv.Load()

	if *dsn == "" || (*deactivate == "" && *listDomain == "") {
		logger.Fatal().Msg("usage: accounts -dsn postgres://... [-deactivate email] [-list-domain domain]")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, *dsn)
	if err != nil {
		logger.Fatal().Err(err).Msg("db connect")
	}
	defer pool.Close()
	repo := users.NewRepo(pool)

	if *deactivate != "" {
		ok, err := repo.Deactivate(ctx, *deactivate)
		if err != nil {
			logger.Fatal().Err(err).Msg("deactivate")
		}
		if !ok {
			logger.Warn().Str("email", *deactivate).Msg("no such account")
		} else {
			logger.Info().Str("email", *deactivate).Msg("account deactivated")
		}
	}

	if *listDomain != "" {
		us, err := repo.ListByDomain(ctx, *listDomain)
		if err != nil {
			logger.Fatal().Err(err).Msg("list accounts")
		}
		for _, u := range us {
			logger.Info().
				Str("email", u.Email).
				Str("name", u.Name).
				Bool("active", u.Active).
				Msg("account")
		}
		logger.Info().Int("count", len(us)).Str("domain", *listDomain).Msg("done")
	}
}
