// Seed loads a catalog price list (.xlsx/.xls/.csv) into Postgres.
//
//	go run ./cmd/seed -file pricelist.xlsx -dsn postgres://...
//
// Expected columns: Nume, Familie, Standard, Grad, Dimensiune,
// Greutate (kg/m), Pret, Baza pret, Disponibilitate. Tokens are
// canonicalized the same way uploaded BOM rows are, so seeded products
// and matcher queries agree on keys.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/subosito/gotenv"

	"bommatch-service/internal/bom"
	"bommatch-service/internal/catalog"
	"bommatch-service/internal/fileio"
)

var rxSlug = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(parts ...string) string {
	s := strings.ToLower(strings.Join(parts, "-"))
	s = rxSlug.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

func main() {
	file := flag.String("file", "", "price list file (.xlsx/.xls/.csv)")
	dsn := flag.String("dsn", os.Getenv("DATABASE_DSN"), "postgres DSN")
	headerRow := flag.Int("header-row", 1, "1-based header row")
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	_ = gotenv.Load()

	if *file == "" || *dsn == "" {
		logger.Fatal().Msg("usage: seed -file pricelist.xlsx -dsn postgres://...")
	}

	f, err := os.Open(*file)
	if err != nil {
		logger.Fatal().Err(err).Msg("open price list")
	}
	defer f.Close()

	records, err := fileio.ReadAnyMaps(f, *file, *headerRow)
	if err != nil {
		logger.Fatal().Err(err).Msg("read price list")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, *dsn)
	if err != nil {
		logger.Fatal().Err(err).Msg("db connect")
	}
	defer pool.Close()
	repo := catalog.NewRepo(pool)

	var seeded, skipped int
	for i, rec := range records {
		p, err := toProduct(rec)
		if err != nil {
			logger.Warn().Err(err).Int("row", i+1).Msg("skipping row")
			skipped++
			continue
		}
		if _, err := repo.UpsertProduct(ctx, p); err != nil {
			logger.Fatal().Err(err).Str("slug", p.Slug).Msg("upsert product")
		}
		seeded++
	}

	logger.Info().Int("seeded", seeded).Int("skipped", skipped).Msg("catalog seed complete")
}

func toProduct(rec map[string]string) (catalog.Product, error) {
	get := func(names ...string) string {
		for _, n := range names {
			for k, v := range rec {
				if strings.EqualFold(strings.TrimSpace(k), n) {
					return strings.TrimSpace(v)
				}
			}
		}
		return ""
	}

	family, ok := bom.NormalizeFamily(get("Familie", "Family"))
	if !ok {
		return catalog.Product{}, fmt.Errorf("unrecognized family %q", get("Familie", "Family"))
	}
	dim, ok := bom.NormalizeDimension(get("Dimensiune", "Dimension"))
	if !ok {
		return catalog.Product{}, fmt.Errorf("missing dimension")
	}
	grade, _ := bom.NormalizeGrade(get("Grad", "Grade"))
	std, _ := bom.NormalizeStandard(get("Standard"))

	weight, _ := bom.ParseQuantity(get("Greutate (kg/m)", "Greutate", "Unit weight"))
	price, ok := bom.ParseQuantity(get("Pret", "Price"))
	if !ok || price <= 0 {
		return catalog.Product{}, fmt.Errorf("missing price")
	}

	basis := catalog.PricePerKg
	if strings.EqualFold(get("Baza pret", "Pricing basis"), "buc") ||
		strings.EqualFold(get("Baza pret", "Pricing basis"), string(catalog.PricePerPiece)) {
		basis = catalog.PricePerPiece
	}

	avail := catalog.InStock
	switch strings.ToLower(get("Disponibilitate", "Availability")) {
	case "on_order", "la comanda":
		avail = catalog.OnOrder
	case "discontinued", "retras":
		avail = catalog.Discontinued
	}

	name := get("Nume", "Name")
	if name == "" {
		name = fmt.Sprintf("%s %s %s", family, dim, grade)
	}

	return catalog.Product{
		Slug:           slugify(string(family), std, grade, dim),
		Name:           name,
		Family:         family,
		Standard:       std,
		Grade:          grade,
		Dimension:      dim,
		DimensionLabel: get("Dimensiune", "Dimension"),
		UnitWeight:     weight,
		BasePrice:      price,
		PricingBasis:   basis,
		Availability:   avail,
	}, nil
}
