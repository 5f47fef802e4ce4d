package catalog

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository is the read/write surface the service needs from catalog storage.
// The matcher itself only ever sees the in-memory Index built from ListProducts.
type Repository interface {
	ListProducts(ctx context.Context) ([]Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*Product, error)
	GetProductByID(ctx context.Context, id string) (*Product, error)
	UpsertProduct(ctx context.Context, p Product) (*Product, error)
	ListCategories(ctx context.Context) ([]Category, error)
	EnsureCategory(ctx context.Context, name string, family Family) (*Category, error)
}

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

const productCols = `id, slug, name, family, standard, grade, dimension, dimension_label,
	unit_weight, base_price, pricing_basis, availability, COALESCE(category_id::text, ''), created_at`

func scanProduct(row pgx.Row) (*Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.Slug, &p.Name, &p.Family, &p.Standard, &p.Grade,
		&p.Dimension, &p.DimensionLabel, &p.UnitWeight, &p.BasePrice,
		&p.PricingBasis, &p.Availability, &p.CategoryID, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repo) ListProducts(ctx context.Context) ([]Product, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+productCols+`
		FROM products
		WHERE availability <> 'discontinued'
		ORDER BY slug
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Slug, &p.Name, &p.Family, &p.Standard, &p.Grade,
			&p.Dimension, &p.DimensionLabel, &p.UnitWeight, &p.BasePrice,
			&p.PricingBasis, &p.Availability, &p.CategoryID, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repo) GetProductBySlug(ctx context.Context, slug string) (*Product, error) {
	p, err := scanProduct(r.pool.QueryRow(ctx, `
		SELECT `+productCols+` FROM products WHERE slug = $1
	`, slug))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return p, err
}

func (r *Repo) GetProductByID(ctx context.Context, id string) (*Product, error) {
	p, err := scanProduct(r.pool.QueryRow(ctx, `
		SELECT `+productCols+` FROM products WHERE id = $1
	`, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return p, err
}

func (r *Repo) UpsertProduct(ctx context.Context, p Product) (*Product, error) {
	return scanProduct(r.pool.QueryRow(ctx, `
		INSERT INTO products
			(slug, name, family, standard, grade, dimension, dimension_label,
			 unit_weight, base_price, pricing_basis, availability, category_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		ON CONFLICT (slug) DO UPDATE SET
			name = EXCLUDED.name,
			standard = EXCLUDED.standard,
			grade = EXCLUDED.grade,
			dimension = EXCLUDED.dimension,
			dimension_label = EXCLUDED.dimension_label,
			unit_weight = EXCLUDED.unit_weight,
			base_price = EXCLUDED.base_price,
			pricing_basis = EXCLUDED.pricing_basis,
			availability = EXCLUDED.availability,
			category_id = EXCLUDED.category_id
		RETURNING `+productCols+`
	`, p.Slug, p.Name, p.Family, p.Standard, p.Grade, p.Dimension, p.DimensionLabel,
		p.UnitWeight, p.BasePrice, p.PricingBasis, p.Availability, nullable(p.CategoryID)))
}

func (r *Repo) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, family, created_at FROM categories ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Family, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *Repo) EnsureCategory(ctx context.Context, name string, family Family) (*Category, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO categories (name, family) VALUES ($1,$2)
		ON CONFLICT (name) DO NOTHING
		RETURNING id, name, family, created_at
	`, name, string(family))
	var c Category
	err := row.Scan(&c.ID, &c.Name, &c.Family, &c.CreatedAt)
	if err == pgx.ErrNoRows {
		// already there
		row = r.pool.QueryRow(ctx, `
			SELECT id, name, family, created_at FROM categories WHERE name = $1
		`, name)
		if err := row.Scan(&c.ID, &c.Name, &c.Family, &c.CreatedAt); err != nil {
			return nil, err
		}
		return &c, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
