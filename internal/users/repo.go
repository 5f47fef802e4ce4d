package users

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

func (r *Repo) Create(ctx context.Context, email, name, company string) (*User, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (email, name, company) VALUES ($1,$2,$3)
		ON CONFLICT (email) DO NOTHING
		RETURNING id, email, name, company, active, created_at
	`, strings.ToLower(email), name, company)
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.Company, &u.Active, &u.CreatedAt)
	if err == pgx.ErrNoRows {
		// already registered
		return r.GetByEmail(ctx, email)
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Repo) GetByID(ctx context.Context, id string) (*User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, email, name, company, active, created_at
		FROM users WHERE id = $1
	`, id)
	var u User
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &u.Company, &u.Active, &u.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *Repo) GetByEmail(ctx context.Context, email string) (*User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, email, name, company, active, created_at
		FROM users WHERE email = $1
	`, strings.ToLower(email))
	var u User
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &u.Company, &u.Active, &u.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *Repo) Deactivate(ctx context.Context, email string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE users SET active = FALSE WHERE email = $1
	`, strings.ToLower(email))
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *Repo) ListByDomain(ctx context.Context, domain string) ([]User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, email, name, company, active, created_at
		FROM users WHERE email LIKE '%@' || $1
		ORDER BY email
	`, strings.ToLower(domain))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.Company, &u.Active, &u.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
