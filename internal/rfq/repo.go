package rfq

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

// newRef derives a short public reference from a fresh UUID.
func newRef() string {
	return "RFQ-" + strings.ToUpper(uuid.NewString()[:8])
}

func (r *Repo) Create(ctx context.Context, q RFQ) (*RFQ, error) {
	if len(q.Lines) == 0 {
		return nil, fmt.Errorf("rfq: at least one line required")
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	q.Ref = newRef()
	q.Status = StatusNew
	row := tx.QueryRow(ctx, `
		INSERT INTO rfqs (ref, email, company, phone, status)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id, created_at
	`, q.Ref, q.Email, q.Company, q.Phone, string(q.Status))
	if err := row.Scan(&q.ID, &q.CreatedAt); err != nil {
		return nil, err
	}

	for _, l := range q.Lines {
		if _, err := tx.Exec(ctx, `
			INSERT INTO rfq_lines (rfq_id, product_id, quantity, unit, length_m, finish, notes)
			VALUES ($1,$2,$3,$4,$5,$6,$7)
		`, q.ID, l.ProductID, l.Quantity, l.Unit, l.LengthM, l.Finish, l.Notes); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *Repo) GetByRef(ctx context.Context, ref string) (*RFQ, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, ref, email, company, phone, status, created_at
		FROM rfqs WHERE ref = $1
	`, ref)
	var q RFQ
	if err := row.Scan(&q.ID, &q.Ref, &q.Email, &q.Company, &q.Phone, &q.Status, &q.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	lines, err := r.lines(ctx, q.ID)
	if err != nil {
		return nil, err
	}
	q.Lines = lines
	return &q, nil
}

func (r *Repo) ListByEmail(ctx context.Context, email string) ([]RFQ, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, ref, email, company, phone, status, created_at
		FROM rfqs WHERE email = $1
		ORDER BY created_at DESC
	`, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []RFQ
	for rows.Next() {
		var q RFQ
		if err := rows.Scan(&q.ID, &q.Ref, &q.Email, &q.Company, &q.Phone, &q.Status, &q.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

// UpdateStatus applies one lifecycle step; invalid transitions are refused.
func (r *Repo) UpdateStatus(ctx context.Context, ref string, to Status) (*RFQ, error) {
	q, err := r.GetByRef(ctx, ref)
	if err != nil || q == nil {
		return q, err
	}
	if !CanTransition(q.Status, to) {
		return nil, fmt.Errorf("rfq: cannot move %s from %s to %s", ref, q.Status, to)
	}
	if _, err := r.pool.Exec(ctx, `
		UPDATE rfqs SET status = $2 WHERE ref = $1
	`, ref, string(to)); err != nil {
		return nil, err
	}
	q.Status = to
	return q, nil
}

func (r *Repo) lines(ctx context.Context, rfqID string) ([]Line, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT product_id, quantity, unit, length_m, finish, notes
		FROM rfq_lines WHERE rfq_id = $1
		ORDER BY id
	`, rfqID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Line
	for rows.Next() {
		var l Line
		if err := rows.Scan(&l.ProductID, &l.Quantity, &l.Unit, &l.LengthM, &l.Finish, &l.Notes); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
