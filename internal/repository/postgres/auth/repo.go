package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PrincipalRow struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
}

type PrincipalRepo struct {
	db *pgxpool.Pool
}

func NewPrincipalRepo(db *pgxpool.Pool) *PrincipalRepo {
	return &PrincipalRepo{db: db}
}

func (r *PrincipalRepo) FindVendorByEmail(ctx context.Context, email string) (*PrincipalRow, error) {
	const q = `
SELECT id, business_name, email, password_hash
FROM vendors
WHERE lower(email) = lower($1)
LIMIT 1;
`
	return r.find(ctx, q, email)
}

func (r *PrincipalRepo) FindCustomerByEmail(ctx context.Context, email string) (*PrincipalRow, error) {
	const q = `
SELECT id, full_name, email, password_hash
FROM customers
WHERE lower(email) = lower($1)
LIMIT 1;
`
	return r.find(ctx, q, email)
}

func (r *PrincipalRepo) find(ctx context.Context, q, email string) (*PrincipalRow, error) {
	var out PrincipalRow
	if err := r.db.QueryRow(ctx, q, email).Scan(&out.ID, &out.Name, &out.Email, &out.PasswordHash); err != nil {
		return nil, err
	}
	return &out, nil
}
