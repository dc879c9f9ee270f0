package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ItemRow struct {
	ID             int64
	VendorID       int64
	Name           string
	Price          string
	Unit           string
	Stock          int
	FootprintSaved string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type ItemRepo struct {
	db *pgxpool.Pool
}

func NewItemRepo(db *pgxpool.Pool) *ItemRepo {
	return &ItemRepo{db: db}
}

const itemCols = `id, vendor_id, name, price::text, unit, stock, footprint_saved::text, created_at, updated_at`

func (r *ItemRepo) Insert(ctx context.Context, in ItemRow) (*ItemRow, error) {
	const q = `
INSERT INTO items (vendor_id, name, price, unit, stock, footprint_saved)
VALUES ($1, $2, $3::numeric, $4, $5, $6::numeric)
RETURNING ` + itemCols + `;
`
	row := r.db.QueryRow(ctx, q, in.VendorID, in.Name, in.Price, in.Unit, in.Stock, in.FootprintSaved)

	var out ItemRow
	if err := scanItem(row, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *ItemRepo) ListByVendor(ctx context.Context, vendorID int64, inStockOnly bool) ([]ItemRow, error) {
	const q = `
SELECT ` + itemCols + `
FROM items
WHERE vendor_id = $1
  AND (NOT $2::boolean OR stock > 0)
ORDER BY id ASC;
`
	rows, err := r.db.Query(ctx, q, vendorID, inStockOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ItemRow, 0, 16)
	for rows.Next() {
		var it ItemRow
		if err := scanItem(rows, &it); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *ItemRepo) GetForVendor(ctx context.Context, vendorID, itemID int64) (*ItemRow, error) {
	const q = `
SELECT ` + itemCols + `
FROM items
WHERE id = $1 AND vendor_id = $2;
`
	var out ItemRow
	if err := scanItem(r.db.QueryRow(ctx, q, itemID, vendorID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(s scanner, out *ItemRow) error {
	return s.Scan(
		&out.ID,
		&out.VendorID,
		&out.Name,
		&out.Price,
		&out.Unit,
		&out.Stock,
		&out.FootprintSaved,
		&out.CreatedAt,
		&out.UpdatedAt,
	)
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}
