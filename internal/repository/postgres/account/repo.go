package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AccountRow struct {
	CustomerID     int64
	PointBalance   int64
	FootprintSaved string
	PurchaseCount  int64
}

type AccountRepo struct {
	db *pgxpool.Pool
}

func NewAccountRepo(db *pgxpool.Pool) *AccountRepo {
	return &AccountRepo{db: db}
}

func (r *AccountRepo) Begin(ctx context.Context) (pgx.Tx, error) {
	return r.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
}

const accountCols = `customer_id, point_balance, footprint_saved::text, purchase_count`

func (r *AccountRepo) GetByCustomerID(ctx context.Context, customerID int64) (*AccountRow, error) {
	const q = `SELECT ` + accountCols + ` FROM accounts WHERE customer_id = $1`

	var out AccountRow
	if err := r.db.QueryRow(ctx, q, customerID).Scan(&out.CustomerID, &out.PointBalance, &out.FootprintSaved, &out.PurchaseCount); err != nil {
		return nil, err
	}
	return &out, nil
}

// debitPoints takes cost off the balance only when the balance covers it.
// pgx.ErrNoRows means the account is missing or short.
func debitPoints(ctx context.Context, tx pgx.Tx, customerID, cost int64) (*AccountRow, error) {
	const q = `
UPDATE accounts
SET point_balance = point_balance - $2,
    updated_at = now()
WHERE customer_id = $1 AND point_balance >= $2
RETURNING ` + accountCols + `;
`
	var out AccountRow
	if err := tx.QueryRow(ctx, q, customerID, cost).Scan(&out.CustomerID, &out.PointBalance, &out.FootprintSaved, &out.PurchaseCount); err != nil {
		return nil, err
	}
	return &out, nil
}

func insertRedemption(ctx context.Context, tx pgx.Tx, customerID int64, rewardID string, cost int64) error {
	const q = `
INSERT INTO redemptions (customer_id, reward_id, cost)
VALUES ($1, $2, $3);
`
	_, err := tx.Exec(ctx, q, customerID, rewardID, cost)
	return err
}

func accountExists(ctx context.Context, tx pgx.Tx, customerID int64) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM accounts WHERE customer_id = $1)`
	var ok bool
	err := tx.QueryRow(ctx, q, customerID).Scan(&ok)
	return ok, err
}

func isCheckViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23514"
	}
	return false
}
