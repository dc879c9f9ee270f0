package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BillRow struct {
	ID             int64
	VendorID       int64
	VendorName     string
	CustomerID     int64
	CustomerName   string
	TotalAmount    string
	TotalFootprint string
	PointsToAward  int64
	Status         string
	CreatedAt      time.Time
	ClaimedAt      *time.Time
}

type BillItemRow struct {
	ItemID          int64
	ItemName        string
	Quantity        int
	PriceAtSale     string
	FootprintAtSale string
}

// LockedItem is an item row held FOR UPDATE inside a sale.
type LockedItem struct {
	ID        int64
	Name      string
	Price     string
	Footprint string
	Stock     int
}

type AccountRow struct {
	PointBalance   int64
	FootprintSaved string
	PurchaseCount  int64
}

type BillRepo struct {
	db *pgxpool.Pool
}

func NewBillRepo(db *pgxpool.Pool) *BillRepo {
	return &BillRepo{db: db}
}

func (r *BillRepo) Begin(ctx context.Context) (pgx.Tx, error) {
	return r.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
}

type queryer interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func findCustomerByPhone(ctx context.Context, q queryer, phone string) (id int64, name string, err error) {
	const sql = `SELECT id, full_name FROM customers WHERE phone = $1`
	err = q.QueryRow(ctx, sql, phone).Scan(&id, &name)
	return id, name, err
}

func ensureCustomerExists(ctx context.Context, q queryer, customerID int64) error {
	const sql = `SELECT 1 FROM customers WHERE id = $1`
	var one int
	return q.QueryRow(ctx, sql, customerID).Scan(&one)
}

func lockVendorItem(ctx context.Context, tx pgx.Tx, vendorID, itemID int64) (*LockedItem, error) {
	const q = `
SELECT id, name, price::text, footprint_saved::text, stock
FROM items
WHERE id = $1 AND vendor_id = $2
FOR UPDATE;
`
	var out LockedItem
	if err := tx.QueryRow(ctx, q, itemID, vendorID).Scan(&out.ID, &out.Name, &out.Price, &out.Footprint, &out.Stock); err != nil {
		return nil, err
	}
	return &out, nil
}

func insertBill(ctx context.Context, tx pgx.Tx, vendorID, customerID int64, amount, footprint string, points int64) (id int64, createdAt time.Time, err error) {
	const q = `
INSERT INTO bills (vendor_id, customer_id, total_amount, total_footprint, points_to_award, status)
VALUES ($1, $2, $3::numeric, $4::numeric, $5, 'pending')
RETURNING id, created_at;
`
	err = tx.QueryRow(ctx, q, vendorID, customerID, amount, footprint, points).Scan(&id, &createdAt)
	return id, createdAt, err
}

func insertBillItem(ctx context.Context, tx pgx.Tx, billID, itemID int64, qty int, price, footprint string) error {
	const q = `
INSERT INTO bill_items (bill_id, item_id, quantity, price_at_sale, footprint_at_sale)
VALUES ($1, $2, $3, $4::numeric, $5::numeric);
`
	_, err := tx.Exec(ctx, q, billID, itemID, qty, price, footprint)
	return err
}

// decrementStock reports false when the row no longer holds qty units.
func decrementStock(ctx context.Context, tx pgx.Tx, itemID int64, qty int) (bool, error) {
	const q = `
UPDATE items
SET stock = stock - $2,
    updated_at = now()
WHERE id = $1 AND stock >= $2;
`
	tag, err := tx.Exec(ctx, q, itemID, qty)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func currentStock(ctx context.Context, tx pgx.Tx, itemID int64) (int, error) {
	var stock int
	err := tx.QueryRow(ctx, `SELECT stock FROM items WHERE id = $1`, itemID).Scan(&stock)
	return stock, err
}

const billSelect = `
SELECT b.id, b.vendor_id, v.business_name, b.customer_id, c.full_name,
       b.total_amount::text, b.total_footprint::text, b.points_to_award,
       b.status, b.created_at, b.claimed_at
FROM bills b
JOIN vendors v ON v.id = b.vendor_id
JOIN customers c ON c.id = b.customer_id
`

type scanner interface {
	Scan(dest ...any) error
}

func scanBill(s scanner, out *BillRow) error {
	return s.Scan(
		&out.ID,
		&out.VendorID,
		&out.VendorName,
		&out.CustomerID,
		&out.CustomerName,
		&out.TotalAmount,
		&out.TotalFootprint,
		&out.PointsToAward,
		&out.Status,
		&out.CreatedAt,
		&out.ClaimedAt,
	)
}

func getBill(ctx context.Context, q queryer, id int64) (*BillRow, error) {
	var out BillRow
	if err := scanBill(q.QueryRow(ctx, billSelect+`WHERE b.id = $1`, id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// listBills filters on partyCol, which is one of the two fixed column names
// below and never caller input.
func listBills(ctx context.Context, q queryer, partyCol string, partyID int64, status string, limit, offset int) ([]BillRow, error) {
	sql := billSelect + fmt.Sprintf(`
WHERE %s = $1
  AND ($2::text = '' OR b.status = $2::text)
ORDER BY b.created_at DESC, b.id DESC
LIMIT $3 OFFSET $4;
`, partyCol)

	rows, err := q.Query(ctx, sql, partyID, status, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]BillRow, 0, limit)
	for rows.Next() {
		var b BillRow
		if err := scanBill(rows, &b); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

const (
	colVendor   = "b.vendor_id"
	colCustomer = "b.customer_id"
)

func listBillItems(ctx context.Context, q queryer, billID int64) ([]BillItemRow, error) {
	const sql = `
SELECT bi.item_id, i.name, bi.quantity, bi.price_at_sale::text, bi.footprint_at_sale::text
FROM bill_items bi
JOIN items i ON i.id = bi.item_id
WHERE bi.bill_id = $1
ORDER BY bi.id ASC;
`
	rows, err := q.Query(ctx, sql, billID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]BillItemRow, 0, 8)
	for rows.Next() {
		var it BillItemRow
		if err := rows.Scan(&it.ItemID, &it.ItemName, &it.Quantity, &it.PriceAtSale, &it.FootprintAtSale); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// lockBill holds the bill row for the rest of tx. A concurrent claim blocks
// here and then sees the committed status.
func lockBill(ctx context.Context, tx pgx.Tx, id int64) (customerID int64, status string, points int64, footprint string, err error) {
	const q = `
SELECT customer_id, status, points_to_award, total_footprint::text
FROM bills
WHERE id = $1
FOR UPDATE;
`
	err = tx.QueryRow(ctx, q, id).Scan(&customerID, &status, &points, &footprint)
	return customerID, status, points, footprint, err
}

func creditAccount(ctx context.Context, tx pgx.Tx, customerID, points int64, footprint string) (*AccountRow, error) {
	const q = `
UPDATE accounts
SET point_balance = point_balance + $2,
    footprint_saved = footprint_saved + $3::numeric,
    purchase_count = purchase_count + 1,
    updated_at = now()
WHERE customer_id = $1
RETURNING point_balance, footprint_saved::text, purchase_count;
`
	var out AccountRow
	if err := tx.QueryRow(ctx, q, customerID, points, footprint).Scan(&out.PointBalance, &out.FootprintSaved, &out.PurchaseCount); err != nil {
		return nil, err
	}
	return &out, nil
}

// markLogged reports false if the bill was not pending.
func markLogged(ctx context.Context, tx pgx.Tx, id int64) (bool, error) {
	const q = `
UPDATE bills
SET status = 'logged',
    claimed_at = now()
WHERE id = $1 AND status = 'pending';
`
	tag, err := tx.Exec(ctx, q, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
