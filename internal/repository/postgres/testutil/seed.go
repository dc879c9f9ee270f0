package testutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// Seeds use random emails and phones so packages can share one database
// without truncating each other's rows.

func MustInsertVendor(t *testing.T, db *pgxpool.Pool, businessName string) int64 {
	t.Helper()

	var id int64
	err := db.QueryRow(context.Background(), `
		INSERT INTO vendors (business_name, contact_name, mobile, email, password_hash)
		VALUES ($1, 'Test Contact', $2, $3, 'x')
		RETURNING id
	`, businessName, uuid.NewString(), uuid.NewString()+"@vendor.test").Scan(&id)

	require.NoError(t, err)
	require.Positive(t, id)
	return id
}

// MustInsertCustomer creates a customer and its account. It returns the id
// and the generated phone.
func MustInsertCustomer(t *testing.T, db *pgxpool.Pool, fullName string, pointBalance int64) (int64, string) {
	t.Helper()
	ctx := context.Background()
	phone := uuid.NewString()

	var id int64
	err := db.QueryRow(ctx, `
		INSERT INTO customers (full_name, email, phone, password_hash)
		VALUES ($1, $2, $3, 'x')
		RETURNING id
	`, fullName, uuid.NewString()+"@customer.test", phone).Scan(&id)
	require.NoError(t, err)

	_, err = db.Exec(ctx, `
		INSERT INTO accounts (customer_id, point_balance)
		VALUES ($1, $2)
	`, id, pointBalance)
	require.NoError(t, err)

	return id, phone
}

func MustInsertItem(t *testing.T, db *pgxpool.Pool, vendorID int64, name, price, footprint string, stock int) int64 {
	t.Helper()

	var id int64
	err := db.QueryRow(context.Background(), `
		INSERT INTO items (vendor_id, name, price, unit, stock, footprint_saved)
		VALUES ($1, $2, $3::numeric, 'piece', $4, $5::numeric)
		RETURNING id
	`, vendorID, name, price, stock, footprint).Scan(&id)

	require.NoError(t, err)
	require.Positive(t, id)
	return id
}

func MustQueryInt(t *testing.T, db *pgxpool.Pool, q string, args ...any) int64 {
	t.Helper()
	var out int64
	require.NoError(t, db.QueryRow(context.Background(), q, args...).Scan(&out))
	return out
}
