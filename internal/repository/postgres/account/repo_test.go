package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kanishkarathore/mosspay-project/internal/apperr"
	"github.com/kanishkarathore/mosspay-project/internal/repository/postgres/testutil"
)

func TestAccountStoreAdapter_Debit(t *testing.T) {
	pool := testutil.MustOpenDB(t)
	ctx := context.Background()

	customerID, _ := testutil.MustInsertCustomer(t, pool, "Asha Rao", 700)
	accounts := NewAccountStoreAdapter(NewAccountRepo(pool))

	acc, err := accounts.Debit(ctx, customerID, "gov_1", 500)
	require.NoError(t, err)
	require.Equal(t, int64(200), acc.PointBalance)

	_, err = accounts.Debit(ctx, customerID, "gov_1", 500)
	require.ErrorIs(t, err, apperr.ErrInsufficientPoints)

	_, err = accounts.Debit(ctx, customerID+1_000_000, "gov_1", 500)
	require.ErrorIs(t, err, apperr.ErrNotFound)

	acc, err = accounts.GetByCustomerID(ctx, customerID)
	require.NoError(t, err)
	require.Equal(t, int64(200), acc.PointBalance)
	require.True(t, acc.FootprintSaved.IsZero())

	require.Equal(t, int64(1), testutil.MustQueryInt(t, pool, `SELECT count(*) FROM redemptions WHERE customer_id = $1`, customerID))
}
