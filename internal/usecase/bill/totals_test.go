package bill

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/kanishkarathore/mosspay-project/internal/apperr"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestComputeTotals(t *testing.T) {
	cases := []struct {
		name      string
		lines     []PricedLine
		amount    string
		footprint string
		points    int64
	}{
		{
			name:      "single line",
			lines:     []PricedLine{{Quantity: 5, Price: d("10"), Footprint: d("0.3")}},
			amount:    "50",
			footprint: "1.5",
			points:    15,
		},
		{
			name:      "no float drift",
			lines:     []PricedLine{{Quantity: 3, Price: d("0.1"), Footprint: d("0.7")}},
			amount:    "0.3",
			footprint: "2.1",
			points:    21,
		},
		{
			name:      "fractional points truncate",
			lines:     []PricedLine{{Quantity: 1, Price: d("4.99"), Footprint: d("0.19")}},
			amount:    "4.99",
			footprint: "0.19",
			points:    1,
		},
		{
			name: "zero footprint item",
			lines: []PricedLine{
				{Quantity: 2, Price: d("1.25"), Footprint: d("0")},
				{Quantity: 1, Price: d("3"), Footprint: d("0.05")},
			},
			amount:    "5.5",
			footprint: "0.05",
			points:    0,
		},
		{
			name:      "empty",
			lines:     nil,
			amount:    "0",
			footprint: "0",
			points:    0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeTotals(tc.lines)
			require.True(t, d(tc.amount).Equal(got.Amount), "amount %s", got.Amount)
			require.True(t, d(tc.footprint).Equal(got.Footprint), "footprint %s", got.Footprint)
			require.Equal(t, tc.points, got.Points)
		})
	}
}

func TestPointsFor(t *testing.T) {
	require.Equal(t, int64(0), PointsFor(d("-1")))
	require.Equal(t, int64(0), PointsFor(d("0.099")))
	require.Equal(t, int64(1), PointsFor(d("0.1")))
	require.Equal(t, int64(15), PointsFor(d("1.59")))
}

func TestNormalizeCart(t *testing.T) {
	got, err := normalizeCart([]CartLine{
		{ItemID: 9, Quantity: 1},
		{ItemID: 3, Quantity: 2},
		{ItemID: 9, Quantity: 4},
	})
	require.NoError(t, err)
	require.Equal(t, []CartLine{
		{ItemID: 3, Quantity: 2},
		{ItemID: 9, Quantity: 5},
	}, got)
}

func TestNormalizeCart_QuantityLimit(t *testing.T) {
	got, err := normalizeCart([]CartLine{
		{ItemID: 4, Quantity: MaxQuantity - 1},
		{ItemID: 4, Quantity: 1},
	})
	require.NoError(t, err)
	require.Equal(t, []CartLine{{ItemID: 4, Quantity: MaxQuantity}}, got)

	_, err = normalizeCart([]CartLine{
		{ItemID: 4, Quantity: MaxQuantity},
		{ItemID: 4, Quantity: 1},
	})
	require.ErrorIs(t, err, apperr.ErrValidation)

	_, err = normalizeCart([]CartLine{
		{ItemID: 4, Quantity: MaxQuantity},
		{ItemID: 4, Quantity: MaxQuantity},
	})
	require.ErrorIs(t, err, apperr.ErrValidation)
}

func TestCreateParamsValidate(t *testing.T) {
	require.NoError(t, CreateParams{Lines: []CartLine{{ItemID: 1, Quantity: MaxQuantity}}}.Validate())

	for _, q := range []int{0, -2, MaxQuantity + 1} {
		err := CreateParams{Lines: []CartLine{{ItemID: 1, Quantity: q}}}.Validate()
		require.ErrorIs(t, err, apperr.ErrValidation, "quantity %d", q)
	}
	require.ErrorIs(t, CreateParams{}.Validate(), apperr.ErrValidation)
}

func TestNormalizeList(t *testing.T) {
	q, err := normalizeList(ListQuery{Limit: 500, Offset: -3})
	require.NoError(t, err)
	require.Equal(t, ListQuery{Limit: 20}, q)

	q, err = normalizeList(ListQuery{Limit: 5, Offset: 10, Status: StatusLogged})
	require.NoError(t, err)
	require.Equal(t, ListQuery{Limit: 5, Offset: 10, Status: StatusLogged}, q)

	_, err = normalizeList(ListQuery{Status: "cancelled"})
	require.Error(t, err)
}
