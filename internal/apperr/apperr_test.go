package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want Kind
	}{
		{"validation", Validation("cart must not be empty"), KindValidation},
		{"not found wrapped", fmt.Errorf("lookup: %w", NotFound("item %d", 7)), KindNotFound},
		{"forbidden", ErrForbidden, KindForbidden},
		{"already claimed", fmt.Errorf("claim: %w", ErrAlreadyClaimed), KindAlreadyClaimed},
		{"stock", &InsufficientStockError{ItemName: "Jute Bag", Remaining: 1}, KindInsufficientStock},
		{"points", ErrInsufficientPoints, KindInsufficientPoints},
		{"unknown", errors.New("connection refused"), KindStorage},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, KindOf(tc.err))
		})
	}
}

func TestInsufficientStockError(t *testing.T) {
	err := fmt.Errorf("create bill: %w", &InsufficientStockError{ItemID: 3, ItemName: "Local Apples", Remaining: 2})

	require.ErrorIs(t, err, ErrInsufficientStock)

	var se *InsufficientStockError
	require.True(t, errors.As(err, &se))
	require.Equal(t, "Local Apples", se.ItemName)
	require.Equal(t, 2, se.Remaining)
	require.Contains(t, err.Error(), "Only 2 left")
}

func TestStorage(t *testing.T) {
	require.NoError(t, Storage(nil))

	cause := errors.New("dial tcp: refused")
	err := Storage(cause)
	require.ErrorIs(t, err, ErrStorage)
	require.ErrorIs(t, err, cause)
	require.Equal(t, "storage error", Message(err))

	// classified errors are not re-tagged
	nf := NotFound("bill %d", 9)
	require.Equal(t, nf, Storage(nf))
	require.Equal(t, "not found: bill 9", Message(nf))
}
