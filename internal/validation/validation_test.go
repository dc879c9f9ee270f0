package validation

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kanishkarathore/mosspay-project/internal/apperr"
)

type line struct {
	ItemID   int64 `json:"itemId" validate:"gt=0"`
	Quantity int   `json:"quantity" validate:"gt=0,lte=100"`
}

type cart struct {
	Phone string `json:"customerPhone" validate:"required"`
	Lines []line `json:"cart" validate:"required,min=1,dive"`
}

func TestStruct(t *testing.T) {
	require.NoError(t, Struct(cart{Phone: "9000000001", Lines: []line{{ItemID: 1, Quantity: 2}}}))

	err := Struct(cart{Lines: []line{{ItemID: 1, Quantity: 2}}})
	require.ErrorIs(t, err, apperr.ErrValidation)
	require.Contains(t, err.Error(), "customerPhone is required")

	err = Struct(cart{Phone: "1", Lines: []line{}})
	require.ErrorIs(t, err, apperr.ErrValidation)
	require.Contains(t, err.Error(), "cart must have at least 1 entries")

	err = Struct(cart{Phone: "1", Lines: []line{{ItemID: 1, Quantity: 0}}})
	require.ErrorIs(t, err, apperr.ErrValidation)
	require.Contains(t, err.Error(), "cart[0].quantity must be greater than 0")

	err = Struct(cart{Phone: "1", Lines: []line{{ItemID: 1, Quantity: 101}}})
	require.ErrorIs(t, err, apperr.ErrValidation)
	require.Contains(t, err.Error(), "cart[0].quantity must be at most 100")
}
