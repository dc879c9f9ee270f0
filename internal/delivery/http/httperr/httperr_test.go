package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/kanishkarathore/mosspay-project/internal/apperr"
)

func TestHandler(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		kind   string
		msg    string
	}{
		{"validation", apperr.Validation("cart is required"), 400, "ValidationError", "invalid input: cart is required"},
		{"not found", apperr.NotFound("bill 9"), 404, "NotFound", "not found: bill 9"},
		{"claimed", apperr.ErrAlreadyClaimed, 409, "AlreadyClaimed", "bill already claimed"},
		{"stock", &apperr.InsufficientStockError{ItemName: "Jute Bag", Remaining: 2}, 409, "InsufficientStock", "not enough stock for Jute Bag. Only 2 left"},
		{"points", fmt.Errorf("%w: cost 500", apperr.ErrInsufficientPoints), 409, "InsufficientPoints", "insufficient points: cost 500"},
		{"storage", errors.New("connection reset"), 500, "StorageError", "storage error"},
		{"fiber", fiber.NewError(fiber.StatusUnauthorized, "missing authorization header"), 401, "Unauthorized", "missing authorization header"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New(fiber.Config{ErrorHandler: Handler(nil, nil)})
			app.Get("/", func(c *fiber.Ctx) error { return tc.err })

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
			require.NoError(t, err)
			require.Equal(t, tc.status, resp.StatusCode)

			var body map[string]string
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			require.Equal(t, tc.kind, body["error"])
			require.Equal(t, tc.msg, body["message"])
		})
	}
}
