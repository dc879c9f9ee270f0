package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/kanishkarathore/mosspay-project/internal/usecase/auth"
)

const secret = "test-secret"

func sign(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func newApp() *fiber.App {
	app := fiber.New()
	m := NewJWTMiddleware(secret)
	app.Get("/vendor", m.Protect(), RequireRole(auth.RoleVendor), func(c *fiber.Ctx) error {
		caller := CallerFrom(c)
		return c.JSON(fiber.Map{"id": caller.ID, "role": caller.Role})
	})
	return app
}

func TestProtect(t *testing.T) {
	exp := time.Now().Add(time.Hour).Unix()

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", fiber.StatusUnauthorized},
		{"not bearer", "Basic abc", fiber.StatusUnauthorized},
		{"garbage token", "Bearer abc.def.ghi", fiber.StatusUnauthorized},
		{"expired", "Bearer " + sign(t, jwt.MapClaims{"sub": "7", "typ": "vendor", "exp": time.Now().Add(-time.Minute).Unix()}), fiber.StatusUnauthorized},
		{"unknown role", "Bearer " + sign(t, jwt.MapClaims{"sub": "7", "typ": "admin", "exp": exp}), fiber.StatusUnauthorized},
		{"bad subject", "Bearer " + sign(t, jwt.MapClaims{"sub": "abc", "typ": "vendor", "exp": exp}), fiber.StatusUnauthorized},
		{"wrong role", "Bearer " + sign(t, jwt.MapClaims{"sub": "7", "typ": "customer", "exp": exp}), fiber.StatusForbidden},
		{"vendor", "Bearer " + sign(t, jwt.MapClaims{"sub": "7", "typ": "vendor", "exp": exp}), fiber.StatusOK},
	}

	app := newApp()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/vendor", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			require.Equal(t, tc.status, resp.StatusCode)
		})
	}
}
