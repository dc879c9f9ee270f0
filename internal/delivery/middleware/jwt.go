package middleware

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/kanishkarathore/mosspay-project/internal/usecase/auth"
)

const callerKey = "caller"

type JWTMiddleware struct {
	secret []byte
}

func NewJWTMiddleware(secret string) *JWTMiddleware {
	return &JWTMiddleware{secret: []byte(secret)}
}

// Protect verifies the bearer token and stores the auth.Caller it names.
// Handlers read it back with CallerFrom.
func (m *JWTMiddleware) Protect() fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing authorization header")
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid authorization header")
		}

		token, err := jwt.Parse(parts[1], func(t *jwt.Token) (any, error) {
			if t.Method != jwt.SigningMethodHS256 {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "invalid token signing method")
			}
			return m.secret, nil
		})
		if err != nil || token == nil || !token.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token claims")
		}

		typ, _ := claims["typ"].(string)
		role := auth.Role(typ)
		if !role.Valid() {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token type")
		}

		sub, _ := claims["sub"].(string)
		id, err := strconv.ParseInt(sub, 10, 64)
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token subject")
		}

		c.Locals(callerKey, auth.Caller{ID: id, Role: role})
		return c.Next()
	}
}

// RequireRole rejects callers of any other role. It must run after Protect.
func RequireRole(role auth.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if CallerFrom(c).Role != role {
			return fiber.NewError(fiber.StatusForbidden, "this route is for "+string(role)+" accounts")
		}
		return c.Next()
	}
}

// CallerFrom returns the zero Caller on unprotected routes.
func CallerFrom(c *fiber.Ctx) auth.Caller {
	caller, _ := c.Locals(callerKey).(auth.Caller)
	return caller
}
