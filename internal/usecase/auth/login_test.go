package auth

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeFinder struct {
	byRole map[Role]map[string]*Principal
}

func (f *fakeFinder) FindByEmail(_ context.Context, role Role, email string) (*Principal, error) {
	if p, ok := f.byRole[role][email]; ok {
		return p, nil
	}
	return nil, ErrPrincipalMissing
}

func newFinder(t *testing.T) *fakeFinder {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	return &fakeFinder{byRole: map[Role]map[string]*Principal{
		RoleVendor: {
			"shop@example.com": {ID: 4, Name: "Green Grocer", Email: "shop@example.com", PasswordHash: string(hash)},
		},
		RoleCustomer: {},
	}}
}

func TestLogin_OK(t *testing.T) {
	uc := NewLoginUsecase(newFinder(t), "test-secret", 15)

	res, err := uc.Execute(context.Background(), RoleVendor, " Shop@Example.com ", "secret123")
	require.NoError(t, err)
	require.Equal(t, 900, res.ExpiresIn)
	require.Equal(t, RoleVendor, res.Role)
	require.Equal(t, "Green Grocer", res.Name)

	tok, err := jwt.Parse(res.AccessToken, func(*jwt.Token) (any, error) { return []byte("test-secret"), nil })
	require.NoError(t, err)
	claims := tok.Claims.(jwt.MapClaims)
	require.Equal(t, "4", claims["sub"])
	require.Equal(t, "vendor", claims["typ"])
	require.NotEmpty(t, claims["jti"])
}

func TestLogin_Rejects(t *testing.T) {
	uc := NewLoginUsecase(newFinder(t), "test-secret", 0)

	_, err := uc.Execute(context.Background(), RoleVendor, "shop@example.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	// vendor credentials do not open a customer session
	_, err = uc.Execute(context.Background(), RoleCustomer, "shop@example.com", "secret123")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = uc.Execute(context.Background(), Role("admin"), "shop@example.com", "secret123")
	require.ErrorIs(t, err, ErrInvalidRole)
}

func TestCaller(t *testing.T) {
	require.True(t, Caller{ID: 1, Role: RoleVendor}.IsVendor())
	require.False(t, Caller{ID: 1, Role: RoleVendor}.IsCustomer())
	require.False(t, Caller{Role: RoleCustomer}.IsCustomer())
}
