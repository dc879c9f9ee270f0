package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/kanishkarathore/mosspay-project/internal/apperr"
	authuc "github.com/kanishkarathore/mosspay-project/internal/usecase/auth"
)

type AuthFinderAdapter struct {
	repo *PrincipalRepo
}

func NewAuthFinderAdapter(repo *PrincipalRepo) *AuthFinderAdapter {
	return &AuthFinderAdapter{repo: repo}
}

func (a *AuthFinderAdapter) FindByEmail(ctx context.Context, role authuc.Role, email string) (*authuc.Principal, error) {
	var (
		row *PrincipalRow
		err error
	)
	switch role {
	case authuc.RoleVendor:
		row, err = a.repo.FindVendorByEmail(ctx, email)
	case authuc.RoleCustomer:
		row, err = a.repo.FindCustomerByEmail(ctx, email)
	default:
		return nil, authuc.ErrInvalidRole
	}
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, authuc.ErrPrincipalMissing
		}
		return nil, apperr.Storage(err)
	}

	return &authuc.Principal{
		ID:           row.ID,
		Name:         row.Name,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
	}, nil
}

var _ authuc.Finder = (*AuthFinderAdapter)(nil)
