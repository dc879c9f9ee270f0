package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/kanishkarathore/mosspay-project/internal/apperr"
	billuc "github.com/kanishkarathore/mosspay-project/internal/usecase/bill"
	"github.com/kanishkarathore/mosspay-project/internal/usecase/claim"
)

type ClaimStoreAdapter struct {
	repo *BillRepo
}

func NewClaimStoreAdapter(repo *BillRepo) *ClaimStoreAdapter {
	return &ClaimStoreAdapter{repo: repo}
}

func (a *ClaimStoreAdapter) Claim(ctx context.Context, billID, customerID int64) (*claim.Credit, error) {
	c, err := a.claim(ctx, billID, customerID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return c, nil
}

func (a *ClaimStoreAdapter) claim(ctx context.Context, billID, customerID int64) (*claim.Credit, error) {
	tx, err := a.repo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	owner, status, points, footprint, err := lockBill(ctx, tx, billID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("bill %d", billID)
		}
		return nil, err
	}
	if owner != customerID {
		return nil, apperr.ErrForbidden
	}
	if status != billuc.StatusPending {
		return nil, apperr.ErrAlreadyClaimed
	}

	acc, err := creditAccount(ctx, tx, customerID, points, footprint)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("account for customer %d", customerID)
		}
		return nil, err
	}

	ok, err := markLogged(ctx, tx, billID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.ErrAlreadyClaimed
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	saved, err := decimal.NewFromString(acc.FootprintSaved)
	if err != nil {
		return nil, err
	}
	return &claim.Credit{
		BillID:         billID,
		PointsAwarded:  points,
		PointBalance:   acc.PointBalance,
		FootprintSaved: saved,
		PurchaseCount:  acc.PurchaseCount,
	}, nil
}

var _ claim.Store = (*ClaimStoreAdapter)(nil)
