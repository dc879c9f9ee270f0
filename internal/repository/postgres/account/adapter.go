package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/kanishkarathore/mosspay-project/internal/apperr"
	accountuc "github.com/kanishkarathore/mosspay-project/internal/usecase/account"
)

type AccountStoreAdapter struct {
	repo *AccountRepo
}

func NewAccountStoreAdapter(repo *AccountRepo) *AccountStoreAdapter {
	return &AccountStoreAdapter{repo: repo}
}

func (a *AccountStoreAdapter) GetByCustomerID(ctx context.Context, customerID int64) (*accountuc.Account, error) {
	row, err := a.repo.GetByCustomerID(ctx, customerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("account for customer %d", customerID)
		}
		return nil, apperr.Storage(err)
	}
	return mapAccount(row)
}

func (a *AccountStoreAdapter) Debit(ctx context.Context, customerID int64, rewardID string, cost int64) (*accountuc.Account, error) {
	acc, err := a.debit(ctx, customerID, rewardID, cost)
	if err != nil {
		if isCheckViolation(err) {
			return nil, apperr.ErrInsufficientPoints
		}
		return nil, apperr.Storage(err)
	}
	return acc, nil
}

func (a *AccountStoreAdapter) debit(ctx context.Context, customerID int64, rewardID string, cost int64) (*accountuc.Account, error) {
	tx, err := a.repo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row, err := debitPoints(ctx, tx, customerID, cost)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		ok, existsErr := accountExists(ctx, tx, customerID)
		if existsErr != nil {
			return nil, existsErr
		}
		if !ok {
			return nil, apperr.NotFound("account for customer %d", customerID)
		}
		return nil, fmt.Errorf("%w: cost %d", apperr.ErrInsufficientPoints, cost)
	}

	if err := insertRedemption(ctx, tx, customerID, rewardID, cost); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return mapAccount(row)
}

func mapAccount(r *AccountRow) (*accountuc.Account, error) {
	fp, err := decimal.NewFromString(r.FootprintSaved)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return &accountuc.Account{
		CustomerID:     r.CustomerID,
		PointBalance:   r.PointBalance,
		FootprintSaved: fp,
		PurchaseCount:  r.PurchaseCount,
	}, nil
}

var _ accountuc.Store = (*AccountStoreAdapter)(nil)
