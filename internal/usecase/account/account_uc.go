package account

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/kanishkarathore/mosspay-project/internal/apperr"
	"github.com/kanishkarathore/mosspay-project/internal/refdata"
	"github.com/kanishkarathore/mosspay-project/internal/usecase/auth"
)

type Account struct {
	CustomerID     int64           `json:"customerId"`
	PointBalance   int64           `json:"pointBalance"`
	FootprintSaved decimal.Decimal `json:"footprintSaved"`
	PurchaseCount  int64           `json:"purchaseCount"`
}

type RedeemInput struct {
	RewardID string `json:"rewardId"`
}

type RedeemResult struct {
	Message         string         `json:"message"`
	NewPointBalance int64          `json:"newPointBalance"`
	Reward          refdata.Reward `json:"reward"`
}

type Store interface {
	GetByCustomerID(ctx context.Context, customerID int64) (*Account, error)
	// Debit subtracts cost and records the redemption in one transaction.
	// It fails with apperr.ErrInsufficientPoints when the balance is short.
	Debit(ctx context.Context, customerID int64, rewardID string, cost int64) (*Account, error)
}

type Usecase struct {
	store  Store
	tables *refdata.Tables
	log    *zap.Logger
}

func New(store Store, tables *refdata.Tables, log *zap.Logger) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{store: store, tables: tables, log: log}
}

func (u *Usecase) Get(ctx context.Context, caller auth.Caller) (*Account, error) {
	if !caller.IsCustomer() {
		return nil, apperr.ErrForbidden
	}
	return u.store.GetByCustomerID(ctx, caller.ID)
}

func (u *Usecase) Rewards() []refdata.Reward {
	return u.tables.Rewards()
}

func (u *Usecase) Redeem(ctx context.Context, caller auth.Caller, in RedeemInput) (*RedeemResult, error) {
	if !caller.IsCustomer() {
		return nil, apperr.ErrForbidden
	}
	id := strings.TrimSpace(in.RewardID)
	if id == "" {
		return nil, apperr.Validation("rewardId is required")
	}
	reward, ok := u.tables.Reward(id)
	if !ok {
		return nil, apperr.NotFound("reward %q", id)
	}

	acc, err := u.store.Debit(ctx, caller.ID, reward.ID, reward.Cost)
	if err != nil {
		return nil, err
	}

	u.log.Info("reward redeemed",
		zap.Int64("customerId", caller.ID),
		zap.String("rewardId", reward.ID),
		zap.Int64("cost", reward.Cost),
	)

	return &RedeemResult{
		Message:         "Reward redeemed!",
		NewPointBalance: acc.PointBalance,
		Reward:          reward,
	}, nil
}
