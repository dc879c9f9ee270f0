package claim

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/kanishkarathore/mosspay-project/internal/apperr"
	"github.com/kanishkarathore/mosspay-project/internal/usecase/auth"
)

type Input struct {
	BillID int64 `json:"billId"`
}

type Result struct {
	NewPointBalance   int64   `json:"newPointBalance"`
	NewFootprintSaved float64 `json:"newFootprintSaved"`
	PointsAwarded     int64   `json:"pointsAwarded"`
}

// Credit is the outcome of a committed claim.
type Credit struct {
	BillID         int64
	PointsAwarded  int64
	PointBalance   int64
	FootprintSaved decimal.Decimal
	PurchaseCount  int64
}

type Store interface {
	// Claim locks the bill, checks ownership (apperr.ErrForbidden) and state
	// (apperr.ErrAlreadyClaimed), credits the account and marks the bill
	// logged, all in one transaction.
	Claim(ctx context.Context, billID, customerID int64) (*Credit, error)
}

type Usecase struct {
	store Store
	log   *zap.Logger
}

func New(store Store, log *zap.Logger) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{store: store, log: log}
}

// Claim credits a pending bill to the customer it was issued to. A bill can
// be credited once; later attempts fail with AlreadyClaimed and change
// nothing.
func (u *Usecase) Claim(ctx context.Context, caller auth.Caller, in Input) (*Result, error) {
	if !caller.IsCustomer() {
		return nil, apperr.ErrForbidden
	}
	if in.BillID <= 0 {
		return nil, apperr.Validation("billId must be positive")
	}

	c, err := u.store.Claim(ctx, in.BillID, caller.ID)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindStorage {
			u.log.Error("claim bill failed", zap.Int64("billId", in.BillID), zap.Error(err))
		}
		return nil, err
	}

	u.log.Info("bill claimed",
		zap.Int64("billId", c.BillID),
		zap.Int64("customerId", caller.ID),
		zap.Int64("pointsAwarded", c.PointsAwarded),
		zap.Int64("pointBalance", c.PointBalance),
	)

	return &Result{
		NewPointBalance:   c.PointBalance,
		NewFootprintSaved: c.FootprintSaved.InexactFloat64(),
		PointsAwarded:     c.PointsAwarded,
	}, nil
}
