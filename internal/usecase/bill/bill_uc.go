package bill

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/kanishkarathore/mosspay-project/internal/apperr"
	"github.com/kanishkarathore/mosspay-project/internal/usecase/auth"
	"github.com/kanishkarathore/mosspay-project/internal/validation"
)

type Store interface {
	// FindCustomerByPhone returns apperr.ErrNotFound for unknown phones.
	FindCustomerByPhone(ctx context.Context, phone string) (*Customer, error)

	// Create runs the whole sale as one unit: lock and check every item for
	// the vendor, write the bill and its lines, decrement stock. On any error
	// nothing is persisted.
	Create(ctx context.Context, in CreateParams) (*Bill, error)

	ListByVendor(ctx context.Context, vendorID int64, q ListQuery) ([]Bill, error)
	ListByCustomer(ctx context.Context, customerID int64, q ListQuery) ([]Bill, error)
	// GetByID returns the bill with its lines.
	GetByID(ctx context.Context, id int64) (*Bill, error)
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

// Create turns a vendor's cart into a pending bill addressed to the customer
// owning customerPhone.
func (u *Usecase) Create(ctx context.Context, caller auth.Caller, in CreateInput) (*CreateResult, error) {
	if !caller.IsVendor() {
		return nil, apperr.ErrForbidden
	}

	in.CustomerPhone = strings.TrimSpace(in.CustomerPhone)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	lines, err := normalizeCart(in.Cart)
	if err != nil {
		return nil, err
	}

	customer, err := u.store.FindCustomerByPhone(ctx, in.CustomerPhone)
	if err != nil {
		return nil, err
	}

	b, err := u.store.Create(ctx, CreateParams{
		VendorID:   caller.ID,
		CustomerID: customer.ID,
		Lines:      lines,
	})
	if err != nil {
		if apperr.KindOf(err) == apperr.KindStorage {
			u.log.Error("create bill failed", zap.Int64("vendorId", caller.ID), zap.Error(err))
		}
		return nil, err
	}

	u.log.Info("bill created",
		zap.Int64("billId", b.ID),
		zap.Int64("vendorId", b.VendorID),
		zap.Int64("customerId", b.CustomerID),
		zap.String("totalAmount", b.TotalAmount.String()),
		zap.Int64("pointsToAward", b.PointsToAward),
	)

	return &CreateResult{
		BillID:  b.ID,
		Message: fmt.Sprintf("Bill sent to %s!", customer.Name),
	}, nil
}

func (u *Usecase) ListForVendor(ctx context.Context, caller auth.Caller, q ListQuery) ([]Bill, error) {
	if !caller.IsVendor() {
		return nil, apperr.ErrForbidden
	}
	q, err := normalizeList(q)
	if err != nil {
		return nil, err
	}
	return u.store.ListByVendor(ctx, caller.ID, q)
}

func (u *Usecase) ListForCustomer(ctx context.Context, caller auth.Caller, q ListQuery) ([]Bill, error) {
	if !caller.IsCustomer() {
		return nil, apperr.ErrForbidden
	}
	q, err := normalizeList(q)
	if err != nil {
		return nil, err
	}
	return u.store.ListByCustomer(ctx, caller.ID, q)
}

// Get returns a bill to the vendor who issued it or the customer it is
// addressed to. Anyone else sees NotFound.
func (u *Usecase) Get(ctx context.Context, caller auth.Caller, id int64) (*Bill, error) {
	if id <= 0 {
		return nil, apperr.Validation("bill id must be positive")
	}
	b, err := u.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	switch {
	case caller.IsVendor() && b.VendorID == caller.ID:
	case caller.IsCustomer() && b.CustomerID == caller.ID:
	default:
		return nil, apperr.NotFound("bill %d", id)
	}
	return b, nil
}

func normalizeList(q ListQuery) (ListQuery, error) {
	if q.Limit <= 0 || q.Limit > 100 {
		q.Limit = 20
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	switch q.Status {
	case "", StatusPending, StatusLogged:
	default:
		return q, apperr.Validation("unknown status %q", q.Status)
	}
	return q, nil
}
