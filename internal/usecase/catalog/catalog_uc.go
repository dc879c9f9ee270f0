package catalog

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/kanishkarathore/mosspay-project/internal/apperr"
	"github.com/kanishkarathore/mosspay-project/internal/refdata"
	"github.com/kanishkarathore/mosspay-project/internal/usecase/auth"
	"github.com/kanishkarathore/mosspay-project/internal/validation"
)

type Store interface {
	Create(ctx context.Context, in NewItem) (*Item, error)
	ListByVendor(ctx context.Context, vendorID int64, q ListQuery) ([]Item, error)
	// GetForVendor returns apperr.ErrNotFound when the item is missing or
	// belongs to another vendor.
	GetForVendor(ctx context.Context, vendorID, itemID int64) (*Item, error)
}

type Usecase struct {
	store  Store
	tables *refdata.Tables
}

var maxPrice = decimal.New(1, 10)

func New(store Store, tables *refdata.Tables) *Usecase {
	return &Usecase{store: store, tables: tables}
}

// Create catalogues a new item. Its footprint is looked up once here and is
// never re-resolved, even if the reference table later learns the name.
func (u *Usecase) Create(ctx context.Context, caller auth.Caller, in CreateInput) (*Item, error) {
	if !caller.IsVendor() {
		return nil, apperr.ErrForbidden
	}

	in.Name = strings.TrimSpace(in.Name)
	in.Unit = strings.TrimSpace(in.Unit)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if in.Price.IsNegative() {
		return nil, apperr.Validation("price must not be negative")
	}
	// prices are stored as NUMERIC(12,2)
	if !in.Price.Equal(in.Price.Round(2)) {
		return nil, apperr.Validation("price must have at most 2 decimal places")
	}
	if in.Price.GreaterThanOrEqual(maxPrice) {
		return nil, apperr.Validation("price must be below %s", maxPrice)
	}

	return u.store.Create(ctx, NewItem{
		VendorID:       caller.ID,
		Name:           in.Name,
		Price:          in.Price,
		Unit:           in.Unit,
		Stock:          in.Stock,
		FootprintSaved: u.tables.Footprint(in.Name),
	})
}

func (u *Usecase) List(ctx context.Context, caller auth.Caller, q ListQuery) ([]Item, error) {
	if !caller.IsVendor() {
		return nil, apperr.ErrForbidden
	}
	return u.store.ListByVendor(ctx, caller.ID, q)
}

func (u *Usecase) Get(ctx context.Context, caller auth.Caller, itemID int64) (*Item, error) {
	if !caller.IsVendor() {
		return nil, apperr.ErrForbidden
	}
	if itemID <= 0 {
		return nil, apperr.Validation("item id must be positive")
	}
	return u.store.GetForVendor(ctx, caller.ID, itemID)
}
