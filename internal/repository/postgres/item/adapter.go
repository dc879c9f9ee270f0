package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/kanishkarathore/mosspay-project/internal/apperr"
	"github.com/kanishkarathore/mosspay-project/internal/usecase/catalog"
)

type CatalogStoreAdapter struct {
	repo *ItemRepo
}

func NewCatalogStoreAdapter(repo *ItemRepo) *CatalogStoreAdapter {
	return &CatalogStoreAdapter{repo: repo}
}

func (a *CatalogStoreAdapter) Create(ctx context.Context, in catalog.NewItem) (*catalog.Item, error) {
	row, err := a.repo.Insert(ctx, ItemRow{
		VendorID:       in.VendorID,
		Name:           in.Name,
		Price:          in.Price.String(),
		Unit:           in.Unit,
		Stock:          in.Stock,
		FootprintSaved: in.FootprintSaved.String(),
	})
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, apperr.NotFound("vendor %d", in.VendorID)
		}
		return nil, apperr.Storage(err)
	}
	return mapItem(row)
}

func (a *CatalogStoreAdapter) ListByVendor(ctx context.Context, vendorID int64, q catalog.ListQuery) ([]catalog.Item, error) {
	rows, err := a.repo.ListByVendor(ctx, vendorID, q.InStockOnly)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	out := make([]catalog.Item, 0, len(rows))
	for i := range rows {
		it, err := mapItem(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *it)
	}
	return out, nil
}

func (a *CatalogStoreAdapter) GetForVendor(ctx context.Context, vendorID, itemID int64) (*catalog.Item, error) {
	row, err := a.repo.GetForVendor(ctx, vendorID, itemID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("item %d", itemID)
		}
		return nil, apperr.Storage(err)
	}
	return mapItem(row)
}

func mapItem(r *ItemRow) (*catalog.Item, error) {
	price, err := decimal.NewFromString(r.Price)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	fp, err := decimal.NewFromString(r.FootprintSaved)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return &catalog.Item{
		ID:             r.ID,
		VendorID:       r.VendorID,
		Name:           r.Name,
		Price:          price,
		Unit:           r.Unit,
		Stock:          r.Stock,
		FootprintSaved: fp,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}, nil
}

var _ catalog.Store = (*CatalogStoreAdapter)(nil)
