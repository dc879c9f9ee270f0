package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/kanishkarathore/mosspay-project/internal/apperr"
	billuc "github.com/kanishkarathore/mosspay-project/internal/usecase/bill"
)

type BillStoreAdapter struct {
	repo *BillRepo
	db   *pgxpool.Pool
}

func NewBillStoreAdapter(repo *BillRepo, db *pgxpool.Pool) *BillStoreAdapter {
	return &BillStoreAdapter{
		repo: repo,
		db:   db,
	}
}

func (a *BillStoreAdapter) FindCustomerByPhone(ctx context.Context, phone string) (*billuc.Customer, error) {
	id, name, err := findCustomerByPhone(ctx, a.db, phone)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("no MossPay user found with phone number %s", phone)
		}
		return nil, apperr.Storage(err)
	}
	return &billuc.Customer{ID: id, Name: name}, nil
}

// Create runs the sale in one transaction. Item rows are locked in the order
// of in.Lines (ascending id), so two carts sharing items cannot deadlock and
// the second one sees the stock the first one left.
func (a *BillStoreAdapter) Create(ctx context.Context, in billuc.CreateParams) (*billuc.Bill, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	b, err := a.create(ctx, in)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return b, nil
}

func (a *BillStoreAdapter) create(ctx context.Context, in billuc.CreateParams) (*billuc.Bill, error) {
	tx, err := a.repo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := ensureCustomerExists(ctx, tx, in.CustomerID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("customer %d", in.CustomerID)
		}
		return nil, err
	}

	priced := make([]billuc.PricedLine, 0, len(in.Lines))
	for _, l := range in.Lines {
		it, err := lockVendorItem(ctx, tx, in.VendorID, l.ItemID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperr.NotFound("item %d", l.ItemID)
			}
			return nil, err
		}
		if it.Stock < l.Quantity {
			return nil, &apperr.InsufficientStockError{ItemID: it.ID, ItemName: it.Name, Remaining: it.Stock}
		}

		price, err := decimal.NewFromString(it.Price)
		if err != nil {
			return nil, err
		}
		fp, err := decimal.NewFromString(it.Footprint)
		if err != nil {
			return nil, err
		}
		priced = append(priced, billuc.PricedLine{
			ItemID:    it.ID,
			Name:      it.Name,
			Quantity:  l.Quantity,
			Price:     price,
			Footprint: fp,
		})
	}

	totals := billuc.ComputeTotals(priced)

	billID, createdAt, err := insertBill(ctx, tx, in.VendorID, in.CustomerID, totals.Amount.String(), totals.Footprint.String(), totals.Points)
	if err != nil {
		return nil, err
	}

	for _, p := range priced {
		if err := insertBillItem(ctx, tx, billID, p.ItemID, p.Quantity, p.Price.String(), p.Footprint.String()); err != nil {
			return nil, err
		}
		ok, err := decrementStock(ctx, tx, p.ItemID, p.Quantity)
		if err != nil {
			return nil, err
		}
		if !ok {
			remaining, err := currentStock(ctx, tx, p.ItemID)
			if err != nil {
				return nil, err
			}
			return nil, &apperr.InsufficientStockError{ItemID: p.ItemID, ItemName: p.Name, Remaining: remaining}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &billuc.Bill{
		ID:             billID,
		VendorID:       in.VendorID,
		CustomerID:     in.CustomerID,
		TotalAmount:    totals.Amount,
		TotalFootprint: totals.Footprint,
		PointsToAward:  totals.Points,
		Status:         billuc.StatusPending,
		CreatedAt:      createdAt,
		Items:          billuc.Items(priced),
	}, nil
}

func (a *BillStoreAdapter) ListByVendor(ctx context.Context, vendorID int64, q billuc.ListQuery) ([]billuc.Bill, error) {
	return a.list(ctx, colVendor, vendorID, q)
}

func (a *BillStoreAdapter) ListByCustomer(ctx context.Context, customerID int64, q billuc.ListQuery) ([]billuc.Bill, error) {
	return a.list(ctx, colCustomer, customerID, q)
}

func (a *BillStoreAdapter) list(ctx context.Context, col string, id int64, q billuc.ListQuery) ([]billuc.Bill, error) {
	rows, err := listBills(ctx, a.db, col, id, q.Status, q.Limit, q.Offset)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	out := make([]billuc.Bill, 0, len(rows))
	for i := range rows {
		b, err := mapBill(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, nil
}

func (a *BillStoreAdapter) GetByID(ctx context.Context, id int64) (*billuc.Bill, error) {
	row, err := getBill(ctx, a.db, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("bill %d", id)
		}
		return nil, apperr.Storage(err)
	}
	b, err := mapBill(row)
	if err != nil {
		return nil, err
	}

	items, err := listBillItems(ctx, a.db, id)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	b.Items = make([]billuc.Item, 0, len(items))
	for _, it := range items {
		line, err := mapBillItem(it)
		if err != nil {
			return nil, err
		}
		b.Items = append(b.Items, line)
	}
	return b, nil
}

func mapBill(r *BillRow) (*billuc.Bill, error) {
	amount, err := decimal.NewFromString(r.TotalAmount)
	if err != nil {
		return nil, apperr.Storage(fmt.Errorf("bill %d total_amount: %w", r.ID, err))
	}
	fp, err := decimal.NewFromString(r.TotalFootprint)
	if err != nil {
		return nil, apperr.Storage(fmt.Errorf("bill %d total_footprint: %w", r.ID, err))
	}
	return &billuc.Bill{
		ID:             r.ID,
		VendorID:       r.VendorID,
		VendorName:     r.VendorName,
		CustomerID:     r.CustomerID,
		CustomerName:   r.CustomerName,
		TotalAmount:    amount,
		TotalFootprint: fp,
		PointsToAward:  r.PointsToAward,
		Status:         r.Status,
		CreatedAt:      r.CreatedAt,
		ClaimedAt:      r.ClaimedAt,
	}, nil
}

func mapBillItem(r BillItemRow) (billuc.Item, error) {
	price, err := decimal.NewFromString(r.PriceAtSale)
	if err != nil {
		return billuc.Item{}, apperr.Storage(err)
	}
	fp, err := decimal.NewFromString(r.FootprintAtSale)
	if err != nil {
		return billuc.Item{}, apperr.Storage(err)
	}
	return billuc.Item{
		ItemID:          r.ItemID,
		ItemName:        r.ItemName,
		Quantity:        r.Quantity,
		PriceAtSale:     price,
		FootprintAtSale: fp,
	}, nil
}

var _ billuc.Store = (*BillStoreAdapter)(nil)
