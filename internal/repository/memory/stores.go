package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/kanishkarathore/mosspay-project/internal/apperr"
	accountuc "github.com/kanishkarathore/mosspay-project/internal/usecase/account"
	"github.com/kanishkarathore/mosspay-project/internal/usecase/auth"
	"github.com/kanishkarathore/mosspay-project/internal/usecase/bill"
	"github.com/kanishkarathore/mosspay-project/internal/usecase/catalog"
	"github.com/kanishkarathore/mosspay-project/internal/usecase/claim"
)

// ---- auth ----------------------------------------------------------------

type AuthStore struct{ db *DB }

func NewAuthStore(db *DB) *AuthStore { return &AuthStore{db: db} }

func (s *AuthStore) FindByEmail(ctx context.Context, role auth.Role, email string) (*auth.Principal, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	switch role {
	case auth.RoleVendor:
		for _, v := range s.db.vendors {
			if strings.EqualFold(v.Email, email) {
				return &auth.Principal{ID: v.ID, Name: v.BusinessName, Email: v.Email, PasswordHash: v.PasswordHash}, nil
			}
		}
	case auth.RoleCustomer:
		for _, c := range s.db.customers {
			if strings.EqualFold(c.Email, email) {
				return &auth.Principal{ID: c.ID, Name: c.FullName, Email: c.Email, PasswordHash: c.PasswordHash}, nil
			}
		}
	}
	return nil, auth.ErrPrincipalMissing
}

// ---- catalog -------------------------------------------------------------

type CatalogStore struct{ db *DB }

func NewCatalogStore(db *DB) *CatalogStore { return &CatalogStore{db: db} }

func (s *CatalogStore) Create(ctx context.Context, in catalog.NewItem) (*catalog.Item, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.vendors[in.VendorID]; !ok {
		return nil, apperr.NotFound("vendor %d", in.VendorID)
	}

	now := s.db.now()
	it := &catalog.Item{
		ID:             s.db.nextID(),
		VendorID:       in.VendorID,
		Name:           in.Name,
		Price:          in.Price,
		Unit:           in.Unit,
		Stock:          in.Stock,
		FootprintSaved: in.FootprintSaved,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	s.db.items[it.ID] = it
	out := *it
	return &out, nil
}

func (s *CatalogStore) ListByVendor(ctx context.Context, vendorID int64, q catalog.ListQuery) ([]catalog.Item, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	out := make([]catalog.Item, 0)
	for _, it := range s.db.items {
		if it.VendorID != vendorID || (q.InStockOnly && it.Stock <= 0) {
			continue
		}
		out = append(out, *it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *CatalogStore) GetForVendor(ctx context.Context, vendorID, itemID int64) (*catalog.Item, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	it, ok := s.db.items[itemID]
	if !ok || it.VendorID != vendorID {
		return nil, apperr.NotFound("item %d", itemID)
	}
	out := *it
	return &out, nil
}

// ---- bills ---------------------------------------------------------------

type BillStore struct{ db *DB }

func NewBillStore(db *DB) *BillStore { return &BillStore{db: db} }

func (s *BillStore) FindCustomerByPhone(ctx context.Context, phone string) (*bill.Customer, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for _, c := range s.db.customers {
		if c.Phone == phone {
			return &bill.Customer{ID: c.ID, Name: c.FullName}, nil
		}
	}
	return nil, apperr.NotFound("no MossPay user found with phone number %s", phone)
}

func (s *BillStore) Create(ctx context.Context, in bill.CreateParams) (*bill.Bill, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.vendors[in.VendorID]; !ok {
		return nil, apperr.Storage(fmt.Errorf("vendor %d does not exist", in.VendorID))
	}
	if _, ok := s.db.customers[in.CustomerID]; !ok {
		return nil, apperr.NotFound("customer %d", in.CustomerID)
	}

	priced := make([]bill.PricedLine, 0, len(in.Lines))
	for _, l := range in.Lines {
		it, ok := s.db.items[l.ItemID]
		if !ok || it.VendorID != in.VendorID {
			return nil, apperr.NotFound("item %d", l.ItemID)
		}
		if it.Stock < l.Quantity {
			return nil, &apperr.InsufficientStockError{ItemID: it.ID, ItemName: it.Name, Remaining: it.Stock}
		}
		priced = append(priced, bill.PricedLine{
			ItemID:    it.ID,
			Name:      it.Name,
			Quantity:  l.Quantity,
			Price:     it.Price,
			Footprint: it.FootprintSaved,
		})
	}

	totals := bill.ComputeTotals(priced)
	now := s.db.now()
	b := &bill.Bill{
		ID:             s.db.nextID(),
		VendorID:       in.VendorID,
		CustomerID:     in.CustomerID,
		TotalAmount:    totals.Amount,
		TotalFootprint: totals.Footprint,
		PointsToAward:  totals.Points,
		Status:         bill.StatusPending,
		CreatedAt:      now,
		Items:          bill.Items(priced),
	}

	for _, l := range in.Lines {
		it := s.db.items[l.ItemID]
		it.Stock -= l.Quantity
		it.UpdatedAt = now
	}
	s.db.bills[b.ID] = b

	return s.view(b, true), nil
}

func (s *BillStore) ListByVendor(ctx context.Context, vendorID int64, q bill.ListQuery) ([]bill.Bill, error) {
	return s.list(ctx, q, func(b *bill.Bill) bool { return b.VendorID == vendorID })
}

func (s *BillStore) ListByCustomer(ctx context.Context, customerID int64, q bill.ListQuery) ([]bill.Bill, error) {
	return s.list(ctx, q, func(b *bill.Bill) bool { return b.CustomerID == customerID })
}

func (s *BillStore) list(ctx context.Context, q bill.ListQuery, keep func(*bill.Bill) bool) ([]bill.Bill, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	all := make([]bill.Bill, 0)
	for _, b := range s.db.bills {
		if !keep(b) || (q.Status != "" && b.Status != q.Status) {
			continue
		}
		all = append(all, *s.view(b, false))
	}
	// newest first
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID > all[j].ID
	})

	if q.Offset >= len(all) {
		return []bill.Bill{}, nil
	}
	all = all[q.Offset:]
	if q.Limit > 0 && q.Limit < len(all) {
		all = all[:q.Limit]
	}
	return all, nil
}

func (s *BillStore) GetByID(ctx context.Context, id int64) (*bill.Bill, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	b, ok := s.db.bills[id]
	if !ok {
		return nil, apperr.NotFound("bill %d", id)
	}
	return s.view(b, true), nil
}

// view copies b with party names filled in. Must be called with mu held.
func (s *BillStore) view(b *bill.Bill, withItems bool) *bill.Bill {
	out := *b
	out.Items = nil
	if withItems {
		out.Items = append([]bill.Item(nil), b.Items...)
	}
	if b.ClaimedAt != nil {
		t := *b.ClaimedAt
		out.ClaimedAt = &t
	}
	if v, ok := s.db.vendors[b.VendorID]; ok {
		out.VendorName = v.BusinessName
	}
	if c, ok := s.db.customers[b.CustomerID]; ok {
		out.CustomerName = c.FullName
	}
	return &out
}

// ---- claims --------------------------------------------------------------

type ClaimStore struct{ db *DB }

func NewClaimStore(db *DB) *ClaimStore { return &ClaimStore{db: db} }

func (s *ClaimStore) Claim(ctx context.Context, billID, customerID int64) (*claim.Credit, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	b, ok := s.db.bills[billID]
	if !ok {
		return nil, apperr.NotFound("bill %d", billID)
	}
	if b.CustomerID != customerID {
		return nil, apperr.ErrForbidden
	}
	if b.Status == bill.StatusLogged {
		return nil, apperr.ErrAlreadyClaimed
	}
	acc, ok := s.db.accounts[customerID]
	if !ok {
		return nil, apperr.NotFound("account for customer %d", customerID)
	}

	acc.PointBalance += b.PointsToAward
	acc.FootprintSaved = acc.FootprintSaved.Add(b.TotalFootprint)
	acc.PurchaseCount++

	now := s.db.now()
	b.Status = bill.StatusLogged
	b.ClaimedAt = &now

	return &claim.Credit{
		BillID:         b.ID,
		PointsAwarded:  b.PointsToAward,
		PointBalance:   acc.PointBalance,
		FootprintSaved: acc.FootprintSaved,
		PurchaseCount:  acc.PurchaseCount,
	}, nil
}

// ---- accounts ------------------------------------------------------------

type AccountStore struct{ db *DB }

func NewAccountStore(db *DB) *AccountStore { return &AccountStore{db: db} }

func (s *AccountStore) GetByCustomerID(ctx context.Context, customerID int64) (*accountuc.Account, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	acc, ok := s.db.accounts[customerID]
	if !ok {
		return nil, apperr.NotFound("account for customer %d", customerID)
	}
	return toAccount(customerID, acc), nil
}

func (s *AccountStore) Debit(ctx context.Context, customerID int64, rewardID string, cost int64) (*accountuc.Account, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	acc, ok := s.db.accounts[customerID]
	if !ok {
		return nil, apperr.NotFound("account for customer %d", customerID)
	}
	if acc.PointBalance < cost {
		return nil, fmt.Errorf("%w: balance %d, cost %d", apperr.ErrInsufficientPoints, acc.PointBalance, cost)
	}

	acc.PointBalance -= cost
	s.db.redemptions = append(s.db.redemptions, redemptionRec{
		CustomerID: customerID,
		RewardID:   rewardID,
		Cost:       cost,
		CreatedAt:  s.db.now(),
	})
	return toAccount(customerID, acc), nil
}

func toAccount(customerID int64, acc *accountRec) *accountuc.Account {
	return &accountuc.Account{
		CustomerID:     customerID,
		PointBalance:   acc.PointBalance,
		FootprintSaved: acc.FootprintSaved,
		PurchaseCount:  acc.PurchaseCount,
	}
}

// Compile-time checks
var (
	_ auth.Finder     = (*AuthStore)(nil)
	_ catalog.Store   = (*CatalogStore)(nil)
	_ bill.Store      = (*BillStore)(nil)
	_ claim.Store     = (*ClaimStore)(nil)
	_ accountuc.Store = (*AccountStore)(nil)
)
