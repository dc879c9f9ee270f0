// Package memory is a process-local backend for every store the usecases
// need. One mutex serializes all operations, and each operation checks all of
// its preconditions before its first write, so a failed call leaves no trace.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kanishkarathore/mosspay-project/internal/apperr"
	"github.com/kanishkarathore/mosspay-project/internal/usecase/bill"
	"github.com/kanishkarathore/mosspay-project/internal/usecase/catalog"
)

type vendorRec struct {
	ID           int64
	BusinessName string
	Email        string
	PasswordHash string
}

type customerRec struct {
	ID           int64
	FullName     string
	Email        string
	Phone        string
	PasswordHash string
}

type accountRec struct {
	PointBalance   int64
	FootprintSaved decimal.Decimal
	PurchaseCount  int64
}

type redemptionRec struct {
	CustomerID int64
	RewardID   string
	Cost       int64
	CreatedAt  time.Time
}

type DB struct {
	mu sync.Mutex

	seq         int64
	vendors     map[int64]*vendorRec
	customers   map[int64]*customerRec
	accounts    map[int64]*accountRec
	items       map[int64]*catalog.Item
	bills       map[int64]*bill.Bill
	redemptions []redemptionRec

	now func() time.Time
}

func NewDB() *DB {
	return &DB{
		vendors:   make(map[int64]*vendorRec),
		customers: make(map[int64]*customerRec),
		accounts:  make(map[int64]*accountRec),
		items:     make(map[int64]*catalog.Item),
		bills:     make(map[int64]*bill.Bill),
		now:       time.Now,
	}
}

// nextID must be called with mu held.
func (d *DB) nextID() int64 {
	d.seq++
	return d.seq
}

type VendorSeed struct {
	BusinessName string
	Email        string
	PasswordHash string
}

// AddVendor stands in for the registration service.
func (d *DB) AddVendor(v VendorSeed) int64 {
	d.mu.Lock()
	defer d.mu.Unlock()

	id := d.nextID()
	d.vendors[id] = &vendorRec{
		ID:           id,
		BusinessName: v.BusinessName,
		Email:        v.Email,
		PasswordHash: v.PasswordHash,
	}
	return id
}

type CustomerSeed struct {
	FullName       string
	Email          string
	Phone          string
	PasswordHash   string
	PointBalance   int64
	FootprintSaved decimal.Decimal
	PurchaseCount  int64
}

// AddCustomer stands in for the registration service. It creates the
// customer and its account with the given opening balances.
func (d *DB) AddCustomer(c CustomerSeed) int64 {
	d.mu.Lock()
	defer d.mu.Unlock()

	id := d.nextID()
	d.customers[id] = &customerRec{
		ID:           id,
		FullName:     c.FullName,
		Email:        c.Email,
		Phone:        c.Phone,
		PasswordHash: c.PasswordHash,
	}
	d.accounts[id] = &accountRec{
		PointBalance:   c.PointBalance,
		FootprintSaved: c.FootprintSaved,
		PurchaseCount:  c.PurchaseCount,
	}
	return id
}

// UpdateItem stands in for catalog editing (price and footprint changes).
func (d *DB) UpdateItem(itemID int64, price, footprint decimal.Decimal, stock int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	it, ok := d.items[itemID]
	if !ok {
		return apperr.NotFound("item %d", itemID)
	}
	it.Price = price
	it.FootprintSaved = footprint
	it.Stock = stock
	it.UpdatedAt = d.now()
	return nil
}

func checkCtx(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return apperr.Storage(err)
	}
	return nil
}
