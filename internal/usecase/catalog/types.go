package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

type Item struct {
	ID             int64           `json:"id"`
	VendorID       int64           `json:"vendorId"`
	Name           string          `json:"name"`
	Price          decimal.Decimal `json:"price"`
	Unit           string          `json:"unit"`
	Stock          int             `json:"stock"`
	FootprintSaved decimal.Decimal `json:"footprintSaved"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

type CreateInput struct {
	Name  string          `json:"name" validate:"required"`
	Price decimal.Decimal `json:"price"`
	Unit  string          `json:"unit" validate:"required"`
	Stock int             `json:"stock" validate:"gte=0,lte=2147483647"`
}

// NewItem is what the store persists; FootprintSaved is already resolved.
type NewItem struct {
	VendorID       int64
	Name           string
	Price          decimal.Decimal
	Unit           string
	Stock          int
	FootprintSaved decimal.Decimal
}

type ListQuery struct {
	InStockOnly bool
}
