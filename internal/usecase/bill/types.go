package bill

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kanishkarathore/mosspay-project/internal/validation"
)

const (
	StatusPending = "pending" // created by the vendor, waiting for the customer
	StatusLogged  = "logged"  // claimed, rewards credited (terminal)
)

type Bill struct {
	ID             int64           `json:"id"`
	VendorID       int64           `json:"vendorId"`
	VendorName     string          `json:"vendorName,omitempty"`
	CustomerID     int64           `json:"customerId"`
	CustomerName   string          `json:"customerName,omitempty"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	TotalFootprint decimal.Decimal `json:"totalFootprint"`
	PointsToAward  int64           `json:"pointsToAward"`
	Status         string          `json:"status"`
	CreatedAt      time.Time       `json:"createdAt"`
	ClaimedAt      *time.Time      `json:"claimedAt,omitempty"`
	Items          []Item          `json:"items,omitempty"`
}

// Item is a bill line. Price and footprint are copies taken at sale time.
type Item struct {
	ItemID          int64           `json:"itemId"`
	ItemName        string          `json:"itemName,omitempty"`
	Quantity        int             `json:"quantity"`
	PriceAtSale     decimal.Decimal `json:"priceAtSale"`
	FootprintAtSale decimal.Decimal `json:"footprintAtSale"`
}

// MaxQuantity is the largest quantity a bill line can carry. Stock and
// bill quantities are stored as INTEGER.
const MaxQuantity = math.MaxInt32

type CartLine struct {
	ItemID   int64 `json:"itemId" validate:"gt=0"`
	Quantity int   `json:"quantity" validate:"gt=0,lte=2147483647"`
}

type CreateInput struct {
	CustomerPhone string     `json:"customerPhone" validate:"required"`
	Cart          []CartLine `json:"cart" validate:"required,min=1,dive"`
}

type CreateResult struct {
	BillID  int64  `json:"billId"`
	Message string `json:"message"`
}

type Customer struct {
	ID   int64
	Name string
}

// CreateParams is a validated cart: one line per item, ascending item id.
type CreateParams struct {
	VendorID   int64
	CustomerID int64
	Lines      []CartLine `validate:"required,min=1,dive"`
}

// Validate rechecks the merged lines. Stores call it before touching stock.
func (p CreateParams) Validate() error {
	return validation.Struct(p)
}

type ListQuery struct {
	Limit  int
	Offset int
	Status string
}
