package bill

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/kanishkarathore/mosspay-project/internal/apperr"
)

// PointsPerKg is the number of points awarded per whole kilogram of
// footprint saved.
const PointsPerKg = 10

// PricedLine is a cart line joined with the item values read inside the
// bill transaction.
type PricedLine struct {
	ItemID    int64
	Name      string
	Quantity  int
	Price     decimal.Decimal
	Footprint decimal.Decimal
}

type Totals struct {
	Amount    decimal.Decimal
	Footprint decimal.Decimal
	Points    int64
}

func ComputeTotals(lines []PricedLine) Totals {
	amount := decimal.Zero
	footprint := decimal.Zero
	for _, l := range lines {
		qty := decimal.NewFromInt(int64(l.Quantity))
		amount = amount.Add(l.Price.Mul(qty))
		footprint = footprint.Add(l.Footprint.Mul(qty))
	}
	return Totals{
		Amount:    amount,
		Footprint: footprint,
		Points:    PointsFor(footprint),
	}
}

// PointsFor truncates: a fractional point is never rounded up.
func PointsFor(footprint decimal.Decimal) int64 {
	if footprint.IsNegative() {
		return 0
	}
	return footprint.Mul(decimal.NewFromInt(PointsPerKg)).Floor().IntPart()
}

// Items turns priced lines into frozen bill lines.
func Items(lines []PricedLine) []Item {
	out := make([]Item, 0, len(lines))
	for _, l := range lines {
		out = append(out, Item{
			ItemID:          l.ItemID,
			ItemName:        l.Name,
			Quantity:        l.Quantity,
			PriceAtSale:     l.Price,
			FootprintAtSale: l.Footprint,
		})
	}
	return out
}

// normalizeCart merges repeated item ids and orders lines by item id so that
// every store locks rows in the same order. Lines must already be positive
// and at most MaxQuantity; a merged line above MaxQuantity is rejected.
func normalizeCart(cart []CartLine) ([]CartLine, error) {
	qty := make(map[int64]int, len(cart))
	for _, l := range cart {
		if l.Quantity > MaxQuantity-qty[l.ItemID] {
			return nil, apperr.Validation("quantity for item %d exceeds %d", l.ItemID, MaxQuantity)
		}
		qty[l.ItemID] += l.Quantity
	}
	out := make([]CartLine, 0, len(qty))
	for id, q := range qty {
		out = append(out, CartLine{ItemID: id, Quantity: q})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ItemID < out[j].ItemID })
	return out, nil
}
