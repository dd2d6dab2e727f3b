// internal/domain/pricing/resolver.go
package pricing

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Tier is a flat price for one exact quantity of a product, in the product's canonical unit
type Tier struct {
	Quantity    float64 `json:"quantity"`
	Price       float64 `json:"price"`
	DisplayUnit string  `json:"display_unit"`
}

// Line is the resolved price of a single cart or order line
type Line struct {
	Quantity  float64 `json:"quantity"`
	Total     float64 `json:"total"`
	UnitPrice float64 `json:"unit_price"`
	Tier      *Tier   `json:"tier,omitempty"`
}

// ResolveLinePrice returns the total and effective unit price for quantity.
// A tier whose quantity equals the requested quantity exactly replaces the
// linear base*quantity total. The total is rounded to 2 decimals; the unit
// price is left unrounded. Callers guarantee quantity > 0.
func ResolveLinePrice(base float64, tiers []Tier, quantity float64) Line {
	total := base * quantity
	var matched *Tier

	for i := range tiers {
		if tiers[i].Quantity == quantity {
			matched = &tiers[i]
			total = tiers[i].Price
			break
		}
	}

	line := Line{
		Quantity: quantity,
		Total:    RoundMoney(total),
		Tier:     matched,
	}
	if quantity > 0 {
		line.UnitPrice = total / quantity
	}
	return line
}

// RoundMoney rounds an amount to 2 decimal places, half away from zero
func RoundMoney(amount float64) float64 {
	return decimal.NewFromFloat(amount).Round(2).InexactFloat64()
}

// SumMoney adds amounts with decimal arithmetic and rounds the result to 2 decimals
func SumMoney(amounts ...float64) float64 {
	sum := decimal.Zero
	for _, a := range amounts {
		sum = sum.Add(decimal.NewFromFloat(a))
	}
	return sum.Round(2).InexactFloat64()
}

// StartingPrice is what a listing shows as "from": the price of the smallest
// tier when tiers exist, otherwise the base price for one unit.
func StartingPrice(base float64, unit string, tiers []Tier) Tier {
	if len(tiers) == 0 {
		return Tier{Quantity: 1, Price: base, DisplayUnit: unit}
	}

	sorted := make([]Tier, len(tiers))
	copy(sorted, tiers)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Quantity < sorted[j].Quantity
	})

	start := sorted[0]
	if start.DisplayUnit == "" {
		start.DisplayUnit = unit
	}
	return start
}
