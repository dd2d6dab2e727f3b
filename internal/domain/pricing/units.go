// internal/domain/pricing/units.go
package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Unit labels used by tiers and products
const (
	UnitGram     = "g"
	UnitKilogram = "Kg"
	UnitPiece    = "pcs"
)

// NormalizeQuantity converts an admin-entered tier quantity into the canonical
// stored quantity. Grams are divided by 1000 into kilograms and keep the gram
// label for display; any other unit is stored as entered. An empty unit falls
// back to the product's native unit.
func NormalizeQuantity(raw float64, chosenUnit, nativeUnit string) (float64, string) {
	unit := strings.TrimSpace(chosenUnit)
	if unit == "" {
		unit = nativeUnit
	}

	if IsGram(unit) {
		return raw / 1000, UnitGram
	}
	return raw, unit
}

// DisplayQuantity converts a canonical quantity back into the number shown next
// to displayUnit, so a 0.25 tier labelled "g" renders as 250.
func DisplayQuantity(canonical float64, displayUnit string) float64 {
	if IsGram(displayUnit) {
		return decimal.NewFromFloat(canonical).Mul(decimal.NewFromInt(1000)).Round(3).InexactFloat64()
	}
	return canonical
}

// IsGram reports whether unit is the gram marker
func IsGram(unit string) bool {
	return strings.EqualFold(strings.TrimSpace(unit), UnitGram)
}
