package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeQuantity(t *testing.T) {
	cases := []struct {
		name     string
		raw      float64
		chosen   string
		native   string
		wantQty  float64
		wantUnit string
	}{
		{"grams to kilograms", 500, "g", "Kg", 0.5, UnitGram},
		{"gram marker is case insensitive", 250, "G", "Kg", 0.25, UnitGram},
		{"kilograms unchanged", 2, "Kg", "Kg", 2, "Kg"},
		{"pieces unchanged", 6, "pcs", "pcs", 6, "pcs"},
		{"empty unit uses native", 3, "", "pcs", 3, "pcs"},
		{"empty unit with gram native", 100, " ", "g", 0.1, UnitGram},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			qty, unit := NormalizeQuantity(tc.raw, tc.chosen, tc.native)
			assert.InDelta(t, tc.wantQty, qty, 1e-12)
			assert.Equal(t, tc.wantUnit, unit)
		})
	}
}

func TestDisplayQuantity(t *testing.T) {
	assert.Equal(t, 250.0, DisplayQuantity(0.25, UnitGram))
	assert.Equal(t, 1.5, DisplayQuantity(1.5, UnitKilogram))
}
