package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveLinePrice_ExactTierOverridesLinear(t *testing.T) {
	tiers := []Tier{{Quantity: 0.25, Price: 25.0, DisplayUnit: UnitGram}}

	line := ResolveLinePrice(100.0, tiers, 0.25)
	require.NotNil(t, line.Tier)
	assert.Equal(t, 25.0, line.Total)
	assert.Equal(t, 100.0, line.UnitPrice)

	line = ResolveLinePrice(100.0, tiers, 0.3)
	assert.Nil(t, line.Tier)
	assert.Equal(t, 30.0, line.Total)
}

func TestResolveLinePrice_TierIsBundlePriceNotRate(t *testing.T) {
	tiers := []Tier{
		{Quantity: 0.5, Price: 40.0},
		{Quantity: 1, Price: 70.0},
	}

	line := ResolveLinePrice(90.0, tiers, 0.5)
	assert.Equal(t, 40.0, line.Total)
	assert.Equal(t, 80.0, line.UnitPrice)

	line = ResolveLinePrice(90.0, tiers, 1)
	assert.Equal(t, 70.0, line.Total)

	// between breakpoints falls back to base price
	line = ResolveLinePrice(90.0, tiers, 0.75)
	assert.Equal(t, 67.5, line.Total)
}

func TestResolveLinePrice_NoTiers(t *testing.T) {
	line := ResolveLinePrice(12.5, nil, 3)
	assert.Equal(t, 37.5, line.Total)
	assert.Equal(t, 12.5, line.UnitPrice)
	assert.Nil(t, line.Tier)
}

func TestResolveLinePrice_EpsilonMissesTier(t *testing.T) {
	tiers := []Tier{{Quantity: 0.3, Price: 20.0}}

	a, b := 0.1, 0.2
	line := ResolveLinePrice(100.0, tiers, a+b)
	assert.Nil(t, line.Tier)
	assert.Equal(t, 30.0, line.Total)
}

func TestResolveLinePrice_RoundsTotalOnly(t *testing.T) {
	line := ResolveLinePrice(10.0, []Tier{{Quantity: 3, Price: 10.0}}, 3)
	assert.Equal(t, 10.0, line.Total)
	assert.InDelta(t, 3.3333333, line.UnitPrice, 1e-6)

	line = ResolveLinePrice(1.125, nil, 1)
	assert.Equal(t, 1.13, line.Total)
}

func TestStartingPrice(t *testing.T) {
	start := StartingPrice(120, UnitKilogram, []Tier{
		{Quantity: 1, Price: 110, DisplayUnit: UnitKilogram},
		{Quantity: 0.25, Price: 35, DisplayUnit: UnitGram},
	})
	assert.Equal(t, 0.25, start.Quantity)
	assert.Equal(t, 35.0, start.Price)
	assert.Equal(t, UnitGram, start.DisplayUnit)

	start = StartingPrice(15, UnitPiece, nil)
	assert.Equal(t, Tier{Quantity: 1, Price: 15, DisplayUnit: UnitPiece}, start)
}

func TestSumMoney(t *testing.T) {
	assert.Equal(t, 0.3, SumMoney(0.1, 0.2))
	assert.Equal(t, 0.0, SumMoney())
}
