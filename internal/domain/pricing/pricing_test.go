package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/emart/internal/domain/product"
)

func TestParseTier(t *testing.T) {
	assert.Equal(t, TierWholesale, ParseTier("wholesale"))
	assert.Equal(t, TierStandard, ParseTier("standard"))
	assert.Equal(t, TierStandard, ParseTier(""))
	assert.Equal(t, TierStandard, ParseTier("premium"))
	assert.Equal(t, TierStandard, ParseTier("Wholesale"))
}

func TestUnitPrice(t *testing.T) {
	p, err := product.New("p1", "Rice 5kg", "",
		decimal.RequireFromString("100"), decimal.RequireFromString("80"), 10)
	require.NoError(t, err)

	tests := []struct {
		name     string
		tier     Tier
		discount int64
		want     string
	}{
		{name: "standard no discount", tier: TierStandard, discount: 0, want: "100"},
		{name: "wholesale no discount", tier: TierWholesale, discount: 0, want: "80"},
		{name: "standard 25 percent off", tier: TierStandard, discount: 25, want: "75"},
		{name: "wholesale 25 percent off", tier: TierWholesale, discount: 25, want: "60"},
		{name: "full discount", tier: TierStandard, discount: 100, want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, p.SetDiscount(tt.discount))

			got := UnitPrice(p, tt.tier)
			want := decimal.RequireFromString(tt.want)
			assert.True(t, want.Equal(got), "expected %s, got %s", want, got)
		})
	}
}

func TestUnitPrice_RoundsHalfUp(t *testing.T) {
	// 9.99 at 15% off is 8.4915, which rounds to 8.49.
	p, err := product.New("p1", "Soap", "",
		decimal.RequireFromString("9.99"), decimal.RequireFromString("7.99"), 1)
	require.NoError(t, err)
	require.NoError(t, p.SetDiscount(15))

	got := UnitPrice(p, TierStandard)
	assert.Equal(t, "8.49", got.StringFixed(2))

	// 7.99 at 15% off is 6.7915, which rounds to 6.79.
	got = UnitPrice(p, TierWholesale)
	assert.Equal(t, "6.79", got.StringFixed(2))
}
