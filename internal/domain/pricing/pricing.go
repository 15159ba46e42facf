// Package pricing computes per-unit prices for catalog products based on the
// customer's tier and the product's active discount.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/xenking/emart/internal/domain/product"
)

// Tier classifies a customer for pricing purposes.
type Tier string

const (
	// TierStandard buys at the standard list price.
	TierStandard Tier = "standard"
	// TierWholesale buys at the wholesale list price.
	TierWholesale Tier = "wholesale"
)

var hundred = decimal.NewFromInt(100)

// ParseTier maps a string to a Tier. Anything other than "wholesale" is
// treated as standard, so pricing stays total for unrecognized values.
func ParseTier(s string) Tier {
	if Tier(s) == TierWholesale {
		return TierWholesale
	}
	return TierStandard
}

// UnitPrice returns the effective per-unit price: the tier's list price with
// the product discount applied, rounded to 2 decimal places (half-up).
func UnitPrice(p *product.Product, tier Tier) decimal.Decimal {
	base := p.StandardPrice
	if tier == TierWholesale {
		base = p.WholesalePrice
	}

	pct := decimal.NewFromInt(p.DiscountPercent())
	return base.Mul(hundred.Sub(pct)).Div(hundred).Round(2)
}
