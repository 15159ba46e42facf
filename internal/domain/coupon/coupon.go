package coupon

import (
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

var (
	// ErrNotFound is returned when a coupon code is not registered.
	ErrNotFound = errors.New("coupon not found")
	// ErrExpired is returned when a coupon is past its expiry date.
	ErrExpired = errors.New("coupon expired")
	// ErrInvalidCoupon is returned when coupon attributes fail validation.
	ErrInvalidCoupon = errors.New("invalid coupon")
)

var hundred = decimal.NewFromInt(100)

// Coupon is a percentage discount keyed by a case-sensitive code. Coupons are
// immutable after creation; an expired coupon simply becomes unusable.
type Coupon struct {
	Code            string
	DiscountPercent decimal.Decimal
	// ExpiresAt is the last calendar day on which the coupon is valid.
	ExpiresAt time.Time
}

// New validates attributes and creates a Coupon.
func New(code string, percent decimal.Decimal, expiresAt time.Time) (*Coupon, error) {
	if code == "" {
		return nil, errors.Wrap(ErrInvalidCoupon, "code required")
	}
	if percent.IsNegative() || percent.GreaterThan(hundred) {
		return nil, errors.Wrap(ErrInvalidCoupon, "discount must be between 0 and 100")
	}

	return &Coupon{
		Code:            code,
		DiscountPercent: percent,
		ExpiresAt:       expiresAt,
	}, nil
}

// ValidOn reports whether the coupon can be used at the given instant.
// The expiry date itself is the last valid day.
func (c *Coupon) ValidOn(now time.Time) bool {
	return !dateOf(now).After(dateOf(c.ExpiresAt))
}

// ApplyTo returns amount with the coupon's percentage discount subtracted.
func (c *Coupon) ApplyTo(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(hundred.Sub(c.DiscountPercent)).Div(hundred)
}

// dateOf truncates t to its calendar day.
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
