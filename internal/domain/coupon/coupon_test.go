package coupon

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Validation(t *testing.T) {
	expiry := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	_, err := New("", decimal.NewFromInt(10), expiry)
	require.ErrorIs(t, err, ErrInvalidCoupon)

	_, err = New("SAVE10", decimal.NewFromInt(-1), expiry)
	require.ErrorIs(t, err, ErrInvalidCoupon)

	_, err = New("SAVE10", decimal.NewFromInt(101), expiry)
	require.ErrorIs(t, err, ErrInvalidCoupon)

	c, err := New("SAVE10", decimal.NewFromInt(10), expiry)
	require.NoError(t, err)
	assert.Equal(t, "SAVE10", c.Code)
}

func TestValidOn(t *testing.T) {
	expiry := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	c, err := New("SAVE10", decimal.NewFromInt(10), expiry)
	require.NoError(t, err)

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{name: "day before expiry", now: expiry.AddDate(0, 0, -1), want: true},
		{name: "morning of expiry day", now: expiry.Add(9 * time.Hour), want: true},
		{name: "last second of expiry day", now: expiry.Add(24*time.Hour - time.Second), want: true},
		{name: "day after expiry", now: expiry.AddDate(0, 0, 1), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.ValidOn(tt.now))
		})
	}
}

func TestApplyTo(t *testing.T) {
	expiry := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	c, err := New("SAVE10", decimal.NewFromInt(10), expiry)
	require.NoError(t, err)

	got := c.ApplyTo(decimal.RequireFromString("1000.00"))
	assert.Equal(t, "900.00", got.StringFixed(2))

	zero, err := New("NOOP", decimal.Zero, expiry)
	require.NoError(t, err)
	got = zero.ApplyTo(decimal.RequireFromString("1000.00"))
	assert.Equal(t, "1000.00", got.StringFixed(2))
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	expiry := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	_, err := r.Lookup("SAVE10")
	require.ErrorIs(t, err, ErrNotFound)

	c, err := New("SAVE10", decimal.NewFromInt(10), expiry)
	require.NoError(t, err)
	r.Add(c)

	got, err := r.Lookup("SAVE10")
	require.NoError(t, err)
	assert.Same(t, c, got)
	assert.Equal(t, 1, r.Len())

	// Codes are case-sensitive.
	_, err = r.Lookup("save10")
	require.ErrorIs(t, err, ErrNotFound)

	// Re-adding a code replaces the stored coupon.
	c2, err := New("SAVE10", decimal.NewFromInt(20), expiry)
	require.NoError(t, err)
	r.Add(c2)

	got, err = r.Lookup("SAVE10")
	require.NoError(t, err)
	assert.Same(t, c2, got)
	assert.Equal(t, 1, r.Len())
}
