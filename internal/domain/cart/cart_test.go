package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/emart/internal/domain/pricing"
	"github.com/xenking/emart/internal/domain/product"
)

func newProduct(t *testing.T, id string, standard, wholesale string, stock int) *product.Product {
	t.Helper()
	p, err := product.New(id, "product "+id, "",
		decimal.RequireFromString(standard), decimal.RequireFromString(wholesale), stock)
	require.NoError(t, err)
	return p
}

func TestReserve_DebitsStock(t *testing.T) {
	p := newProduct(t, "p1", "100", "80", 10)
	c := New("cust-1")

	require.NoError(t, c.Reserve(p, 3))

	assert.Equal(t, 7, p.Stock())
	entries := c.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, 3, entries[0].Quantity)
}

func TestReserve_MergesEntries(t *testing.T) {
	p := newProduct(t, "p1", "100", "80", 10)
	c := New("cust-1")

	require.NoError(t, c.Reserve(p, 2))
	require.NoError(t, c.Reserve(p, 3))

	entries := c.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, 5, entries[0].Quantity)
	assert.Equal(t, 5, p.Stock())
}

func TestReserve_MergeChecksOnlyDelta(t *testing.T) {
	p := newProduct(t, "p1", "100", "80", 10)
	c := New("cust-1")

	require.NoError(t, c.Reserve(p, 2))

	// 9 more would need 9 units but only 8 remain. The cart keeps its
	// existing 2 and the ledger is untouched by the failed delta.
	err := c.Reserve(p, 9)
	require.ErrorIs(t, err, product.ErrInsufficientStock)

	entries := c.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, 2, entries[0].Quantity)
	assert.Equal(t, 8, p.Stock())

	// The remaining 8 still fit.
	require.NoError(t, c.Reserve(p, 8))
	assert.Equal(t, 0, p.Stock())
	assert.Equal(t, 10, c.Entries()[0].Quantity)
}

func TestReserve_InvalidQuantity(t *testing.T) {
	p := newProduct(t, "p1", "100", "80", 10)
	c := New("cust-1")

	require.ErrorIs(t, c.Reserve(p, 0), ErrInvalidQuantity)
	require.ErrorIs(t, c.Reserve(p, -1), ErrInvalidQuantity)
	assert.Equal(t, 10, p.Stock())
	assert.True(t, c.Empty())
}

func TestRelease(t *testing.T) {
	p1 := newProduct(t, "p1", "100", "80", 10)
	p2 := newProduct(t, "p2", "50", "40", 5)
	c := New("cust-1")

	require.NoError(t, c.Reserve(p1, 4))
	require.NoError(t, c.Reserve(p2, 2))

	require.NoError(t, c.Release("p1"))
	assert.Equal(t, 10, p1.Stock(), "released units return to the ledger")

	entries := c.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "p2", entries[0].Product.ID)

	require.ErrorIs(t, c.Release("p1"), ErrNotInCart)
	require.ErrorIs(t, c.Release("missing"), ErrNotInCart)
}

func TestTotal(t *testing.T) {
	p1 := newProduct(t, "p1", "100", "80", 10)
	p2 := newProduct(t, "p2", "9.99", "7.99", 5)
	require.NoError(t, p2.SetDiscount(15))

	c := New("cust-1")
	require.NoError(t, c.Reserve(p1, 2))
	require.NoError(t, c.Reserve(p2, 3))

	// standard: 2*100 + 3*8.49 = 225.47
	assert.Equal(t, "225.47", c.Total(pricing.TierStandard).StringFixed(2))
	// wholesale: 2*80 + 3*6.79 = 180.37
	assert.Equal(t, "180.37", c.Total(pricing.TierWholesale).StringFixed(2))
}

func TestClear_DoesNotTouchLedger(t *testing.T) {
	p := newProduct(t, "p1", "100", "80", 10)
	c := New("cust-1")
	require.NoError(t, c.Reserve(p, 4))

	c.Clear()

	assert.True(t, c.Empty())
	assert.Equal(t, 6, p.Stock())
}
