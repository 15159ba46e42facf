// Package cart implements per-customer stock reservations. A cart entry is
// not a wishlist: every reserved unit has already been debited from the
// product's ledger, so entries represent units removed from sale.
package cart

import (
	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/xenking/emart/internal/domain/pricing"
	"github.com/xenking/emart/internal/domain/product"
)

var (
	// ErrInvalidQuantity is returned for non-positive reservation quantities.
	ErrInvalidQuantity = errors.New("quantity must be greater than 0")
	// ErrNotInCart is returned when releasing a product the cart does not hold.
	ErrNotInCart = errors.New("product not in cart")
)

// Entry is one reserved (product, quantity) pair.
type Entry struct {
	Product  *product.Product
	Quantity int
}

// Cart holds a customer's reservations in insertion order, at most one entry
// per product. Cart is not internally synchronized: the owning account
// serializes all mutation and checkout for one customer on a single lock.
type Cart struct {
	ID         string
	CustomerID string
	entries    []Entry
}

// New creates an empty cart owned by the given customer.
func New(customerID string) *Cart {
	return &Cart{
		ID:         uuid.New().String(),
		CustomerID: customerID,
	}
}

// Reserve debits qty units from the product's ledger and records them in the
// cart as one logical operation. Repeat reservations of the same product
// merge; the stock check covers only the incremental quantity, never the
// merged total. On failure the ledger and the cart are unchanged.
func (c *Cart) Reserve(p *product.Product, qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}

	// The ledger debit is the commit point: it checks and decrements under
	// the product lock, so a successful return here means the units are ours.
	if err := p.Reserve(qty); err != nil {
		return err
	}

	for i := range c.entries {
		if c.entries[i].Product.ID == p.ID {
			c.entries[i].Quantity += qty
			return nil
		}
	}
	c.entries = append(c.entries, Entry{Product: p, Quantity: qty})
	return nil
}

// Release removes the product's entry entirely and returns its full reserved
// quantity to the ledger.
func (c *Cart) Release(productID string) error {
	for i, e := range c.entries {
		if e.Product.ID != productID {
			continue
		}
		if err := e.Product.Release(e.Quantity); err != nil {
			return errors.Wrap(err, "restore stock")
		}
		c.entries = append(c.entries[:i], c.entries[i+1:]...)
		return nil
	}
	return ErrNotInCart
}

// Entries returns a copy of the cart's entries.
func (c *Cart) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Empty reports whether the cart has no entries.
func (c *Cart) Empty() bool {
	return len(c.entries) == 0
}

// Total sums the tiered line prices across all entries.
func (c *Cart) Total(tier pricing.Tier) decimal.Decimal {
	sum := decimal.Zero
	for _, e := range c.entries {
		line := pricing.UnitPrice(e.Product, tier).Mul(decimal.NewFromInt(int64(e.Quantity)))
		sum = sum.Add(line)
	}
	return sum
}

// Clear drops all entries without touching the ledger. Callers must only use
// it after the entries have been transferred to an order; anywhere else it
// leaks reserved stock.
func (c *Cart) Clear() {
	c.entries = nil
}
