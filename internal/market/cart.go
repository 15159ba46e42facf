package market

import (
	"github.com/shopspring/decimal"

	"github.com/xenking/emart/internal/domain/pricing"
)

// CartItemView is one line of a read-only cart snapshot.
type CartItemView struct {
	ProductID string
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}

// CartView is a read-only snapshot of a customer's cart with tiered pricing.
type CartView struct {
	CartID string
	Items  []CartItemView
	Total  decimal.Decimal
}

// ReserveItem reserves qty units of a product into the customer's cart,
// debiting the product's ledger as part of the same operation.
func (m *Market) ReserveItem(customerID, productID string, qty int) error {
	acc, err := m.lookupAccount(customerID)
	if err != nil {
		return err
	}
	p, err := m.Product(productID)
	if err != nil {
		return err
	}

	acc.mu.Lock()
	defer acc.mu.Unlock()
	return acc.cart.Reserve(p, qty)
}

// ReleaseItem removes a product from the customer's cart and restores its
// full reserved quantity to the ledger.
func (m *Market) ReleaseItem(customerID, productID string) error {
	acc, err := m.lookupAccount(customerID)
	if err != nil {
		return err
	}

	acc.mu.Lock()
	defer acc.mu.Unlock()
	return acc.cart.Release(productID)
}

// ViewCart returns a snapshot of the customer's cart priced at their tier.
func (m *Market) ViewCart(customerID string) (*CartView, error) {
	acc, err := m.lookupAccount(customerID)
	if err != nil {
		return nil, err
	}

	acc.mu.Lock()
	defer acc.mu.Unlock()

	tier := acc.customer.Tier
	entries := acc.cart.Entries()

	view := &CartView{
		CartID: acc.cart.ID,
		Items:  make([]CartItemView, len(entries)),
		Total:  acc.cart.Total(tier),
	}
	for i, e := range entries {
		unit := pricing.UnitPrice(e.Product, tier)
		view.Items[i] = CartItemView{
			ProductID: e.Product.ID,
			Name:      e.Product.Name,
			Quantity:  e.Quantity,
			UnitPrice: unit,
			LineTotal: unit.Mul(decimal.NewFromInt(int64(e.Quantity))),
		}
	}
	return view, nil
}
