package market

import (
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/xenking/emart/internal/domain/cart"
	"github.com/xenking/emart/internal/domain/coupon"
	"github.com/xenking/emart/internal/domain/delivery"
	"github.com/xenking/emart/internal/domain/order"
	"github.com/xenking/emart/internal/domain/pricing"
)

// Checkout converts the customer's cart into a placed order. It validates the
// cart and the optional coupon before creating anything, so a failure leaves
// cart, stock and coupons untouched. On success the coupon discount is
// applied once to the line-item subtotal, a delivery record is created for
// the new order, and the customer gets a fresh empty cart. Stock debited at
// reservation time is transferred to the order, not released.
func (m *Market) Checkout(customerID, couponCode string) (*order.Order, error) {
	acc, err := m.lookupAccount(customerID)
	if err != nil {
		return nil, err
	}

	acc.mu.Lock()
	defer acc.mu.Unlock()

	if acc.cart.Empty() {
		return nil, ErrEmptyCart
	}
	tier := acc.customer.Tier

	var applied *coupon.Coupon
	if couponCode != "" {
		applied, err = m.coupons.Lookup(couponCode)
		if err != nil {
			return nil, err
		}
		if !applied.ValidOn(m.now()) {
			return nil, coupon.ErrExpired
		}
	}

	lines, subtotal := priceEntries(acc.cart.Entries(), tier)

	total := subtotal
	if applied != nil {
		total = applied.ApplyTo(total)
	}
	total = total.Round(2)

	o, err := order.New(customerID, lines, total, couponCode)
	if err != nil {
		return nil, errors.Wrap(err, "create order")
	}
	if err := o.Place(); err != nil {
		return nil, errors.Wrap(err, "place order")
	}

	// The entries now belong to the order; replace the cart without touching
	// the ledger.
	acc.cart = cart.New(customerID)

	d := delivery.New(o.ID)

	m.mu.Lock()
	m.orders[o.ID] = o
	m.deliveries[o.ID] = d
	m.mu.Unlock()

	return o, nil
}

// priceEntries freezes per-line unit prices at the customer's tier and
// returns the lines together with their subtotal.
func priceEntries(entries []cart.Entry, tier pricing.Tier) ([]order.Line, decimal.Decimal) {
	lines := make([]order.Line, len(entries))
	subtotal := decimal.Zero
	for i, e := range entries {
		unit := pricing.UnitPrice(e.Product, tier)
		lines[i] = order.Line{
			ProductID: e.Product.ID,
			Name:      e.Product.Name,
			Quantity:  e.Quantity,
			UnitPrice: unit,
		}
		subtotal = subtotal.Add(unit.Mul(decimal.NewFromInt(int64(e.Quantity))))
	}
	return lines, subtotal
}

// Order returns a placed order by ID.
func (m *Market) Order(id string) (*order.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	o, ok := m.orders[id]
	if !ok {
		return nil, order.ErrNotFound
	}
	return o, nil
}

// CancelOrder cancels an order and restores every line's quantity to the
// ledger, making cancellation symmetric with reservation. The state machine
// guarantees the restoration runs at most once per order.
func (m *Market) CancelOrder(orderID string) error {
	o, err := m.Order(orderID)
	if err != nil {
		return err
	}

	if err := o.Cancel(); err != nil {
		return err
	}

	for _, line := range o.Lines {
		p, err := m.Product(line.ProductID)
		if err != nil {
			// Products are never destroyed during the process lifetime.
			return errors.Wrapf(err, "restore stock for %s", line.ProductID)
		}
		if err := p.Release(line.Quantity); err != nil {
			return errors.Wrapf(err, "restore stock for %s", line.ProductID)
		}
	}
	return nil
}

// TrackDelivery returns the delivery record for an order.
func (m *Market) TrackDelivery(orderID string) (*delivery.Delivery, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	d, ok := m.deliveries[orderID]
	if !ok {
		return nil, delivery.ErrNotFound
	}
	return d, nil
}

// UpdateDeliveryStatus overwrites the delivery status for an order.
func (m *Market) UpdateDeliveryStatus(orderID, status string) error {
	d, err := m.TrackDelivery(orderID)
	if err != nil {
		return err
	}
	return d.UpdateStatus(status)
}
