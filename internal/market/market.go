// Package market implements the marketplace's transactional core: an owned
// in-memory store of customers, catalog, coupons, carts, orders and
// deliveries, with the reservation and checkout pipeline on top.
//
// Locking discipline: the market mutex guards only the maps. Per-customer
// state serializes on the account mutex and per-product stock on the product
// ledger's own lock. The market mutex may be acquired while holding an
// account mutex, never the other way around.
package market

import (
	"strings"
	"sync"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/xenking/emart/internal/domain/cart"
	"github.com/xenking/emart/internal/domain/coupon"
	"github.com/xenking/emart/internal/domain/customer"
	"github.com/xenking/emart/internal/domain/delivery"
	"github.com/xenking/emart/internal/domain/order"
	"github.com/xenking/emart/internal/domain/product"
)

var (
	// ErrCartNotFound is returned when no cart exists for a customer.
	ErrCartNotFound = errors.New("no cart found for customer")
	// ErrEmptyCart is returned when checking out a cart with no entries.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrUsernameTaken is returned when registering a duplicate username.
	ErrUsernameTaken = errors.New("username already exists")
	// ErrEmailTaken is returned when registering a duplicate email.
	ErrEmailTaken = errors.New("email already registered")
)

// account bundles a customer with their cart. All cart mutation and checkout
// for one customer serialize on mu, so a checkout can never interleave with
// an in-flight reservation on the same cart.
type account struct {
	mu       sync.Mutex
	customer *customer.Customer
	cart     *cart.Cart
}

// Category groups products under a unique, case-insensitive name.
type Category struct {
	ID         string
	Name       string
	productIDs []string
}

// Market is the explicit owned store passed to every operation. Multiple
// independent instances can coexist, e.g. one per test.
type Market struct {
	coupons *coupon.Registry
	now     func() time.Time

	mu         sync.RWMutex
	accounts   map[string]*account  // customer ID -> account
	usernames  map[string]string    // username -> customer ID
	emails     map[string]string    // lowercase email -> customer ID
	products   map[string]*product.Product
	categories map[string]*Category // lowercase name -> category
	orders     map[string]*order.Order
	deliveries map[string]*delivery.Delivery // order ID -> delivery
}

// New creates an empty Market.
func New() *Market {
	return &Market{
		coupons:    coupon.NewRegistry(),
		now:        time.Now,
		accounts:   make(map[string]*account),
		usernames:  make(map[string]string),
		emails:     make(map[string]string),
		products:   make(map[string]*product.Product),
		categories: make(map[string]*Category),
		orders:     make(map[string]*order.Order),
		deliveries: make(map[string]*delivery.Delivery),
	}
}

// RegisterCustomer adds a customer with a unique username and email and
// creates their empty cart in the same step.
func (m *Market) RegisterCustomer(c *customer.Customer) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.usernames[c.Username]; ok {
		return ErrUsernameTaken
	}
	email := strings.ToLower(c.Email)
	if _, ok := m.emails[email]; ok {
		return ErrEmailTaken
	}

	m.accounts[c.ID] = &account{
		customer: c,
		cart:     cart.New(c.ID),
	}
	m.usernames[c.Username] = c.ID
	m.emails[email] = c.ID
	return nil
}

// Customer returns a registered customer by ID.
func (m *Market) Customer(id string) (*customer.Customer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	acc, ok := m.accounts[id]
	if !ok {
		return nil, errors.Wrapf(customer.ErrInvalidCustomer, "unknown customer %s", id)
	}
	return acc.customer, nil
}

// AddProduct adds a product to the catalog under the named category, creating
// the category when it does not exist yet. Category names are unique
// case-insensitively by construction of the key.
func (m *Market) AddProduct(p *product.Product, categoryName string) error {
	if categoryName == "" {
		return errors.Wrap(product.ErrInvalidProduct, "category name required")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.products[p.ID] = p

	key := strings.ToLower(categoryName)
	cat, ok := m.categories[key]
	if !ok {
		cat = &Category{ID: uuid.New().String(), Name: categoryName}
		m.categories[key] = cat
	}
	cat.productIDs = append(cat.productIDs, p.ID)
	return nil
}

// Product returns a catalog product by ID.
func (m *Market) Product(id string) (*product.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.products[id]
	if !ok {
		return nil, product.ErrNotFound
	}
	return p, nil
}

// Products returns every product in the catalog.
func (m *Market) Products() []*product.Product {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*product.Product, 0, len(m.products))
	for _, p := range m.products {
		out = append(out, p)
	}
	return out
}

// SearchProducts returns products whose name contains the query,
// case-insensitively.
func (m *Market) SearchProducts(query string) []*product.Product {
	q := strings.ToLower(strings.TrimSpace(query))

	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*product.Product
	for _, p := range m.products {
		if strings.Contains(strings.ToLower(p.Name), q) {
			out = append(out, p)
		}
	}
	return out
}

// ProductsInCategory returns the products of the named category, or nil when
// the category does not exist.
func (m *Market) ProductsInCategory(name string) []*product.Product {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cat, ok := m.categories[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil
	}

	out := make([]*product.Product, 0, len(cat.productIDs))
	for _, id := range cat.productIDs {
		if p, ok := m.products[id]; ok {
			out = append(out, p)
		}
	}
	return out
}

// SetProductDiscount updates a product's discount percentage.
func (m *Market) SetProductDiscount(productID string, pct int64) error {
	p, err := m.Product(productID)
	if err != nil {
		return err
	}
	return p.SetDiscount(pct)
}

// AddCoupon registers a coupon.
func (m *Market) AddCoupon(c *coupon.Coupon) {
	m.coupons.Add(c)
}

// lookupAccount fetches the account pointer for a customer. The market lock
// is released before the caller takes the account lock.
func (m *Market) lookupAccount(customerID string) (*account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	acc, ok := m.accounts[customerID]
	if !ok {
		return nil, ErrCartNotFound
	}
	return acc, nil
}
