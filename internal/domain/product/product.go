package product

import (
	"sync"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// Sentinel errors for catalog and stock operations.
var (
	// ErrNotFound is returned when a requested product does not exist.
	ErrNotFound = errors.New("product not found")
	// ErrInsufficientStock is returned when a reservation asks for more
	// units than the ledger currently holds.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrInvariantViolation indicates a ledger operation that would drive
	// stock negative. It should never surface; seeing it means a bug.
	ErrInvariantViolation = errors.New("stock invariant violated")
	// ErrInvalidDiscount is returned for discount percentages outside [0, 100].
	ErrInvalidDiscount = errors.New("discount percent must be between 0 and 100")
	// ErrInvalidProduct is returned when product attributes fail validation.
	ErrInvalidProduct = errors.New("invalid product")
)

// Product is a catalog item carrying its own stock ledger. Identity, name and
// the two list prices are immutable after creation; the unit count and the
// discount percent are guarded by a per-product mutex so that the
// check-then-decrement sequence in Reserve is atomic.
type Product struct {
	ID             string
	Name           string
	Description    string
	StandardPrice  decimal.Decimal
	WholesalePrice decimal.Decimal

	mu       sync.Mutex
	stock    int
	discount int64
}

// New validates attributes and creates a Product with a zero discount.
func New(id, name, description string, standard, wholesale decimal.Decimal, stock int) (*Product, error) {
	switch {
	case id == "":
		return nil, errors.Wrap(ErrInvalidProduct, "id required")
	case name == "":
		return nil, errors.Wrap(ErrInvalidProduct, "name required")
	case !standard.IsPositive() || !wholesale.IsPositive():
		return nil, errors.Wrap(ErrInvalidProduct, "prices must be positive")
	case stock < 0:
		return nil, errors.Wrap(ErrInvalidProduct, "stock must not be negative")
	}

	return &Product{
		ID:             id,
		Name:           name,
		Description:    description,
		StandardPrice:  standard,
		WholesalePrice: wholesale,
		stock:          stock,
	}, nil
}

// Stock returns the number of units currently available for sale.
func (p *Product) Stock() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stock
}

// Reserve atomically removes qty units from sale. It returns
// ErrInsufficientStock when fewer than qty units are available, leaving the
// ledger untouched.
func (p *Product) Reserve(qty int) error {
	if qty <= 0 {
		return errors.Wrapf(ErrInvariantViolation, "reserve %d units", qty)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stock < qty {
		return errors.Wrapf(ErrInsufficientStock, "%d of %q requested, %d available", qty, p.Name, p.stock)
	}
	p.stock -= qty
	return nil
}

// Release atomically returns qty units to sale, reversing an earlier Reserve.
func (p *Product) Release(qty int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stock+qty < 0 {
		return errors.Wrapf(ErrInvariantViolation, "release %d units with %d in stock", qty, p.stock)
	}
	p.stock += qty
	return nil
}

// SetDiscount sets the product-wide discount percentage.
func (p *Product) SetDiscount(pct int64) error {
	if pct < 0 || pct > 100 {
		return ErrInvalidDiscount
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.discount = pct
	return nil
}

// DiscountPercent returns the current discount percentage.
func (p *Product) DiscountPercent() int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.discount
}
