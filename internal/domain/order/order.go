package order

import (
	"sync"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status tracks an order through its lifecycle.
type Status string

const (
	// StatusPending is the initial state, never observable outside checkout.
	StatusPending Status = "Pending"
	// StatusPlaced means the item list and total are frozen.
	StatusPlaced Status = "Placed"
	// StatusCancelled is terminal.
	StatusCancelled Status = "Cancelled"
)

var (
	// ErrEmptyOrder is returned when creating an order with no lines.
	ErrEmptyOrder = errors.New("order must contain at least one item")
	// ErrNotFound is returned when a requested order does not exist.
	ErrNotFound = errors.New("order not found")
	// ErrAlreadyCancelled is returned when cancelling a cancelled order.
	ErrAlreadyCancelled = errors.New("order already cancelled")
)

// Line is one purchased item with its unit price frozen at checkout time.
type Line struct {
	ProductID string
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
}

// Order is the immutable record of a purchase. Once placed, only the status
// may change (Placed to Cancelled); lines, total and coupon are frozen.
type Order struct {
	ID         string
	CustomerID string
	Lines      []Line
	Total      decimal.Decimal
	CouponCode string
	CreatedAt  time.Time

	mu     sync.Mutex
	status Status
}

// New creates an order in the Pending state.
func New(customerID string, lines []Line, total decimal.Decimal, couponCode string) (*Order, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyOrder
	}

	return &Order{
		ID:         uuid.New().String(),
		CustomerID: customerID,
		Lines:      lines,
		Total:      total,
		CouponCode: couponCode,
		CreatedAt:  time.Now().UTC(),
		status:     StatusPending,
	}, nil
}

// Place transitions Pending to Placed. It always succeeds on a pending order
// since emptiness is rejected at construction.
func (o *Order) Place() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.status != StatusPending {
		return errors.Errorf("cannot place order in status %s", o.status)
	}
	o.status = StatusPlaced
	return nil
}

// Cancel transitions to Cancelled. Cancelling twice fails so that
// compensating actions (stock restoration) run exactly once.
func (o *Order) Cancel() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.status == StatusCancelled {
		return ErrAlreadyCancelled
	}
	o.status = StatusCancelled
	return nil
}

// CurrentStatus returns the order's status.
func (o *Order) CurrentStatus() Status {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.status
}
