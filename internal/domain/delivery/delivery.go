package delivery

import (
	"sync"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
)

// StatusPreparing is the initial status of every delivery.
const StatusPreparing = "Preparing"

var (
	// ErrEmptyStatus is returned when updating a delivery to a blank status.
	ErrEmptyStatus = errors.New("status cannot be empty")
	// ErrNotFound is returned when no delivery exists for an order.
	ErrNotFound = errors.New("delivery not found")
)

// Delivery is a status-tracked record keyed 1:1 by order. No transition graph
// is enforced; statuses are free-form strings updated explicitly.
type Delivery struct {
	ID      string
	OrderID string

	mu     sync.Mutex
	status string
}

// New creates a delivery for the given order in the Preparing state.
func New(orderID string) *Delivery {
	return &Delivery{
		ID:      uuid.New().String(),
		OrderID: orderID,
		status:  StatusPreparing,
	}
}

// UpdateStatus overwrites the status. Blank statuses are rejected.
func (d *Delivery) UpdateStatus(s string) error {
	if s == "" {
		return ErrEmptyStatus
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.status = s
	return nil
}

// Status returns the current status.
func (d *Delivery) Status() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.status
}

// EstimatedTime returns the expected delivery time relative to now.
func (d *Delivery) EstimatedTime(now time.Time) time.Time {
	return now.Add(2 * time.Hour)
}
