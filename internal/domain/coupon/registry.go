package coupon

import (
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

// Registry sizing. Promo campaigns can register codes in bulk, so the bloom
// filter is provisioned well above the expected live set.
const (
	filterCapacity = 1_000_000
	filterFPR      = 0.001
)

// Registry stores coupons keyed by their case-sensitive code. Lookups are
// read-mostly: a bloom filter in front of the map short-circuits codes that
// were never registered without touching the map lock's read path semantics
// for hits.
type Registry struct {
	mu     sync.RWMutex
	byCode map[string]*Coupon
	filter *bloom.BloomFilter
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		byCode: make(map[string]*Coupon),
		filter: bloom.NewWithEstimates(filterCapacity, filterFPR),
	}
}

// Add registers a coupon. Re-adding a code replaces the stored coupon.
func (r *Registry) Add(c *Coupon) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byCode[c.Code] = c
	r.filter.AddString(c.Code)
}

// Lookup returns the coupon registered under code, or ErrNotFound.
func (r *Registry) Lookup(code string) (*Coupon, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// Definite negative: the filter has no false negatives.
	if !r.filter.TestString(code) {
		return nil, ErrNotFound
	}

	c, ok := r.byCode[code]
	if !ok {
		return nil, ErrNotFound
	}
	return c, nil
}

// Len returns the number of registered coupons.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byCode)
}
