// Package customer defines the customer entity. Tiers are a tag on a single
// entity rather than distinct types; pricing and eligibility switch on the tag.
package customer

import (
	"regexp"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/xenking/emart/internal/domain/pricing"
)

// ErrInvalidCustomer is returned when customer attributes fail validation.
var ErrInvalidCustomer = errors.New("invalid customer")

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phonePattern = regexp.MustCompile(`^[0-9]{10}$`)
)

// Customer is a registered marketplace account.
type Customer struct {
	ID       string
	Username string
	Email    string
	Name     string
	Address  string
	Phone    string
	Tier     pricing.Tier
	// BusinessLicense is only meaningful for wholesale customers.
	BusinessLicense string
}

// Params holds the input for creating a Customer.
type Params struct {
	Username        string
	Email           string
	Name            string
	Address         string
	Phone           string
	Tier            pricing.Tier
	BusinessLicense string
}

// New validates the parameters and creates a Customer with a fresh ID.
func New(p Params) (*Customer, error) {
	switch {
	case p.Username == "" || p.Name == "" || p.Address == "":
		return nil, errors.Wrap(ErrInvalidCustomer, "username, name and address are required")
	case !emailPattern.MatchString(p.Email):
		return nil, errors.Wrap(ErrInvalidCustomer, "invalid email format")
	case !phonePattern.MatchString(p.Phone):
		return nil, errors.Wrap(ErrInvalidCustomer, "phone must be 10 digits")
	}

	tier := pricing.ParseTier(string(p.Tier))
	if tier == pricing.TierWholesale && p.BusinessLicense == "" {
		return nil, errors.Wrap(ErrInvalidCustomer, "business license required for wholesale accounts")
	}

	return &Customer{
		ID:              uuid.New().String(),
		Username:        p.Username,
		Email:           p.Email,
		Name:            p.Name,
		Address:         p.Address,
		Phone:           p.Phone,
		Tier:            tier,
		BusinessLicense: p.BusinessLicense,
	}, nil
}
