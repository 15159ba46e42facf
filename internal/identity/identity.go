// Package identity is the seam to the external identity collaborator. The
// core never stores or verifies credentials itself; it calls a Verifier.
package identity

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"sync"

	"github.com/go-faster/errors"
)

// ErrInvalidCredentials is returned for unknown usernames or wrong passwords.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Verifier authenticates a username/password pair and resolves it to a
// customer ID.
type Verifier interface {
	Verify(ctx context.Context, username, password string) (customerID string, err error)
}

type credential struct {
	customerID string
	hash       []byte
}

// Store is an in-memory Verifier holding peppered HMAC-SHA256 password
// hashes. It stands in for the real identity service in single-process
// deployments and tests.
type Store struct {
	pepper []byte

	mu         sync.RWMutex
	byUsername map[string]credential
}

var _ Verifier = (*Store)(nil)

// NewStore creates a Store using the given HMAC pepper.
func NewStore(pepper []byte) *Store {
	return &Store{
		pepper:     pepper,
		byUsername: make(map[string]credential),
	}
}

// Add records credentials for a customer, replacing any previous entry.
func (s *Store) Add(username, password, customerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.byUsername[username] = credential{
		customerID: customerID,
		hash:       s.hash(password),
	}
}

// Verify checks the password against the stored hash in constant time.
func (s *Store) Verify(_ context.Context, username, password string) (string, error) {
	s.mu.RLock()
	cred, ok := s.byUsername[username]
	s.mu.RUnlock()

	if !ok {
		return "", ErrInvalidCredentials
	}
	if subtle.ConstantTimeCompare(s.hash(password), cred.hash) != 1 {
		return "", ErrInvalidCredentials
	}
	return cred.customerID, nil
}

func (s *Store) hash(password string) []byte {
	mac := hmac.New(sha256.New, s.pepper)
	mac.Write([]byte(password))
	return mac.Sum(nil)
}
