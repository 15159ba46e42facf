package identity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Verify(t *testing.T) {
	s := NewStore([]byte("test-pepper"))
	s.Add("alice", "s3cret", "cust-1")

	id, err := s.Verify(context.Background(), "alice", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "cust-1", id)

	_, err = s.Verify(context.Background(), "alice", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = s.Verify(context.Background(), "bob", "s3cret")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestStore_AddReplaces(t *testing.T) {
	s := NewStore([]byte("test-pepper"))
	s.Add("alice", "old", "cust-1")
	s.Add("alice", "new", "cust-1")

	_, err := s.Verify(context.Background(), "alice", "old")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	id, err := s.Verify(context.Background(), "alice", "new")
	require.NoError(t, err)
	assert.Equal(t, "cust-1", id)
}

func TestStore_PepperChangesHash(t *testing.T) {
	a := NewStore([]byte("pepper-a"))
	b := NewStore([]byte("pepper-b"))

	assert.NotEqual(t, a.hash("s3cret"), b.hash("s3cret"))
}
