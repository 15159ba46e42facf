package delivery

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	d := New("order-1")
	assert.NotEmpty(t, d.ID)
	assert.Equal(t, "order-1", d.OrderID)
	assert.Equal(t, StatusPreparing, d.Status())
}

func TestUpdateStatus(t *testing.T) {
	d := New("order-1")

	require.NoError(t, d.UpdateStatus("Out for delivery"))
	assert.Equal(t, "Out for delivery", d.Status())

	require.ErrorIs(t, d.UpdateStatus(""), ErrEmptyStatus)
	assert.Equal(t, "Out for delivery", d.Status())
}

func TestEstimatedTime(t *testing.T) {
	d := New("order-1")
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, now.Add(2*time.Hour), d.EstimatedTime(now))
}
