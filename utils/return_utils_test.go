package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/luxstore/backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func deliveredOrder(userID uint, deliveredAt time.Time) *models.Order {
	return &models.Order{
		ID:          1,
		UserID:      &userID,
		Status:      models.OrderStatusDelivered,
		DeliveredAt: &deliveredAt,
	}
}

func TestCheckReturnEligibilityAccepted(t *testing.T) {
	now := time.Now()
	order := deliveredOrder(7, now.Add(-5*24*time.Hour))

	assert.NoError(t, CheckReturnEligibility(order, 7, 14, now))
}

func TestCheckReturnEligibilityForbiddenForNonOwner(t *testing.T) {
	now := time.Now()
	order := deliveredOrder(7, now)

	err := CheckReturnEligibility(order, 8, 14, now)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrForbidden))
}

func TestCheckReturnEligibilityGuestOrder(t *testing.T) {
	now := time.Now()
	order := &models.Order{ID: 1, Status: models.OrderStatusDelivered, DeliveredAt: &now}

	err := CheckReturnEligibility(order, 8, 14, now)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrForbidden))
}

func TestCheckReturnEligibilityNotDelivered(t *testing.T) {
	now := time.Now()
	userID := uint(7)
	order := &models.Order{ID: 1, UserID: &userID, Status: models.OrderStatusShipped}

	err := CheckReturnEligibility(order, 7, 14, now)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotEligible))
}

func TestCheckReturnEligibilityWindowExpired(t *testing.T) {
	now := time.Now()
	order := deliveredOrder(7, now.Add(-15*24*time.Hour))

	err := CheckReturnEligibility(order, 7, 14, now)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrReturnWindowExpired))
}

func TestCheckReturnEligibilityWindowBoundaryInclusive(t *testing.T) {
	now := time.Now()
	order := deliveredOrder(7, now.Add(-14*24*time.Hour))

	// Exactly window days after delivery is still inside the window
	assert.NoError(t, CheckReturnEligibility(order, 7, 14, now))

	order = deliveredOrder(7, now.Add(-14*24*time.Hour-time.Second))
	err := CheckReturnEligibility(order, 7, 14, now)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrReturnWindowExpired))
}

func TestReturnClockStartFallsBackToUpdatedAt(t *testing.T) {
	updated := time.Now().Add(-3 * 24 * time.Hour)
	userID := uint(7)
	order := &models.Order{
		ID:        1,
		UserID:    &userID,
		Status:    models.OrderStatusDelivered,
		UpdatedAt: updated,
	}

	assert.Equal(t, updated, ReturnClockStart(order))
	assert.NoError(t, CheckReturnEligibility(order, 7, 14, time.Now()))

	delivered := time.Now().Add(-1 * 24 * time.Hour)
	order.DeliveredAt = &delivered
	assert.Equal(t, delivered, ReturnClockStart(order))
}
