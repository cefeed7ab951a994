package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to OrderStatus
		want     bool
	}{
		{OrderAssigned, OrderPickedUp, true},
		{OrderAssigned, OrderFailed, true},
		{OrderPickedUp, OrderOutForDelivery, true},
		{OrderPickedUp, OrderFailed, true},
		{OrderOutForDelivery, OrderDelivered, true},
		{OrderOutForDelivery, OrderFailed, true},

		// UNASSIGNED only moves through assignment, never a manual status pick
		{OrderUnassigned, OrderAssigned, false},
		{OrderUnassigned, OrderFailed, false},

		// No skipping ahead or moving backwards
		{OrderAssigned, OrderOutForDelivery, false},
		{OrderAssigned, OrderDelivered, false},
		{OrderPickedUp, OrderAssigned, false},
		{OrderOutForDelivery, OrderPickedUp, false},

		// Terminal statuses offer nothing
		{OrderDelivered, OrderFailed, false},
		{OrderFailed, OrderAssigned, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestNextStatuses(t *testing.T) {
	assert.ElementsMatch(t, []OrderStatus{OrderPickedUp, OrderFailed}, NextStatuses(OrderAssigned))
	assert.Empty(t, NextStatuses(OrderDelivered))
	assert.Empty(t, NextStatuses(OrderFailed))
	assert.Nil(t, NextStatuses(OrderStatus("BOGUS")))

	// Mutating the returned slice must not corrupt the table
	next := NextStatuses(OrderAssigned)
	next[0] = OrderDelivered
	assert.ElementsMatch(t, []OrderStatus{OrderPickedUp, OrderFailed}, NextStatuses(OrderAssigned))
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, IsTerminal(OrderDelivered))
	assert.True(t, IsTerminal(OrderFailed))
	assert.False(t, IsTerminal(OrderUnassigned))
	assert.False(t, IsTerminal(OrderAssigned))
	assert.False(t, IsTerminal(OrderPickedUp))
	assert.False(t, IsTerminal(OrderOutForDelivery))
}

func TestValidStatus(t *testing.T) {
	for _, s := range []OrderStatus{
		OrderUnassigned, OrderAssigned, OrderPickedUp,
		OrderOutForDelivery, OrderDelivered, OrderFailed,
	} {
		assert.True(t, ValidStatus(s), string(s))
	}
	assert.False(t, ValidStatus(OrderStatus("CANCELLED")))
	assert.False(t, ValidStatus(OrderStatus("delivered")))
}

func TestOrderIsActive(t *testing.T) {
	assert.True(t, Order{Status: OrderAssigned}.IsActive())
	assert.True(t, Order{Status: OrderUnassigned}.IsActive())
	assert.False(t, Order{Status: OrderDelivered}.IsActive())
	assert.False(t, Order{Status: OrderFailed}.IsActive())
}
