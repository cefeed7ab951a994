package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dispatch-gateway/internal/models"
)

func TestStore_SetRidersReplacesWholesale(t *testing.T) {
	s := NewStore()
	s.SetRiders([]models.Rider{
		{ID: 2, Name: "Bilal"},
		{ID: 1, Name: "Amir"},
	})

	riders := s.Riders()
	require.Len(t, riders, 2)
	// Server-provided order preserved
	assert.Equal(t, int64(2), riders[0].ID)
	assert.Equal(t, int64(1), riders[1].ID)

	s.SetRiders([]models.Rider{{ID: 3, Name: "Danish"}})
	riders = s.Riders()
	require.Len(t, riders, 1)
	assert.Equal(t, "Danish", riders[0].Name)

	_, ok := s.Rider(1)
	assert.False(t, ok, "old entries gone after replace")
}

func TestStore_PatchRiderMergesFields(t *testing.T) {
	s := NewStore()
	s.SetRiders([]models.Rider{{ID: 1, Name: "Amir", Status: models.RiderIdle}})

	lat, lng := 31.5204, 74.3587
	busy := models.RiderBusy
	ok := s.PatchRider(1, models.RiderPatch{Status: &busy, LatestLat: &lat, LatestLng: &lng})
	require.True(t, ok)

	rider, _ := s.Rider(1)
	assert.Equal(t, models.RiderBusy, rider.Status)
	require.NotNil(t, rider.LatestLat)
	assert.Equal(t, lat, *rider.LatestLat)
	// Untouched fields survive the merge
	assert.Equal(t, "Amir", rider.Name)
	assert.Nil(t, rider.Battery)
}

func TestStore_PatchRiderUnknownIDIsNoOp(t *testing.T) {
	s := NewStore()
	s.SetRiders([]models.Rider{{ID: 1}})

	busy := models.RiderBusy
	assert.False(t, s.PatchRider(99, models.RiderPatch{Status: &busy}))
	assert.Len(t, s.Riders(), 1)
}

func TestStore_PatchOrderSetsRiderSnapshotAndReference(t *testing.T) {
	s := NewStore()
	s.SetOrders([]models.Order{{ID: 5, Status: models.OrderUnassigned}})

	assigned := models.OrderAssigned
	rider := models.Rider{ID: 7, Name: "Amir", Status: models.RiderBusy}
	require.True(t, s.PatchOrder(5, models.OrderPatch{Status: &assigned, Rider: &rider}))

	order, _ := s.Order(5)
	assert.Equal(t, models.OrderAssigned, order.Status)
	require.NotNil(t, order.RiderID)
	assert.Equal(t, int64(7), *order.RiderID)
	require.NotNil(t, order.Rider)
	assert.Equal(t, "Amir", order.Rider.Name)

	// The snapshot is a copy, not an alias of the caller's value
	rider.Name = "changed"
	order, _ = s.Order(5)
	assert.Equal(t, "Amir", order.Rider.Name)
}

func TestStore_PatchIsIdempotent(t *testing.T) {
	s := NewStore()
	s.SetOrders([]models.Order{{ID: 5, Status: models.OrderAssigned}})

	picked := models.OrderPickedUp
	ts := "2026-08-31T10:00:00Z"
	patch := models.OrderPatch{Status: &picked, UpdatedAt: &ts}

	require.True(t, s.PatchOrder(5, patch))
	first, _ := s.Order(5)
	require.True(t, s.PatchOrder(5, patch))
	second, _ := s.Order(5)

	assert.Equal(t, first, second)
}

func TestStore_SettingsUnsetUntilLoaded(t *testing.T) {
	s := NewStore()

	_, ok := s.Settings()
	assert.False(t, ok)

	s.SetSettings(models.Settings{RestaurantName: "Lahore Grill"})
	settings, ok := s.Settings()
	require.True(t, ok)
	assert.Equal(t, "Lahore Grill", settings.RestaurantName)
}

func TestTx_Lifecycle(t *testing.T) {
	tx := newTx("assign_order")
	assert.Equal(t, TxPending, tx.State)
	assert.NotEmpty(t, tx.ID)
	assert.Equal(t, "assign_order", tx.Action)

	tx.commit()
	assert.Equal(t, TxCommitted, tx.State)

	tx2 := newTx("update_order_status")
	tx2.revert()
	assert.Equal(t, TxReverted, tx2.State)
}
