package realtime

import (
	"context"
	"encoding/json"

	"dispatch-gateway/internal/models"
)

// Channel and event names used by the fleet broker
const (
	RidersChannel = "riders"
	OrdersChannel = "orders"

	RiderLocationUpdated = "rider.location.updated"
	OrderStatusChanged   = "order.status.changed"
)

// RiderLocationEvent is pushed on the riders channel for every location ping
type RiderLocationEvent struct {
	RiderID int64   `json:"rider_id"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Battery *int    `json:"battery"`
	Ts      int64   `json:"ts"`
}

// OrderStatusEvent is pushed on the orders channel when an order transitions.
// Order carries the broker's snapshot of the full order; the engine does not
// trust it to reconstruct embedded rider details and refetches instead.
type OrderStatusEvent struct {
	OrderID int64              `json:"order_id"`
	Status  models.OrderStatus `json:"status"`
	Order   json.RawMessage    `json:"order"`
}

// Handler receives decoded broker events
type Handler interface {
	HandleRiderLocation(ev RiderLocationEvent)
	HandleOrderStatusChanged(ctx context.Context, ev OrderStatusEvent)
}
