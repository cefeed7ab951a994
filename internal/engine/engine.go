package engine

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"dispatch-gateway/internal/models"
	"dispatch-gateway/internal/notify"
	"dispatch-gateway/internal/realtime"
	"dispatch-gateway/internal/upstream"
)

// API is the slice of the fleet client the engine depends on
type API interface {
	ListOrders(ctx context.Context, q upstream.OrderQuery) ([]models.Order, *upstream.PageMeta, error)
	ListRiders(ctx context.Context, branchID *int64) ([]models.Rider, error)
	GetSettings(ctx context.Context, branchID *int64) (*models.Settings, error)
	CreateOrder(ctx context.Context, input upstream.OrderInput) (*models.Order, error)
	CreateRider(ctx context.Context, input upstream.RiderInput) (*models.Rider, error)
	AssignOrder(ctx context.Context, orderID, riderID int64) error
	UpdateOrderStatus(ctx context.Context, orderID int64, status models.OrderStatus, reason string) error
}

// Publisher pushes state snapshots to connected dashboard sessions
type Publisher interface {
	Publish(event string, data interface{})
}

// Engine owns the reconciled riders/orders state. It applies REST fetch
// results, merges realtime events, and performs optimistic mutations for
// operator actions, reverting to server truth via scoped reloads on failure.
type Engine struct {
	store     *Store
	api       API
	notifier  notify.Notifier
	publisher Publisher

	mu       sync.RWMutex
	branchID *int64
}

// New creates an engine around an empty store
func New(api API, notifier notify.Notifier, publisher Publisher) *Engine {
	return &Engine{
		store:     NewStore(),
		api:       api,
		notifier:  notifier,
		publisher: publisher,
	}
}

// Store exposes read access to the reconciled state
func (e *Engine) Store() *Store {
	return e.store
}

// BranchFilter returns the active branch scope (nil means all branches)
func (e *Engine) BranchFilter() *int64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.branchID
}

func (e *Engine) publishRiders() {
	if e.publisher != nil {
		e.publisher.Publish("riders_updated", e.store.Riders())
	}
}

func (e *Engine) publishOrders() {
	if e.publisher != nil {
		e.publisher.Publish("orders_updated", e.store.Orders())
	}
}

func (e *Engine) publishSettings() {
	if e.publisher == nil {
		return
	}
	if settings, ok := e.store.Settings(); ok {
		e.publisher.Publish("settings_updated", settings)
	}
}

// ReloadOrders refetches the orders collection for the active branch filter
// and replaces the store slice. On failure the state keeps its last known
// value and the operator is notified.
func (e *Engine) ReloadOrders(ctx context.Context) error {
	orders, _, err := e.api.ListOrders(ctx, upstream.OrderQuery{BranchID: e.BranchFilter()})
	if err != nil {
		e.notifier.Error("Unable to Load Orders", "We are having trouble loading the orders. Please try again.")
		return fmt.Errorf("reload orders: %w", err)
	}
	e.store.SetOrders(orders)
	e.publishOrders()
	return nil
}

// ReloadRiders refetches the riders collection for the active branch filter
func (e *Engine) ReloadRiders(ctx context.Context) error {
	riders, err := e.api.ListRiders(ctx, e.BranchFilter())
	if err != nil {
		e.notifier.Error("Unable to Load Riders", "We are having trouble loading the riders. Please try again.")
		return fmt.Errorf("reload riders: %w", err)
	}
	e.store.SetRiders(riders)
	e.publishRiders()
	return nil
}

// ReloadSettings refetches the operational settings for the active branch
// filter. Display-only; not part of reconciliation correctness.
func (e *Engine) ReloadSettings(ctx context.Context) error {
	settings, err := e.api.GetSettings(ctx, e.BranchFilter())
	if err != nil {
		e.notifier.Error("Unable to Load Settings", "We are having trouble loading the restaurant settings. Please try again.")
		return fmt.Errorf("reload settings: %w", err)
	}
	e.store.SetSettings(*settings)
	e.publishSettings()
	return nil
}

// LoadAll performs the initial dashboard load: riders, orders, settings
func (e *Engine) LoadAll(ctx context.Context) error {
	if err := e.ReloadRiders(ctx); err != nil {
		return err
	}
	if err := e.ReloadOrders(ctx); err != nil {
		return err
	}
	return e.ReloadSettings(ctx)
}

// SetBranchFilter switches the active branch scope and reloads orders and
// riders for it. Settings reload independently of this cycle.
func (e *Engine) SetBranchFilter(ctx context.Context, branchID *int64) error {
	e.mu.Lock()
	e.branchID = branchID
	e.mu.Unlock()

	if err := e.ReloadOrders(ctx); err != nil {
		return err
	}
	return e.ReloadRiders(ctx)
}

// AssignOrder optimistically assigns an order to a rider, then confirms with
// the server. A rejection discards the guess by reloading both collections.
func (e *Engine) AssignOrder(ctx context.Context, orderID, riderID int64) (*Tx, error) {
	tx := newTx("assign_order")

	e.applyAssignment(orderID, riderID)

	if err := e.api.AssignOrder(ctx, orderID, riderID); err != nil {
		tx.revert()
		e.ReloadOrders(ctx)
		e.ReloadRiders(ctx)
		e.notifier.Error("Unable to Assign Order", "We encountered an issue while assigning the order to the rider. Please try again.")
		return tx, fmt.Errorf("assign order %d: %w", orderID, err)
	}

	tx.commit()
	return tx, nil
}

// ReassignOrder moves an order to a new rider. The previously assigned rider
// is flipped to IDLE as a best-effort guess; the server corrects it via
// subsequent events or the next reload if that rider has other active orders.
func (e *Engine) ReassignOrder(ctx context.Context, orderID, newRiderID int64) (*Tx, error) {
	tx := newTx("reassign_order")

	var prevRiderID *int64
	if order, ok := e.store.Order(orderID); ok && order.RiderID != nil {
		prev := *order.RiderID
		prevRiderID = &prev
	}

	e.applyAssignment(orderID, newRiderID)
	if prevRiderID != nil && *prevRiderID != newRiderID {
		idle := models.RiderIdle
		e.store.PatchRider(*prevRiderID, models.RiderPatch{Status: &idle})
		e.publishRiders()
	}

	if err := e.api.AssignOrder(ctx, orderID, newRiderID); err != nil {
		tx.revert()
		e.ReloadOrders(ctx)
		e.ReloadRiders(ctx)
		e.notifier.Error("Unable to Reassign Order", "We encountered an issue while reassigning the order. Please try again.")
		return tx, fmt.Errorf("reassign order %d: %w", orderID, err)
	}

	tx.commit()
	return tx, nil
}

// applyAssignment performs the shared optimistic mutation for assign and
// reassign: order to ASSIGNED with the rider snapshot, rider to BUSY.
func (e *Engine) applyAssignment(orderID, riderID int64) {
	assigned := models.OrderAssigned
	patch := models.OrderPatch{Status: &assigned}
	if rider, ok := e.store.Rider(riderID); ok {
		patch.Rider = &rider
	}
	e.store.PatchOrder(orderID, patch)

	busy := models.RiderBusy
	e.store.PatchRider(riderID, models.RiderPatch{Status: &busy})

	e.publishOrders()
	e.publishRiders()
}

// UpdateOrderStatus optimistically transitions an order's status. On success
// with a terminal status the riders collection is reloaded, since the server
// frees the assigned rider and the client cannot guess its next state. On
// rejection only the orders slice is reloaded.
func (e *Engine) UpdateOrderStatus(ctx context.Context, orderID int64, status models.OrderStatus, reason string) (*Tx, error) {
	tx := newTx("update_order_status")

	now := time.Now().UTC().Format(time.RFC3339)
	patch := models.OrderPatch{Status: &status, UpdatedAt: &now}
	if status == models.OrderFailed && reason != "" {
		patch.FailureReason = &reason
	}
	e.store.PatchOrder(orderID, patch)
	e.publishOrders()

	if err := e.api.UpdateOrderStatus(ctx, orderID, status, reason); err != nil {
		tx.revert()
		e.ReloadOrders(ctx)
		e.notifier.Error("Unable to Update Status", "We encountered an issue while updating the order status. Please try again.")
		return tx, fmt.Errorf("update order %d status: %w", orderID, err)
	}

	tx.commit()
	if models.IsTerminal(status) {
		e.ReloadRiders(ctx)
	}
	return tx, nil
}

// CreateOrder creates an order server-side. No optimistic insert: the server
// assigns identifiers and defaults, so only the orders slice is reloaded.
// Errors propagate to the caller, which owns the form-level display.
func (e *Engine) CreateOrder(ctx context.Context, input upstream.OrderInput) (*models.Order, error) {
	order, err := e.api.CreateOrder(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	e.ReloadOrders(ctx)
	return order, nil
}

// CreateRider creates a rider server-side; same contract as CreateOrder
func (e *Engine) CreateRider(ctx context.Context, input upstream.RiderInput) (*models.Rider, error) {
	rider, err := e.api.CreateRider(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("create rider: %w", err)
	}
	e.ReloadRiders(ctx)
	return rider, nil
}

// HandleRiderLocation merges a location ping into the store. Self-sufficient:
// no reload is triggered. Unknown riders are ignored; new riders only arrive
// via reload.
func (e *Engine) HandleRiderLocation(ev realtime.RiderLocationEvent) {
	patch := models.RiderPatch{
		LatestLat:  &ev.Lat,
		LatestLng:  &ev.Lng,
		LastSeenAt: &ev.Ts,
	}
	if ev.Battery != nil {
		patch.Battery = ev.Battery
	}

	if !e.store.PatchRider(ev.RiderID, patch) {
		log.Printf("⚠️  [ENGINE] Location ping for unknown rider %d ignored", ev.RiderID)
		return
	}

	e.publishRiders()

	rider, _ := e.store.Rider(ev.RiderID)
	e.notifier.Info("Rider Location", fmt.Sprintf("%s reported a new location", rider.Name))
}

// HandleOrderStatusChanged reacts to a broker push about an order transition.
// The event snapshot is not trusted to reconstruct embedded rider details, so
// the orders slice is always refetched; a terminal status additionally frees
// a rider server-side, so riders are refetched too.
func (e *Engine) HandleOrderStatusChanged(ctx context.Context, ev realtime.OrderStatusEvent) {
	switch ev.Status {
	case models.OrderDelivered:
		e.notifier.Success("Order Delivered", fmt.Sprintf("Order #%d was delivered", ev.OrderID))
	case models.OrderFailed:
		e.notifier.Warning("Order Failed", fmt.Sprintf("Order #%d could not be delivered", ev.OrderID))
	default:
		e.notifier.Info("Order Updated", fmt.Sprintf("Order #%d is now %s", ev.OrderID, ev.Status))
	}

	e.ReloadOrders(ctx)
	if models.IsTerminal(ev.Status) {
		e.ReloadRiders(ctx)
	}
}
