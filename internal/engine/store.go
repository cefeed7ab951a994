package engine

import (
	"sync"

	"dispatch-gateway/internal/models"
)

// Store holds the reconciled riders and orders collections. Entries are keyed
// by identifier; server-provided order is preserved for rendering. All writes
// flow through the replace/patch operations below.
type Store struct {
	mu sync.RWMutex

	riderIDs []int64
	riders   map[int64]models.Rider

	orderIDs []int64
	orders   map[int64]models.Order

	settings    models.Settings
	hasSettings bool
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		riders: make(map[int64]models.Rider),
		orders: make(map[int64]models.Order),
	}
}

// SetRiders replaces the riders collection wholesale. Trusts server shape.
func (s *Store) SetRiders(list []models.Rider) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.riderIDs = make([]int64, 0, len(list))
	s.riders = make(map[int64]models.Rider, len(list))
	for _, r := range list {
		s.riderIDs = append(s.riderIDs, r.ID)
		s.riders[r.ID] = r
	}
}

// SetOrders replaces the orders collection wholesale. Trusts server shape.
func (s *Store) SetOrders(list []models.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.orderIDs = make([]int64, 0, len(list))
	s.orders = make(map[int64]models.Order, len(list))
	for _, o := range list {
		s.orderIDs = append(s.orderIDs, o.ID)
		s.orders[o.ID] = o
	}
}

// PatchRider merges a partial update into the matching rider. No-op if the
// id is unknown; new riders only arrive via reload. Last-write-wins per field.
func (s *Store) PatchRider(id int64, p models.RiderPatch) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	rider, ok := s.riders[id]
	if !ok {
		return false
	}

	if p.Status != nil {
		rider.Status = *p.Status
	}
	if p.LatestLat != nil {
		rider.LatestLat = p.LatestLat
	}
	if p.LatestLng != nil {
		rider.LatestLng = p.LatestLng
	}
	if p.Battery != nil {
		rider.Battery = p.Battery
	}
	if p.LastSeenAt != nil {
		rider.LastSeenAt = p.LastSeenAt
	}

	s.riders[id] = rider
	return true
}

// PatchOrder merges a partial update into the matching order. Same contract
// as PatchRider. A non-nil Rider sets both the reference and the snapshot.
func (s *Store) PatchOrder(id int64, p models.OrderPatch) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[id]
	if !ok {
		return false
	}

	if p.Status != nil {
		order.Status = *p.Status
	}
	if p.Rider != nil {
		snapshot := *p.Rider
		order.Rider = &snapshot
		order.RiderID = &snapshot.ID
	}
	if p.UpdatedAt != nil {
		order.UpdatedAt = *p.UpdatedAt
	}
	if p.FailureReason != nil {
		order.FailureReason = *p.FailureReason
	}

	s.orders[id] = order
	return true
}

// Riders returns the riders collection in server-provided order
func (s *Store) Riders() []models.Rider {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Rider, 0, len(s.riderIDs))
	for _, id := range s.riderIDs {
		out = append(out, s.riders[id])
	}
	return out
}

// Orders returns the orders collection in server-provided order
func (s *Store) Orders() []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Order, 0, len(s.orderIDs))
	for _, id := range s.orderIDs {
		out = append(out, s.orders[id])
	}
	return out
}

// Rider returns a single rider by id
func (s *Store) Rider(id int64) (models.Rider, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.riders[id]
	return r, ok
}

// Order returns a single order by id
func (s *Store) Order(id int64) (models.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[id]
	return o, ok
}

// SetSettings replaces the cached settings slice
func (s *Store) SetSettings(settings models.Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
	s.hasSettings = true
}

// Settings returns the cached settings, if loaded
func (s *Store) Settings() (models.Settings, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings, s.hasSettings
}
