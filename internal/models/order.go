package models

// OrderStatus is an order's position in the delivery lifecycle
type OrderStatus string

const (
	OrderUnassigned     OrderStatus = "UNASSIGNED"
	OrderAssigned       OrderStatus = "ASSIGNED"
	OrderPickedUp       OrderStatus = "PICKED_UP"
	OrderOutForDelivery OrderStatus = "OUT_FOR_DELIVERY"
	OrderDelivered      OrderStatus = "DELIVERED"
	OrderFailed         OrderStatus = "FAILED"
)

// Order represents a delivery order as served by the fleet API
type Order struct {
	ID            int64       `json:"id"`
	Code          string      `json:"code,omitempty"`
	Status        OrderStatus `json:"status"`
	CustomerName  string      `json:"customer_name,omitempty"`
	CustomerPhone string      `json:"customer_phone,omitempty"`
	Address       string      `json:"address,omitempty"`
	Lat           *float64    `json:"lat"`
	Lng           *float64    `json:"lng"`
	BranchID      *int64      `json:"branch_id,omitempty"`
	RiderID       *int64      `json:"rider_id"`
	Rider         *Rider      `json:"rider,omitempty"` // Denormalized snapshot of the assigned rider
	Notes         string      `json:"notes,omitempty"`
	FailureReason string      `json:"failure_reason,omitempty"`
	CreatedAt     string      `json:"created_at,omitempty"`
	UpdatedAt     string      `json:"updated_at,omitempty"`
}

// OrderPatch carries a partial order update. Nil fields are left untouched.
// Rider sets both the rider reference and the denormalized snapshot.
type OrderPatch struct {
	Status        *OrderStatus
	Rider         *Rider
	UpdatedAt     *string
	FailureReason *string
}

// IsActive reports whether the order still needs dispatch attention
func (o Order) IsActive() bool {
	return !IsTerminal(o.Status)
}
