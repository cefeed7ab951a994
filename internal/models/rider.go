package models

// RiderStatus is a rider's availability state
type RiderStatus string

const (
	RiderIdle    RiderStatus = "IDLE"
	RiderBusy    RiderStatus = "BUSY"
	RiderOffline RiderStatus = "OFFLINE"
)

// Rider represents a delivery rider as served by the fleet API
type Rider struct {
	ID         int64       `json:"id"`
	Name       string      `json:"name"`
	Phone      string      `json:"phone,omitempty"`
	Status     RiderStatus `json:"status"`
	LatestLat  *float64    `json:"latest_lat"`
	LatestLng  *float64    `json:"latest_lng"`
	Battery    *int        `json:"battery"`             // Battery percentage (0-100)
	LastSeenAt *int64      `json:"last_seen_at"`        // Client-side timestamp of last location ping
	BranchID   *int64      `json:"branch_id,omitempty"`
	CreatedAt  string      `json:"created_at,omitempty"`
	UpdatedAt  string      `json:"updated_at,omitempty"`
}

// RiderPatch carries a partial rider update. Nil fields are left untouched.
type RiderPatch struct {
	Status     *RiderStatus
	LatestLat  *float64
	LatestLng  *float64
	Battery    *int
	LastSeenAt *int64
}
