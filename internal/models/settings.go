package models

// Settings holds the operational settings for a branch (or all branches when
// BranchID is nil). Display-only on the dashboard.
type Settings struct {
	RestaurantName string `json:"restaurant_name"`
	OpeningTime    string `json:"opening_time"`
	ClosingTime    string `json:"closing_time"`
	BranchID       *int64 `json:"branch_id,omitempty"`
}
