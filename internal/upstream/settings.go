package upstream

import (
	"context"

	"dispatch-gateway/internal/models"
)

// SettingsInput is the payload for updating operational settings. A nil
// BranchID targets the global settings.
type SettingsInput struct {
	RestaurantName string `json:"restaurant_name"`
	OpeningTime    string `json:"opening_time"`
	ClosingTime    string `json:"closing_time"`
	BranchID       *int64 `json:"branch_id,omitempty"`
}

// GetSettings fetches operational settings, optionally scoped to a branch
func (c *Client) GetSettings(ctx context.Context, branchID *int64) (*models.Settings, error) {
	body, err := c.get(ctx, "/settings", branchQuery(branchID))
	if err != nil {
		return nil, err
	}
	return decodeOne[models.Settings](body)
}

// UpdateSettings updates operational settings
func (c *Client) UpdateSettings(ctx context.Context, input SettingsInput) (*models.Settings, error) {
	body, err := c.put(ctx, "/settings", input)
	if err != nil {
		return nil, err
	}
	return decodeOne[models.Settings](body)
}
