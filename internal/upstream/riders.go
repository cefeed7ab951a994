package upstream

import (
	"context"
	"fmt"

	"dispatch-gateway/internal/models"
)

// RiderInput is the payload for creating or updating a rider
type RiderInput struct {
	Name     string `json:"name"`
	Phone    string `json:"phone,omitempty"`
	BranchID int64  `json:"branch_id"`
}

// ListRiders fetches riders, optionally scoped to a branch
func (c *Client) ListRiders(ctx context.Context, branchID *int64) ([]models.Rider, error) {
	body, err := c.get(ctx, "/riders", branchQuery(branchID))
	if err != nil {
		return nil, err
	}
	riders, _, err := decodeList[models.Rider](body)
	return riders, err
}

// GetRider fetches a single rider
func (c *Client) GetRider(ctx context.Context, id int64) (*models.Rider, error) {
	body, err := c.get(ctx, fmt.Sprintf("/riders/%d", id), nil)
	if err != nil {
		return nil, err
	}
	return decodeOne[models.Rider](body)
}

// CreateRider creates a rider server-side and returns the created entity
func (c *Client) CreateRider(ctx context.Context, input RiderInput) (*models.Rider, error) {
	body, err := c.post(ctx, "/riders", input)
	if err != nil {
		return nil, err
	}
	return decodeOne[models.Rider](body)
}

// UpdateRider updates a rider server-side
func (c *Client) UpdateRider(ctx context.Context, id int64, input RiderInput) (*models.Rider, error) {
	body, err := c.put(ctx, fmt.Sprintf("/riders/%d", id), input)
	if err != nil {
		return nil, err
	}
	return decodeOne[models.Rider](body)
}

// RiderPositions fetches the map snapshot of current rider positions
func (c *Client) RiderPositions(ctx context.Context) ([]models.Rider, error) {
	body, err := c.get(ctx, "/map/riders", nil)
	if err != nil {
		return nil, err
	}
	riders, _, err := decodeList[models.Rider](body)
	return riders, err
}
