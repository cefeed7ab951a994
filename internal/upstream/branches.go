package upstream

import (
	"context"
	"fmt"

	"dispatch-gateway/internal/models"
)

// BranchInput is the payload for creating or updating a branch
type BranchInput struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// ListBranches fetches all branches
func (c *Client) ListBranches(ctx context.Context) ([]models.Branch, error) {
	body, err := c.get(ctx, "/branches", nil)
	if err != nil {
		return nil, err
	}
	branches, _, err := decodeList[models.Branch](body)
	return branches, err
}

// GetBranch fetches a single branch
func (c *Client) GetBranch(ctx context.Context, id int64) (*models.Branch, error) {
	body, err := c.get(ctx, fmt.Sprintf("/branches/%d", id), nil)
	if err != nil {
		return nil, err
	}
	return decodeOne[models.Branch](body)
}

// CreateBranch creates a branch
func (c *Client) CreateBranch(ctx context.Context, input BranchInput) (*models.Branch, error) {
	body, err := c.post(ctx, "/branches", input)
	if err != nil {
		return nil, err
	}
	return decodeOne[models.Branch](body)
}

// UpdateBranch updates a branch
func (c *Client) UpdateBranch(ctx context.Context, id int64, input BranchInput) (*models.Branch, error) {
	body, err := c.put(ctx, fmt.Sprintf("/branches/%d", id), input)
	if err != nil {
		return nil, err
	}
	return decodeOne[models.Branch](body)
}

// DeleteBranch deletes a branch
func (c *Client) DeleteBranch(ctx context.Context, id int64) error {
	_, err := c.delete(ctx, fmt.Sprintf("/branches/%d", id))
	return err
}

// ActivateBranch marks a branch active
func (c *Client) ActivateBranch(ctx context.Context, id int64) error {
	_, err := c.post(ctx, fmt.Sprintf("/branches/%d/activate", id), nil)
	return err
}

// DeactivateBranch marks a branch inactive
func (c *Client) DeactivateBranch(ctx context.Context, id int64) error {
	_, err := c.post(ctx, fmt.Sprintf("/branches/%d/deactivate", id), nil)
	return err
}
