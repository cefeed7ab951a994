package upstream

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"dispatch-gateway/internal/models"
)

// OrderQuery filters order list requests
type OrderQuery struct {
	BranchID *int64
	Status   string
	Search   string
	DateFrom string
	DateTo   string
	Page     int
}

// OrderInput is the payload for creating an order. Lat/Lng and BranchID are
// required by the API; the gateway validates before calling.
type OrderInput struct {
	BranchID      int64    `json:"branch_id"`
	CustomerName  string   `json:"customer_name,omitempty"`
	CustomerPhone string   `json:"customer_phone,omitempty"`
	Address       string   `json:"address"`
	Lat           float64  `json:"lat"`
	Lng           float64  `json:"lng"`
	Notes         string   `json:"notes,omitempty"`
	RiderID       *int64   `json:"rider_id,omitempty"`
}

// ListOrders fetches orders, optionally filtered and paginated
func (c *Client) ListOrders(ctx context.Context, q OrderQuery) ([]models.Order, *PageMeta, error) {
	query := url.Values{}
	if q.BranchID != nil {
		query.Set("branch_id", strconv.FormatInt(*q.BranchID, 10))
	}
	if q.Status != "" {
		query.Set("status", q.Status)
	}
	if q.Search != "" {
		query.Set("search", q.Search)
	}
	if q.DateFrom != "" {
		query.Set("date_from", q.DateFrom)
	}
	if q.DateTo != "" {
		query.Set("date_to", q.DateTo)
	}
	if q.Page > 0 {
		query.Set("page", strconv.Itoa(q.Page))
	}

	body, err := c.get(ctx, "/orders", query)
	if err != nil {
		return nil, nil, err
	}
	return decodeList[models.Order](body)
}

// CreateOrder creates an order server-side and returns the created entity
func (c *Client) CreateOrder(ctx context.Context, input OrderInput) (*models.Order, error) {
	body, err := c.post(ctx, "/orders", input)
	if err != nil {
		return nil, err
	}
	return decodeOne[models.Order](body)
}

// AssignOrder assigns (or reassigns) an order to a rider
func (c *Client) AssignOrder(ctx context.Context, orderID, riderID int64) error {
	payload := map[string]int64{"rider_id": riderID}
	_, err := c.post(ctx, fmt.Sprintf("/orders/%d/assign", orderID), payload)
	return err
}

// UpdateOrderStatus transitions an order's status. The reason accompanies
// FAILED transitions; the server validates legality either way.
func (c *Client) UpdateOrderStatus(ctx context.Context, orderID int64, status models.OrderStatus, reason string) error {
	payload := map[string]interface{}{"status": status}
	if reason != "" {
		payload["reason"] = reason
	}
	_, err := c.post(ctx, fmt.Sprintf("/orders/%d/status", orderID), payload)
	return err
}
