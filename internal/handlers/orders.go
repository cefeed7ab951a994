package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"dispatch-gateway/internal/engine"
	"dispatch-gateway/internal/models"
	"dispatch-gateway/internal/upstream"
	"dispatch-gateway/pkg/utils"
)

// GetOrders returns the reconciled orders collection, optionally filtered
// the way the dashboard filters them.
func GetOrders(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orders := eng.Store().Orders()

		status := r.URL.Query().Get("status")
		needsAssignment := r.URL.Query().Get("needs_assignment") == "1"
		needsUpdate := r.URL.Query().Get("needs_update") == "1"

		if status != "" || needsAssignment || needsUpdate {
			filtered := make([]models.Order, 0, len(orders))
			for _, o := range orders {
				if status != "" && o.Status != models.OrderStatus(status) {
					continue
				}
				if needsAssignment && o.Status != models.OrderUnassigned {
					continue
				}
				if needsUpdate && (o.Status == models.OrderUnassigned || models.IsTerminal(o.Status)) {
					continue
				}
				filtered = append(filtered, o)
			}
			orders = filtered
		}

		utils.RespondData(w, orders)
	}
}

type createOrderRequest struct {
	BranchID      int64    `json:"branch_id"`
	CustomerName  string   `json:"customer_name"`
	CustomerPhone string   `json:"customer_phone"`
	Address       string   `json:"address"`
	Lat           *float64 `json:"lat"`
	Lng           *float64 `json:"lng"`
	Notes         string   `json:"notes"`
}

// CreateOrder validates the form fields and creates the order upstream.
// Validation failures never reach the fleet API.
func CreateOrder(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createOrderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if req.BranchID == 0 {
			utils.RespondError(w, http.StatusBadRequest, "Please select a branch")
			return
		}
		if req.Address == "" {
			utils.RespondError(w, http.StatusBadRequest, "Delivery address is required")
			return
		}
		if req.Lat == nil || req.Lng == nil {
			utils.RespondError(w, http.StatusBadRequest, "Delivery location is required")
			return
		}

		order, err := eng.CreateOrder(r.Context(), upstream.OrderInput{
			BranchID:      req.BranchID,
			CustomerName:  req.CustomerName,
			CustomerPhone: req.CustomerPhone,
			Address:       req.Address,
			Lat:           *req.Lat,
			Lng:           *req.Lng,
			Notes:         req.Notes,
		})
		if err != nil {
			log.Printf("❌ Create order failed: %v", err)
			utils.RespondError(w, upstreamStatus(err), "Failed to create order")
			return
		}

		utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{
			"success": true,
			"data":    order,
		})
	}
}

type assignOrderRequest struct {
	RiderID int64 `json:"rider_id"`
}

// AssignOrder dispatches an order to a rider. When the order already has a
// rider the engine treats it as a reassignment.
func AssignOrder(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := idParam(r)
		if err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid order id")
			return
		}

		var req assignOrderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RiderID == 0 {
			utils.RespondError(w, http.StatusBadRequest, "A rider is required")
			return
		}

		var tx *engine.Tx
		if order, ok := eng.Store().Order(orderID); ok && order.RiderID != nil {
			tx, err = eng.ReassignOrder(r.Context(), orderID, req.RiderID)
		} else {
			tx, err = eng.AssignOrder(r.Context(), orderID, req.RiderID)
		}
		if err != nil {
			utils.RespondJSON(w, upstreamStatus(err), map[string]interface{}{
				"success": false,
				"error":   "Failed to assign order",
				"tx":      tx,
			})
			return
		}

		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"tx":      tx,
		})
	}
}

type updateStatusRequest struct {
	Status models.OrderStatus `json:"status"`
	Reason string             `json:"reason"`
}

// UpdateOrderStatus transitions an order's status through the engine
func UpdateOrderStatus(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := idParam(r)
		if err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid order id")
			return
		}

		var req updateStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if !models.ValidStatus(req.Status) {
			utils.RespondError(w, http.StatusBadRequest, "Unknown order status")
			return
		}

		tx, err := eng.UpdateOrderStatus(r.Context(), orderID, req.Status, req.Reason)
		if err != nil {
			utils.RespondJSON(w, upstreamStatus(err), map[string]interface{}{
				"success": false,
				"error":   "Failed to update order status",
				"tx":      tx,
			})
			return
		}

		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"tx":      tx,
		})
	}
}

// OrderHistory proxies the upstream paginated order listing for the history
// view. The reconciled store only tracks the active branch scope; history
// queries go straight to the source of truth.
func OrderHistory(api *upstream.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := upstream.OrderQuery{
			BranchID: branchIDQuery(r),
			Status:   r.URL.Query().Get("status"),
			Search:   r.URL.Query().Get("search"),
			DateFrom: r.URL.Query().Get("date_from"),
			DateTo:   r.URL.Query().Get("date_to"),
		}
		if page, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil {
			q.Page = page
		}

		orders, meta, err := api.ListOrders(r.Context(), q)
		if err != nil {
			log.Printf("❌ Order history fetch failed: %v", err)
			utils.RespondError(w, upstreamStatus(err), "Failed to fetch order history")
			return
		}

		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"data":    orders,
			"meta":    meta,
		})
	}
}
