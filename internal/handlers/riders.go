package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"dispatch-gateway/internal/engine"
	"dispatch-gateway/internal/upstream"
	"dispatch-gateway/pkg/utils"
)

// GetRiders returns the reconciled riders collection
func GetRiders(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		utils.RespondData(w, eng.Store().Riders())
	}
}

type riderRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	BranchID int64  `json:"branch_id"`
}

// CreateRider validates the form fields and creates the rider upstream
func CreateRider(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req riderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if req.Name == "" {
			utils.RespondError(w, http.StatusBadRequest, "Rider name is required")
			return
		}
		if req.BranchID == 0 {
			utils.RespondError(w, http.StatusBadRequest, "Please select a branch")
			return
		}

		rider, err := eng.CreateRider(r.Context(), upstream.RiderInput{
			Name:     req.Name,
			Phone:    req.Phone,
			BranchID: req.BranchID,
		})
		if err != nil {
			log.Printf("❌ Create rider failed: %v", err)
			utils.RespondError(w, upstreamStatus(err), "Failed to create rider")
			return
		}

		utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{
			"success": true,
			"data":    rider,
		})
	}
}

// RiderPositions proxies the map snapshot of current rider positions
func RiderPositions(api *upstream.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		riders, err := api.RiderPositions(r.Context())
		if err != nil {
			log.Printf("❌ Rider positions fetch failed: %v", err)
			utils.RespondError(w, upstreamStatus(err), "Failed to fetch rider positions")
			return
		}
		utils.RespondData(w, riders)
	}
}

// UpdateRider updates a rider upstream and refreshes the riders slice
func UpdateRider(api *upstream.Client, eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		riderID, err := idParam(r)
		if err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid rider id")
			return
		}

		var req riderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		rider, err := api.UpdateRider(r.Context(), riderID, upstream.RiderInput{
			Name:     req.Name,
			Phone:    req.Phone,
			BranchID: req.BranchID,
		})
		if err != nil {
			log.Printf("❌ Update rider failed: %v", err)
			utils.RespondError(w, upstreamStatus(err), "Failed to update rider")
			return
		}

		eng.ReloadRiders(r.Context())
		utils.RespondData(w, rider)
	}
}
