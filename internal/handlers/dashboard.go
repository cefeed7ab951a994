package handlers

import (
	"encoding/json"
	"net/http"

	"dispatch-gateway/internal/engine"
	"dispatch-gateway/internal/models"
	"dispatch-gateway/pkg/utils"
)

// Snapshot returns the full reconciled dashboard state in one response
func Snapshot(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var settings *models.Settings
		if s, ok := eng.Store().Settings(); ok {
			settings = &s
		}

		utils.RespondData(w, map[string]interface{}{
			"riders":    eng.Store().Riders(),
			"orders":    eng.Store().Orders(),
			"settings":  settings,
			"branch_id": eng.BranchFilter(),
		})
	}
}

type branchFilterRequest struct {
	BranchID *int64 `json:"branch_id"`
}

// SetBranchFilter switches the active branch scope. Orders and riders reload
// through the engine; settings refresh on their own decoupled cycle.
func SetBranchFilter(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req branchFilterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if err := eng.SetBranchFilter(r.Context(), req.BranchID); err != nil {
			utils.RespondError(w, http.StatusBadGateway, "Failed to reload data for branch")
			return
		}
		eng.ReloadSettings(r.Context())

		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"success":   true,
			"branch_id": req.BranchID,
		})
	}
}
