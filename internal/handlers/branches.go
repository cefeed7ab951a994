package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"dispatch-gateway/internal/upstream"
	"dispatch-gateway/pkg/utils"
)

// GetBranches proxies the branch listing from the fleet API
func GetBranches(api *upstream.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		branches, err := api.ListBranches(r.Context())
		if err != nil {
			log.Printf("❌ Branch listing failed: %v", err)
			utils.RespondError(w, upstreamStatus(err), "Failed to fetch branches")
			return
		}
		utils.RespondData(w, branches)
	}
}

// GetBranch proxies a single branch fetch
func GetBranch(api *upstream.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r)
		if err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid branch id")
			return
		}
		branch, err := api.GetBranch(r.Context(), id)
		if err != nil {
			utils.RespondError(w, upstreamStatus(err), "Failed to fetch branch")
			return
		}
		utils.RespondData(w, branch)
	}
}

// CreateBranch proxies branch creation
func CreateBranch(api *upstream.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input upstream.BranchInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if input.Name == "" {
			utils.RespondError(w, http.StatusBadRequest, "Branch name is required")
			return
		}

		branch, err := api.CreateBranch(r.Context(), input)
		if err != nil {
			log.Printf("❌ Create branch failed: %v", err)
			utils.RespondError(w, upstreamStatus(err), "Failed to create branch")
			return
		}
		utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{
			"success": true,
			"data":    branch,
		})
	}
}

// UpdateBranch proxies branch updates
func UpdateBranch(api *upstream.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r)
		if err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid branch id")
			return
		}
		var input upstream.BranchInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		branch, err := api.UpdateBranch(r.Context(), id, input)
		if err != nil {
			utils.RespondError(w, upstreamStatus(err), "Failed to update branch")
			return
		}
		utils.RespondData(w, branch)
	}
}

// DeleteBranch proxies branch deletion
func DeleteBranch(api *upstream.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r)
		if err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid branch id")
			return
		}
		if err := api.DeleteBranch(r.Context(), id); err != nil {
			utils.RespondError(w, upstreamStatus(err), "Failed to delete branch")
			return
		}
		utils.RespondJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}

// ActivateBranch proxies branch activation
func ActivateBranch(api *upstream.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r)
		if err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid branch id")
			return
		}
		if err := api.ActivateBranch(r.Context(), id); err != nil {
			utils.RespondError(w, upstreamStatus(err), "Failed to activate branch")
			return
		}
		utils.RespondJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}

// DeactivateBranch proxies branch deactivation
func DeactivateBranch(api *upstream.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r)
		if err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid branch id")
			return
		}
		if err := api.DeactivateBranch(r.Context(), id); err != nil {
			utils.RespondError(w, upstreamStatus(err), "Failed to deactivate branch")
			return
		}
		utils.RespondJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}
