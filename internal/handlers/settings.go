package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"dispatch-gateway/internal/engine"
	"dispatch-gateway/internal/upstream"
	"dispatch-gateway/pkg/utils"
)

// GetSettings proxies operational settings for any branch scope. The settings
// form queries per-branch independently of the dashboard's reconciled slice.
func GetSettings(api *upstream.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		settings, err := api.GetSettings(r.Context(), branchIDQuery(r))
		if err != nil {
			log.Printf("❌ Settings fetch failed: %v", err)
			utils.RespondError(w, upstreamStatus(err), "Failed to fetch settings")
			return
		}
		utils.RespondData(w, settings)
	}
}

// UpdateSettings writes settings upstream and refreshes the cached slice for
// the active branch filter.
func UpdateSettings(api *upstream.Client, eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input upstream.SettingsInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if input.RestaurantName == "" {
			utils.RespondError(w, http.StatusBadRequest, "Restaurant name is required")
			return
		}

		settings, err := api.UpdateSettings(r.Context(), input)
		if err != nil {
			log.Printf("❌ Settings update failed: %v", err)
			utils.RespondError(w, upstreamStatus(err), "Failed to update settings")
			return
		}

		eng.ReloadSettings(r.Context())
		utils.RespondData(w, settings)
	}
}
