package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"dispatch-gateway/internal/upstream"

	"github.com/go-chi/chi/v5"
)

// upstreamStatus maps a fleet API error to the gateway's response status
func upstreamStatus(err error) int {
	switch {
	case errors.Is(err, upstream.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, upstream.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}

// idParam parses the {id} URL parameter
func idParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// branchIDQuery parses an optional branch_id query parameter
func branchIDQuery(r *http.Request) *int64 {
	raw := r.URL.Query().Get("branch_id")
	if raw == "" {
		return nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	return &id
}
