package upstream

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// PageMeta carries pagination fields from paginated list responses
type PageMeta struct {
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
	Total       int `json:"total"`
	PerPage     int `json:"per_page"`
}

// envelope is the `{"data": ...}` wrapper used by most fleet API responses.
// Paginated endpoints add the page fields alongside data.
type envelope struct {
	Data        json.RawMessage `json:"data"`
	CurrentPage int             `json:"current_page"`
	LastPage    int             `json:"last_page"`
	Total       int             `json:"total"`
	PerPage     int             `json:"per_page"`
}

// decodeList normalizes the API's two list shapes (enveloped or raw array)
// into a typed slice plus pagination meta when present.
func decodeList[T any](body []byte) ([]T, *PageMeta, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var list []T
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, nil, fmt.Errorf("failed to parse response: %w", err)
		}
		return list, nil, nil
	}

	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, nil, fmt.Errorf("failed to parse response: %w", err)
	}

	var list []T
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &list); err != nil {
			return nil, nil, fmt.Errorf("failed to parse response data: %w", err)
		}
	}

	var meta *PageMeta
	if env.LastPage > 0 || env.Total > 0 {
		meta = &PageMeta{
			CurrentPage: env.CurrentPage,
			LastPage:    env.LastPage,
			Total:       env.Total,
			PerPage:     env.PerPage,
		}
	}
	return list, meta, nil
}

// decodeOne normalizes a single-entity response, enveloped or bare
func decodeOne[T any](body []byte) (*T, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err == nil && len(env.Data) > 0 {
		var out T
		if err := json.Unmarshal(env.Data, &out); err != nil {
			return nil, fmt.Errorf("failed to parse response data: %w", err)
		}
		return &out, nil
	}

	var out T
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &out, nil
}
