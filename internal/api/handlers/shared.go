package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// parseJSON decodes a request body into the target type, rejecting unknown fields.
func parseJSON[T any](r *http.Request) (T, error) {
	var target T

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&target); err != nil {
		return target, fmt.Errorf("invalid JSON body: %w", err)
	}
	return target, nil
}
