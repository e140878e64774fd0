package utils

import (
	"encoding/json"
	"net/http"
)

type errorResponse struct {
	Error string `json:"error"`
}

func WriteJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: msg})
}

// WriteStatusError answers with the bare status code. Used for HEAD requests
// where a body must not be sent.
func WriteStatusError(w http.ResponseWriter, status int) {
	w.WriteHeader(status)
}
