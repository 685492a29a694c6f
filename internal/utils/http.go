package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ErrorBody is what the control API sends for a failed request. StatusCode
// repeats the HTTP status, the same field the sync endpoints report.
type ErrorBody struct {
	Error      string `json:"error"`
	StatusCode int    `json:"statusCode"`
}

// WriteJSON encodes data as the response body with the given status.
// When data cannot be encoded nothing but a plain 500 is written and the
// encoding error is returned.
//
//	WriteJSON(w, records, http.StatusOK)
//	WriteJSON(w, map[string]int{"cancelled": n}, http.StatusOK)
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(jsonData)
}

// WriteError answers with an [ErrorBody] built from err.
func WriteError(w http.ResponseWriter, err error, statusCode int) {
	msg := http.StatusText(statusCode)
	if err != nil {
		msg = err.Error()
	}
	WriteJSON(w, ErrorBody{Error: msg, StatusCode: statusCode}, statusCode)
}
