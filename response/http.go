package response

import (
	"encoding/json"
	"fmt"
	"net/http"
)

const (
	JSONContentType = "application/json"
	CSVContentType  = "text/csv"
)

// ErrorResponse is the wire shape of every error body. Details is optional
// diagnostic text safe to show the user.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func RenderFatal(w http.ResponseWriter, err error) {
	RenderError(w, err, http.StatusInternalServerError)
}

func RenderError(w http.ResponseWriter, err error, statusCode int) {
	RenderErrorDetails(w, err, "", statusCode)
}

func RenderErrorDetails(w http.ResponseWriter, err error, details string, statusCode int) {
	payload := ErrorResponse{Error: err.Error(), Details: details}

	jsonBlob, marshalErr := json.Marshal(payload)
	if marshalErr != nil {
		http.Error(w, `{"error": "failed to marshal error response"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", JSONContentType)
	w.WriteHeader(statusCode)
	_, _ = w.Write(jsonBlob)
}

func RenderSuccess(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", JSONContentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func RenderJSON(w http.ResponseWriter, data any) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		RenderFatal(w, fmt.Errorf("failed to marshal data: %w", err))
		return
	}

	RenderSuccess(w, jsonData)
}
