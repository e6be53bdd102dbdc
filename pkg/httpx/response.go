package httpx

import (
	"encoding/json"
	"log"
	"net/http"
)

// RespondJSON writes a JSON response with the given status code and data.
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("❌ Failed to encode JSON response: %v", err)
	}
}

// ErrorResponse is the error body of the series intake: {"errors": [...]}
type ErrorResponse struct {
	Errors []string `json:"errors"`
}

// RespondError writes an error response with the given status code and error.
func RespondError(w http.ResponseWriter, status int, err error) {
	RespondErrors(w, status, err.Error())
}

// RespondErrors writes an error response carrying every message.
// Without messages the status text is used.
func RespondErrors(w http.ResponseWriter, status int, messages ...string) {
	if len(messages) == 0 {
		messages = []string{http.StatusText(status)}
	}
	RespondJSON(w, status, ErrorResponse{Errors: messages})
}
