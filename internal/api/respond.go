package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/example/toyshub/internal/apperr"
)

// respondJSON writes any payload as JSON.
func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("[API] Error encoding response: %v", err)
	}
}

// respondSuccess writes the success envelope merged with extra fields.
func respondSuccess(w http.ResponseWriter, status int, message string, extra map[string]any) {
	body := map[string]any{"success": true}
	if message != "" {
		body["message"] = message
	}
	for k, v := range extra {
		body[k] = v
	}
	respondJSON(w, status, body)
}

// respondError translates err through the failure taxonomy into the uniform
// {success:false, message} envelope. Untagged errors become 500s with a
// generic message so internals never leak.
func respondError(w http.ResponseWriter, err error) {
	status := apperr.HTTPStatus(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		log.Printf("[API] Internal error: %v", err)
		message = "internal server error"
	}
	respondJSON(w, status, map[string]any{"success": false, "message": message})
}

// respondMessage is respondError for plain-text failures with a fixed status.
func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]any{"success": false, "message": message})
}
