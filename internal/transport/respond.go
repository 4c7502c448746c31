package transport

import (
	"encoding/json"
	"net/http"
)

// maxBodyBytes caps request bodies at 16kb.
const maxBodyBytes = 16 << 10

// Envelope is the common response shape shared by every endpoint.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, Envelope{Success: false, Message: message})
}

// DecodeJSON reads a JSON request body into dest, enforcing the body size
// cap. Any failure means malformed input and maps to 400 at the caller.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dest any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(dest)
}
