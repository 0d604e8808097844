package httpadapter

import (
	"encoding/json"
	"net/http"
	"time"
)

// errorEnvelope is the uniform non-2xx response body.
type errorEnvelope struct {
	Error     string    `json:"error"`
	Details   any       `json:"details"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, tag string, details any) {
	writeJSON(w, status, errorEnvelope{
		Error:     tag,
		Details:   details,
		Path:      r.URL.Path,
		Timestamp: time.Now().UTC(),
	})
}
