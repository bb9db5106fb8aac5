package middleware

import (
	"encoding/json"
	"net/http"
)

// writeJSONError emits a JSON error body. Middleware rejections never reach
// the handler layer's envelope helpers, so the shape is duplicated here.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
