package handlers

import (
	"net/http"
	"strings"
)

// CORS allows the frontend origin to call the wrapped handler
func CORS(frontendURL string, next http.HandlerFunc) http.HandlerFunc {
	// Reduce the frontend URL to scheme://host
	origin := frontendURL
	if idx := strings.Index(origin, "://"); idx != -1 {
		if pathIdx := strings.Index(origin[idx+3:], "/"); pathIdx != -1 {
			origin = origin[:idx+3+pathIdx]
		}
	}

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}
