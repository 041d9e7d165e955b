package handlers

import (
	"net/http"
	"time"
)

func writeText(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}

func Home(w http.ResponseWriter, r *http.Request) {
	writeText(w, "Welcome to Home page")
}

// Dashboard is where a successful login lands.
func Dashboard(w http.ResponseWriter, r *http.Request) {
	writeText(w, "Login successful")
}

func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
