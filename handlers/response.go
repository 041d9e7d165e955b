package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"employeemanagement/services"
)

type ApiResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}

func writeFailure(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ApiResponse{Success: false, Message: message})
}

// writeError maps service errors onto status codes. Unknown errors are
// logged and reported as a bare 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var notFound *services.NotFoundError
	var invalid *services.ValidationError
	switch {
	case errors.As(err, &notFound):
		writeFailure(w, http.StatusNotFound, notFound.Error())
	case errors.As(err, &invalid):
		writeFailure(w, http.StatusBadRequest, invalid.Error())
	default:
		log.Printf("%s %s failed: %v", r.Method, r.URL.Path, err)
		writeFailure(w, http.StatusInternalServerError, "internal server error")
	}
}
