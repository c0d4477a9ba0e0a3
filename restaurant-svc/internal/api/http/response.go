package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"restaurant-api/restaurant-svc/internal/domain"
)

var kindStatus = map[string]int{
	"not_found":          http.StatusNotFound,
	"invalid_quantity":   http.StatusBadRequest,
	"empty_cart":         http.StatusBadRequest,
	"invalid_role":       http.StatusBadRequest,
	"invalid_input":      http.StatusBadRequest,
	"unauthorized":       http.StatusUnauthorized,
	"forbidden":          http.StatusForbidden,
	"transaction_failed": http.StatusServiceUnavailable,
}

func JSONResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func ErrorResponse(w http.ResponseWriter, status int, kind, message string) {
	JSONResponse(w, status, map[string]string{"error": kind, "message": message})
}

// WriteError maps a service error to its status code. Internal errors keep
// their details out of the response.
func WriteError(w http.ResponseWriter, err error) {
	kind := domain.ErrorKind(err)
	status, ok := kindStatus[kind]
	if !ok {
		ErrorResponse(w, http.StatusInternalServerError, "internal", "internal server error")
		return
	}
	message := err.Error()
	if kind == "transaction_failed" {
		message = "checkout could not be completed, please retry"
	}
	ErrorResponse(w, status, kind, strings.TrimSpace(message))
}
