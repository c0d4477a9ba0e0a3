package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"restaurant-api/agg-svc/internal/domain"
	"restaurant-api/agg-svc/internal/service"
	"restaurant-api/logger"

	"github.com/gorilla/mux"
)

type Handler struct {
	Analytics service.AnalyticsInterface
	Log       *logger.Logger
}

func NewHandler(svc service.AnalyticsInterface, log *logger.Logger) *Handler {
	return &Handler{Analytics: svc, Log: log}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")
	r.HandleFunc("/api/analytics/popular-items", h.getPopularItems).Methods("GET")
	r.HandleFunc("/api/analytics/daily", h.getDaily).Methods("GET")
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, action string, err error) {
	if errors.Is(err, domain.ErrInvalidDate) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_input", "message": err.Error()})
		return
	}
	h.Log.Error(action, r.Header.Get("X-Request-ID"), "analytics query failed", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal", "message": "internal server error"})
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "agg-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) getPopularItems(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	items, err := h.Analytics.PopularItems(r.Context(), q.Get("date"), limit)
	if err != nil {
		h.fail(w, r, "popular_items", err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) getDaily(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Analytics.Daily(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		h.fail(w, r, "daily_summary", err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
