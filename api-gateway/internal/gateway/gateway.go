package gateway

import (
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"

	"restaurant-api/logger"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

const requestIDHeader = "X-Request-ID"

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Config struct {
	RestaurantSvcURL string
	AggSvcURL        string
}

type Gateway struct {
	config Config
	client HTTPClient
	log    *logger.Logger
}

func NewGateway(config Config, client HTTPClient, log *logger.Logger) *Gateway {
	return &Gateway{
		config: config,
		client: client,
		log:    log,
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (g *Gateway) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "api-gateway",
	})
}

// ProxyRequest forwards r to targetURL keeping path, query, headers and
// body, and copies the upstream response back.
func (g *Gateway) ProxyRequest(w http.ResponseWriter, r *http.Request, targetURL string) {
	requestID := r.Header.Get(requestIDHeader)
	if requestID == "" {
		requestID = uuid.NewString()
	}

	url := strings.TrimRight(targetURL, "/") + r.URL.Path
	if r.URL.RawQuery != "" {
		url += "?" + r.URL.RawQuery
	}

	req, err := http.NewRequestWithContext(r.Context(), r.Method, url, r.Body)
	if err != nil {
		g.log.Error("proxy", requestID, "failed to create request", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal", "message": "internal server error"})
		return
	}

	for k, v := range r.Header {
		req.Header[k] = v
	}
	req.Header.Set(requestIDHeader, requestID)
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		req.Header.Set("X-Forwarded-For", host)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		g.log.Error("proxy", requestID, "upstream request failed", err, slog.String("target", targetURL))
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "bad_gateway", "message": "upstream service unavailable"})
		return
	}
	defer resp.Body.Close()

	for k, v := range resp.Header {
		w.Header()[k] = v
	}
	w.WriteHeader(resp.StatusCode)

	if _, err := io.Copy(w, resp.Body); err != nil {
		g.log.Warn("proxy", requestID, "failed to copy response", slog.String("error", err.Error()))
	}
	g.log.Info("proxy", requestID, "request proxied",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("target", targetURL),
		slog.Int("status", resp.StatusCode),
	)
}

func (g *Gateway) RouteHandler(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path

	switch {
	case path == "/api/analytics" || strings.HasPrefix(path, "/api/analytics/"):
		g.ProxyRequest(w, r, g.config.AggSvcURL)
	case strings.HasPrefix(path, "/api/"):
		g.ProxyRequest(w, r, g.config.RestaurantSvcURL)
	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "message": "route not found"})
	}
}

func (g *Gateway) SetupRoutes() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/health", g.HealthCheck).Methods("GET")
	r.PathPrefix("/").HandlerFunc(g.RouteHandler)
	return r
}
