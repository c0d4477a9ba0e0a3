package tests

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"restaurant-api/api-gateway/internal/gateway"
	"restaurant-api/api-gateway/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var testConfig = gateway.Config{
	RestaurantSvcURL: "http://restaurant-svc",
	AggSvcURL:        "http://agg-svc/",
}

func okResponse(body string) *http.Response {
	resp := &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
	resp.Header.Set("Content-Type", "application/json")
	return resp
}

func TestGateway_HealthCheck(t *testing.T) {
	gw := gateway.NewGateway(gateway.Config{}, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()

	gw.SetupRoutes().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var body map[string]string
	json.NewDecoder(rr.Body).Decode(&body)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "api-gateway", body["service"])
}

func TestGateway_RouteHandler_Targets(t *testing.T) {
	tests := []struct {
		name    string
		method  string
		path    string
		wantURL string
	}{
		{name: "menu", method: http.MethodGet, path: "/api/menu-items?page=2&perpage=5", wantURL: "http://restaurant-svc/api/menu-items?page=2&perpage=5"},
		{name: "cart", method: http.MethodPost, path: "/api/cart", wantURL: "http://restaurant-svc/api/cart"},
		{name: "order qrcode", method: http.MethodGet, path: "/api/orders/5/qrcode", wantURL: "http://restaurant-svc/api/orders/5/qrcode"},
		{name: "role change", method: http.MethodPatch, path: "/api/users/3/manager", wantURL: "http://restaurant-svc/api/users/3/manager"},
		{name: "analytics", method: http.MethodGet, path: "/api/analytics/popular-items?limit=3", wantURL: "http://agg-svc/api/analytics/popular-items?limit=3"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			mockClient := mocks.NewHTTPClient(t)
			gw := gateway.NewGateway(testConfig, mockClient, nil)

			mockClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
				return req.Method == testCase.method &&
					req.URL.String() == testCase.wantURL &&
					req.Header.Get("Authorization") == "Bearer token" &&
					req.Header.Get("X-Request-ID") != ""
			})).Return(okResponse(`{"ok":true}`), nil).Once()

			req := httptest.NewRequest(testCase.method, testCase.path, strings.NewReader(`{}`))
			req.Header.Set("Authorization", "Bearer token")
			rr := httptest.NewRecorder()

			gw.RouteHandler(rr, req)

			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			assert.JSONEq(t, `{"ok":true}`, rr.Body.String())
		})
	}
}

func TestGateway_RouteHandler_KeepsRequestID(t *testing.T) {
	mockClient := mocks.NewHTTPClient(t)
	gw := gateway.NewGateway(testConfig, mockClient, nil)

	mockClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		return req.Header.Get("X-Request-ID") == "req-42"
	})).Return(okResponse(`[]`), nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	req.Header.Set("X-Request-ID", "req-42")
	rr := httptest.NewRecorder()

	gw.RouteHandler(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestGateway_RouteHandler_UpstreamStatusPassesThrough(t *testing.T) {
	mockClient := mocks.NewHTTPClient(t)
	gw := gateway.NewGateway(testConfig, mockClient, nil)

	mockClient.On("Do", mock.Anything).Return(&http.Response{
		StatusCode: http.StatusServiceUnavailable,
		Body:       io.NopCloser(strings.NewReader(`{"error":"transaction_failed"}`)),
		Header:     make(http.Header),
	}, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/api/orders", nil)
	rr := httptest.NewRecorder()

	gw.RouteHandler(rr, req)

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Contains(t, rr.Body.String(), "transaction_failed")
}

func TestGateway_RouteHandler_NotFound(t *testing.T) {
	gw := gateway.NewGateway(testConfig, nil, nil)

	for _, path := range []string{"/", "/index.html", "/static/app.js"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rr := httptest.NewRecorder()

		gw.SetupRoutes().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code, path)
	}
}

func TestGateway_RouteHandler_ProxyError(t *testing.T) {
	mockClient := mocks.NewHTTPClient(t)
	gw := gateway.NewGateway(testConfig, mockClient, nil)

	mockClient.On("Do", mock.Anything).Return(nil, errors.New("connection failed")).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/menu-items", nil)
	rr := httptest.NewRecorder()

	gw.RouteHandler(rr, req)

	assert.Equal(t, http.StatusBadGateway, rr.Code)
	assert.NotContains(t, rr.Body.String(), "connection failed")
}
