package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jwebster45206/life-engine/internal/storage"
	"github.com/jwebster45206/life-engine/pkg/world"
)

func TestHealthHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name            string
		setupStorage    func() *storage.MockStorage
		expectedStatus  int
		expectedHealth  string
		expectedStorage string
	}{
		{
			name: "healthy",
			setupStorage: func() *storage.MockStorage {
				return storage.NewMockStorage()
			},
			expectedStatus:  http.StatusOK,
			expectedHealth:  "healthy",
			expectedStorage: "healthy",
		},
		{
			name: "storage down",
			setupStorage: func() *storage.MockStorage {
				mock := storage.NewMockStorage()
				mock.SetPingError(errors.New("connection refused"))
				return mock
			},
			expectedStatus:  http.StatusServiceUnavailable,
			expectedHealth:  "degraded",
			expectedStorage: "unhealthy",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewHealthHandler(tc.setupStorage(), testLogger())

			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != tc.expectedStatus {
				t.Errorf("Expected status %d, got %d", tc.expectedStatus, rr.Code)
			}

			var resp HealthResponse
			if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
				t.Fatalf("Failed to decode response: %v", err)
			}
			if resp.Status != tc.expectedHealth {
				t.Errorf("Expected status %q, got %q", tc.expectedHealth, resp.Status)
			}
			if resp.Components["storage"] != tc.expectedStorage {
				t.Errorf("Expected storage %q, got %v", tc.expectedStorage, resp.Components["storage"])
			}
			if resp.Service != "life-engine" {
				t.Errorf("Unexpected service name %q", resp.Service)
			}
		})
	}
}

func TestWorldHandler_ServeHTTP(t *testing.T) {
	handler := NewWorldHandler(world.Default(), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/v1/world", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}

	var resp struct {
		Locations map[string]struct {
			Label string `json:"label"`
		} `json:"locations"`
		Routes map[string]struct {
			Cost  int `json:"cost"`
			Hours int `json:"hours"`
		} `json:"routes"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(resp.Locations) != 5 {
		t.Errorf("Expected 5 locations, got %d", len(resp.Locations))
	}
	if resp.Routes["Gunung"].Cost != 100 {
		t.Errorf("Expected Gunung fare 100, got %d", resp.Routes["Gunung"].Cost)
	}
}

func TestWorldHandler_MethodNotAllowed(t *testing.T) {
	handler := NewWorldHandler(world.Default(), testLogger())

	req := httptest.NewRequest(http.MethodPost, "/v1/world", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected status 405, got %d", rr.Code)
	}
}
