package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vitalcoach/backend/internal/config"
)

func authedHandler(cfg *config.SecurityConfig) http.Handler {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return APIKeyAuth(cfg)(ok)
}

func TestAPIKeyAuth_Disabled(t *testing.T) {
	h := authedHandler(&config.SecurityConfig{RequireAPIKey: false})

	req := httptest.NewRequest(http.MethodGet, "/api/foods", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 when auth disabled", rec.Code)
	}
}

func TestAPIKeyAuth_Enabled(t *testing.T) {
	cfg := &config.SecurityConfig{
		RequireAPIKey: true,
		APIKeys:       []string{"first-key", "second-key"},
	}
	h := authedHandler(cfg)

	tests := []struct {
		name string
		key  string
		want int
	}{
		{"missing key", "", http.StatusUnauthorized},
		{"wrong key", "nope", http.StatusForbidden},
		{"first configured key", "first-key", http.StatusOK},
		{"second configured key", "second-key", http.StatusOK},
		{"prefix of valid key", "first", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/foods", nil)
			if tt.key != "" {
				req.Header.Set("X-API-Key", tt.key)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestAPIKeyAuth_EnabledWithNoKeys(t *testing.T) {
	h := authedHandler(&config.SecurityConfig{RequireAPIKey: true})

	req := httptest.NewRequest(http.MethodGet, "/api/foods", nil)
	req.Header.Set("X-API-Key", "anything")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403 when no keys are configured", rec.Code)
	}
}
