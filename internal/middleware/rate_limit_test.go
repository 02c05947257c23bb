package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiterWithConfig(10, 5) // 10 per minute, burst of 5
	defer rl.Stop()

	// First 5 requests should be allowed (burst)
	for i := 0; i < 5; i++ {
		if !rl.Allow("10.0.0.1") {
			t.Errorf("Request %d should be allowed", i+1)
		}
	}

	// 6th request should be rate limited (exceeded burst)
	if rl.Allow("10.0.0.1") {
		t.Error("Request 6 should be rate limited")
	}
}

func TestRateLimiter_DifferentClients(t *testing.T) {
	rl := NewRateLimiterWithConfig(10, 3)
	defer rl.Stop()

	// Exhaust the first client's burst
	for i := 0; i < 3; i++ {
		if !rl.Allow("10.0.0.1") {
			t.Errorf("Client 1 request %d should be allowed", i+1)
		}
	}

	if rl.Allow("10.0.0.1") {
		t.Error("Client 1 should be rate limited")
	}

	// The second client should still have its full burst
	for i := 0; i < 3; i++ {
		if !rl.Allow("10.0.0.2") {
			t.Errorf("Client 2 request %d should be allowed", i+1)
		}
	}
}

func TestRateLimiter_EvictStale(t *testing.T) {
	rl := NewRateLimiterWithConfig(10, 1)
	defer rl.Stop()

	rl.Allow("10.0.0.1")
	rl.evictStale(time.Now().Add(LimiterTTL + time.Second))

	// A fresh limiter has its burst back
	if !rl.Allow("10.0.0.1") {
		t.Error("Expected stale limiter to be evicted")
	}
}

func TestRateLimiter_StopTwice(t *testing.T) {
	rl := NewRateLimiterWithConfig(10, 1)
	rl.Stop()
	rl.Stop()
}

func newIPRequest(e *echo.Echo, ip string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions/import", nil)
	req.RemoteAddr = ip + ":40000"
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRateLimitMiddleware_LimitsPerIP(t *testing.T) {
	e := echo.New()
	rl := NewRateLimiterWithConfig(10, 2) // Small burst for testing
	defer rl.Stop()

	handler := func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	}

	// First 2 requests should succeed (burst)
	for i := 0; i < 2; i++ {
		c, rec := newIPRequest(e, "192.0.2.10")
		if err := RateLimitMiddleware(rl)(handler)(c); err != nil {
			t.Fatalf("Request %d: Expected no error, got %v", i+1, err)
		}
		if rec.Code != http.StatusOK {
			t.Errorf("Request %d: Expected status 200, got %d", i+1, rec.Code)
		}
		if rec.Header().Get("X-RateLimit-Limit") != "10" {
			t.Errorf("Request %d: Expected X-RateLimit-Limit 10, got %q", i+1, rec.Header().Get("X-RateLimit-Limit"))
		}
	}

	// 3rd request should be rate limited
	c, rec := newIPRequest(e, "192.0.2.10")
	if err := RateLimitMiddleware(rl)(handler)(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("Expected status 429, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("Expected Retry-After header")
	}

	var problem problemDetails
	if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if problem.Type != errorTypeRateLimit || problem.Status != http.StatusTooManyRequests {
		t.Errorf("Unexpected problem details: %+v", problem)
	}
	if problem.Instance != "/api/v1/transactions/import" {
		t.Errorf("Expected instance to be the request path, got %s", problem.Instance)
	}

	// Another client is unaffected
	c, rec = newIPRequest(e, "192.0.2.11")
	if err := RateLimitMiddleware(rl)(handler)(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200 for a different client, got %d", rec.Code)
	}
}
