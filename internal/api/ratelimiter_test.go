package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type staticLimiter struct {
	allow bool
}

func (s *staticLimiter) Allow(string) bool {
	return s.allow
}

func TestRateLimitMiddlewareBlocksWhenLimiterDenies(t *testing.T) {
	middleware := rateLimitMiddleware(&staticLimiter{allow: false}, http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		t.Fatalf("handler should not execute when rate limited")
	}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	middleware.ServeHTTP(rec, req)

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
}

func TestRateLimitMiddlewarePassesWhenLimiterAllows(t *testing.T) {
	var called bool
	middleware := rateLimitMiddleware(&staticLimiter{allow: true}, http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		called = true
	}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	middleware.ServeHTTP(rec, req)

	if !called {
		t.Fatalf("expected handler to execute when limiter allows")
	}
}

func TestNewClientLimiterUsesDefaults(t *testing.T) {
	limiter := newClientLimiter(0, 0)
	if limiter == nil {
		t.Fatalf("expected limiter instance")
	}
	if !limiter.Allow("a") {
		t.Fatalf("expected first request to be allowed")
	}
	if limiter.Allow("a") {
		t.Fatalf("expected burst of one to block the second request")
	}
	if !limiter.Allow("b") {
		t.Fatalf("expected another client to have its own bucket")
	}
}

func TestClientLimiterEvictsIdleBuckets(t *testing.T) {
	now := time.Date(2024, 11, 1, 12, 0, 0, 0, time.UTC)
	limiter := newClientLimiter(1, 1)
	limiter.now = func() time.Time { return now }

	limiter.Allow("a")
	limiter.Allow("b")
	if limiter.size() != 2 {
		t.Fatalf("expected 2 buckets, got %d", limiter.size())
	}

	now = now.Add(limiterIdleTTL + time.Second)
	limiter.Allow("c")
	if limiter.size() != 1 {
		t.Fatalf("expected idle buckets to be evicted, got %d", limiter.size())
	}
}

func TestClientAddress(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.10:4321"
	if got := clientAddress(req); got != "192.0.2.10" {
		t.Fatalf("expected host only, got %s", got)
	}
	req.RemoteAddr = "pipe"
	if got := clientAddress(req); got != "pipe" {
		t.Fatalf("expected raw address fallback, got %s", got)
	}
}
