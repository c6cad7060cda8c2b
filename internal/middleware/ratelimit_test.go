package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimiter_BlocksOverLimit(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := rl.Middleware(next)

	var last int
	for i := 0; i < 4; i++ {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		last = rr.Code
	}

	if last != http.StatusTooManyRequests {
		t.Errorf("Expected 429 after exceeding the limit, got %d", last)
	}
}

func TestRateLimiter_IsolatesByIP(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)

	if !rl.allow("10.0.0.1:1") {
		t.Error("First request for an IP should pass")
	}
	if rl.allow("10.0.0.1:1") {
		t.Error("Second request should be over the limit of 1")
	}
	if !rl.allow("10.0.0.2:1") {
		t.Error("A different IP must not share the first IP's window")
	}
}

func TestRateLimiter_WindowResets(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)

	if !rl.allow("10.0.0.3:1") {
		t.Fatal("First request should pass")
	}

	// Age the window past its duration.
	rl.mu.Lock()
	rl.counts["10.0.0.3:1"].started = time.Now().Add(-2 * time.Minute)
	rl.mu.Unlock()

	if !rl.allow("10.0.0.3:1") {
		t.Error("Request in a fresh window should pass")
	}
}
