package mwratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"slotBooker/internal/lib/logger/handlers/slogdiscard"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
}

func request(remoteAddr string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", nil)
	req.RemoteAddr = remoteAddr
	return req
}

func TestRateLimitPerIP(t *testing.T) {
	t.Parallel()

	// One token per hour keeps the bucket from refilling during the test.
	handler := New(slogdiscard.NewDiscardLogger(), 1.0/3600, 2)(okHandler())

	for i := 0; i < 2; i++ {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, request("10.0.0.1:1234"))
		assert.Equal(t, http.StatusCreated, rr.Code)
	}

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, request("10.0.0.1:5678"))
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Contains(t, rr.Body.String(), "rate limit exceeded")

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, request("10.0.0.2:1234"))
	assert.Equal(t, http.StatusCreated, rr.Code)
}

func TestRateLimitDisabled(t *testing.T) {
	t.Parallel()

	handler := New(slogdiscard.NewDiscardLogger(), 0, 0)(okHandler())

	for i := 0; i < 50; i++ {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, request("10.0.0.1:1234"))
		assert.Equal(t, http.StatusCreated, rr.Code)
	}
}

func TestClientIP(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "192.168.1.5", clientIP(request("192.168.1.5:4000")))
	assert.Equal(t, "::1", clientIP(request("[::1]:4000")))
	assert.Equal(t, "no-port", clientIP(request("no-port")))
}
