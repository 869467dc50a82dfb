package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/stayfinder-booking/internal/config"
)

func limiterTestConfig(capacity int) config.RateLimitConfig {
	return config.RateLimitConfig{
		Enabled:        true,
		Capacity:       capacity,
		RefillTokens:   1,
		RefillInterval: time.Minute,
		TTL:            10 * time.Minute,
		KeyStrategy:    "ip",
		Prefix:         "rl",
	}
}

func runLimited(t *testing.T, mw echo.MiddlewareFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/bookings", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	h := func(c echo.Context) error { return c.String(http.StatusOK, "ok") }
	require.NoError(t, mw(h)(c))
	return rec
}

func TestTokenBucketBlocksWhenExhausted(t *testing.T) {
	_, rdb := testRedis(t)
	mw := NewTokenBucket(limiterTestConfig(2), rdb)

	// httptest requests share one client IP, so all three hit one bucket.
	assert.Equal(t, http.StatusOK, runLimited(t, mw).Code)
	assert.Equal(t, http.StatusOK, runLimited(t, mw).Code)

	third := runLimited(t, mw)
	require.Equal(t, http.StatusTooManyRequests, third.Code)
	assert.Equal(t, "0", third.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, third.Header().Get("Retry-After"))
}

func TestTokenBucketFailsOpenWithoutRedis(t *testing.T) {
	mr, rdb := testRedis(t)
	mw := NewTokenBucket(limiterTestConfig(1), rdb)
	mr.Close()

	// A broken limiter must not take the API down.
	assert.Equal(t, http.StatusOK, runLimited(t, mw).Code)
	assert.Equal(t, http.StatusOK, runLimited(t, mw).Code)
}
