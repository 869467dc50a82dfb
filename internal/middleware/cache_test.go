package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/stayfinder-booking/internal/config"
)

func cacheTestConfig(maxBody int) config.CacheConfig {
	return config.CacheConfig{
		Enabled:      true,
		Methods:      map[string]bool{"GET": true},
		TTL:          time.Minute,
		KeyStrategy:  "route_query",
		Prefix:       "cache",
		MaxBodyBytes: maxBody,
	}
}

func testRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return mr, rdb
}

func runCached(t *testing.T, mw echo.MiddlewareFunc, method string, h echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, "/v1/properties", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	require.NoError(t, mw(h)(c))
	return rec
}

func TestCacheServesRepeatRequestFromRedis(t *testing.T) {
	_, rdb := testRedis(t)
	mw := NewRedisCache(cacheTestConfig(1024), rdb)

	calls := 0
	h := func(c echo.Context) error {
		calls++
		return c.JSON(http.StatusOK, echo.Map{"items": []string{"sea-view-loft", "forest-cabin"}})
	}

	first := runCached(t, mw, http.MethodGet, h)
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))

	second := runCached(t, mw, http.MethodGet, h)
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.Equal(t, 1, calls, "hit must be served without invoking the handler")
	assert.Equal(t, first.Body.String(), second.Body.String())
}

func TestCacheNeverStoresOversizedResponse(t *testing.T) {
	mr, rdb := testRedis(t)
	mw := NewRedisCache(cacheTestConfig(8), rdb)

	big := strings.Repeat("x", 64)
	calls := 0
	h := func(c echo.Context) error {
		calls++
		return c.String(http.StatusOK, big)
	}

	first := runCached(t, mw, http.MethodGet, h)
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, big, first.Body.String(), "client always gets the full body")

	// A body over the limit must not be cached at all; a stored prefix would
	// be replayed as a corrupt 200 on every later request.
	assert.Empty(t, mr.Keys())

	second := runCached(t, mw, http.MethodGet, h)
	assert.Equal(t, "MISS", second.Header().Get("X-Cache"))
	assert.Equal(t, big, second.Body.String())
	assert.Equal(t, 2, calls)
}

func TestCacheIgnoresUnconfiguredMethods(t *testing.T) {
	mr, rdb := testRedis(t)
	mw := NewRedisCache(cacheTestConfig(1024), rdb)

	h := func(c echo.Context) error { return c.String(http.StatusOK, "ok") }
	rec := runCached(t, mw, http.MethodPost, h)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("X-Cache"))
	assert.Empty(t, mr.Keys())
}

func TestCacheSkipsNonOKResponses(t *testing.T) {
	mr, rdb := testRedis(t)
	mw := NewRedisCache(cacheTestConfig(1024), rdb)

	h := func(c echo.Context) error {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "property not found"})
	}
	rec := runCached(t, mw, http.MethodGet, h)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, mr.Keys())
}
