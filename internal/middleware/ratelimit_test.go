package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/restaurant-reviews/internal/config"
)

func newLimitedServer(t *testing.T, capacity int) (*echo.Echo, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = rdb.Close() })

	cfg := config.RateLimitConfig{
		Enabled:        true,
		Capacity:       capacity,
		RefillTokens:   1,
		RefillInterval: time.Minute,
		TTL:            10 * time.Minute,
		KeyStrategy:    config.KeyByIPRoute,
		Prefix:         "rl",
	}
	e := echo.New()
	e.POST("/add", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) }, NewTokenBucket(cfg, rdb))
	return e, mr
}

func postAdd(e *echo.Echo) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/add", nil)
	req.Header.Set(echo.HeaderXRealIP, "10.0.0.7")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestTokenBucketLimitsAfterCapacity(t *testing.T) {
	e, _ := newLimitedServer(t, 2)

	tests := []struct {
		code       int
		remaining  string
		retryAfter string
	}{
		{http.StatusNoContent, "1", ""},
		{http.StatusNoContent, "0", ""},
		{http.StatusTooManyRequests, "0", "60"},
		{http.StatusTooManyRequests, "0", "60"},
	}
	for i, tt := range tests {
		rec := postAdd(e)
		if rec.Code != tt.code {
			t.Fatalf("request %d: status %d, want %d", i, rec.Code, tt.code)
		}
		if got := rec.Header().Get("X-RateLimit-Limit"); got != "2" {
			t.Errorf("request %d: X-RateLimit-Limit = %q", i, got)
		}
		if got := rec.Header().Get("X-RateLimit-Remaining"); got != tt.remaining {
			t.Errorf("request %d: X-RateLimit-Remaining = %q, want %q", i, got, tt.remaining)
		}
		if got := rec.Header().Get("Retry-After"); got != tt.retryAfter {
			t.Errorf("request %d: Retry-After = %q, want %q", i, got, tt.retryAfter)
		}
	}
}

func TestTokenBucketSeparatesClients(t *testing.T) {
	e, _ := newLimitedServer(t, 1)
	if rec := postAdd(e); rec.Code != http.StatusNoContent {
		t.Fatalf("first request: %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/add", nil)
	req.Header.Set(echo.HeaderXRealIP, "10.0.0.8")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("other client: status %d, want 204", rec.Code)
	}
}

func TestTokenBucketFailsOpenWhenRedisDown(t *testing.T) {
	e, mr := newLimitedServer(t, 1)
	if rec := postAdd(e); rec.Code != http.StatusNoContent {
		t.Fatalf("first request: %d", rec.Code)
	}
	mr.Close()

	for i := 0; i < 2; i++ {
		rec := postAdd(e)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("request %d with redis down: status %d, want 204", i, rec.Code)
		}
		if rec.Header().Get("Retry-After") != "" {
			t.Errorf("request %d: unexpected Retry-After", i)
		}
	}
}
