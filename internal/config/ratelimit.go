package config

import (
	"log"
	"strings"
	"time"
)

// Key strategies understood by the rate limiter: the bucket is shared per
// client address, per route, or per address and route.
const (
	KeyByIP      = "ip"
	KeyByRoute   = "route"
	KeyByIPRoute = "ip_route"
)

// RateLimitConfig configures the Redis token bucket guarding the form
// submissions.  Capacity tokens refill by RefillTokens every RefillInterval;
// idle buckets expire after TTL.
type RateLimitConfig struct {
	Enabled        bool
	Capacity       int
	RefillTokens   int
	RefillInterval time.Duration
	TTL            time.Duration
	KeyStrategy    string
	Prefix         string
	Debug          bool
}

// LoadRateLimitConfig reads RATE_LIMIT_* variables.  Out of range numbers
// are clamped and an unknown key strategy falls back to ip_route.
func LoadRateLimitConfig() RateLimitConfig {
	cfg := RateLimitConfig{
		Enabled:        envBool("RATE_LIMIT_ENABLED", true),
		Capacity:       max(envInt("RATE_LIMIT_CAPACITY", 30), 1),
		RefillTokens:   max(envInt("RATE_LIMIT_REFILL_TOKENS", 1), 1),
		RefillInterval: envDur("RATE_LIMIT_REFILL_INTERVAL", 2*time.Second),
		TTL:            envDur("RATE_LIMIT_TTL", 10*time.Minute),
		KeyStrategy:    keyStrategy(getenv("RATE_LIMIT_KEY_STRATEGY", KeyByIPRoute)),
		Prefix:         getenv("RATE_LIMIT_PREFIX", "rl"),
		Debug:          envBool("RATE_LIMIT_DEBUG", false),
	}
	if cfg.RefillInterval <= 0 {
		cfg.RefillInterval = time.Second
	}
	// a bucket must outlive several refills or it resets to full
	cfg.TTL = max(cfg.TTL, 5*cfg.RefillInterval)
	return cfg
}

func keyStrategy(s string) string {
	switch v := strings.ToLower(strings.TrimSpace(s)); v {
	case KeyByIP, KeyByRoute, KeyByIPRoute:
		return v
	}
	log.Printf("config: unknown RATE_LIMIT_KEY_STRATEGY %q, using %s", s, KeyByIPRoute)
	return KeyByIPRoute
}
