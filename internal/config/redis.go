package config

// This file defines the Redis client used by the rate limiter.  It shares the
// REDIS_HOSTNAME/REDIS_PASSWORD settings with the /ping probe.  If the server
// cannot be reached at startup the function returns nil and callers degrade
// gracefully by disabling rate limiting.

import (
	"context"
	"crypto/tls"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient instantiates a Redis client from the probe settings.
// REDIS_TLS enables TLS when "true" or "1".  The returned client is nil if a
// connection cannot be established.
func NewRedisClient(c RedisProbeConfig) *redis.Client {
	var tlsConf *tls.Config
	if tlsEnv := getenv("REDIS_TLS", ""); strings.EqualFold(tlsEnv, "true") || tlsEnv == "1" {
		tlsConf = &tls.Config{InsecureSkipVerify: true}
	}
	client := redis.NewClient(&redis.Options{
		Addr:      c.Addr(),
		Password:  c.Password,
		DB:        0,
		TLSConfig: tlsConf,
	})
	// Ping the server with a short timeout.  Return nil on failure.
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil
	}
	return client
}
