package health

import (
	"context"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/restaurant-reviews/internal/config"
)

// RedisProbe sends PING to database 0 of the configured server.
type RedisProbe struct {
	Config config.RedisProbeConfig
}

func (RedisProbe) Name() string { return ResourceRedis }

func (p RedisProbe) Check(ctx context.Context) error {
	client := redis.NewClient(&redis.Options{
		Addr:       p.Config.Addr(),
		Password:   p.Config.Password,
		DB:         0,
		MaxRetries: -1, // one attempt; the runner owns the deadline
	})
	defer client.Close()

	if err := client.Ping(ctx).Err(); err != nil {
		msg := err.Error()
		if strings.HasPrefix(msg, "WRONGPASS") || strings.HasPrefix(msg, "NOAUTH") {
			return fmt.Errorf("%w: %v", ErrAuth, err)
		}
		return err
	}
	return nil
}
