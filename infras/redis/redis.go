// Package redis opens the client behind the response cache, the rate limiter and pending orders.
package redis

import (
	"bistro/config"
	"context"
	"net"
	"time"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const pingTimeout = 5 * time.Second

// New connects to the primary node and pings it. An unreachable node is fatal.
func New(cfg *config.Config) *goRedis.Client {
	node := cfg.Cache.Redis.Primary
	addr := net.JoinHostPort(node.Host, node.Port)

	client := goRedis.NewClient(&goRedis.Options{
		Addr:     addr,
		Password: node.Password,
		DB:       node.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal().Err(err).Str("addr", addr).Msg("Failed to connect to Redis")
	}

	log.Info().Str("addr", addr).Int("db", node.DB).Msg("Connected to Redis")

	return client
}
