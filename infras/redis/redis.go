package redis

import (
	"context"
	"net"
	"time"

	"coating/config"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Options maps the primary redis settings. The same client backs the cache, the rate limiter,
// token revocation and the submission guard.
func Options(cfg *config.Config) *goRedis.Options {
	primary := cfg.Cache.Redis.Primary

	return &goRedis.Options{
		Addr:        net.JoinHostPort(primary.Host, primary.Port),
		Password:    primary.Password,
		DB:          primary.DB,
		DialTimeout: time.Duration(primary.DialTimeoutSeconds) * time.Second,
	}
}

func New(cfg *config.Config) *goRedis.Client {
	options := Options(cfg)
	client := goRedis.NewClient(options)

	ctx, cancel := context.WithTimeout(context.Background(), options.DialTimeout+time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal().Err(err).Str("addr", options.Addr).Msg("Failed to connect to Redis")
	}

	log.Info().Int("db", options.DB).Str("addr", options.Addr).Msg("Connected to Redis")

	return client
}
