package shared

import (
	"context"

	"github.com/DODOEX/b64huff/utils/config"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

type RedisClient struct {
	logger zerolog.Logger
	config *config.Conf
	Client *redis.Client
}

func NewRedisClient(config *config.Conf, logger zerolog.Logger) *RedisClient {
	return &RedisClient{
		logger: logger.With().Str("name", "redis").Logger(),
		Client: nil,
		config: config,
	}
}

// Enabled reports whether anything is configured to use redis.
func (r *RedisClient) Enabled() bool {
	return r.config.String("store.driver", "file") == "redis" || r.config.Bool("redis.enable", false)
}

func (r *RedisClient) Connect(ctx context.Context) error {
	if r.Client != nil {
		r.logger.Info().Msg("Redis is already connected!")
		return nil
	}

	opts, err := redis.ParseURL(r.config.String("redis.url", "redis://127.0.0.1:6379/0"))
	if err != nil {
		return err
	}

	r.Client = redis.NewClient(opts)
	if err := r.Client.Ping(ctx).Err(); err != nil {
		return err
	}

	return nil
}

func (r *RedisClient) Close() error {
	if r == nil || r.Client == nil {
		return nil
	}
	return r.Client.Close()
}
