package store

import (
	"context"
	"io"

	"github.com/DODOEX/b64huff/internal/module/shared"
	"github.com/DODOEX/b64huff/utils/config"
	"github.com/rs/zerolog"
)

// Object is a stored blob opened for reading.
type Object interface {
	io.ReadSeeker
	io.Closer
	Size() int64
}

// Store holds job inputs and outputs. Save is all-or-nothing: when write
// or the store itself fails, nothing is left under key.
type Store interface {
	Name() string
	Open(ctx context.Context, key string) (Object, error)
	Save(ctx context.Context, key string, write func(w io.Writer) error) (int64, error)
}

func NewStore(config *config.Conf, logger zerolog.Logger, rdb *shared.RedisClient) Store {
	switch driver := config.String("store.driver", "file"); driver {
	case "redis":
		return NewRedisStore(rdb, config.String("store.redis.prefix", "b64huff:"), config.Duration("store.redis.ttl", 0))
	case "file":
		return NewFileStore(config.String("store.file.root", ""))
	default:
		logger.Warn().Msgf("Unknown store driver %q, falling back to file", driver)
		return NewFileStore(config.String("store.file.root", ""))
	}
}
