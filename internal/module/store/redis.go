package store

import (
	"bytes"
	"context"
	"errors"
	"io"
	"time"

	"github.com/DODOEX/b64huff/internal/common"
	"github.com/DODOEX/b64huff/internal/module/shared"
	"github.com/DODOEX/b64huff/utils/helpers"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each object as one string value. Objects are buffered
// in memory, so it suits the sizes redis accepts (512 MiB at most).
type RedisStore struct {
	rdb    *shared.RedisClient
	prefix string
	ttl    time.Duration
}

func NewRedisStore(rdb *shared.RedisClient, prefix string, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, prefix: prefix, ttl: ttl}
}

func (s *RedisStore) Name() string {
	return "redis"
}

func (s *RedisStore) Key(key string) string {
	return helpers.Concat(s.prefix, key)
}

type memObject struct {
	*bytes.Reader
}

func (memObject) Close() error {
	return nil
}

func (s *RedisStore) client() (*redis.Client, error) {
	if s.rdb == nil || s.rdb.Client == nil {
		return nil, common.IOError("redis is not connected")
	}
	return s.rdb.Client, nil
}

func (s *RedisStore) Open(ctx context.Context, key string) (Object, error) {
	c, err := s.client()
	if err != nil {
		return nil, err
	}
	data, err := c.Get(ctx, s.Key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, common.IOError("no such key "+s.Key(key), err)
		}
		return nil, common.IOError("failed to read "+s.Key(key), err)
	}
	return memObject{bytes.NewReader(data)}, nil
}

// Save only issues the SET after write succeeded, so failed jobs never
// touch the key.
func (s *RedisStore) Save(ctx context.Context, key string, write func(w io.Writer) error) (int64, error) {
	c, err := s.client()
	if err != nil {
		return 0, err
	}

	buf := &bytes.Buffer{}
	if err := write(buf); err != nil {
		return 0, err
	}
	if err := c.Set(ctx, s.Key(key), buf.Bytes(), s.ttl).Err(); err != nil {
		return 0, common.IOError("failed to write "+s.Key(key), err)
	}
	return int64(buf.Len()), nil
}
