// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package annostore

import (
	"context"
	"fmt"
	"log"
	"time"

	goredis "github.com/go-redis/redis/v8"
)

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// RedisStore keeps a hash per symbol with one field per kind.
type RedisStore struct {
	client goredis.Cmdable
	close  func() error
}

// NewRedisStore connects and pings the server.
func NewRedisStore(cfg RedisConfig) (*RedisStore, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	log.Printf("annotation store connected to redis at %s", cfg.Addr)
	return &RedisStore{client: client, close: client.Close}, nil
}

// NewRedisStoreWithClient uses an existing client, which is not closed by Close.
func NewRedisStoreWithClient(client goredis.Cmdable) *RedisStore {
	return &RedisStore{client: client}
}

func redisKey(symbol string) string {
	return "annotations:" + symbol
}

func (s *RedisStore) Save(ctx context.Context, symbol string, kind string, records Set) error {
	if len(records) == 0 {
		if err := s.client.HDel(ctx, redisKey(symbol), kind).Err(); err != nil {
			return fmt.Errorf("redis hdel %s: %w", symbol, err)
		}
		return nil
	}
	b, err := encodeSet(records)
	if err != nil {
		return err
	}
	if err := s.client.HSet(ctx, redisKey(symbol), kind, b).Err(); err != nil {
		return fmt.Errorf("redis hset %s: %w", symbol, err)
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context, symbol string) (map[string]Set, error) {
	fields, err := s.client.HGetAll(ctx, redisKey(symbol)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis hgetall %s: %w", symbol, err)
	}
	out := make(map[string]Set, len(fields))
	for kind, raw := range fields {
		set, err := decodeSet([]byte(raw))
		if err != nil {
			log.Printf("ignoring invalid %s annotations of %s: %v", kind, symbol, err)
			continue
		}
		out[kind] = set
	}
	return out, nil
}

func (s *RedisStore) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}
