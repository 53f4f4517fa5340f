// Package redisstore keeps storage container contents in Redis.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	redis "github.com/redis/go-redis/v9"

	"github.com/nathoo/turncore/engine/save"
	"github.com/nathoo/turncore/types"
)

const defaultPrefix = "turncore:container:"

// Config contains configuration for the Redis container store.
type Config struct {
	Client redis.UniversalClient
	// Prefix namespaces container keys; it separates save slots sharing
	// one Redis database.
	Prefix string
}

// Validate validates the Config.
func (cfg *Config) Validate() error {
	if cfg == nil {
		return errors.New("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.New("client cannot be nil")
	}
	return nil
}

// Store is a Redis-backed container store.
type Store struct {
	client redis.UniversalClient
	prefix string
}

// New creates a Redis-backed container store.
func New(cfg *Config) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	prefix := cfg.Prefix
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &Store{client: cfg.Client, prefix: prefix}, nil
}

// Dial connects to the Redis server at addr and checks it answers.
func Dial(ctx context.Context, addr string) (*Store, error) {
	if addr == "" {
		return nil, errors.New("redis: address is required")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return New(&Config{Client: client})
}

// Close closes the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) key(file int) string {
	return s.prefix + strconv.Itoa(file)
}

// Load returns the saved contents of container file.
func (s *Store) Load(ctx context.Context, file int) ([]types.Item, bool, error) {
	result, err := s.client.Get(ctx, s.key(file)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get container %d: %w", file, err)
	}
	items, err := save.DecodeItems(result)
	if err != nil {
		return nil, false, fmt.Errorf("failed to decode container %d: %w", file, err)
	}
	return items, true, nil
}

// Save replaces the contents of container file.
func (s *Store) Save(ctx context.Context, file int, items []types.Item) error {
	data, err := save.EncodeItems(items)
	if err != nil {
		return fmt.Errorf("failed to encode container %d: %w", file, err)
	}
	if err := s.client.Set(ctx, s.key(file), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save container %d: %w", file, err)
	}
	return nil
}
