// Package redisstore persists the transaction list under a single redis key.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gomodule/redigo/redis"

	"github.com/DINetworks/DI-U2U/pkg/bridge"
	"github.com/DINetworks/DI-U2U/pkg/txstore"
)

// DefaultKey holds the JSON list when no key is configured
const DefaultKey = "bridge_transactions"

// Config holds redis connection settings
type Config struct {
	Addr        string
	Password    string
	DB          int
	Key         string
	MaxIdle     int
	DialTimeout time.Duration
}

// Storage implements txstore.Storage on a redigo pool
type Storage struct {
	pool *redis.Pool
	key  string
}

var _ txstore.Storage = (*Storage)(nil)

func dialOptions(cfg Config) []redis.DialOption {
	timeout := cfg.DialTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	opts := []redis.DialOption{
		redis.DialConnectTimeout(timeout),
		redis.DialReadTimeout(timeout),
		redis.DialWriteTimeout(timeout),
		redis.DialDatabase(cfg.DB),
	}
	if cfg.Password != "" {
		opts = append(opts, redis.DialPassword(cfg.Password))
	}
	return opts
}

// New creates a pooled storage. No connection is made until first use.
func New(cfg Config) *Storage {
	maxIdle := cfg.MaxIdle
	if maxIdle <= 0 {
		maxIdle = 5
	}
	pool := &redis.Pool{
		MaxIdle:     maxIdle,
		IdleTimeout: 240 * time.Second,
		DialContext: func(ctx context.Context) (redis.Conn, error) {
			return redis.DialContext(ctx, "tcp", cfg.Addr, dialOptions(cfg)...)
		},
	}
	return NewWithPool(pool, cfg.Key)
}

// NewWithPool wraps an existing pool
func NewWithPool(pool *redis.Pool, key string) *Storage {
	if key == "" {
		key = DefaultKey
	}
	return &Storage{pool: pool, key: key}
}

// Ping checks connectivity
func (s *Storage) Ping(ctx context.Context) error {
	conn, err := s.pool.GetContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to get redis connection: %w", err)
	}
	defer conn.Close()

	if _, err := redis.DoContext(conn, ctx, "PING"); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Load returns an empty list when the key does not exist
func (s *Storage) Load(ctx context.Context) ([]bridge.Transaction, error) {
	conn, err := s.pool.GetContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get redis connection: %w", err)
	}
	defer conn.Close()

	data, err := redis.Bytes(redis.DoContext(conn, ctx, "GET", s.key))
	if errors.Is(err, redis.ErrNil) {
		return []bridge.Transaction{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", s.key, err)
	}
	return txstore.Decode(data)
}

func (s *Storage) Save(ctx context.Context, txs []bridge.Transaction) error {
	data, err := txstore.Encode(txs)
	if err != nil {
		return err
	}

	conn, err := s.pool.GetContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to get redis connection: %w", err)
	}
	defer conn.Close()

	if _, err := redis.DoContext(conn, ctx, "SET", s.key, data); err != nil {
		return fmt.Errorf("redis set %s: %w", s.key, err)
	}
	return nil
}

// Close releases pooled connections
func (s *Storage) Close() error {
	return s.pool.Close()
}
