package snapshot

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	backend "github.com/redis/go-redis/v9"
)

// noExpiry is the index score for entries without a TTL (2100-01-01).
const noExpiry = 4102444800

// Redis stores each snapshot as a string value and keeps a sorted-set index
// scored by expiry time, so List does not need to SCAN the keyspace.
type Redis struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
	now    func() time.Time
}

// RedisOption configures a Redis backend.
type RedisOption func(*Redis)

// WithTTL sets the expiration for snapshots.
func WithTTL(ttl time.Duration) RedisOption {
	return func(r *Redis) { r.ttl = ttl }
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) RedisOption {
	return func(r *Redis) { r.prefix = prefix }
}

// NewRedis connects to a Redis server.
func NewRedis(addr, password string, db int, opts ...RedisOption) *Redis {
	client := backend.NewClient(&backend.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return NewRedisFromClient(client, opts...)
}

// NewRedisFromClient wraps an existing client. Close closes the client.
func NewRedisFromClient(client *backend.Client, opts ...RedisOption) *Redis {
	r := &Redis{
		client: client,
		prefix: "stablegraph:snapshot:",
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Redis) key(k string) string { return r.prefix + k }
func (r *Redis) indexKey() string    { return r.prefix + "index" }

func (r *Redis) Name() string { return "redis" }

func (r *Redis) Put(ctx context.Context, key string, data []byte) error {
	score := float64(r.now().Add(r.ttl).Unix())
	if r.ttl == 0 {
		score = noExpiry
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, r.key(key), data, r.ttl)
	pipe.ZAdd(ctx, r.indexKey(), backend.Z{Score: score, Member: key})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis put: %w", err)
	}
	return nil
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, backend.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}
	return data, nil
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	pipe := r.client.TxPipeline()
	pipe.Del(ctx, r.key(key))
	pipe.ZRem(ctx, r.indexKey(), key)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis delete: %w", err)
	}
	return nil
}

// List prunes expired index members before reading the index.
func (r *Redis) List(ctx context.Context) ([]string, error) {
	now := fmt.Sprintf("%d", r.now().Unix())
	if err := r.client.ZRemRangeByScore(ctx, r.indexKey(), "-inf", now).Err(); err != nil {
		return nil, fmt.Errorf("redis prune index: %w", err)
	}
	keys, err := r.client.ZRange(ctx, r.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis list: %w", err)
	}
	slices.Sort(keys)
	return keys, nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}

var _ Backend = (*Redis)(nil)
