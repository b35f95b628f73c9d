// Package redis implements ports.PositionStore on Redis so ephemeris
// samples can be shared across processes. Samples are deterministic pure
// function values, which makes the cache trivially safe: no invalidation,
// idempotent writes, optional TTL purely for memory hygiene.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Anonyfox/celestine-sub000/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// Store implements ports.PositionStore using Redis.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration for cached samples.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for cached samples.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "celestine:pos:",
		ttl:    0, // No expiration by default
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

func (s *Store) key(body domain.Body, jd float64) string {
	return fmt.Sprintf("%s%s:%.6f", s.prefix, body, jd)
}

// Get retrieves a cached position.
func (s *Store) Get(ctx context.Context, body domain.Body, jd float64) (domain.Position, error) {
	val, err := s.client.Get(ctx, s.key(body, jd)).Result()
	if err != nil {
		if err == backend.Nil {
			return domain.Position{}, domain.ErrPositionNotCached
		}
		return domain.Position{}, fmt.Errorf("failed to get from redis: %w", err)
	}

	var pos domain.Position
	if err := json.Unmarshal([]byte(val), &pos); err != nil {
		return domain.Position{}, fmt.Errorf("failed to unmarshal position: %w", err)
	}
	return pos, nil
}

// Put stores a position sample.
func (s *Store) Put(ctx context.Context, body domain.Body, jd float64, pos domain.Position) error {
	data, err := json.Marshal(pos)
	if err != nil {
		return fmt.Errorf("failed to marshal position: %w", err)
	}

	if err := s.client.Set(ctx, s.key(body, jd), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
