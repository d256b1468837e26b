package redis

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/cgspeck/gen-systemd-svcs/pkg/model"
	backend "github.com/redis/go-redis/v9"
)

// DefaultKey is the hash that holds descriptors when no key is configured.
const DefaultKey = "gen-systemd-svc:units"

// Sink implements ports.UnitSink on a Redis hash: one field per descriptor.
// Hosts fetch their units with HGET <key> <name>.service.
type Sink struct {
	client *backend.Client
	key    string
	ttl    time.Duration
}

type Option func(*Sink)

// WithKey sets the hash key descriptors are stored under.
func WithKey(key string) Option {
	return func(s *Sink) {
		s.key = key
	}
}

// WithTTL expires the whole hash ttl after the last write.
func WithTTL(ttl time.Duration) Option {
	return func(s *Sink) {
		s.ttl = ttl
	}
}

// New creates a Redis sink connected to address.
func New(address, password string, db int, opts ...Option) *Sink {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a Redis sink from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Sink {
	sink := &Sink{
		client: client,
		key:    DefaultKey,
	}

	for _, opt := range opts {
		opt(sink)
	}

	return sink
}

// Location returns a redis:// pseudo path naming the hash field.
func (s *Sink) Location(name string) string {
	return fmt.Sprintf("redis://%s#%s", s.key, name)
}

// Ping verifies the server is reachable.
func (s *Sink) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to reach redis: %w", err)
	}
	return nil
}

// Write stores content in the hash field name.
func (s *Sink) Write(ctx context.Context, name string, content []byte) error {
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, s.key, name, content)
	if s.ttl > 0 {
		pipe.Expire(ctx, s.key, s.ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Read returns the content of hash field name.
func (s *Sink) Read(ctx context.Context, name string) ([]byte, error) {
	val, err := s.client.HGet(ctx, s.key, name).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, model.ErrUnitNotFound
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}
	return val, nil
}

// List returns all field names of the hash, sorted.
func (s *Sink) List(ctx context.Context) ([]string, error) {
	names, err := s.client.HKeys(ctx, s.key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list descriptors: %w", err)
	}
	sort.Strings(names)
	return names, nil
}

// Close closes the redis client.
func (s *Sink) Close() error {
	return s.client.Close()
}
