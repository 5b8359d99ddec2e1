// Package redis implements the storage port on a durable key/value store.
// Each collection lives under one key as a single JSON blob; every mutation
// reads the blob, rewrites it, and stores it back, which keeps operations
// atomic for a single writer.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"gourmetgo/internal/model"
	"gourmetgo/internal/store"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Store is a Redis-backed implementation of store.Store.
type Store struct {
	client *redis.Client
	prefix string
	mu     sync.Mutex // serialises read-modify-write cycles within this process
	logger zerolog.Logger
}

// New connects to Redis and verifies the connection.
func New(ctx context.Context, addr, prefix string, logger zerolog.Logger) (*Store, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	if prefix == "" {
		prefix = "gourmetgo"
	}
	logger.Info().Str("addr", addr).Msg("connected to redis")
	return &Store{
		client: client,
		prefix: prefix,
		logger: logger.With().Str("store", "redis").Logger(),
	}, nil
}

func (s *Store) Users() store.Collection[model.User] {
	return newCollection(s, store.Users)
}

func (s *Store) Categories() store.Collection[model.Category] {
	return newCollection(s, store.Categories)
}

func (s *Store) MenuItems() store.Collection[model.MenuItem] {
	return newCollection(s, store.MenuItems)
}

func (s *Store) Orders() store.Collection[model.Order] {
	return newCollection(s, store.Orders)
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Close()
}

// collection implements store.Collection over one JSON blob per collection.
type collection[T any] struct {
	s   *Store
	key string
	id  func(*T) *string
}

func newCollection[T any](s *Store, d store.Descriptor[T]) *collection[T] {
	return &collection[T]{s: s, key: s.prefix + ":" + d.Name, id: d.ID}
}

// load reads and decodes the collection blob. A missing key is an empty
// collection.
func (c *collection[T]) load(ctx context.Context) ([]T, error) {
	raw, err := c.s.client.Get(ctx, c.key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", c.key, err)
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", c.key, err)
	}
	return items, nil
}

// save encodes and writes the collection blob with no expiry.
func (c *collection[T]) save(ctx context.Context, items []T) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", c.key, err)
	}
	if err := c.s.client.Set(ctx, c.key, raw, 0).Err(); err != nil {
		return fmt.Errorf("failed to write %s: %w", c.key, err)
	}
	return nil
}

func (c *collection[T]) FindAll(ctx context.Context) ([]T, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	return c.load(ctx)
}

func (c *collection[T]) FindByID(ctx context.Context, id string) (*T, error) {
	return c.FindOne(ctx, func(doc T) bool { return *c.id(&doc) == id })
}

func (c *collection[T]) FindOne(ctx context.Context, match func(T) bool) (*T, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	items, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if match(items[i]) {
			return &items[i], nil
		}
	}
	return nil, nil
}

func (c *collection[T]) Insert(ctx context.Context, doc T) (T, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	items, err := c.load(ctx)
	if err != nil {
		return doc, err
	}
	*c.id(&doc) = uuid.NewString()
	if err := c.save(ctx, append(items, doc)); err != nil {
		return doc, err
	}
	return doc, nil
}

func (c *collection[T]) Update(ctx context.Context, id string, apply func(*T)) (*T, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	items, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if *c.id(&items[i]) != id {
			continue
		}
		apply(&items[i])
		*c.id(&items[i]) = id
		if err := c.save(ctx, items); err != nil {
			return nil, err
		}
		return &items[i], nil
	}
	return nil, nil
}

func (c *collection[T]) Delete(ctx context.Context, id string) (bool, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	items, err := c.load(ctx)
	if err != nil {
		return false, err
	}
	for i := range items {
		if *c.id(&items[i]) != id {
			continue
		}
		if err := c.save(ctx, append(items[:i], items[i+1:]...)); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

func (c *collection[T]) Count(ctx context.Context, match func(T) bool) (int, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	items, err := c.load(ctx)
	if err != nil {
		return 0, err
	}
	if match == nil {
		return len(items), nil
	}
	n := 0
	for i := range items {
		if match(items[i]) {
			n++
		}
	}
	return n, nil
}
