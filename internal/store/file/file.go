// Package file implements the storage port on process-local collections,
// optionally persisted to a single JSON document after every write. With an
// empty path the store is purely in-memory, which is what the service tests
// run against.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gourmetgo/internal/model"
	"gourmetgo/internal/store"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// payload is the on-disk document holding all four collections.
type payload struct {
	Users      []model.User     `json:"users"`
	Categories []model.Category `json:"categories"`
	MenuItems  []model.MenuItem `json:"menuItems"`
	Orders     []model.Order    `json:"orders"`
}

// Store is a file or memory backed implementation of store.Store.
type Store struct {
	mu     sync.Mutex
	path   string // empty means memory-only
	data   payload
	logger zerolog.Logger

	users      *collection[model.User]
	categories *collection[model.Category]
	menuItems  *collection[model.MenuItem]
	orders     *collection[model.Order]
}

// New creates a store persisted at path, loading any existing document.
func New(path string, logger zerolog.Logger) (*Store, error) {
	s := &Store{
		path:   path,
		logger: logger.With().Str("store", "file").Logger(),
	}
	if path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// fresh database
		case err != nil:
			return nil, fmt.Errorf("failed to read store file: %w", err)
		default:
			if err := json.Unmarshal(raw, &s.data); err != nil {
				return nil, fmt.Errorf("failed to parse store file: %w", err)
			}
		}
	}
	s.users = newCollection(s, store.Users, &s.data.Users)
	s.categories = newCollection(s, store.Categories, &s.data.Categories)
	s.menuItems = newCollection(s, store.MenuItems, &s.data.MenuItems)
	s.orders = newCollection(s, store.Orders, &s.data.Orders)
	return s, nil
}

// NewMemory creates a store with no persistence.
func NewMemory(logger zerolog.Logger) *Store {
	s, _ := New("", logger)
	return s
}

func (s *Store) Users() store.Collection[model.User]          { return s.users }
func (s *Store) Categories() store.Collection[model.Category] { return s.categories }
func (s *Store) MenuItems() store.Collection[model.MenuItem]  { return s.menuItems }
func (s *Store) Orders() store.Collection[model.Order]        { return s.orders }

// Close is a no-op; every mutation persists synchronously.
func (s *Store) Close(ctx context.Context) error { return nil }

// persist writes the whole document atomically via a temp file rename.
// Callers hold s.mu.
func (s *Store) persist() error {
	if s.path == "" {
		return nil
	}
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode store file: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write store file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace store file: %w", err)
	}
	return nil
}

// collection implements store.Collection over a slice owned by the store.
type collection[T any] struct {
	s     *Store
	name  string
	items *[]T
	id    func(*T) *string
}

func newCollection[T any](s *Store, d store.Descriptor[T], items *[]T) *collection[T] {
	return &collection[T]{s: s, name: d.Name, items: items, id: d.ID}
}

func (c *collection[T]) FindAll(ctx context.Context) ([]T, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	out := make([]T, len(*c.items))
	copy(out, *c.items)
	return out, nil
}

func (c *collection[T]) FindByID(ctx context.Context, id string) (*T, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	for i := range *c.items {
		if *c.id(&(*c.items)[i]) == id {
			doc := clone((*c.items)[i])
			return &doc, nil
		}
	}
	return nil, nil
}

func (c *collection[T]) FindOne(ctx context.Context, match func(T) bool) (*T, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	for i := range *c.items {
		if match((*c.items)[i]) {
			doc := clone((*c.items)[i])
			return &doc, nil
		}
	}
	return nil, nil
}

func (c *collection[T]) Insert(ctx context.Context, doc T) (T, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	stored := clone(doc)
	*c.id(&stored) = uuid.NewString()
	*c.items = append(*c.items, stored)
	if err := c.s.persist(); err != nil {
		*c.items = (*c.items)[:len(*c.items)-1]
		return doc, err
	}
	return clone(stored), nil
}

func (c *collection[T]) Update(ctx context.Context, id string, apply func(*T)) (*T, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	for i := range *c.items {
		if *c.id(&(*c.items)[i]) != id {
			continue
		}
		updated := clone((*c.items)[i])
		apply(&updated)
		*c.id(&updated) = id // id is not updatable
		previous := (*c.items)[i]
		(*c.items)[i] = updated
		if err := c.s.persist(); err != nil {
			(*c.items)[i] = previous
			return nil, err
		}
		doc := clone(updated)
		return &doc, nil
	}
	return nil, nil
}

func (c *collection[T]) Delete(ctx context.Context, id string) (bool, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	for i := range *c.items {
		if *c.id(&(*c.items)[i]) != id {
			continue
		}
		previous := *c.items
		next := make([]T, 0, len(previous)-1)
		next = append(next, previous[:i]...)
		next = append(next, previous[i+1:]...)
		*c.items = next
		if err := c.s.persist(); err != nil {
			*c.items = previous
			return false, err
		}
		return true, nil
	}
	return false, nil
}

func (c *collection[T]) Count(ctx context.Context, match func(T) bool) (int, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	if match == nil {
		return len(*c.items), nil
	}
	n := 0
	for i := range *c.items {
		if match((*c.items)[i]) {
			n++
		}
	}
	return n, nil
}

// clone deep-copies a document through JSON so callers never share nested
// slices with the store.
func clone[T any](doc T) T {
	raw, err := json.Marshal(doc)
	if err != nil {
		return doc
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return doc
	}
	return out
}
