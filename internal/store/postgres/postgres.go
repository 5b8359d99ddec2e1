// Package postgres implements the storage port on PostgreSQL, one JSONB
// document table per entity. The document column holds the full entity; the
// id column is the service-visible string id.
package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"gourmetgo/internal/model"
	"gourmetgo/internal/store"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// tables maps collection names to their backing tables.
var tables = map[string]string{
	"users":      "users",
	"categories": "categories",
	"menuItems":  "menu_items",
	"orders":     "orders",
}

// Store is a PostgreSQL-backed implementation of store.Store.
type Store struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// New prepares the document tables and returns the store. The pool stays
// owned by the caller.
func New(ctx context.Context, pool *pgxpool.Pool, logger zerolog.Logger) (*Store, error) {
	for _, table := range tables {
		ddl := fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id TEXT PRIMARY KEY,
				doc JSONB NOT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT now()
			)
		`, table)
		if _, err := pool.Exec(ctx, ddl); err != nil {
			return nil, fmt.Errorf("failed to create table %s: %w", table, err)
		}
	}
	return &Store{
		pool:   pool,
		logger: logger.With().Str("store", "postgres").Logger(),
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

// Close is a no-op; the pool belongs to the caller.
func (s *Store) Close(ctx context.Context) error { return nil }

// collection implements store.Collection over one document table.
type collection[T any] struct {
	s     *Store
	table string
	id    func(*T) *string
}

func newCollection[T any](s *Store, d store.Descriptor[T]) *collection[T] {
	return &collection[T]{s: s, table: tables[d.Name], id: d.ID}
}

func (c *collection[T]) scan(id string, raw []byte) (T, error) {
	var doc T
	if err := json.Unmarshal(raw, &doc); err != nil {
		return doc, fmt.Errorf("failed to decode document from %s: %w", c.table, err)
	}
	*c.id(&doc) = id
	return doc, nil
}

func (c *collection[T]) FindAll(ctx context.Context) ([]T, error) {
	query := fmt.Sprintf(`SELECT id, doc FROM %s ORDER BY created_at`, c.table)

	rows, err := c.s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", c.table, err)
	}
	defer rows.Close()

	var items []T
	for rows.Next() {
		var id string
		var raw []byte
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, fmt.Errorf("failed to scan row from %s: %w", c.table, err)
		}
		doc, err := c.scan(id, raw)
		if err != nil {
			return nil, err
		}
		items = append(items, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s: %w", c.table, err)
	}
	return items, nil
}

func (c *collection[T]) FindByID(ctx context.Context, id string) (*T, error) {
	query := fmt.Sprintf(`SELECT doc FROM %s WHERE id = $1`, c.table)

	var raw []byte
	err := c.s.pool.QueryRow(ctx, query, id).Scan(&raw)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", c.table, err)
	}
	doc, err := c.scan(id, raw)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (c *collection[T]) FindOne(ctx context.Context, match func(T) bool) (*T, error) {
	items, err := c.FindAll(ctx)
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
	*c.id(&doc) = uuid.NewString()
	raw, err := json.Marshal(doc)
	if err != nil {
		return doc, fmt.Errorf("failed to encode document for %s: %w", c.table, err)
	}

	query := fmt.Sprintf(`INSERT INTO %s (id, doc) VALUES ($1, $2)`, c.table)
	if _, err := c.s.pool.Exec(ctx, query, *c.id(&doc), raw); err != nil {
		return doc, fmt.Errorf("failed to insert into %s: %w", c.table, err)
	}
	return doc, nil
}

func (c *collection[T]) Update(ctx context.Context, id string, apply func(*T)) (*T, error) {
	existing, err := c.FindByID(ctx, id)
	if err != nil || existing == nil {
		return nil, err
	}
	apply(existing)
	*c.id(existing) = id

	raw, err := json.Marshal(*existing)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document for %s: %w", c.table, err)
	}
	query := fmt.Sprintf(`UPDATE %s SET doc = $2 WHERE id = $1`, c.table)
	if _, err := c.s.pool.Exec(ctx, query, id, raw); err != nil {
		return nil, fmt.Errorf("failed to update %s: %w", c.table, err)
	}
	return existing, nil
}

func (c *collection[T]) Delete(ctx context.Context, id string) (bool, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, c.table)

	tag, err := c.s.pool.Exec(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete from %s: %w", c.table, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (c *collection[T]) Count(ctx context.Context, match func(T) bool) (int, error) {
	if match == nil {
		query := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, c.table)
		var n int
		if err := c.s.pool.QueryRow(ctx, query).Scan(&n); err != nil {
			return 0, fmt.Errorf("failed to count %s: %w", c.table, err)
		}
		return n, nil
	}
	items, err := c.FindAll(ctx)
	if err != nil {
		return 0, err
	}
	n := 0
	for i := range items {
		if match(items[i]) {
			n++
		}
	}
	return n, nil
}
