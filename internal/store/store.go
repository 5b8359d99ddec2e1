// Package store defines the storage port the catalog and order service is
// written against. A backend supplies one Collection per domain entity;
// inserted records receive stable, globally-unique string ids regardless of
// how the backend identifies documents natively.
package store

import (
	"context"

	"gourmetgo/internal/model"
)

// Collection is the per-entity data access contract. Predicates are plain Go
// functions evaluated by the backend; every operation must appear atomic to a
// single caller.
type Collection[T any] interface {
	// FindAll retrieves every document in the collection.
	FindAll(ctx context.Context) ([]T, error)

	// FindByID retrieves a single document, or nil without error on a miss.
	FindByID(ctx context.Context, id string) (*T, error)

	// FindOne retrieves the first document matching the predicate, or nil.
	FindOne(ctx context.Context, match func(T) bool) (*T, error)

	// Insert stores a new document, assigning it a fresh unique id, and
	// returns the stored value.
	Insert(ctx context.Context, doc T) (T, error)

	// Update applies the mutation to the document with the given id and
	// returns the updated value, or nil without error if the id is unknown.
	Update(ctx context.Context, id string, apply func(*T)) (*T, error)

	// Delete removes the document and reports whether it existed.
	Delete(ctx context.Context, id string) (bool, error)

	// Count returns the number of documents matching the predicate. A nil
	// predicate counts everything.
	Count(ctx context.Context, match func(T) bool) (int, error)
}

// Store exposes the four domain collections.
type Store interface {
	Users() Collection[model.User]
	Categories() Collection[model.Category]
	MenuItems() Collection[model.MenuItem]
	Orders() Collection[model.Order]

	// Close releases backend resources. Pending writes are flushed first.
	Close(ctx context.Context) error
}

// Descriptor ties an entity type to its collection name and id field. The id
// accessor returns a pointer so backends can both read and assign ids through
// one function.
type Descriptor[T any] struct {
	Name string
	ID   func(*T) *string
}

// Descriptors for the four domain collections.
var (
	Users      = Descriptor[model.User]{Name: "users", ID: func(u *model.User) *string { return &u.ID }}
	Categories = Descriptor[model.Category]{Name: "categories", ID: func(c *model.Category) *string { return &c.ID }}
	MenuItems  = Descriptor[model.MenuItem]{Name: "menuItems", ID: func(m *model.MenuItem) *string { return &m.ID }}
	Orders     = Descriptor[model.Order]{Name: "orders", ID: func(o *model.Order) *string { return &o.ID }}
)
