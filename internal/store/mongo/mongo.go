// Package mongo implements the storage port on MongoDB, one collection per
// entity. Documents are identified by native ObjectIDs which are surfaced to
// the service layer as opaque hex strings; the native type never leaks past
// this package.
package mongo

import (
	"context"
	"fmt"
	"time"

	"gourmetgo/internal/model"
	"gourmetgo/internal/store"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store is a MongoDB-backed implementation of store.Store.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
	logger zerolog.Logger
}

// New connects to MongoDB and verifies the connection.
func New(ctx context.Context, uri, database string, logger zerolog.Logger) (*Store, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}
	logger.Info().Str("database", database).Msg("connected to mongodb")
	return &Store{
		client: client,
		db:     client.Database(database),
		logger: logger.With().Str("store", "mongo").Logger(),
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
	return s.client.Disconnect(ctx)
}

// collection implements store.Collection over one MongoDB collection.
// Predicates run client-side; the collections this system holds are small
// enough that a full scan is the simplest correct implementation of the port.
type collection[T any] struct {
	col *mongo.Collection
	id  func(*T) *string
}

func newCollection[T any](s *Store, d store.Descriptor[T]) *collection[T] {
	return &collection[T]{col: s.db.Collection(d.Name), id: d.ID}
}

// decode unmarshals a raw document and moves its ObjectID into the entity's
// string id field.
func (c *collection[T]) decode(raw bson.Raw) (T, error) {
	var doc T
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return doc, fmt.Errorf("failed to decode document: %w", err)
	}
	var meta struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := bson.Unmarshal(raw, &meta); err != nil {
		return doc, fmt.Errorf("failed to decode document id: %w", err)
	}
	*c.id(&doc) = meta.ID.Hex()
	return doc, nil
}

// encode marshals an entity into a document keyed by the given ObjectID. The
// entity's string id field carries a bson:"-" tag, so only _id is stored.
func (c *collection[T]) encode(doc T, oid primitive.ObjectID) (bson.M, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	m["_id"] = oid
	return m, nil
}

func (c *collection[T]) FindAll(ctx context.Context) ([]T, error) {
	cursor, err := c.col.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", c.col.Name(), err)
	}
	defer cursor.Close(ctx)

	var items []T
	for cursor.Next(ctx) {
		doc, err := c.decode(cursor.Current)
		if err != nil {
			return nil, err
		}
		items = append(items, doc)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s: %w", c.col.Name(), err)
	}
	return items, nil
}

func (c *collection[T]) FindByID(ctx context.Context, id string) (*T, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// A malformed id cannot reference any document.
		return nil, nil
	}
	raw, err := c.col.FindOne(ctx, bson.M{"_id": oid}).Raw()
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", c.col.Name(), err)
	}
	doc, err := c.decode(raw)
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
	oid := primitive.NewObjectID()
	m, err := c.encode(doc, oid)
	if err != nil {
		return doc, err
	}
	if _, err := c.col.InsertOne(ctx, m); err != nil {
		return doc, fmt.Errorf("failed to insert into %s: %w", c.col.Name(), err)
	}
	*c.id(&doc) = oid.Hex()
	return doc, nil
}

func (c *collection[T]) Update(ctx context.Context, id string, apply func(*T)) (*T, error) {
	existing, err := c.FindByID(ctx, id)
	if err != nil || existing == nil {
		return nil, err
	}
	apply(existing)
	*c.id(existing) = id

	oid, _ := primitive.ObjectIDFromHex(id)
	m, err := c.encode(*existing, oid)
	if err != nil {
		return nil, err
	}
	if _, err := c.col.ReplaceOne(ctx, bson.M{"_id": oid}, m); err != nil {
		return nil, fmt.Errorf("failed to update %s: %w", c.col.Name(), err)
	}
	return existing, nil
}

func (c *collection[T]) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	res, err := c.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, fmt.Errorf("failed to delete from %s: %w", c.col.Name(), err)
	}
	return res.DeletedCount > 0, nil
}

func (c *collection[T]) Count(ctx context.Context, match func(T) bool) (int, error) {
	if match == nil {
		n, err := c.col.CountDocuments(ctx, bson.D{})
		if err != nil {
			return 0, fmt.Errorf("failed to count %s: %w", c.col.Name(), err)
		}
		return int(n), nil
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
