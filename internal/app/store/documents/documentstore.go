// internal/app/store/documents/documentstore.go
package documentstore

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// ErrEmptyKey is returned when a document key is blank.
var ErrEmptyKey = errors.New("documentstore: empty key")

// Direction orders Query results.
type Direction int

const (
	Ascending  Direction = 1
	Descending Direction = -1
)

type serverTimestamp struct{}

// ServerTimestamp is a field value placeholder. Put replaces it with the
// server's current date, which reads back as primitive.DateTime rather
// than a string.
var ServerTimestamp = serverTimestamp{}

// Store is a schemaless document store keyed by collection and key. Keys
// are stored as _id.
type Store struct {
	db *mongo.Database
}

// New creates a document store on db.
func New(db *mongo.Database) *Store {
	return &Store{db: db}
}

// Ping checks that the primary is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Client().Ping(ctx, readpref.Primary())
}

// Put writes doc under key, creating the document if needed. Any _id in
// doc is ignored in favour of key.
func (s *Store) Put(ctx context.Context, collection, key string, doc bson.M) error {
	if key == "" {
		return ErrEmptyKey
	}

	set := bson.M{}
	stamp := bson.M{}
	for k, v := range doc {
		if k == "_id" {
			continue
		}
		if _, ok := v.(serverTimestamp); ok {
			stamp[k] = true
			continue
		}
		set[k] = v
	}

	update := bson.M{}
	if len(set) > 0 {
		update["$set"] = set
	}
	if len(stamp) > 0 {
		update["$currentDate"] = stamp
	}
	if len(update) == 0 {
		update["$setOnInsert"] = bson.M{"_id": key}
	}

	opts := options.Update().SetUpsert(true)
	if _, err := s.db.Collection(collection).UpdateOne(ctx, bson.M{"_id": key}, update, opts); err != nil {
		return fmt.Errorf("documentstore: put %s/%s: %w", collection, key, err)
	}
	return nil
}

// Get returns the document under key, or mongo.ErrNoDocuments.
func (s *Store) Get(ctx context.Context, collection, key string) (bson.M, error) {
	var doc bson.M
	if err := s.db.Collection(collection).FindOne(ctx, bson.M{"_id": key}).Decode(&doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Query returns every document in collection sorted by field.
func (s *Store) Query(ctx context.Context, collection, field string, dir Direction) ([]bson.M, error) {
	opts := options.Find().SetSort(bson.D{{Key: field, Value: int(dir)}})
	cur, err := s.db.Collection(collection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("documentstore: query %s: %w", collection, err)
	}
	defer cur.Close(ctx)

	docs := []bson.M{}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("documentstore: decode %s: %w", collection, err)
	}
	return docs, nil
}

// Count returns the number of documents in collection.
func (s *Store) Count(ctx context.Context, collection string) (int64, error) {
	return s.db.Collection(collection).CountDocuments(ctx, bson.M{})
}

// Delete removes the document under key. Removing a missing document is
// not an error.
func (s *Store) Delete(ctx context.Context, collection, key string) error {
	if _, err := s.db.Collection(collection).DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("documentstore: delete %s/%s: %w", collection, key, err)
	}
	return nil
}
