package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoBackend stores each key as one document {_id: key, value: json}.
// Update is a compare-and-swap on the previous value.
type MongoBackend struct {
	Collection *mongo.Collection
	Namespace  string
	MaxRetries int
}

type kvDocument struct {
	Key       string    `bson:"_id"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

func NewMongoBackend(collection *mongo.Collection, namespace string) *MongoBackend {
	return &MongoBackend{Collection: collection, Namespace: namespace, MaxRetries: defaultUpdateRetries}
}

func (b *MongoBackend) key(k string) string {
	if b.Namespace == "" {
		return k
	}
	return b.Namespace + ":" + k
}

func (b *MongoBackend) Get(ctx context.Context, key string) (string, bool, error) {
	var doc kvDocument
	err := b.Collection.FindOne(ctx, bson.M{"_id": b.key(key)}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return doc.Value, true, nil
}

func (b *MongoBackend) Set(ctx context.Context, key, value string) error {
	_, err := b.Collection.UpdateOne(ctx,
		bson.M{"_id": b.key(key)},
		bson.M{"$set": bson.M{"value": value, "updatedAt": time.Now()}},
		options.Update().SetUpsert(true),
	)
	return err
}

func (b *MongoBackend) Delete(ctx context.Context, key string) error {
	_, err := b.Collection.DeleteOne(ctx, bson.M{"_id": b.key(key)})
	return err
}

func (b *MongoBackend) Update(ctx context.Context, key string, fn UpdateFunc) error {
	fullKey := b.key(key)

	return retryUpdate(ctx, b.MaxRetries, func() error {
		current, found, err := b.Get(ctx, key)
		if err != nil {
			return err
		}

		next, err := fn(current, found)
		if errors.Is(err, ErrNoChange) {
			return nil
		}
		if err != nil {
			return err
		}

		if !found {
			_, err := b.Collection.InsertOne(ctx, kvDocument{Key: fullKey, Value: next, UpdatedAt: time.Now()})
			if mongo.IsDuplicateKeyError(err) {
				return errRaceLost
			}
			if err != nil {
				return fmt.Errorf("insert %s: %w", fullKey, err)
			}
			return nil
		}

		res, err := b.Collection.UpdateOne(ctx,
			bson.M{"_id": fullKey, "value": current},
			bson.M{"$set": bson.M{"value": next, "updatedAt": time.Now()}},
		)
		if err != nil {
			return fmt.Errorf("swap %s: %w", fullKey, err)
		}
		if res.MatchedCount != 1 {
			return errRaceLost
		}
		return nil
	})
}

var _ Backend = (*MongoBackend)(nil)
