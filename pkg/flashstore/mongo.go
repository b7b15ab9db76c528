package flashstore

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type flashDocument struct {
	Key       string    `bson:"_id"`
	Data      []byte    `bson:"data"`
	ExpiresAt time.Time `bson:"expires_at"`
}

// Mongo stores toast lists as documents keyed by _id. A TTL index on
// expires_at lets the server purge abandoned entries.
type Mongo struct {
	coll *mongo.Collection
	now  func() time.Time
}

// NewMongo creates a MongoDB backend and ensures the TTL index exists.
func NewMongo(ctx context.Context, coll *mongo.Collection) (*Mongo, error) {
	if coll == nil {
		return nil, ErrNilClient
	}

	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	if err != nil {
		return nil, errors.Join(ErrBackend, err)
	}

	return &Mongo{coll: coll, now: time.Now}, nil
}

func (b *Mongo) Save(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	doc := flashDocument{Key: key, Data: data, ExpiresAt: b.now().Add(ttl).UTC()}
	_, err := b.coll.ReplaceOne(ctx, bson.D{{Key: "_id", Value: key}}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return errors.Join(ErrBackend, err)
	}
	return nil
}

// Pop removes the document with FindOneAndDelete. The TTL monitor runs about
// once a minute, so expiry is checked here as well.
func (b *Mongo) Pop(ctx context.Context, key string) ([]byte, error) {
	var doc flashDocument
	err := b.coll.FindOneAndDelete(ctx, bson.D{{Key: "_id", Value: key}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Join(ErrBackend, err)
	}
	if !doc.ExpiresAt.After(b.now()) {
		return nil, nil
	}
	return doc.Data, nil
}

func (b *Mongo) Delete(ctx context.Context, key string) error {
	if _, err := b.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: key}}); err != nil {
		return errors.Join(ErrBackend, err)
	}
	return nil
}
