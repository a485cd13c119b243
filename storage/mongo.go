package storage

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore keeps one document per key: {_id: key, data: text}.
type MongoStore struct {
	collection *mongo.Collection
}

func NewMongoStore(collection *mongo.Collection) *MongoStore {
	return &MongoStore{collection: collection}
}

type blobDocument struct {
	Key  string `bson:"_id"`
	Data string `bson:"data"`
}

func (m *MongoStore) ReadBlob(ctx context.Context, key string) (string, bool, error) {
	var doc blobDocument
	err := m.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("%w: read %s: %v", ErrStorageUnavailable, key, err)
	}
	return doc.Data, true, nil
}

func (m *MongoStore) WriteBlob(ctx context.Context, key, text string) error {
	filter := bson.M{"_id": key}
	update := bson.M{"$set": bson.M{"data": text}}
	_, err := m.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrStorageUnavailable, key, err)
	}
	return nil
}
