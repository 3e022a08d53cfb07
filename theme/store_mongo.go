// theme/store_mongo.go
package theme

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoStore persists the selection as a single document in a
// "theme_state" collection.
type MongoStore struct {
	coll    *mongo.Collection
	timeout time.Duration
}

// stateDocID is the _id of the one document a MongoStore maintains.
const stateDocID = "active_theme"

// NewMongoStore creates a store writing to db's "theme_state"
// collection.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		coll:    db.Collection("theme_state"),
		timeout: defaultStoreTimeout,
	}
}

// LoadActive reads the stored directory key. A missing document means
// no selection has been saved yet.
func (s *MongoStore) LoadActive() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	var doc struct {
		Value string `bson:"value"`
	}
	err := s.coll.FindOne(ctx, bson.M{"_id": stateDocID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", nil
		}
		return "", err
	}
	return doc.Value, nil
}

// SaveActive upserts the directory key into the state document.
func (s *MongoStore) SaveActive(dir string) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	_, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": stateDocID},
		bson.M{"$set": bson.M{"value": dir}},
		options.Update().SetUpsert(true),
	)
	return err
}

// Ping verifies the Mongo connection.
func (s *MongoStore) Ping(ctx context.Context) error {
	return s.coll.Database().Client().Ping(ctx, readpref.Primary())
}
