// db/mongo/mongo.go
package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Connect opens a Mongo/DocumentDB connection using the given URI and timeout.
// It performs a Ping to ensure the connection is usable before returning.
//
// The caller is responsible for calling client.Disconnect(...) when done.
func Connect(uri string, timeout time.Duration) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	clientOpts := options.Client().
		ApplyURI(uri).
		SetMinPoolSize(2).
		SetMaxPoolSize(50).
		SetMaxConnIdleTime(5 * time.Minute).
		SetServerSelectionTimeout(10 * time.Second)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		client.Disconnect(context.Background())
		return nil, err
	}

	return client, nil
}

// HealthCheck returns a health check function compatible with the health package.
func HealthCheck(client *mongo.Client) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		return client.Ping(ctx, readpref.Primary())
	}
}
