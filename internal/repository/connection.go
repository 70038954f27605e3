package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoOptions describes how the cart and user stores reach MongoDB.
// Zero values fall back to the driver defaults, except the timeouts below.
type MongoOptions struct {
	URI              string
	Database         string
	MaxPoolSize      uint64
	MinPoolSize      uint64
	ConnectTimeout   time.Duration
	SelectionTimeout time.Duration
}

const (
	defaultConnectTimeout   = 10 * time.Second
	defaultSelectionTimeout = 5 * time.Second
)

func (o MongoOptions) clientOptions() (*options.ClientOptions, error) {
	if o.URI == "" || o.Database == "" {
		return nil, errors.New("mongo uri and database are required")
	}
	if o.MaxPoolSize > 0 && o.MinPoolSize > o.MaxPoolSize {
		return nil, fmt.Errorf("mongo min pool size %d exceeds max %d", o.MinPoolSize, o.MaxPoolSize)
	}

	connectTimeout, selectionTimeout := o.ConnectTimeout, o.SelectionTimeout
	if connectTimeout <= 0 {
		connectTimeout = defaultConnectTimeout
	}
	if selectionTimeout <= 0 {
		selectionTimeout = defaultSelectionTimeout
	}

	opts := options.Client().
		ApplyURI(o.URI).
		SetConnectTimeout(connectTimeout).
		SetServerSelectionTimeout(selectionTimeout).
		SetMinPoolSize(o.MinPoolSize)
	if o.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(o.MaxPoolSize)
	}
	return opts, nil
}

// ConnectMongoDB connects and pings before handing back the database, so a
// bad address fails at startup rather than on the first cart request.
func ConnectMongoDB(ctx context.Context, o MongoOptions) (*mongo.Database, error) {
	clientOpts, err := o.clientOptions()
	if err != nil {
		return nil, err
	}

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return client.Database(o.Database), nil
}
