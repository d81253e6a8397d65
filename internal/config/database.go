package config

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/atomic"

	"github.com/Kerhoff/CartoboT/internal/errs"
)

// Collection names in the document store.
const (
	UsersCollection         = "users"
	ShoppingListsCollection = "shopping_lists"
)

// Database holds the MongoDB connection and exposes the collections used by
// the repositories. Connections are pooled by the driver; Connect verifies
// liveness with a ping before the handle is considered usable.
type Database struct {
	cfg    *Config
	logger *logrus.Logger

	mu        sync.Mutex
	client    *mongo.Client
	db        *mongo.Database
	connected atomic.Bool
}

// NewDatabase creates an unconnected Database. Call Connect (or let the first
// repository operation reconnect lazily via EnsureConnected).
func NewDatabase(cfg *Config, logger *logrus.Logger) *Database {
	return &Database{cfg: cfg, logger: logger}
}

// Connect establishes the pooled client connection and pings the server.
// Calling Connect on a connected Database is a no-op.
func (d *Database) Connect(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.connected.Load() {
		return nil
	}

	opts := options.Client().
		ApplyURI(d.cfg.MongoURI).
		SetConnectTimeout(d.cfg.ConnectTimeout).
		SetServerSelectionTimeout(d.cfg.ServerSelectionTimeout).
		SetMaxPoolSize(d.cfg.MaxPoolSize).
		SetMinPoolSize(d.cfg.MinPoolSize)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return &errs.ConnectionError{Err: err}
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return &errs.ConnectionError{Timeout: mongo.IsTimeout(err), Err: err}
	}

	d.client = client
	d.db = client.Database(d.cfg.DBName)
	d.connected.Store(true)

	d.logger.Infof("Connected to MongoDB (db=%s)", d.cfg.DBName)
	return nil
}

// EnsureConnected lazily reconnects if the database is not currently
// connected. Repositories call this before every operation.
func (d *Database) EnsureConnected(ctx context.Context) error {
	if d.connected.Load() {
		return nil
	}
	return d.Connect(ctx)
}

// Close disconnects the client. Safe to call more than once.
func (d *Database) Close(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.client == nil {
		return nil
	}

	d.connected.Store(false)
	err := d.client.Disconnect(ctx)
	d.client = nil
	d.db = nil
	if err != nil {
		return fmt.Errorf("failed to disconnect from MongoDB: %w", err)
	}

	d.logger.Info("Disconnected from MongoDB")
	return nil
}

// EnsureIndexes creates the indexes the gateway semantics rely on. The unique
// index on users.external_id is what turns a concurrent get-or-create into a
// duplicate-key conflict instead of a second user record.
func (d *Database) EnsureIndexes(ctx context.Context) error {
	_, err := d.Users().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "external_id", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("external_id_unique"),
	})
	if err != nil {
		return fmt.Errorf("failed to create users index: %w", err)
	}

	_, err = d.ShoppingLists().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "owner_id", Value: 1}},
		Options: options.Index().SetName("owner_id_index"),
	})
	if err != nil {
		return fmt.Errorf("failed to create shopping lists index: %w", err)
	}

	d.logger.Info("Database indexes ensured")
	return nil
}

// Users returns the users collection.
func (d *Database) Users() *mongo.Collection {
	return d.db.Collection(UsersCollection)
}

// ShoppingLists returns the shopping lists collection.
func (d *Database) ShoppingLists() *mongo.Collection {
	return d.db.Collection(ShoppingListsCollection)
}
