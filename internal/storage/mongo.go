package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoDriver owns the process-wide MongoDB client. It is built once at
// startup, connected explicitly and closed on shutdown.
type MongoDriver struct {
	uri            string
	database       string
	connectTimeout time.Duration

	mu     sync.RWMutex
	client *mongo.Client
	db     *mongo.Database
}

func NewMongoDriver(uri, database string) *MongoDriver {
	return &MongoDriver{uri: uri, database: database, connectTimeout: 10 * time.Second}
}

func (d *MongoDriver) Connect(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, d.connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(d.uri))
	if err != nil {
		return fmt.Errorf("connecting to mongodb: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return fmt.Errorf("pinging mongodb: %w", err)
	}

	d.mu.Lock()
	d.client = client
	d.db = client.Database(d.database)
	d.mu.Unlock()
	return nil
}

func (d *MongoDriver) Close(ctx context.Context) error {
	d.mu.Lock()
	client := d.client
	d.client, d.db = nil, nil
	d.mu.Unlock()

	if client == nil {
		return nil
	}
	return client.Disconnect(ctx)
}

func (d *MongoDriver) Ping(ctx context.Context) error {
	d.mu.RLock()
	client := d.client
	d.mu.RUnlock()

	if client == nil {
		return ErrNotConnected
	}
	return client.Ping(ctx, readpref.Primary())
}

// Collection may be called before Connect; the handle resolves the
// underlying collection on each call.
func (d *MongoDriver) Collection(name string) Documents {
	return &mongoCollection{driver: d, name: name}
}

func (d *MongoDriver) collection(name string) (*mongo.Collection, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.db == nil {
		return nil, ErrNotConnected
	}
	return d.db.Collection(name), nil
}

type mongoCollection struct {
	driver *MongoDriver
	name   string
}

func (c *mongoCollection) FindOne(ctx context.Context, filter bson.M) (bson.Raw, error) {
	coll, err := c.driver.collection(c.name)
	if err != nil {
		return nil, err
	}
	raw, err := coll.FindOne(ctx, orEmpty(filter)).Raw()
	if err != nil {
		return nil, translate(err)
	}
	return raw, nil
}

func (c *mongoCollection) Find(ctx context.Context, filter bson.M, sort bson.D) ([]bson.Raw, error) {
	coll, err := c.driver.collection(c.name)
	if err != nil {
		return nil, err
	}

	findOptions := options.Find()
	if len(sort) > 0 {
		findOptions.SetSort(sort)
	}
	cursor, err := coll.Find(ctx, orEmpty(filter), findOptions)
	if err != nil {
		return nil, translate(err)
	}
	defer cursor.Close(ctx)

	var out []bson.Raw
	for cursor.Next(ctx) {
		// cursor.Current is reused between iterations
		out = append(out, append(bson.Raw(nil), cursor.Current...))
	}
	if err := cursor.Err(); err != nil {
		return nil, translate(err)
	}
	return out, nil
}

func (c *mongoCollection) Insert(ctx context.Context, doc bson.Raw) error {
	coll, err := c.driver.collection(c.name)
	if err != nil {
		return err
	}
	if _, err := coll.InsertOne(ctx, doc); err != nil {
		return translate(err)
	}
	return nil
}

func (c *mongoCollection) Patch(ctx context.Context, id primitive.ObjectID, set bson.M) (bson.Raw, error) {
	coll, err := c.driver.collection(c.name)
	if err != nil {
		return nil, err
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	raw, err := coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Raw()
	if err != nil {
		return nil, translate(err)
	}
	return raw, nil
}

func (c *mongoCollection) Increment(ctx context.Context, id primitive.ObjectID, field string, delta int) error {
	coll, err := c.driver.collection(c.name)
	if err != nil {
		return err
	}
	result, err := coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{field: delta}})
	if err != nil {
		return translate(err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (c *mongoCollection) DeleteOne(ctx context.Context, id primitive.ObjectID) (bool, error) {
	coll, err := c.driver.collection(c.name)
	if err != nil {
		return false, err
	}
	result, err := coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, translate(err)
	}
	return result.DeletedCount > 0, nil
}

func (c *mongoCollection) DeleteMany(ctx context.Context, filter bson.M) (int64, error) {
	coll, err := c.driver.collection(c.name)
	if err != nil {
		return 0, err
	}
	result, err := coll.DeleteMany(ctx, orEmpty(filter))
	if err != nil {
		return 0, translate(err)
	}
	return result.DeletedCount, nil
}

func (c *mongoCollection) Count(ctx context.Context, filter bson.M) (int64, error) {
	coll, err := c.driver.collection(c.name)
	if err != nil {
		return 0, err
	}
	n, err := coll.CountDocuments(ctx, orEmpty(filter))
	if err != nil {
		return 0, translate(err)
	}
	return n, nil
}

func (c *mongoCollection) EnsureUnique(ctx context.Context, field string) error {
	coll, err := c.driver.collection(c.name)
	if err != nil {
		return err
	}
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: field, Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("creating unique index on %s.%s: %w", c.name, field, err)
	}
	return nil
}

func orEmpty(filter bson.M) bson.M {
	if filter == nil {
		return bson.M{}
	}
	return filter
}

func translate(err error) error {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	default:
		return err
	}
}
