// Package storage maps the site's documents onto a document database.
//
// A Driver hands out raw Documents collections; Repository turns those into
// typed CRUD over one entity kind and translates ObjectIDs to string ids on the
// way out. Store groups the repositories and owns the few operations that span
// more than one collection.
package storage

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/greenleaf/garden-api/internal/models"
)

var (
	// ErrNotFound means no document matched. Malformed ids are reported as
	// not found as well; they can never match anything.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate means a unique field already holds the value.
	ErrDuplicate = errors.New("duplicate key")

	// ErrInvalidID means a reference inside a document could not be converted to an ObjectID.
	ErrInvalidID = models.ErrInvalidID

	ErrNotConnected = errors.New("storage driver is not connected")
)

// Driver is a connection to a document database.
type Driver interface {
	Connect(ctx context.Context) error
	Close(ctx context.Context) error
	Ping(ctx context.Context) error
	Collection(name string) Documents
}

// Documents is a single collection of raw BSON documents.
//
// Filters are equality matches on fields; a value may also be a bson.M of
// $gt/$gte/$lt/$lte/$ne comparisons or an $in list.
type Documents interface {
	FindOne(ctx context.Context, filter bson.M) (bson.Raw, error)
	Find(ctx context.Context, filter bson.M, sort bson.D) ([]bson.Raw, error)
	Insert(ctx context.Context, doc bson.Raw) error
	Patch(ctx context.Context, id primitive.ObjectID, set bson.M) (bson.Raw, error)
	Increment(ctx context.Context, id primitive.ObjectID, field string, delta int) error
	DeleteOne(ctx context.Context, id primitive.ObjectID) (bool, error)
	DeleteMany(ctx context.Context, filter bson.M) (int64, error)
	Count(ctx context.Context, filter bson.M) (int64, error)
	EnsureUnique(ctx context.Context, field string) error
}
