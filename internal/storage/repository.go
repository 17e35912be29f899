package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/greenleaf/garden-api/internal/models"
)

// Repository is CRUD over one collection of T documents.
//
// Every method logs database failures with the collection and id before
// returning them wrapped; ErrNotFound is returned bare so callers can map it
// straight to a 404.
type Repository[T any] struct {
	name   string
	docs   Documents
	sort   bson.D
	logger *slog.Logger
	now    func() time.Time
}

// NewRepository binds T to a collection. sort is the collection's fixed
// listing order.
func NewRepository[T any](driver Driver, name string, sort bson.D, logger *slog.Logger) *Repository[T] {
	return &Repository[T]{
		name:   name,
		docs:   driver.Collection(name),
		sort:   sort,
		logger: logger.With("collection", name),
		now:    func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	}
}

func (r *Repository[T]) Name() string {
	return r.name
}

// Get fetches one document by id.
func (r *Repository[T]) Get(ctx context.Context, id models.ID) (*T, error) {
	oid, ok := r.objectID(ctx, "get", id)
	if !ok {
		return nil, ErrNotFound
	}
	raw, err := r.docs.FindOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return nil, r.fail(ctx, "get", id, err)
	}
	return r.decode(raw)
}

// List returns every document in the collection's listing order.
func (r *Repository[T]) List(ctx context.Context) ([]T, error) {
	return r.Find(ctx, nil)
}

// Find returns the documents matching filter in the collection's listing order.
// The result is never nil.
func (r *Repository[T]) Find(ctx context.Context, filter bson.M) ([]T, error) {
	raws, err := r.docs.Find(ctx, filter, r.sort)
	if err != nil {
		return nil, r.fail(ctx, "find", "", err)
	}
	out := make([]T, 0, len(raws))
	for _, raw := range raws {
		v, err := r.decode(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	return out, nil
}

// FindOne returns the first document matching filter.
func (r *Repository[T]) FindOne(ctx context.Context, filter bson.M) (*T, error) {
	raw, err := r.docs.FindOne(ctx, filter)
	if err != nil {
		return nil, r.fail(ctx, "find one", "", err)
	}
	return r.decode(raw)
}

// Create persists doc under a fresh id and returns the stored document,
// defaults and timestamps included.
func (r *Repository[T]) Create(ctx context.Context, doc *T) (*T, error) {
	if d, ok := any(doc).(models.Defaulter); ok {
		d.ApplyDefaults()
	}

	fields, err := toFields(doc)
	if err != nil {
		r.logger.WarnContext(ctx, "rejecting document with invalid reference", "error", err)
		return nil, err
	}

	now := r.now()
	oid := primitive.NewObjectID()
	fields["_id"] = oid
	fields["createdAt"] = now
	fields["updatedAt"] = now

	raw, err := bson.Marshal(fields)
	if err != nil {
		return nil, r.fail(ctx, "create", "", err)
	}
	if err := r.docs.Insert(ctx, raw); err != nil {
		return nil, r.fail(ctx, "create", models.ID(oid.Hex()), err)
	}
	return r.decode(raw)
}

// Update merges the non-nil fields of patch onto the stored document and
// returns the result. Fields the patch leaves nil are untouched.
func (r *Repository[T]) Update(ctx context.Context, id models.ID, patch any) (*T, error) {
	oid, ok := r.objectID(ctx, "update", id)
	if !ok {
		return nil, ErrNotFound
	}

	set := bson.M{}
	if patch != nil {
		fields, err := toFields(patch)
		if err != nil {
			r.logger.WarnContext(ctx, "rejecting patch with invalid reference", "id", id, "error", err)
			return nil, err
		}
		set = fields
	}
	delete(set, "_id")
	delete(set, "createdAt")
	set["updatedAt"] = r.now()

	raw, err := r.docs.Patch(ctx, oid, set)
	if err != nil {
		return nil, r.fail(ctx, "update", id, err)
	}
	return r.decode(raw)
}

// Delete removes the document and reports whether one was there.
func (r *Repository[T]) Delete(ctx context.Context, id models.ID) (bool, error) {
	oid, ok := r.objectID(ctx, "delete", id)
	if !ok {
		return false, nil
	}
	deleted, err := r.docs.DeleteOne(ctx, oid)
	if err != nil {
		return false, r.fail(ctx, "delete", id, err)
	}
	return deleted, nil
}

// DeleteWhere removes every document matching filter.
func (r *Repository[T]) DeleteWhere(ctx context.Context, filter bson.M) (int64, error) {
	n, err := r.docs.DeleteMany(ctx, filter)
	if err != nil {
		return 0, r.fail(ctx, "delete many", "", err)
	}
	return n, nil
}

func (r *Repository[T]) Count(ctx context.Context, filter bson.M) (int64, error) {
	n, err := r.docs.Count(ctx, filter)
	if err != nil {
		return 0, r.fail(ctx, "count", "", err)
	}
	return n, nil
}

// Increment adds delta to a numeric field.
func (r *Repository[T]) Increment(ctx context.Context, id models.ID, field string, delta int) error {
	oid, ok := r.objectID(ctx, "increment", id)
	if !ok {
		return ErrNotFound
	}
	if err := r.docs.Increment(ctx, oid, field, delta); err != nil {
		return r.fail(ctx, "increment", id, err)
	}
	return nil
}

func (r *Repository[T]) objectID(ctx context.Context, op string, id models.ID) (primitive.ObjectID, bool) {
	oid, err := id.ObjectID()
	if err != nil {
		r.logger.WarnContext(ctx, "invalid id", "op", op, "id", id)
		return primitive.NilObjectID, false
	}
	return oid, true
}

func (r *Repository[T]) fail(ctx context.Context, op string, id models.ID, err error) error {
	if errors.Is(err, ErrNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		r.logger.InfoContext(ctx, "duplicate key", "op", op, "id", id)
		return fmt.Errorf("%s %s: %w", r.name, op, err)
	}
	r.logger.ErrorContext(ctx, "storage operation failed", "op", op, "id", id, "error", err)
	return fmt.Errorf("%s %s: %w", r.name, op, err)
}

func (r *Repository[T]) decode(raw bson.Raw) (*T, error) {
	var v T
	if err := bson.Unmarshal(raw, &v); err != nil {
		r.logger.Error("decoding document", "error", err)
		return nil, fmt.Errorf("%s decode: %w", r.name, err)
	}
	return &v, nil
}

// toFields flattens a struct into the top-level fields it would store. Any
// encoding failure here comes from an id reference that is not an ObjectID.
func toFields(v any) (bson.M, error) {
	data, err := bson.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidID, err)
	}
	fields := bson.M{}
	if err := bson.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidID, err)
	}
	return fields, nil
}
