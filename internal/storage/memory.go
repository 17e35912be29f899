package storage

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryDriver keeps collections in process. It understands the same filters,
// sorts and unique constraints the handlers rely on from MongoDB and is used
// for local development and tests.
type MemoryDriver struct {
	mu          sync.Mutex
	collections map[string]*memoryCollection
}

func NewMemoryDriver() *MemoryDriver {
	return &MemoryDriver{collections: make(map[string]*memoryCollection)}
}

func (d *MemoryDriver) Connect(context.Context) error { return nil }
func (d *MemoryDriver) Close(context.Context) error   { return nil }
func (d *MemoryDriver) Ping(context.Context) error    { return nil }

func (d *MemoryDriver) Collection(name string) Documents {
	d.mu.Lock()
	defer d.mu.Unlock()

	c, ok := d.collections[name]
	if !ok {
		c = &memoryCollection{docs: make(map[primitive.ObjectID]bson.Raw)}
		d.collections[name] = c
	}
	return c
}

type memoryCollection struct {
	mu     sync.RWMutex
	order  []primitive.ObjectID // insertion order, the natural order of the collection
	docs   map[primitive.ObjectID]bson.Raw
	unique []string
}

func (c *memoryCollection) FindOne(ctx context.Context, filter bson.M) (bson.Raw, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, id := range c.order {
		ok, err := matches(c.docs[id], filter)
		if err != nil {
			return nil, err
		}
		if ok {
			return c.docs[id], nil
		}
	}
	return nil, ErrNotFound
}

func (c *memoryCollection) Find(ctx context.Context, filter bson.M, sortBy bson.D) ([]bson.Raw, error) {
	c.mu.RLock()
	out := make([]bson.Raw, 0, len(c.order))
	for _, id := range c.order {
		ok, err := matches(c.docs[id], filter)
		if err != nil {
			c.mu.RUnlock()
			return nil, err
		}
		if ok {
			out = append(out, c.docs[id])
		}
	}
	c.mu.RUnlock()

	if len(sortBy) > 0 {
		sort.SliceStable(out, func(i, j int) bool {
			for _, key := range sortBy {
				cmp := compareValues(lookup(out[i], key.Key), lookup(out[j], key.Key))
				if cmp == 0 {
					continue
				}
				if direction(key.Value) < 0 {
					return cmp > 0
				}
				return cmp < 0
			}
			return false
		})
	}
	return out, nil
}

func (c *memoryCollection) Insert(ctx context.Context, doc bson.Raw) error {
	id, ok := doc.Lookup("_id").ObjectIDOK()
	if !ok {
		return fmt.Errorf("memory insert: document has no ObjectID _id")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.docs[id]; exists {
		return ErrDuplicate
	}
	if err := c.checkUnique(id, doc); err != nil {
		return err
	}
	c.docs[id] = doc
	c.order = append(c.order, id)
	return nil
}

func (c *memoryCollection) Patch(ctx context.Context, id primitive.ObjectID, set bson.M) (bson.Raw, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	current, ok := c.docs[id]
	if !ok {
		return nil, ErrNotFound
	}
	fields := bson.M{}
	if err := bson.Unmarshal(current, &fields); err != nil {
		return nil, err
	}
	for k, v := range set {
		fields[k] = v
	}
	updated, err := bson.Marshal(fields)
	if err != nil {
		return nil, err
	}
	if err := c.checkUnique(id, updated); err != nil {
		return nil, err
	}
	c.docs[id] = updated
	return updated, nil
}

func (c *memoryCollection) Increment(ctx context.Context, id primitive.ObjectID, field string, delta int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	current, ok := c.docs[id]
	if !ok {
		return ErrNotFound
	}
	fields := bson.M{}
	if err := bson.Unmarshal(current, &fields); err != nil {
		return err
	}
	switch v := fields[field].(type) {
	case nil:
		fields[field] = int32(delta)
	case int32:
		fields[field] = v + int32(delta)
	case int64:
		fields[field] = v + int64(delta)
	case float64:
		fields[field] = v + float64(delta)
	default:
		return fmt.Errorf("memory increment: field %q is %T, not a number", field, v)
	}
	updated, err := bson.Marshal(fields)
	if err != nil {
		return err
	}
	c.docs[id] = updated
	return nil
}

func (c *memoryCollection) DeleteOne(ctx context.Context, id primitive.ObjectID) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.docs[id]; !ok {
		return false, nil
	}
	c.remove(id)
	return true, nil
}

func (c *memoryCollection) DeleteMany(ctx context.Context, filter bson.M) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var doomed []primitive.ObjectID
	for _, id := range c.order {
		ok, err := matches(c.docs[id], filter)
		if err != nil {
			return 0, err
		}
		if ok {
			doomed = append(doomed, id)
		}
	}
	for _, id := range doomed {
		c.remove(id)
	}
	return int64(len(doomed)), nil
}

func (c *memoryCollection) Count(ctx context.Context, filter bson.M) (int64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var n int64
	for _, id := range c.order {
		ok, err := matches(c.docs[id], filter)
		if err != nil {
			return 0, err
		}
		if ok {
			n++
		}
	}
	return n, nil
}

func (c *memoryCollection) EnsureUnique(ctx context.Context, field string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, f := range c.unique {
		if f == field {
			return nil
		}
	}
	c.unique = append(c.unique, field)
	return nil
}

// remove must be called with the write lock held.
func (c *memoryCollection) remove(id primitive.ObjectID) {
	delete(c.docs, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// checkUnique must be called with the write lock held.
func (c *memoryCollection) checkUnique(self primitive.ObjectID, doc bson.Raw) error {
	for _, field := range c.unique {
		candidate := lookup(doc, field)
		if candidate.Type == 0 {
			continue
		}
		for id, other := range c.docs {
			if id == self {
				continue
			}
			if equalValues(candidate, lookup(other, field)) {
				return fmt.Errorf("%w: %s", ErrDuplicate, field)
			}
		}
	}
	return nil
}

func lookup(doc bson.Raw, field string) bson.RawValue {
	rv, err := doc.LookupErr(strings.Split(field, ".")...)
	if err != nil {
		return bson.RawValue{}
	}
	return rv
}

func matches(doc bson.Raw, filter bson.M) (bool, error) {
	for field, want := range filter {
		got := lookup(doc, field)

		if ops, ok := want.(bson.M); ok {
			for op, arg := range ops {
				target, err := rawValue(arg)
				if err != nil {
					return false, err
				}
				ok, err := compareOp(op, got, target)
				if err != nil || !ok {
					return false, err
				}
			}
			continue
		}

		target, err := rawValue(want)
		if err != nil {
			return false, err
		}
		if !equalValues(got, target) {
			return false, nil
		}
	}
	return true, nil
}

func compareOp(op string, got, target bson.RawValue) (bool, error) {
	switch op {
	case "$ne":
		return !equalValues(got, target), nil
	case "$in":
		arr, ok := target.ArrayOK()
		if !ok {
			return false, fmt.Errorf("memory driver: $in needs an array, got %s", target.Type)
		}
		values, err := arr.Values()
		if err != nil {
			return false, err
		}
		for _, v := range values {
			if equalValues(got, v) {
				return true, nil
			}
		}
		return false, nil
	}
	if got.Type == 0 {
		return false, nil
	}
	cmp := compareValues(got, target)
	switch op {
	case "$gt":
		return cmp > 0, nil
	case "$gte":
		return cmp >= 0, nil
	case "$lt":
		return cmp < 0, nil
	case "$lte":
		return cmp <= 0, nil
	default:
		return false, fmt.Errorf("memory driver: unsupported operator %s", op)
	}
}

func rawValue(v any) (bson.RawValue, error) {
	t, data, err := bson.MarshalValue(v)
	if err != nil {
		return bson.RawValue{}, err
	}
	return bson.RawValue{Type: t, Value: data}, nil
}

func equalValues(a, b bson.RawValue) bool {
	if isNumber(a.Type) && isNumber(b.Type) {
		return number(a) == number(b)
	}
	return a.Type == b.Type && bytes.Equal(a.Value, b.Value)
}

// compareValues orders two values the way the sorts in this package need:
// missing values first, then numbers, strings, dates and ids by value.
func compareValues(a, b bson.RawValue) int {
	switch {
	case a.Type == 0 && b.Type == 0:
		return 0
	case a.Type == 0:
		return -1
	case b.Type == 0:
		return 1
	case isNumber(a.Type) && isNumber(b.Type):
		return compareOrdered(number(a), number(b))
	case a.Type != b.Type:
		return compareOrdered(a.Type, b.Type)
	}

	switch a.Type {
	case bsontype.String:
		return strings.Compare(a.StringValue(), b.StringValue())
	case bsontype.DateTime:
		return compareOrdered(a.DateTime(), b.DateTime())
	case bsontype.Boolean:
		return compareOrdered(boolRank(a.Boolean()), boolRank(b.Boolean()))
	default:
		return bytes.Compare(a.Value, b.Value)
	}
}

func isNumber(t bsontype.Type) bool {
	return t == bsontype.Int32 || t == bsontype.Int64 || t == bsontype.Double
}

func number(v bson.RawValue) float64 {
	switch v.Type {
	case bsontype.Int32:
		return float64(v.Int32())
	case bsontype.Int64:
		return float64(v.Int64())
	default:
		return v.Double()
	}
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}

func compareOrdered[T int | int64 | float64 | bsontype.Type](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func direction(v any) int {
	switch d := v.(type) {
	case int:
		return d
	case int32:
		return int(d)
	case int64:
		return int(d)
	default:
		return 1
	}
}
