package models

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrInvalidID is returned when a string cannot be turned back into an ObjectID.
var ErrInvalidID = errors.New("invalid id format")

// ID is the string form of a document's ObjectID. It is what the API exposes;
// in the database it is stored as a real ObjectID.
type ID string

// NewID returns a fresh ObjectID-backed ID.
func NewID() ID {
	return ID(primitive.NewObjectID().Hex())
}

func (id ID) String() string {
	return string(id)
}

// ObjectID converts the id back to the database representation.
func (id ID) ObjectID() (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(string(id))
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidID, string(id))
	}
	return oid, nil
}

// Valid reports whether the id is a well-formed ObjectID hex string.
func (id ID) Valid() bool {
	return primitive.IsValidObjectID(string(id))
}

// MarshalBSONValue writes the id as an ObjectID. An empty id is written as
// null, which is how a patch clears an optional reference.
func (id ID) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if id == "" {
		return bsontype.Null, nil, nil
	}
	oid, err := id.ObjectID()
	if err != nil {
		return 0, nil, err
	}
	return bson.MarshalValue(oid)
}

// UnmarshalBSONValue accepts both ObjectIDs and plain strings so documents
// written by older tooling still decode.
func (id *ID) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	rv := bson.RawValue{Type: t, Value: data}
	switch t {
	case bsontype.ObjectID:
		*id = ID(rv.ObjectID().Hex())
	case bsontype.String:
		*id = ID(rv.StringValue())
	case bsontype.Null, bsontype.Undefined:
		*id = ""
	default:
		return fmt.Errorf("cannot decode %s into models.ID", t)
	}
	return nil
}
