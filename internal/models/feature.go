package models

import (
	"bytes"
	"encoding/json"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// Feature is a bullet on a service or subscription card. Older documents store
// features as bare strings, newer ones as {name, value}; both decode into this
// shape and it is always written back as an object.
type Feature struct {
	Name  string `bson:"name" json:"name"`
	Value string `bson:"value,omitempty" json:"value,omitempty"`
}

type featureDoc struct {
	Name  string `bson:"name"`
	Value string `bson:"value,omitempty"`
}

func (f *Feature) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	rv := bson.RawValue{Type: t, Value: data}
	switch t {
	case bsontype.String:
		*f = Feature{Name: rv.StringValue()}
	case bsontype.EmbeddedDocument:
		var doc featureDoc
		if err := rv.Unmarshal(&doc); err != nil {
			return fmt.Errorf("decoding feature: %w", err)
		}
		*f = Feature{Name: doc.Name, Value: doc.Value}
	case bsontype.Null, bsontype.Undefined:
		*f = Feature{}
	default:
		return fmt.Errorf("cannot decode %s into models.Feature", t)
	}
	return nil
}

func (f *Feature) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		*f = Feature{Name: name}
		return nil
	}
	var doc struct {
		Name  string `json:"name"`
		Value string `json:"value"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("feature must be a string or {name, value}: %w", err)
	}
	*f = Feature{Name: doc.Name, Value: doc.Value}
	return nil
}
