// Package models holds the documents stored by the site and the patch types
// used to update them.
package models

// Defaulter is implemented by entities that fill in default field values
// before they are first persisted.
type Defaulter interface {
	ApplyDefaults()
}
