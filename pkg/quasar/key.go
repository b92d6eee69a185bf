package quasar

import (
	"fmt"
	"reflect"
)

// TypedKey identifies a state slot, a binding or an observer edge.
// Two keys are equal iff both the type and the name match.
type TypedKey struct {
	Type reflect.Type
	Name string
}

// KeyOf returns the key for a value of type T stored under name.
func KeyOf[T any](name string) TypedKey {
	return TypedKey{Type: reflect.TypeFor[T](), Name: name}
}

// String returns "type:name".
func (k TypedKey) String() string {
	if k.Type == nil {
		return "<nil>:" + k.Name
	}
	return fmt.Sprintf("%s:%s", k.Type, k.Name)
}
