package domain

import (
	"bytes"
	"encoding/json"
)

// Optional is a tri-state field: absent, explicitly null, or a value.
// The zero value is absent.
type Optional[T any] struct {
	set   bool
	null  bool
	value T
}

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{set: true, value: v}
}

// Null returns an Optional that was explicitly set to null.
func Null[T any]() Optional[T] {
	return Optional[T]{set: true, null: true}
}

// Present reports whether the field appeared in the input, null or not.
func (o Optional[T]) Present() bool { return o.set }

// IsNull reports whether the field was explicitly null.
func (o Optional[T]) IsNull() bool { return o.set && o.null }

// Get returns the value and true only when a non-null value is present.
func (o Optional[T]) Get() (T, bool) {
	if !o.set || o.null {
		var zero T
		return zero, false
	}
	return o.value, true
}

// UnmarshalJSON is only invoked by encoding/json when the key is present,
// which is what separates absent from null.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.null = true
		var zero T
		o.value = zero
		return nil
	}
	o.null = false
	return json.Unmarshal(data, &o.value)
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.set || o.null {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}
