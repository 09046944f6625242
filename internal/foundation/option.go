package foundation

import (
	"encoding/json"
	"fmt"
)

// Option represents a value that may or may not be present.
// Pager links (previous/next page numbers and paths) use it instead of
// nullable pointers so absence is explicit at every call site.
type Option[T any] struct {
	value   T
	present bool
}

// Some creates an Option with a value.
func Some[T any](value T) Option[T] {
	return Option[T]{
		value:   value,
		present: true,
	}
}

// None creates an empty Option.
func None[T any]() Option[T] {
	return Option[T]{}
}

// IsSome returns true if the Option contains a value.
func (o Option[T]) IsSome() bool {
	return o.present
}

// IsNone returns true if the Option is empty.
func (o Option[T]) IsNone() bool {
	return !o.present
}

// Unwrap returns the value if present, panics if None.
// Use this only when you're certain the Option contains a value.
func (o Option[T]) Unwrap() T {
	if !o.present {
		panic("called Unwrap on None option")
	}
	return o.value
}

// UnwrapOr returns the value if present, otherwise returns the fallback.
func (o Option[T]) UnwrapOr(fallback T) T {
	if o.present {
		return o.value
	}
	return fallback
}

// Get returns the value and whether it was present.
func (o Option[T]) Get() (T, bool) {
	return o.value, o.present
}

// MapOption transforms an Option[T] to Option[U] using the given function.
// If the Option is None, it returns None[U].
func MapOption[T, U any](o Option[T], fn func(T) U) Option[U] {
	if o.present {
		return Some(fn(o.value))
	}
	return None[U]()
}

// FlatMapOption transforms an Option[T] to Option[U] using a function that returns Option[U].
// This prevents Option[Option[U]].
func FlatMapOption[T, U any](o Option[T], fn func(T) Option[U]) Option[U] {
	if o.present {
		return fn(o.value)
	}
	return None[U]()
}

// ToPointer returns a pointer to the value if present, nil if None.
func (o Option[T]) ToPointer() *T {
	if o.present {
		return &o.value
	}
	return nil
}

// FromPointer creates an Option from a pointer.
// Returns Some(value) if pointer is non-nil, None if nil.
func FromPointer[T any](ptr *T) Option[T] {
	if ptr != nil {
		return Some(*ptr)
	}
	return None[T]()
}

// IsZero reports None so `omitempty` drops absent values in YAML output.
func (o Option[T]) IsZero() bool {
	return !o.present
}

// MarshalJSON encodes the value, or null when absent.
func (o Option[T]) MarshalJSON() ([]byte, error) {
	if !o.present {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

// UnmarshalJSON decodes null as None and anything else as Some.
func (o *Option[T]) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*o = None[T]()
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = Some(v)
	return nil
}

// MarshalYAML encodes the value, or null when absent.
func (o Option[T]) MarshalYAML() (any, error) {
	if !o.present {
		return nil, nil
	}
	return o.value, nil
}

// String provides a string representation of the Option.
func (o Option[T]) String() string {
	if o.present {
		return fmt.Sprintf("Some(%v)", o.value)
	}
	return "None"
}
