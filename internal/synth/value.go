package synth

import "opforge/internal/operand"

// Value wraps one call-site operand with its access mode. Persistent
// values are only read; Disposable values may be mutated in place and
// their storage reused for the result.
type Value[T any] struct {
	ref  *T
	mode operand.AccessMode
}

// Persist wraps an operand that must not be consumed.
func Persist[T any](v *T) Value[T] {
	return Value[T]{ref: v, mode: operand.Persistent}
}

// Dispose wraps an operand whose storage may be reused.
func Dispose[T any](v *T) Value[T] {
	return Value[T]{ref: v, mode: operand.Disposable}
}

// owned wraps a freshly constructed result; fresh results are always
// disposable by their new owner.
func owned[T any](v *T) Value[T] {
	return Value[T]{ref: v, mode: operand.Disposable}
}

// Get returns the wrapped value.
func (v Value[T]) Get() T { return *v.ref }

// Ref returns the wrapped storage.
func (v Value[T]) Ref() *T { return v.ref }

// Mode returns the operand's access mode.
func (v Value[T]) Mode() operand.AccessMode { return v.mode }

// Shares reports whether two values occupy the same storage; tests use
// it to observe the reuse property.
func (v Value[T]) Shares(o Value[T]) bool { return v.ref == o.ref }
