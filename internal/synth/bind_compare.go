package synth

import (
	"fmt"

	"opforge/internal/effect"
	"opforge/internal/family"
)

// Predicate is one bound comparison operator. Comparisons consume
// nothing, so operands are plain values.
type Predicate[T any] struct {
	sig family.Signature
	eff effect.Attr
	fn  TestFunc[T]
}

func (p *Predicate[T]) Sig() family.Signature { return p.sig }
func (p *Predicate[T]) Effect() effect.Attr   { return p.eff }

// Apply evaluates the comparison.
func (p *Predicate[T]) Apply(a, b T) (bool, error) { return p.fn(a, b) }

// BindEquality derives != from ==.
func BindEquality[T any](spec family.Spec, eq TestFunc[T], attr effect.Attr) (*Predicate[T], error) {
	if spec.Kind != family.KindEquality {
		return nil, fmt.Errorf("%w: %s", ErrBadSpec, spec.Name)
	}
	if eq == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingImpl,
			family.Primitive{Kind: family.PrimEqual, Host: spec.Host}.Key())
	}
	return &Predicate[T]{
		sig: family.Signature{Op: family.OpNe, Left: spec.Host, Right: spec.Host},
		eff: attr,
		fn: func(a, b T) (bool, error) {
			same, err := eq(a, b)
			return !same, err
		},
	}, nil
}

// BindOrdering derives >, <= and >= from < (a total ordering).
func BindOrdering[T any](spec family.Spec, less TestFunc[T], attr effect.Attr) ([]*Predicate[T], error) {
	if spec.Kind != family.KindOrdering {
		return nil, fmt.Errorf("%w: %s", ErrBadSpec, spec.Name)
	}
	if less == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingImpl,
			family.Primitive{Kind: family.PrimLess, Host: spec.Host}.Key())
	}
	t := spec.Host
	sig := func(op family.Op) family.Signature {
		return family.Signature{Op: op, Left: t, Right: t}
	}
	return []*Predicate[T]{
		{sig: sig(family.OpGt), eff: attr, fn: func(a, b T) (bool, error) { return less(b, a) }},
		{sig: sig(family.OpLe), eff: attr, fn: func(a, b T) (bool, error) {
			gt, err := less(b, a)
			return !gt, err
		}},
		{sig: sig(family.OpGe), eff: attr, fn: func(a, b T) (bool, error) {
			lt, err := less(a, b)
			return !lt, err
		}},
	}, nil
}

// BindEquivalence derives == from <: two values are equivalent when
// neither orders before the other.
func BindEquivalence[T any](spec family.Spec, less TestFunc[T], attr effect.Attr) (*Predicate[T], error) {
	if spec.Kind != family.KindEquivalence {
		return nil, fmt.Errorf("%w: %s", ErrBadSpec, spec.Name)
	}
	if less == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingImpl,
			family.Primitive{Kind: family.PrimLess, Host: spec.Host}.Key())
	}
	return &Predicate[T]{
		sig: family.Signature{Op: family.OpEq, Left: spec.Host, Right: spec.Host},
		eff: attr,
		fn: func(a, b T) (bool, error) {
			lt, err := less(a, b)
			if err != nil || lt {
				return false, err
			}
			gt, err := less(b, a)
			return !gt, err
		},
	}, nil
}

// BindPartialOrder derives >, <= and >= from < and ==. Unlike a total
// ordering, <= cannot be rewritten as !(b < a): incomparable pairs fail
// both tests, so the bounds are built from the two primitives directly.
func BindPartialOrder[T any](spec family.Spec, less TestFunc[T], lessAttr effect.Attr, eq TestFunc[T], eqAttr effect.Attr) ([]*Predicate[T], error) {
	if spec.Kind != family.KindPartialOrder {
		return nil, fmt.Errorf("%w: %s", ErrBadSpec, spec.Name)
	}
	if less == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingImpl,
			family.Primitive{Kind: family.PrimLess, Host: spec.Host}.Key())
	}
	if eq == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingImpl,
			family.Primitive{Kind: family.PrimEqual, Host: spec.Host}.Key())
	}
	t := spec.Host
	eff := effect.Propagate(lessAttr, eqAttr)
	sig := func(op family.Op) family.Signature {
		return family.Signature{Op: op, Left: t, Right: t}
	}
	orEqual := func(first TestFunc[T]) TestFunc[T] {
		return func(a, b T) (bool, error) {
			ok, err := first(a, b)
			if err != nil || ok {
				return ok, err
			}
			return eq(a, b)
		}
	}
	return []*Predicate[T]{
		{sig: sig(family.OpGt), eff: eff, fn: func(a, b T) (bool, error) { return less(b, a) }},
		{sig: sig(family.OpLe), eff: eff, fn: orEqual(less)},
		{sig: sig(family.OpGe), eff: eff, fn: orEqual(func(a, b T) (bool, error) { return less(b, a) })},
	}, nil
}
