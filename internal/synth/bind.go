package synth

import (
	"errors"
	"fmt"

	"opforge/internal/effect"
	"opforge/internal/family"
	"opforge/internal/overload"
)

// Sentinel errors for the binding layer.
var (
	// ErrMissingImpl indicates a required primitive implementation was not supplied.
	ErrMissingImpl = errors.New("synth: missing primitive implementation")
	// ErrPersistentOperand indicates a step operator was applied to a persistent operand.
	ErrPersistentOperand = errors.New("synth: step operand must be disposable")
	// ErrBadSpec indicates a bind constructor received a family of the wrong kind or form.
	ErrBadSpec = errors.New("synth: family does not match bind form")
)

// Primitive implementation shapes. Every implementation returns an
// error slot regardless of its declared effect attribute; a CannotFail
// attribute is the static claim that the slot stays nil.
type (
	// CombineFunc is a compound-combine primitive: host op= other.
	CombineFunc[T, U any] func(host *T, other U) error
	// CopyFunc is the copy constructor.
	CopyFunc[T any] func(T) (T, error)
	// ConvertFunc is a converting constructor from a foreign type.
	ConvertFunc[T, U any] func(U) (T, error)
	// TestFunc is a comparison primitive (equality or ordering).
	TestFunc[T any] func(T, T) (bool, error)
	// StepFunc is a mutating pre-step primitive.
	StepFunc[T any] func(*T) error
)

// Binary bundles the implementations a compound family requires.
type Binary[T, U any] struct {
	Combine     CombineFunc[T, U]
	CombineAttr effect.Attr
	Copy        CopyFunc[T]
	CopyAttr    effect.Attr
}

// ForwardOp is a bound Host-op-Other derived operator.
type ForwardOp[T, U any] struct {
	sig     family.Signature
	eff     effect.Attr
	combine CombineFunc[T, U]
	copyT   CopyFunc[T]
	// reuseRight is present only on commutative same-type operators;
	// it mutates the host-typed right operand and returns its storage.
	reuseRight func(T, *U) (*T, error)
}

// Sig returns the operator's signature.
func (o *ForwardOp[T, U]) Sig() family.Signature { return o.sig }

// Effect returns the propagated failure attribute.
func (o *ForwardOp[T, U]) Effect() effect.Attr { return o.eff }

// Apply evaluates the operator for one pair of call-site operands,
// selecting the strategy from their access modes.
func (o *ForwardOp[T, U]) Apply(l Value[T], r Value[U]) (Value[T], error) {
	switch overload.Select(o.reuseRight != nil, l.mode, r.mode) {
	case overload.ReuseLeft:
		if err := o.combine(l.ref, *r.ref); err != nil {
			return Value[T]{}, err
		}
		return l, nil
	case overload.ReuseRight:
		res, err := o.reuseRight(*l.ref, r.ref)
		if err != nil {
			return Value[T]{}, err
		}
		return owned(res), nil
	default: // CopyLeft
		fresh, err := o.copyT(*l.ref)
		if err != nil {
			return Value[T]{}, err
		}
		if err := o.combine(&fresh, *r.ref); err != nil {
			return Value[T]{}, err
		}
		return owned(&fresh), nil
	}
}

// BindForward binds the Host-op-Other operator of a two-type compound
// family. The right operand is foreign, so the symmetric reuse rule
// never applies; use BindForwardSame for single-type families.
func BindForward[T, U any](spec family.Spec, p Binary[T, U]) (*ForwardOp[T, U], error) {
	if spec.Kind != family.KindCompound || spec.Form == family.FormLeft {
		return nil, fmt.Errorf("%w: %s", ErrBadSpec, spec.Name)
	}
	if p.Combine == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingImpl,
			family.Primitive{Kind: family.PrimCompound, Op: spec.Op, Host: spec.Host, Other: spec.Other}.Key())
	}
	if p.Copy == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingImpl,
			family.Primitive{Kind: family.PrimCopy, Host: spec.Host}.Key())
	}
	return &ForwardOp[T, U]{
		sig:     family.Signature{Op: spec.Op, Left: spec.Host, Right: spec.Other},
		eff:     effect.Propagate(p.CombineAttr, p.CopyAttr),
		combine: p.Combine,
		copyT:   p.Copy,
	}, nil
}

// BindForwardSame binds the single-type form. A commutative family
// additionally gains the reuse-right strategy: both operands are
// host-typed, so a disposable right may carry the result.
func BindForwardSame[T any](spec family.Spec, p Binary[T, T]) (*ForwardOp[T, T], error) {
	op, err := BindForward(spec, p)
	if err != nil {
		return nil, err
	}
	if spec.Form == family.FormCommutative && spec.SameType() {
		combine := p.Combine
		op.reuseRight = func(l T, r *T) (*T, error) {
			if err := combine(r, l); err != nil {
				return nil, err
			}
			return r, nil
		}
	}
	return op, nil
}

// MirroredOp is the Other-op-Host operator of a commutative two-type
// family: the host operand sits on the right and the call normalizes
// onto it.
type MirroredOp[T, U any] struct {
	sig     family.Signature
	eff     effect.Attr
	combine CombineFunc[T, U]
	copyT   CopyFunc[T]
}

func (o *MirroredOp[T, U]) Sig() family.Signature { return o.sig }
func (o *MirroredOp[T, U]) Effect() effect.Attr   { return o.eff }

// Apply evaluates Other op Host. Only the host-typed right operand is a
// reuse candidate.
func (o *MirroredOp[T, U]) Apply(l Value[U], r Value[T]) (Value[T], error) {
	switch overload.SelectMirrored(l.mode, r.mode) {
	case overload.ReuseRight:
		if err := o.combine(r.ref, *l.ref); err != nil {
			return Value[T]{}, err
		}
		return r, nil
	default: // CopyRight
		fresh, err := o.copyT(*r.ref)
		if err != nil {
			return Value[T]{}, err
		}
		if err := o.combine(&fresh, *l.ref); err != nil {
			return Value[T]{}, err
		}
		return owned(&fresh), nil
	}
}

// BindMirrored binds the reversed operator of a commutative two-type
// family from the same primitives as its forward counterpart.
func BindMirrored[T, U any](spec family.Spec, p Binary[T, U]) (*MirroredOp[T, U], error) {
	if spec.Kind != family.KindCompound || spec.Form != family.FormCommutative || spec.SameType() {
		return nil, fmt.Errorf("%w: %s", ErrBadSpec, spec.Name)
	}
	if p.Combine == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingImpl,
			family.Primitive{Kind: family.PrimCompound, Op: spec.Op, Host: spec.Host, Other: spec.Other}.Key())
	}
	if p.Copy == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingImpl,
			family.Primitive{Kind: family.PrimCopy, Host: spec.Host}.Key())
	}
	return &MirroredOp[T, U]{
		sig:     family.Signature{Op: spec.Op, Left: spec.Other, Right: spec.Host},
		eff:     effect.Propagate(p.CombineAttr, p.CopyAttr),
		combine: p.Combine,
		copyT:   p.Copy,
	}, nil
}

// BridgeOp is the Other-op-Host operator of a _left family: the foreign
// left operand is materialized as a host through the converting
// constructor, then the host's own compound primitive finishes the job.
// The conversion yields a fresh disposable host, so no further copy is
// ever made.
type BridgeOp[T, U any] struct {
	sig     family.Signature
	eff     effect.Attr
	convert ConvertFunc[T, U]
	combine CombineFunc[T, T]
}

func (o *BridgeOp[T, U]) Sig() family.Signature { return o.sig }
func (o *BridgeOp[T, U]) Effect() effect.Attr   { return o.eff }

// Apply evaluates Other op Host via the conversion bridge.
func (o *BridgeOp[T, U]) Apply(l Value[U], r Value[T]) (Value[T], error) {
	host, err := o.convert(*l.ref)
	if err != nil {
		return Value[T]{}, err
	}
	if err := o.combine(&host, *r.ref); err != nil {
		return Value[T]{}, err
	}
	return owned(&host), nil
}

// Bridge bundles the implementations a _left family requires.
type Bridge[T, U any] struct {
	Convert     ConvertFunc[T, U] // T(U)
	ConvertAttr effect.Attr
	Combine     CombineFunc[T, T] // T op= T
	CombineAttr effect.Attr
}

// BindBridge binds the reversed operator of a _left family.
func BindBridge[T, U any](spec family.Spec, p Bridge[T, U]) (*BridgeOp[T, U], error) {
	if spec.Kind != family.KindCompound || spec.Form != family.FormLeft {
		return nil, fmt.Errorf("%w: %s", ErrBadSpec, spec.Name)
	}
	if p.Convert == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingImpl,
			family.Primitive{Kind: family.PrimConvert, Host: spec.Host, Other: spec.Other}.Key())
	}
	if p.Combine == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingImpl,
			family.Primitive{Kind: family.PrimCompound, Op: spec.Op, Host: spec.Host, Other: spec.Host}.Key())
	}
	return &BridgeOp[T, U]{
		sig:     family.Signature{Op: spec.Op, Left: spec.Other, Right: spec.Host},
		eff:     effect.Propagate(p.ConvertAttr, p.CombineAttr),
		convert: p.Convert,
		combine: p.Combine,
	}, nil
}
