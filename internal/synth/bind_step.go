package synth

import (
	"fmt"

	"opforge/internal/effect"
	"opforge/internal/family"
	"opforge/internal/operand"
)

// StepOp is a bound unary step family (increment or decrement). The
// pre-form is the primitive itself: mutate, return the same operand.
// The post-form is the derived operator: snapshot, mutate, return the
// pre-mutation snapshot as a freshly owned value. The post-form can
// never reuse the operand's storage, because its documented value is
// the snapshot.
type StepOp[T any] struct {
	sig   family.Signature
	eff   effect.Attr
	step  StepFunc[T]
	copyT CopyFunc[T]
}

// Steps bundles the implementations a step family requires.
type Steps[T any] struct {
	Step     StepFunc[T] // ++T or --T
	StepAttr effect.Attr
	Copy     CopyFunc[T]
	CopyAttr effect.Attr
}

func (o *StepOp[T]) Sig() family.Signature { return o.sig }
func (o *StepOp[T]) Effect() effect.Attr   { return o.eff }

// Pre mutates the operand in place and returns its own storage. The
// operand must be disposable: a persistent operand cannot be stepped.
func (o *StepOp[T]) Pre(v Value[T]) (Value[T], error) {
	if v.mode != operand.Disposable {
		return Value[T]{}, ErrPersistentOperand
	}
	if err := o.step(v.ref); err != nil {
		return Value[T]{}, err
	}
	return v, nil
}

// Post snapshots the operand, mutates it, and returns the snapshot.
func (o *StepOp[T]) Post(v Value[T]) (T, error) {
	var zero T
	if v.mode != operand.Disposable {
		return zero, ErrPersistentOperand
	}
	snapshot, err := o.copyT(*v.ref)
	if err != nil {
		return zero, err
	}
	if err := o.step(v.ref); err != nil {
		return zero, err
	}
	return snapshot, nil
}

// BindStep binds a step family.
func BindStep[T any](spec family.Spec, p Steps[T]) (*StepOp[T], error) {
	if spec.Kind != family.KindStep {
		return nil, fmt.Errorf("%w: %s", ErrBadSpec, spec.Name)
	}
	if p.Step == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingImpl,
			family.Primitive{Kind: family.PrimStep, Op: spec.Op, Host: spec.Host}.Key())
	}
	if p.Copy == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingImpl,
			family.Primitive{Kind: family.PrimCopy, Host: spec.Host}.Key())
	}
	return &StepOp[T]{
		sig:   family.Signature{Op: spec.Op, Left: spec.Host},
		eff:   effect.Propagate(p.StepAttr, p.CopyAttr),
		step:  p.Step,
		copyT: p.Copy,
	}, nil
}
