// Package overload implements the overload selection algorithm: given
// a derived operator and the access modes of its operands at a call
// site, pick the implementation strategy that reuses a temporary
// instead of constructing a fresh value whenever that is sound.
package overload

import "opforge/internal/operand"

// Strategy is how one overload variant builds its result.
type Strategy uint8

const (
	StrategyInvalid Strategy = iota
	// ReuseLeft mutates the left operand in place through the compound
	// primitive and returns its storage.
	ReuseLeft
	// ReuseRight mutates the right operand in place, treating it as
	// host-equivalent. Sound only for commutative, host-typed rights.
	ReuseRight
	// CopyLeft copy-constructs a fresh host from the left operand,
	// then applies the compound primitive with the right operand.
	CopyLeft
	// CopyRight copy-constructs a fresh host from the host-typed right
	// operand of a mirrored commutative operator, then combines with
	// the left operand.
	CopyRight
	// ConvertLeft materializes the foreign left operand as a fresh
	// host through the converting constructor, then delegates to the
	// host's own compound primitive.
	ConvertLeft
	// MutateInPlace is the pre-form step: mutate and return the same
	// operand.
	MutateInPlace
	// SnapshotThenMutate is the post-form step: copy-construct the
	// snapshot, mutate the operand, return the snapshot.
	SnapshotThenMutate
)

func (s Strategy) String() string {
	switch s {
	case ReuseLeft:
		return "reuse-left"
	case ReuseRight:
		return "reuse-right"
	case CopyLeft:
		return "copy-left"
	case CopyRight:
		return "copy-right"
	case ConvertLeft:
		return "convert-left"
	case MutateInPlace:
		return "mutate-in-place"
	case SnapshotThenMutate:
		return "snapshot-then-mutate"
	}
	return "invalid"
}

// Ownership classifies the storage of a variant's result.
type Ownership uint8

const (
	// FreshValue results live in newly constructed storage.
	FreshValue Ownership = iota
	// ReusedLeft results occupy the left operand's storage.
	ReusedLeft
	// ReusedRight results occupy the right operand's storage.
	ReusedRight
)

func (o Ownership) String() string {
	switch o {
	case FreshValue:
		return "fresh"
	case ReusedLeft:
		return "reused-left"
	case ReusedRight:
		return "reused-right"
	}
	return "unknown"
}

// Result maps a strategy to the ownership of the value it produces.
func (s Strategy) Result() Ownership {
	switch s {
	case ReuseLeft, MutateInPlace:
		return ReusedLeft
	case ReuseRight:
		return ReusedRight
	default:
		return FreshValue
	}
}

// Allocates reports whether the strategy constructs a fresh host value
// beyond what the compound primitive itself performs.
func (s Strategy) Allocates() bool {
	switch s {
	case ReuseLeft, ReuseRight, MutateInPlace:
		return false
	default:
		return true
	}
}

// Select picks the strategy for a host-left value operator.
//
// reuseRight must be true only when the operation is commutative and
// the right operand is host-typed; it enables the symmetric reuse rule.
// A disposable left always wins: of two reusable operands, mutating the
// left is the cheaper candidate, and there is no finer cost model.
func Select(reuseRight bool, l, r operand.AccessMode) Strategy {
	if l == operand.Disposable {
		return ReuseLeft
	}
	if r == operand.Disposable && reuseRight {
		return ReuseRight
	}
	return CopyLeft
}

// SelectMirrored picks the strategy for the Other-op-Host operator of a
// commutative two-type family. The host operand sits on the right; the
// foreign left can never hold the result, so only the right side is a
// reuse candidate.
func SelectMirrored(l, r operand.AccessMode) Strategy {
	if r == operand.Disposable {
		return ReuseRight
	}
	return CopyRight
}
