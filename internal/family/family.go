// Package family holds the capability family rule table: for every
// named family, which primitive operations a type must declare and
// which derived operators the family provides in return. Both sides of
// the table derive purely from (rule kind, operator symbol, form,
// operand types) — a family instance carries no other state.
package family

// Signature identifies one derived operator: symbol plus operand type
// names. Right is empty for unary (step) operators.
type Signature struct {
	Op    Op
	Left  string
	Right string
}

func (s Signature) String() string {
	if s.Right == "" {
		// Post-form step: the snapshot-returning variant.
		return s.Left + s.Op.String()
	}
	return s.Left + " " + s.Op.String() + " " + s.Right
}

// Kind selects the rule used to expand a family into requirements and
// provisions.
type Kind uint8

const (
	// KindEquality derives != from ==.
	KindEquality Kind = iota
	// KindOrdering derives >, <=, >= from <.
	KindOrdering
	// KindEquivalence derives == from < (equivalence classes of a
	// strict weak ordering).
	KindEquivalence
	// KindPartialOrder derives >, <=, >= from < and ==.
	KindPartialOrder
	// KindCompound derives the non-mutating binary operator from the
	// compound-combine primitive.
	KindCompound
	// KindStep derives the post-form step from the mutating pre-step.
	KindStep
)

// Form distinguishes the three shapes a compound family comes in.
type Form uint8

const (
	// FormPlain provides Host op Other only.
	FormPlain Form = iota
	// FormCommutative additionally provides Other op Host by
	// normalizing the host operand onto the left.
	FormCommutative
	// FormLeft provides Other op Host through the conversion bridge:
	// materialize Other as a Host via the converting constructor, then
	// delegate to Host op= Host.
	FormLeft
)

func (f Form) String() string {
	switch f {
	case FormPlain:
		return "plain"
	case FormCommutative:
		return "commutative"
	case FormLeft:
		return "left"
	}
	return "unknown"
}

// Spec is one fully instantiated capability family.
type Spec struct {
	Name  string
	Kind  Kind
	Op    Op   // base symbol for KindCompound/KindStep
	Form  Form // meaningful for KindCompound only
	Host  string
	Other string // equals Host for single-type instantiations
}

// SameType reports whether both operand slots hold the host type.
func (s Spec) SameType() bool { return s.Other == s.Host }

// ProvisionKind classifies what a provided operator produces.
type ProvisionKind uint8

const (
	// ProvValue operators produce a host-typed value and carry the four
	// access-mode overload variants.
	ProvValue ProvisionKind = iota
	// ProvPredicate operators produce a boolean; no operand is ever
	// consumed, so there is a single variant.
	ProvPredicate
	// ProvStep is the post-form step: snapshot, mutate, return the
	// snapshot as a freshly owned value.
	ProvStep
)

// Provision is one derived operator a family provides, together with
// the facts the overload selector needs.
type Provision struct {
	Sig  Signature
	Kind ProvisionKind
	// Commutative is set when the right operand may serve as the host
	// of the result (order-insensitive operation, host-typed right).
	Commutative bool
	// Mirrored marks the Other-op-Host provision of a commutative
	// two-type family: the host operand sits on the right.
	Mirrored bool
	// Bridge marks provisions implemented through the converting
	// constructor of a _left family.
	Bridge bool
}

// Requires expands the family into its primitive-operation
// requirements. The copy constructor appears wherever a fresh-
// construction code path exists; declarations always satisfy it, but
// its effect attribute still feeds the effect propagator.
func (s Spec) Requires() []Primitive {
	t, u := s.Host, s.Other
	switch s.Kind {
	case KindEquality:
		return []Primitive{{Kind: PrimEqual, Host: t, Other: t}}
	case KindOrdering, KindEquivalence:
		return []Primitive{{Kind: PrimLess, Host: t, Other: t}}
	case KindPartialOrder:
		return []Primitive{
			{Kind: PrimLess, Host: t, Other: t},
			{Kind: PrimEqual, Host: t, Other: t},
		}
	case KindStep:
		return []Primitive{
			{Kind: PrimStep, Op: s.Op, Host: t, Other: t},
			{Kind: PrimCopy, Host: t, Other: t},
		}
	case KindCompound:
		if s.Form == FormLeft {
			// The bridge constructs through conversion, never through
			// copy: the converted value is already a fresh host.
			return []Primitive{
				{Kind: PrimConvert, Host: t, Other: u},
				{Kind: PrimCompound, Op: s.Op, Host: t, Other: t},
			}
		}
		return []Primitive{
			{Kind: PrimCompound, Op: s.Op, Host: t, Other: u},
			{Kind: PrimCopy, Host: t, Other: t},
		}
	}
	return nil
}

// Provides expands the family into its derived operators.
func (s Spec) Provides() []Provision {
	t, u := s.Host, s.Other
	pred := func(op Op) Provision {
		return Provision{Sig: Signature{Op: op, Left: t, Right: t}, Kind: ProvPredicate}
	}
	switch s.Kind {
	case KindEquality:
		return []Provision{pred(OpNe)}
	case KindOrdering, KindPartialOrder:
		return []Provision{pred(OpGt), pred(OpLe), pred(OpGe)}
	case KindEquivalence:
		return []Provision{pred(OpEq)}
	case KindStep:
		return []Provision{{
			Sig:  Signature{Op: s.Op, Left: t},
			Kind: ProvStep,
		}}
	case KindCompound:
		forward := Provision{
			Sig:         Signature{Op: s.Op, Left: t, Right: u},
			Kind:        ProvValue,
			Commutative: s.Form == FormCommutative && s.SameType(),
		}
		switch s.Form {
		case FormPlain:
			return []Provision{forward}
		case FormCommutative:
			if s.SameType() {
				return []Provision{forward}
			}
			mirrored := Provision{
				Sig:      Signature{Op: s.Op, Left: u, Right: t},
				Kind:     ProvValue,
				Mirrored: true,
			}
			return []Provision{forward, mirrored}
		case FormLeft:
			return []Provision{{
				Sig:    Signature{Op: s.Op, Left: u, Right: t},
				Kind:   ProvValue,
				Bridge: true,
			}}
		}
	}
	return nil
}
