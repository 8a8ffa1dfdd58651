package overload

import (
	"opforge/internal/family"
	"opforge/internal/operand"
)

// Variant is one access-mode combination of a derived operator together
// with the strategy selected for it.
type Variant struct {
	Modes    operand.ModePair
	Strategy Strategy
}

// Result is the ownership of the variant's result value.
func (v Variant) Result() Ownership { return v.Strategy.Result() }

// Expand computes the overload variants of one provision. Value
// provisions get the four access-mode combinations through a single
// parametrized selection, not four hand-written rules. Predicates
// consume nothing and have no variants. Step provisions have a single
// variant: the operand must be disposable (it is mutated), and the
// result is always a fresh snapshot.
func Expand(p family.Provision) []Variant {
	switch p.Kind {
	case family.ProvPredicate:
		return nil
	case family.ProvStep:
		return []Variant{{
			Modes:    operand.ModePair{Left: operand.Disposable},
			Strategy: SnapshotThenMutate,
		}}
	}
	pairs := operand.AllModePairs()
	out := make([]Variant, 0, len(pairs))
	for _, modes := range pairs {
		var s Strategy
		switch {
		case p.Bridge:
			// The conversion already yields a fresh disposable host;
			// every combination constructs through it.
			s = ConvertLeft
		case p.Mirrored:
			s = SelectMirrored(modes.Left, modes.Right)
		default:
			s = Select(p.Commutative, modes.Left, modes.Right)
		}
		out = append(out, Variant{Modes: modes, Strategy: s})
	}
	return out
}
