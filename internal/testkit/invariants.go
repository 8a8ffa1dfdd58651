// Package testkit provides invariant checks shared by tests.
package testkit

import (
	"fmt"

	"opforge/internal/family"
	"opforge/internal/operand"
	"opforge/internal/overload"
	"opforge/internal/synth"
)

// CheckCatalogInvariants runs structural invariants on a derived
// catalog:
//  1. signatures are unique
//  2. value operators carry exactly the four access-mode combinations,
//     in the canonical order
//  3. a variant that reuses an operand only does so when that operand
//     is disposable
//  4. predicates carry no variants; steps carry exactly one
func CheckCatalogInvariants(c *synth.Catalog) error {
	if c == nil {
		return fmt.Errorf("nil catalog")
	}
	seen := make(map[family.Signature]bool, len(c.Ops))
	for _, op := range c.Ops {
		if seen[op.Sig] {
			return fmt.Errorf("duplicate signature %s", op.Sig)
		}
		seen[op.Sig] = true

		switch op.Kind {
		case family.ProvPredicate:
			if len(op.Variants) != 0 {
				return fmt.Errorf("%s: predicate with %d variants", op.Sig, len(op.Variants))
			}
		case family.ProvStep:
			if len(op.Variants) != 1 {
				return fmt.Errorf("%s: step with %d variants", op.Sig, len(op.Variants))
			}
			if op.Variants[0].Modes.Left != operand.Disposable {
				return fmt.Errorf("%s: step variant on persistent operand", op.Sig)
			}
		case family.ProvValue:
			pairs := operand.AllModePairs()
			if len(op.Variants) != len(pairs) {
				return fmt.Errorf("%s: value op with %d variants", op.Sig, len(op.Variants))
			}
			for i, v := range op.Variants {
				if v.Modes != pairs[i] {
					return fmt.Errorf("%s: variant %d has modes %v, want %v", op.Sig, i, v.Modes, pairs[i])
				}
				if err := checkReuse(op.Sig, v); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func checkReuse(sig family.Signature, v overload.Variant) error {
	switch v.Result() {
	case overload.ReusedLeft:
		if v.Modes.Left != operand.Disposable {
			return fmt.Errorf("%s %v: reuses persistent left operand", sig, v.Modes)
		}
	case overload.ReusedRight:
		if v.Modes.Right != operand.Disposable {
			return fmt.Errorf("%s %v: reuses persistent right operand", sig, v.Modes)
		}
	}
	return nil
}
