package synth

import (
	"sort"

	"opforge/internal/effect"
	"opforge/internal/family"
	"opforge/internal/overload"
)

// DerivedOp is one synthesized operator: a signature, the family
// instance that provided it, the propagated effect attribute, and the
// overload variants selected for it. All variants of one operator reach
// the same primitive set, so the effect is uniform across variants and
// carried once.
type DerivedOp struct {
	Sig      family.Signature
	Family   string
	Effect   effect.Attr
	Kind     family.ProvisionKind
	Variants []overload.Variant
}

// Catalog is the full derived-operator set of one type after attaching
// families and groups. Ops are ordered by signature for deterministic
// output.
type Catalog struct {
	Type string
	Ops  []DerivedOp
}

func (c *Catalog) sortOps() {
	sort.Slice(c.Ops, func(i, j int) bool {
		si, sj := c.Ops[i].Sig, c.Ops[j].Sig
		if si.Op != sj.Op {
			return si.Op < sj.Op
		}
		if si.Left != sj.Left {
			return si.Left < sj.Left
		}
		return si.Right < sj.Right
	})
}

// Find returns the derived operator with the given signature.
func (c *Catalog) Find(sig family.Signature) (DerivedOp, bool) {
	for _, op := range c.Ops {
		if op.Sig == sig {
			return op, true
		}
	}
	return DerivedOp{}, false
}

// Signatures lists every provided signature, in catalog order.
func (c *Catalog) Signatures() []family.Signature {
	out := make([]family.Signature, len(c.Ops))
	for i, op := range c.Ops {
		out[i] = op.Sig
	}
	return out
}
