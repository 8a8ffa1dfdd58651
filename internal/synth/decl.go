// Package synth is the operator-synthesis engine. A type author
// declares the primitive operations their type supports, each tagged
// with a failure attribute, and attaches capability families or
// composite groups; the engine checks the declaration against the rule
// table, reports definition-time diagnostics, and derives the full
// operator catalog. The generic binding layer then turns a catalog
// entry into a directly callable operation.
package synth

import (
	"sort"

	"opforge/internal/effect"
	"opforge/internal/family"
)

type compoundKey struct {
	op    family.Op
	other string
}

// Decl is one type's declared primitive operations. The copy
// constructor is always present: a declaration may override its effect
// attribute, which defaults to CannotFail (plain value copies).
type Decl struct {
	name      string
	copyAttr  effect.Attr
	compounds map[compoundKey]effect.Attr
	equal     *effect.Attr
	less      *effect.Attr
	steps     map[family.Op]effect.Attr
	converts  map[string]effect.Attr
}

// NewDecl starts a declaration for the named type.
func NewDecl(name string) *Decl {
	return &Decl{
		name:      name,
		copyAttr:  effect.CannotFail,
		compounds: make(map[compoundKey]effect.Attr),
		steps:     make(map[family.Op]effect.Attr),
		converts:  make(map[string]effect.Attr),
	}
}

// Name returns the declared type's name.
func (d *Decl) Name() string { return d.name }

// Copy overrides the copy constructor's effect attribute.
func (d *Decl) Copy(attr effect.Attr) *Decl {
	d.copyAttr = attr
	return d
}

// Compound declares a self-typed compound primitive (T op= T).
func (d *Decl) Compound(op family.Op, attr effect.Attr) *Decl {
	return d.CompoundWith(op, d.name, attr)
}

// CompoundWith declares a compound primitive against a foreign operand
// type (T op= U).
func (d *Decl) CompoundWith(op family.Op, other string, attr effect.Attr) *Decl {
	d.compounds[compoundKey{op: op, other: other}] = attr
	return d
}

// Equality declares the equality test (T == T).
func (d *Decl) Equality(attr effect.Attr) *Decl {
	d.equal = &attr
	return d
}

// Ordering declares the ordering test (T < T).
func (d *Decl) Ordering(attr effect.Attr) *Decl {
	d.less = &attr
	return d
}

// Step declares a mutating pre-step primitive (++T or --T).
func (d *Decl) Step(op family.Op, attr effect.Attr) *Decl {
	d.steps[op] = attr
	return d
}

// Convert declares a converting constructor from a foreign type (T(U)).
func (d *Decl) Convert(from string, attr effect.Attr) *Decl {
	d.converts[from] = attr
	return d
}

// Lookup reports whether the declaration satisfies one primitive
// requirement, and with which effect attribute.
func (d *Decl) Lookup(p family.Primitive) (effect.Attr, bool) {
	switch p.Kind {
	case family.PrimCopy:
		return d.copyAttr, true
	case family.PrimCompound:
		attr, ok := d.compounds[compoundKey{op: p.Op, other: p.Other}]
		return attr, ok
	case family.PrimEqual:
		if d.equal == nil {
			return effect.MayFail, false
		}
		return *d.equal, true
	case family.PrimLess:
		if d.less == nil {
			return effect.MayFail, false
		}
		return *d.less, true
	case family.PrimStep:
		attr, ok := d.steps[p.Op]
		return attr, ok
	case family.PrimConvert:
		attr, ok := d.converts[p.Other]
		return attr, ok
	}
	return effect.MayFail, false
}

// Primitives lists the declared primitive keys, sorted, for display.
func (d *Decl) Primitives() []string {
	out := make([]string, 0, 4+len(d.compounds)+len(d.steps)+len(d.converts))
	out = append(out, family.Primitive{Kind: family.PrimCopy, Host: d.name}.Key())
	if d.equal != nil {
		out = append(out, family.Primitive{Kind: family.PrimEqual, Host: d.name}.Key())
	}
	if d.less != nil {
		out = append(out, family.Primitive{Kind: family.PrimLess, Host: d.name}.Key())
	}
	for key := range d.compounds {
		out = append(out, family.Primitive{Kind: family.PrimCompound, Op: key.op, Host: d.name, Other: key.other}.Key())
	}
	for op := range d.steps {
		out = append(out, family.Primitive{Kind: family.PrimStep, Op: op, Host: d.name}.Key())
	}
	for from := range d.converts {
		out = append(out, family.Primitive{Kind: family.PrimConvert, Host: d.name, Other: from}.Key())
	}
	sort.Strings(out)
	return out
}
