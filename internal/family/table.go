package family

import (
	"errors"
	"fmt"
	"sort"
)

// Sentinel errors for family instantiation.
var (
	// ErrUnknownFamily indicates the requested family name is not in the table.
	ErrUnknownFamily = errors.New("family: unknown family")
	// ErrNeedsOther indicates a _left family was instantiated without a foreign operand type.
	ErrNeedsOther = errors.New("family: _left form requires a foreign operand type")
	// ErrSingleType indicates a single-type family was instantiated with a foreign operand type.
	ErrSingleType = errors.New("family: single-type family cannot take a foreign operand type")
)

// rule is one row of the name table. The full requirement/provision
// expansion lives in Spec; a row only selects (kind, op, form).
type rule struct {
	kind Kind
	op   Op
	form Form
	// singleType rows reject a foreign operand type (comparisons, steps).
	singleType bool
}

// rules is the single generic table behind every named family. Compound
// rows exist in plain form for every combinable symbol, in commutative
// form for the order-insensitive ones, and in _left form for the
// non-commutative ones (the commutative form already covers both
// operand orders, so a _left counterpart would be redundant).
var rules = map[string]rule{
	"equality_comparable":  {kind: KindEquality, singleType: true},
	"less_than_comparable": {kind: KindOrdering, singleType: true},
	"equivalent":           {kind: KindEquivalence, singleType: true},
	"partially_ordered":    {kind: KindPartialOrder, singleType: true},

	"addable":             {kind: KindCompound, op: OpAdd},
	"commutative_addable": {kind: KindCompound, op: OpAdd, form: FormCommutative},
	"addable_left":        {kind: KindCompound, op: OpAdd, form: FormLeft},

	"subtractable":      {kind: KindCompound, op: OpSub},
	"subtractable_left": {kind: KindCompound, op: OpSub, form: FormLeft},

	"multipliable":             {kind: KindCompound, op: OpMul},
	"commutative_multipliable": {kind: KindCompound, op: OpMul, form: FormCommutative},
	"multipliable_left":        {kind: KindCompound, op: OpMul, form: FormLeft},

	"dividable":      {kind: KindCompound, op: OpDiv},
	"dividable_left": {kind: KindCompound, op: OpDiv, form: FormLeft},

	"modable":      {kind: KindCompound, op: OpMod},
	"modable_left": {kind: KindCompound, op: OpMod, form: FormLeft},

	"andable":             {kind: KindCompound, op: OpAnd},
	"commutative_andable": {kind: KindCompound, op: OpAnd, form: FormCommutative},
	"andable_left":        {kind: KindCompound, op: OpAnd, form: FormLeft},

	"orable":             {kind: KindCompound, op: OpOr},
	"commutative_orable": {kind: KindCompound, op: OpOr, form: FormCommutative},
	"orable_left":        {kind: KindCompound, op: OpOr, form: FormLeft},

	"xorable":             {kind: KindCompound, op: OpXor},
	"commutative_xorable": {kind: KindCompound, op: OpXor, form: FormCommutative},
	"xorable_left":        {kind: KindCompound, op: OpXor, form: FormLeft},

	"left_shiftable":  {kind: KindCompound, op: OpShl},
	"right_shiftable": {kind: KindCompound, op: OpShr},

	"incrementable": {kind: KindStep, op: OpInc, singleType: true},
	"decrementable": {kind: KindStep, op: OpDec, singleType: true},
}

// Known reports whether name is a family in the table.
func Known(name string) bool {
	_, ok := rules[name]
	return ok
}

// Names returns every family name in the table, sorted.
func Names() []string {
	out := make([]string, 0, len(rules))
	for name := range rules {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Instantiate binds a named family to concrete operand types. Pass
// other == "" (or other == host) for the single-type form.
func Instantiate(name, host, other string) (Spec, error) {
	r, ok := rules[name]
	if !ok {
		return Spec{}, fmt.Errorf("%w: %q", ErrUnknownFamily, name)
	}
	if other == "" {
		other = host
	}
	foreign := other != host
	if foreign && r.singleType {
		return Spec{}, fmt.Errorf("%w: %s<%s, %s>", ErrSingleType, name, host, other)
	}
	if !foreign && r.kind == KindCompound && r.form == FormLeft {
		return Spec{}, fmt.Errorf("%w: %s<%s>", ErrNeedsOther, name, host)
	}
	return Spec{
		Name:  name,
		Kind:  r.kind,
		Op:    r.op,
		Form:  r.form,
		Host:  host,
		Other: other,
	}, nil
}
