// Package group composes capability families into named bundles
// covering larger algebraic or relational concepts (total order, ring,
// field, bitwise algebra). A bundle's provided set is the union of its
// members' provided sets, computed over operator signatures; members
// must be signature-disjoint, and a collision rejects the whole bundle
// at definition time.
package group

import (
	"errors"
	"fmt"
	"sort"

	"opforge/internal/family"
)

// Sentinel errors for group resolution.
var (
	// ErrUnknownGroup indicates the requested group name is not in the catalog.
	ErrUnknownGroup = errors.New("group: unknown group")
	// ErrCycle indicates nested group membership loops back on itself.
	ErrCycle = errors.New("group: membership cycle")
)

// CollisionError reports two members providing the same derived
// operator signature.
type CollisionError struct {
	Group  string
	Sig    family.Signature
	First  string
	Second string
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("group %s: members %s and %s both provide %s",
		e.Group, e.First, e.Second, e.Sig)
}

// entry is one catalog row: members name families or other groups.
// leftExtras fold in the _left counterparts covering the reversed
// operand order, and apply only to two-type instantiations.
type entry struct {
	members    []string
	leftExtras []string
}

var groups = map[string]entry{
	"totally_ordered": {members: []string{"equality_comparable", "less_than_comparable"}},

	"commutative_ring": {
		members:    []string{"commutative_addable", "subtractable", "commutative_multipliable"},
		leftExtras: []string{"subtractable_left"},
	},
	"ring": {
		members:    []string{"commutative_addable", "subtractable", "multipliable"},
		leftExtras: []string{"subtractable_left"},
	},
	"field": {
		members:    []string{"commutative_ring", "dividable"},
		leftExtras: []string{"dividable_left"},
	},

	"ordered_ring":             {members: []string{"ring", "totally_ordered"}},
	"ordered_field":            {members: []string{"field", "totally_ordered"}},
	"ordered_commutative_ring": {members: []string{"commutative_ring", "totally_ordered"}},

	"commutative_bitwise": {members: []string{"commutative_andable", "commutative_orable", "commutative_xorable"}},
	"bitwise":             {members: []string{"andable", "orable", "xorable"}},

	"shiftable":      {members: []string{"left_shiftable", "right_shiftable"}},
	"unit_steppable": {members: []string{"incrementable", "decrementable"}},
}

// Known reports whether name is a group in the catalog.
func Known(name string) bool {
	_, ok := groups[name]
	return ok
}

// Names returns every group name in the catalog, sorted.
func Names() []string {
	out := make([]string, 0, len(groups))
	for name := range groups {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Members returns the direct member names of a group (unresolved).
func Members(name string) ([]string, bool) {
	e, ok := groups[name]
	if !ok {
		return nil, false
	}
	out := make([]string, len(e.members))
	copy(out, e.members)
	return out, true
}

// Resolve flattens a group into the ordered list of fully instantiated
// member families, following nested groups, and validates that the
// union of their provisions is signature-disjoint. Pass other == ""
// (or other == host) for the single-type form.
func Resolve(name, host, other string) ([]family.Spec, error) {
	if other == "" {
		other = host
	}
	var specs []family.Spec
	visiting := make(map[string]bool)
	if err := resolve(name, host, other, visiting, &specs); err != nil {
		return nil, err
	}
	if err := validate(name, specs); err != nil {
		return nil, err
	}
	return specs, nil
}

func resolve(name, host, other string, visiting map[string]bool, out *[]family.Spec) error {
	e, ok := groups[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownGroup, name)
	}
	if visiting[name] {
		return fmt.Errorf("%w: via %q", ErrCycle, name)
	}
	visiting[name] = true
	defer delete(visiting, name)

	members := e.members
	if other != host {
		members = append(append([]string{}, e.members...), e.leftExtras...)
	}
	for _, member := range members {
		if _, nested := groups[member]; nested {
			if err := resolve(member, host, other, visiting, out); err != nil {
				return err
			}
			continue
		}
		spec, err := family.Instantiate(member, host, other)
		if err != nil {
			return fmt.Errorf("group %s: %w", name, err)
		}
		*out = append(*out, spec)
	}
	return nil
}

// validate rejects the bundle when two members provide one signature.
func validate(name string, specs []family.Spec) error {
	seen := make(map[family.Signature]string)
	for _, spec := range specs {
		for _, prov := range spec.Provides() {
			if prev, dup := seen[prov.Sig]; dup {
				return &CollisionError{
					Group:  name,
					Sig:    prov.Sig,
					First:  prev,
					Second: spec.Name,
				}
			}
			seen[prov.Sig] = spec.Name
		}
	}
	return nil
}
