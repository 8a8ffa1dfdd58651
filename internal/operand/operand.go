// Package operand describes how operator operands participate at a call
// site: the role a type plays inside a capability family (Host vs Other)
// and the access mode of a concrete operand (Persistent vs Disposable).
package operand

// AccessMode classifies one operand at a call site.
type AccessMode uint8

const (
	// Persistent operands must not be consumed; the synthesized operator
	// may only read them.
	Persistent AccessMode = iota
	// Disposable operands may be mutated in place and their storage
	// reused for the result.
	Disposable
)

func (m AccessMode) String() string {
	switch m {
	case Persistent:
		return "persistent"
	case Disposable:
		return "disposable"
	}
	return "unknown"
}

// Reusable reports whether the operand's storage may hold the result.
func (m AccessMode) Reusable() bool { return m == Disposable }

// Role names the part a type plays inside a binary family.
type Role uint8

const (
	// Host is the type owning the compound-combine primitive; results are
	// always Host-typed values.
	Host Role = iota
	// Other participates only through the non-mutating primitives the
	// family requires of it.
	Other
)

func (r Role) String() string {
	switch r {
	case Host:
		return "host"
	case Other:
		return "other"
	}
	return "unknown"
}

// Descriptor pairs a type name with its role inside one family instance.
type Descriptor struct {
	Type string
	Role Role
}

// ModePair is one of the four access-mode combinations of a binary call.
type ModePair struct {
	Left  AccessMode
	Right AccessMode
}

// AllModePairs enumerates the four combinations in a fixed order:
// (P,P), (P,D), (D,P), (D,D). Variant tables are indexed by this order.
func AllModePairs() [4]ModePair {
	return [4]ModePair{
		{Persistent, Persistent},
		{Persistent, Disposable},
		{Disposable, Persistent},
		{Disposable, Disposable},
	}
}

// Swap mirrors the pair, used when a commutative operator normalizes the
// host operand onto the left.
func (p ModePair) Swap() ModePair { return ModePair{Left: p.Right, Right: p.Left} }

func (p ModePair) String() string {
	return "(" + p.Left.String() + ", " + p.Right.String() + ")"
}
