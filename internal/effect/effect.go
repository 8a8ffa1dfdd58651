// Package effect models the static failure guarantee of primitive and
// derived operations. A derived operator CannotFail exactly when every
// primitive it can reach, across all of its overload variants, CannotFail.
package effect

// Attr is the failure attribute of one operation.
//
// The zero value is MayFail: an undeclared or unknown operation never
// gains a guarantee by accident.
type Attr uint8

const (
	// MayFail operations can signal failure at runtime.
	MayFail Attr = iota
	// CannotFail operations are statically guaranteed not to fail.
	CannotFail
)

func (a Attr) String() string {
	switch a {
	case MayFail:
		return "may_fail"
	case CannotFail:
		return "cannot_fail"
	}
	return "unknown"
}

// Parse maps the manifest spelling of an attribute. Reports false for
// unknown spellings.
func Parse(s string) (Attr, bool) {
	switch s {
	case "may_fail":
		return MayFail, true
	case "cannot_fail":
		return CannotFail, true
	}
	return MayFail, false
}

// Join combines two attributes: the result CannotFail only when both do.
func Join(a, b Attr) Attr {
	if a == CannotFail && b == CannotFail {
		return CannotFail
	}
	return MayFail
}

// Propagate folds Join over every primitive attribute a derived operator
// reaches. An empty primitive set propagates CannotFail (nothing can fail).
func Propagate(attrs ...Attr) Attr {
	out := CannotFail
	for _, a := range attrs {
		out = Join(out, a)
	}
	return out
}
