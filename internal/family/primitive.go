package family

// PrimitiveKind classifies the base operations a type author can
// declare. Families express their requirements as a list of Primitive
// descriptors; the engine matches them against a declaration.
type PrimitiveKind uint8

const (
	// PrimCompound is a compound-combine primitive: Host op= Other.
	PrimCompound PrimitiveKind = iota
	// PrimEqual is the equality test: Host == Host.
	PrimEqual
	// PrimLess is the ordering test: Host < Host.
	PrimLess
	// PrimCopy is the copy constructor: Host(Host). Every declaration
	// carries one; its effect attribute is declarable.
	PrimCopy
	// PrimConvert is a converting constructor: Host(Other). Used by the
	// conversion bridge of _left families.
	PrimConvert
	// PrimStep is a mutating pre-step: ++Host or --Host.
	PrimStep
)

func (k PrimitiveKind) String() string {
	switch k {
	case PrimCompound:
		return "compound"
	case PrimEqual:
		return "equal"
	case PrimLess:
		return "less"
	case PrimCopy:
		return "copy"
	case PrimConvert:
		return "convert"
	case PrimStep:
		return "step"
	}
	return "unknown"
}

// Primitive describes one required base operation. Host owns the
// operation; Other is the foreign operand (compound) or source type
// (convert) and equals Host for single-type requirements.
type Primitive struct {
	Kind  PrimitiveKind
	Op    Op // compound base symbol or step symbol; OpInvalid otherwise
	Host  string
	Other string
}

// Key renders the canonical spelling of the requirement, used in
// diagnostics and as a uniqueness key:
//
//	Meters += Meters, Meters == Meters, Meters < Meters,
//	copy Meters, Dollars(int), ++Meters
func (p Primitive) Key() string {
	switch p.Kind {
	case PrimCompound:
		return p.Host + " " + p.Op.Compound() + " " + p.Other
	case PrimEqual:
		return p.Host + " == " + p.Host
	case PrimLess:
		return p.Host + " < " + p.Host
	case PrimCopy:
		return "copy " + p.Host
	case PrimConvert:
		return p.Host + "(" + p.Other + ")"
	case PrimStep:
		return p.Op.String() + p.Host
	}
	return "<invalid primitive>"
}
