package family

// Op is an operator symbol. The enum covers both primitive symbols
// (compound-combine, comparison tests, pre-step) and the symbols of
// derived operators (the non-mutating binary forms, comparison
// complements, post-step).
type Op uint8

const (
	OpInvalid Op = iota

	// Comparison symbols.
	OpEq
	OpNe
	OpLt
	OpGt
	OpLe
	OpGe

	// Arithmetic symbols.
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod

	// Bitwise symbols.
	OpAnd
	OpOr
	OpXor

	// Shift symbols.
	OpShl
	OpShr

	// Step symbols.
	OpInc
	OpDec
)

var opNames = [...]string{
	OpInvalid: "<invalid>",
	OpEq:      "==",
	OpNe:      "!=",
	OpLt:      "<",
	OpGt:      ">",
	OpLe:      "<=",
	OpGe:      ">=",
	OpAdd:     "+",
	OpSub:     "-",
	OpMul:     "*",
	OpDiv:     "/",
	OpMod:     "%",
	OpAnd:     "&",
	OpOr:      "|",
	OpXor:     "^",
	OpShl:     "<<",
	OpShr:     ">>",
	OpInc:     "++",
	OpDec:     "--",
}

func (op Op) String() string {
	if int(op) < len(opNames) {
		return opNames[op]
	}
	return "<invalid>"
}

// Compound renders the compound-assignment spelling of a combinable
// symbol ("+" -> "+="). Empty for symbols with no compound form.
func (op Op) Compound() string {
	if !op.Combinable() {
		return ""
	}
	return op.String() + "="
}

// ParseOp maps a manifest spelling to a symbol. Both the plain ("+")
// and the compound ("+=") spellings of combinable symbols are accepted,
// since a manifest declares the compound primitive.
func ParseOp(s string) (Op, bool) {
	for op := OpEq; op <= OpDec; op++ {
		if s == op.String() {
			return op, true
		}
		if c := op.Compound(); c != "" && s == c {
			return op, true
		}
	}
	return OpInvalid, false
}

// IsCompare reports whether the symbol is a comparison producing a
// boolean, primitive or derived.
func (op Op) IsCompare() bool {
	switch op {
	case OpEq, OpNe, OpLt, OpGt, OpLe, OpGe:
		return true
	default:
		return false
	}
}

// Combinable reports whether the symbol has a compound-assignment
// primitive form (T op= U).
func (op Op) Combinable() bool {
	switch op {
	case OpAdd, OpSub, OpMul, OpDiv, OpMod, OpAnd, OpOr, OpXor, OpShl, OpShr:
		return true
	default:
		return false
	}
}

// IsStep reports whether the symbol is a unary step (increment or
// decrement).
func (op Op) IsStep() bool { return op == OpInc || op == OpDec }

// Commutative reports whether the mathematical operation behind the
// symbol is order-insensitive. Only commutative symbols admit the
// commutative family form.
func (op Op) Commutative() bool {
	switch op {
	case OpAdd, OpMul, OpAnd, OpOr, OpXor, OpEq, OpNe:
		return true
	default:
		return false
	}
}

// Complement returns the comparison whose truth value is the negation
// of op (== <-> !=, < <-> >=, > <-> <=). OpInvalid for non-comparisons.
func (op Op) Complement() Op {
	switch op {
	case OpEq:
		return OpNe
	case OpNe:
		return OpEq
	case OpLt:
		return OpGe
	case OpGe:
		return OpLt
	case OpGt:
		return OpLe
	case OpLe:
		return OpGt
	default:
		return OpInvalid
	}
}
