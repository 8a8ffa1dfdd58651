package diag

import (
	"fmt"
)

// Code identifies one diagnostic class. Blocks are reserved per phase:
// 1xxx for manifest loading, 3xxx for definition-time checks.
type Code uint16

const (
	UnknownCode Code = 0

	// Manifest loading.
	ManInfo          Code = 1000
	ManUnreadable    Code = 1001
	ManBadSyntax     Code = 1002
	ManMissingName   Code = 1003
	ManDuplicateType Code = 1004
	ManUnknownOp     Code = 1005
	ManUnknownEffect Code = 1006
	ManBadAttach     Code = 1007
	ManMissingFrom   Code = 1008
	ManDuplicatePrim Code = 1009
	ManBadPrimitive  Code = 1010

	// Definition-time checks.
	DefInfo               Code = 3000
	DefUnknownFamily      Code = 3001
	DefUnknownGroup       Code = 3002
	DefMissingPrimitive   Code = 3003
	DefDuplicateSignature Code = 3004
	DefBadInstantiation   Code = 3005
	DefGroupCollision     Code = 3006
	DefGroupCycle         Code = 3007
)

var codeNames = map[Code]string{
	UnknownCode:           "UnknownCode",
	ManInfo:               "ManInfo",
	ManUnreadable:         "ManUnreadable",
	ManBadSyntax:          "ManBadSyntax",
	ManMissingName:        "ManMissingName",
	ManDuplicateType:      "ManDuplicateType",
	ManUnknownOp:          "ManUnknownOp",
	ManUnknownEffect:      "ManUnknownEffect",
	ManBadAttach:          "ManBadAttach",
	ManMissingFrom:        "ManMissingFrom",
	ManDuplicatePrim:      "ManDuplicatePrim",
	ManBadPrimitive:       "ManBadPrimitive",
	DefInfo:               "DefInfo",
	DefUnknownFamily:      "DefUnknownFamily",
	DefUnknownGroup:       "DefUnknownGroup",
	DefMissingPrimitive:   "DefMissingPrimitive",
	DefDuplicateSignature: "DefDuplicateSignature",
	DefBadInstantiation:   "DefBadInstantiation",
	DefGroupCollision:     "DefGroupCollision",
	DefGroupCycle:         "DefGroupCycle",
}

func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Code(%d)", uint16(c))
}

// ID renders the stable numeric form used in machine-readable output,
// e.g. "OPF3003".
func (c Code) ID() string {
	return fmt.Sprintf("OPF%04d", uint16(c))
}
