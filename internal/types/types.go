// Package types implements the operand type algebra of IC10 instruction
// signatures: the closed set of semantic categories an operand can occupy,
// unions of those categories, and tagged parameters.
package types

import "fmt"

// DataType is the semantic category an operand occupies.
type DataType uint8

const (
	Number DataType = iota
	Register
	Device
	LogicType
	SlotLogicType
	BatchMode
	ReagentMode
	Name

	numDataTypes
)

// AllDataTypes lists every category in declaration order.
var AllDataTypes = [...]DataType{Number, Register, Device, LogicType, SlotLogicType, BatchMode, ReagentMode, Name}

func (t DataType) String() string {
	switch t {
	case Number:
		return "num"
	case Register:
		return "r?"
	case Device:
		return "d?"
	case LogicType:
		return "type"
	case SlotLogicType:
		return "slotType"
	case BatchMode:
		return "batchMode"
	case ReagentMode:
		return "reagentMode"
	case Name:
		return "name"
	default:
		return fmt.Sprintf("DataType(%d)", t)
	}
}

// IsVocabulary reports whether values of t are drawn from a closed name table.
func (t DataType) IsVocabulary() bool {
	switch t {
	case LogicType, SlotLogicType, BatchMode, ReagentMode:
		return true
	default:
		return false
	}
}

// Valid reports whether t is a declared category.
func (t DataType) Valid() bool {
	return t < numDataTypes
}
