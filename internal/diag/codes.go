package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Syntax
	SynSyntaxError        Code = 1001
	SynInvalidInstruction Code = 1002

	// Symbols
	SymDuplicateDefinition Code = 2001

	// Operand types
	TypUnsupportedInstruction Code = 3001
	TypUnknownIdentifier      Code = 3002
	TypMismatch               Code = 3003
	TypSuperfluousArguments   Code = 3004
	TypArgumentCount          Code = 3005

	// In-game editor limits
	LenInstructionColumn Code = 4001
	LenCommentColumn     Code = 4002
	LenInstructionLine   Code = 4003
	LenCommentLine       Code = 4004

	// Mode literals
	ModInvalidBatchMode      Code = 5001
	ModNonIntegerBatchMode   Code = 5002
	ModInvalidReagentMode    Code = 5003
	ModNonIntegerReagentMode Code = 5004

	// Lints with quick fixes; the ID is the stable lint identifier.
	LintAbsoluteJump       Code = 6001
	LintBatchModeLiteral   Code = 6002
	LintReagentModeLiteral Code = 6003
)

var codeDescription = map[Code]string{
	UnknownCode:               "Unknown error",
	SynSyntaxError:            "Syntax error",
	SynInvalidInstruction:     "Invalid instruction",
	SymDuplicateDefinition:    "Duplicate definition",
	TypUnsupportedInstruction: "Unsupported instruction",
	TypUnknownIdentifier:      "Unknown identifier",
	TypMismatch:               "Type mismatch",
	TypSuperfluousArguments:   "Superfluous arguments",
	TypArgumentCount:          "Invalid number of arguments",
	LenInstructionColumn:      "Instruction past column limit",
	LenCommentColumn:          "Comment past column limit",
	LenInstructionLine:        "Instruction past line limit",
	LenCommentLine:            "Comment past line limit",
	ModInvalidBatchMode:       "Invalid batch mode",
	ModNonIntegerBatchMode:    "Non-integer batch mode",
	ModInvalidReagentMode:     "Invalid reagent mode",
	ModNonIntegerReagentMode:  "Non-integer reagent mode",
	LintAbsoluteJump:          "Absolute jump to line number",
	LintBatchModeLiteral:      "Literal number for batch mode",
	LintReagentModeLiteral:    "Literal number for reagent mode",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYM%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("TYP%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("LEN%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("MOD%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("L%03d", ic-6000)
	}
	return fmt.Sprintf("E%04d", int(c))
}

// ParseID is the inverse of ID.
func ParseID(id string) (Code, bool) {
	for c := range codeDescription {
		if c != UnknownCode && c.ID() == id {
			return c, true
		}
	}
	return UnknownCode, false
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
