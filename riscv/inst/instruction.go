package inst

import (
	"strings"

	"github.com/rvcore/vliw-repack/riscv/isa"
)

// Register is a canonical register name (xN or fN). The zero value means
// "absent" — use Register.Defined to test.
type Register string

// Defined reports whether r denotes an actual register slot (as opposed to
// an absent operand).
func (r Register) Defined() bool {
	return r != ""
}

// IsIntegerZero reports whether r is the hardwired-zero integer register,
// whose writes are always nullified for dependency purposes.
func (r Register) IsIntegerZero() bool {
	return string(r) == isa.CanonicalZero
}

// Instruction is a single decoded RISC-V instruction from a VLIW bundle
// stream. Instructions are constructed once by Decode and never mutated.
type Instruction struct {
	Address     uint32
	Encoding    string
	Mnemonic    string
	OperandText string

	Rd, Rs1, Rs2, Rs3 Register

	Category      Category
	IsSingleCycle bool
	IsPadding     bool
}

// isPaddingEncoding reports whether encoding (already lowercased) matches
// one of the two recognized padding words.
func isPaddingEncoding(encoding string) bool {
	return encoding == isa.PaddingNopEncoding || encoding == isa.PaddingFeqZeroEncoding
}

// classify assigns a Category to a non-padding instruction, using exact
// mnemonic lookup against the classification tables in priority order:
// ALU, then multi-cycle (split into LOAD/STORE/MULDIV/FPU), then branch,
// else OTHER (unknown mnemonics propagate as OTHER with no register
// extraction, per the tolerant-parser design).
func classify(mnemonic string) Category {
	if _, ok := isa.SingleCycleALU[mnemonic]; ok {
		return ALU
	}
	if _, ok := isa.MultiCycle[mnemonic]; ok {
		switch {
		case strings.HasPrefix(mnemonic, "l") || strings.HasPrefix(mnemonic, "fl"):
			return LOAD
		case strings.HasPrefix(mnemonic, "s") || strings.HasPrefix(mnemonic, "fs"):
			return STORE
		default:
			if _, ok := isa.MulDiv[mnemonic]; ok {
				return MULDIV
			}
			return FPU
		}
	}
	if _, ok := isa.BranchJump[mnemonic]; ok {
		return BRANCH
	}
	return OTHER
}

// Decode constructs an Instruction from its disassembly-line fields. It is
// total and pure: every mnemonic and operand text, however malformed,
// produces an Instruction (degrading to unset register slots rather than
// erroring — see rverr.MalformedOperands).
func Decode(address uint32, encoding, mnemonic, operandText string) Instruction {
	encoding = strings.ToLower(strings.TrimSpace(encoding))
	mnemonic = strings.ToLower(strings.TrimSpace(mnemonic))
	operandText = strings.TrimSpace(operandText)

	in := Instruction{
		Address:     address,
		Encoding:    encoding,
		Mnemonic:    mnemonic,
		OperandText: operandText,
	}

	in.IsPadding = isPaddingEncoding(encoding) || mnemonic == "nop" ||
		(mnemonic == "feq.s" && hasZeroDestination(operandText))
	if in.IsPadding {
		in.Category = NOP
		return in
	}

	in.Category = classify(mnemonic)
	in.IsSingleCycle = in.Category == ALU

	decodeOperands(&in)
	return in
}

// hasZeroDestination reports whether the first comma-separated operand is
// the zero register (any spelling): used to detect the feq.s zero, ft0,
// ft0 padding idiom by mnemonic/operand text when the encoding itself
// wasn't recognized verbatim.
func hasZeroDestination(operandText string) bool {
	parts := strings.SplitN(operandText, ",", 2)
	if len(parts) == 0 {
		return false
	}
	first := strings.TrimSpace(parts[0])
	return first == "zero" || first == "x0"
}
