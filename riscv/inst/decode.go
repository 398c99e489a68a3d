package inst

import (
	"strings"

	"github.com/rvcore/vliw-repack/riscv/isa"
)

// decodeOperands dispatches operand extraction by category. Each branch
// degrades gracefully on short/malformed operand lists by simply leaving
// later slots unset — never guessing a register out of thin air.
func decodeOperands(in *Instruction) {
	if in.OperandText == "" && in.Mnemonic != "ret" {
		return
	}
	parts := splitOperands(in.OperandText)

	switch in.Category {
	case ALU:
		decodeALU(in, parts)
	case LOAD:
		decodeLoad(in, parts)
	case STORE:
		decodeStore(in, parts)
	case BRANCH:
		decodeBranch(in, parts)
	case FPU, MULDIV:
		decodeFPUOrMulDiv(in, parts)
	case OTHER:
		// Conservative: unknown mnemonics never yield register extraction.
	}
}

func splitOperands(text string) []string {
	raw := strings.Split(text, ",")
	parts := make([]string, len(raw))
	for i, p := range raw {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

func reg(token string) Register {
	return Register(isa.NormalizeRegister(token))
}

// baseRegister extracts the base register from a memory operand of the
// form "offset(reg)". If token has no parens it returns the token itself
// normalized, which tolerates operand text that omits the offset entirely.
func baseRegister(token string) Register {
	return reg(token)
}

// isImmediate reports whether a token is a decimal integer (optional
// leading '-') or a 0x-prefixed literal, as opposed to a register name.
func isImmediate(token string) bool {
	if token == "" {
		return false
	}
	if strings.HasPrefix(token, "0x") || strings.HasPrefix(token, "0X") {
		return true
	}
	t := token
	if strings.HasPrefix(t, "-") {
		t = t[1:]
	}
	if t == "" {
		return false
	}
	for _, c := range t {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// decodeALU handles [rd, rs1, rs2-or-imm].
func decodeALU(in *Instruction, parts []string) {
	if len(parts) >= 1 {
		in.Rd = reg(parts[0])
	}
	if len(parts) >= 2 {
		in.Rs1 = reg(parts[1])
	}
	if len(parts) >= 3 && !isImmediate(parts[2]) {
		in.Rs2 = reg(parts[2])
	}
}

// decodeLoad handles [rd, offset(rs1)].
func decodeLoad(in *Instruction, parts []string) {
	if len(parts) >= 1 {
		in.Rd = reg(parts[0])
	}
	if len(parts) >= 2 && strings.Contains(parts[1], "(") {
		in.Rs1 = baseRegister(parts[1])
	}
}

// decodeStore handles [rs2, offset(rs1)] — the destination slot of a store
// holds a source register, not a write.
func decodeStore(in *Instruction, parts []string) {
	if len(parts) >= 1 {
		in.Rs2 = reg(parts[0])
	}
	if len(parts) >= 2 && strings.Contains(parts[1], "(") {
		in.Rs1 = baseRegister(parts[1])
	}
}

// decodeBranch dispatches by mnemonic within the BRANCH category.
func decodeBranch(in *Instruction, parts []string) {
	switch in.Mnemonic {
	case "jal", "call":
		if len(parts) >= 1 {
			in.Rd = reg(parts[0])
		}
	case "jalr":
		if len(parts) >= 1 {
			in.Rd = reg(parts[0])
		}
		if len(parts) >= 2 {
			if strings.Contains(parts[1], "(") {
				in.Rs1 = baseRegister(parts[1])
			} else {
				in.Rs1 = reg(parts[1])
			}
		}
	case "ret":
		in.Rs1 = Register(isa.IntRegisterAlias["ra"])
	case "jr":
		if len(parts) >= 1 {
			in.Rs1 = reg(parts[0])
		}
	default:
		// Conditional branches: beq, bne, blt, bge, bltu, bgeu.
		if len(parts) >= 1 {
			in.Rs1 = reg(parts[0])
		}
		if len(parts) >= 2 {
			in.Rs2 = reg(parts[1])
		}
	}
}

// decodeFPUOrMulDiv handles [rd, rs1, rs2, rs3?].
func decodeFPUOrMulDiv(in *Instruction, parts []string) {
	if len(parts) >= 1 {
		in.Rd = reg(parts[0])
	}
	if len(parts) >= 2 {
		in.Rs1 = reg(parts[1])
	}
	if len(parts) >= 3 {
		in.Rs2 = reg(parts[2])
	}
	if len(parts) >= 4 {
		in.Rs3 = reg(parts[3])
	}
}
