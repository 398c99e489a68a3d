// Package isa holds the static, read-only RISC-V mnemonic classification
// tables and register-alias maps shared by the decoder and dependency
// analyzer. Nothing here is mutated after package init.
package isa

import "strings"

// ============================================================================
// Padding Encodings
// ============================================================================
// The two recognized hexadecimal encodings inserted by the upstream VLIW
// packer to fill unused bundle slots. Comparisons are always lowercase.

const (
	PaddingNopEncoding     = "00000013" // canonical nop
	PaddingFeqZeroEncoding = "a0002053" // feq.s zero, ft0, ft0
)

// ============================================================================
// Single-Cycle ALU Set
// ============================================================================
// Operations whose result is available for one-level forwarding within the
// same bundle's cycle: integer arithmetic, logic, shifts, compares, lui,
// auipc, and the common pseudo-instructions built on top of them.

var SingleCycleALU = map[string]struct{}{
	"add": {}, "addi": {}, "sub": {},
	"and": {}, "andi": {}, "or": {}, "ori": {}, "xor": {}, "xori": {},
	"sll": {}, "slli": {}, "srl": {}, "srli": {}, "sra": {}, "srai": {},
	"slt": {}, "slti": {}, "sltu": {}, "sltiu": {},
	"lui": {}, "auipc": {},
	"mv": {}, "li": {}, "not": {}, "neg": {}, "seqz": {}, "snez": {}, "sltz": {}, "sgtz": {},
}

// ============================================================================
// Multi-Cycle Set
// ============================================================================
// Multiply/divide (3-stage pipeline), load/store (memory access), and
// floating-point operations (3-stage pipeline). Never forwarding producers,
// regardless of reported latency.

var MultiCycle = map[string]struct{}{
	// Multiply/divide
	"mul": {}, "mulh": {}, "mulhsu": {}, "mulhu": {},
	"div": {}, "divu": {}, "rem": {}, "remu": {},
	// Load/store
	"lw": {}, "lh": {}, "lb": {}, "lhu": {}, "lbu": {}, "flw": {},
	"sw": {}, "sh": {}, "sb": {}, "fsw": {},
	// Floating point
	"fadd.s": {}, "fsub.s": {}, "fmul.s": {}, "fdiv.s": {}, "fsqrt.s": {},
	"fmadd.s": {}, "fmsub.s": {}, "fnmadd.s": {}, "fnmsub.s": {},
	"fcvt.w.s": {}, "fcvt.wu.s": {}, "fcvt.s.w": {}, "fcvt.s.wu": {},
	"fmv.x.w": {}, "fmv.w.x": {},
	"feq.s": {}, "flt.s": {}, "fle.s": {},
	"fmin.s": {}, "fmax.s": {}, "fsgnj.s": {}, "fsgnjn.s": {}, "fsgnjx.s": {},
	"fclass.s": {},
}

// MulDiv is the subset of MultiCycle that categorizes as MULDIV rather than
// FPU (load/store are split out by mnemonic prefix in the inst package's
// classify).
var MulDiv = map[string]struct{}{
	"mul": {}, "mulh": {}, "mulhsu": {}, "mulhu": {},
	"div": {}, "divu": {}, "rem": {}, "remu": {},
}

// ============================================================================
// Branch / Jump Set
// ============================================================================

var BranchJump = map[string]struct{}{
	"beq": {}, "bne": {}, "blt": {}, "bge": {}, "bltu": {}, "bgeu": {},
	"jal": {}, "jalr": {}, "ret": {}, "j": {}, "jr": {}, "call": {},
}

// ConditionalBranch is the subset of BranchJump with [rs1, rs2, target]
// operand shape.
var ConditionalBranch = map[string]struct{}{
	"beq": {}, "bne": {}, "blt": {}, "bge": {}, "bltu": {}, "bgeu": {},
}

// ============================================================================
// Register Alias Maps
// ============================================================================
// Normalize symbolic RISC-V ABI register names to canonical xN/fN form.

var IntRegisterAlias = map[string]string{
	"zero": "x0", "ra": "x1", "sp": "x2", "gp": "x3",
	"tp": "x4", "t0": "x5", "t1": "x6", "t2": "x7",
	"s0": "x8", "fp": "x8", "s1": "x9",
	"a0": "x10", "a1": "x11", "a2": "x12", "a3": "x13",
	"a4": "x14", "a5": "x15", "a6": "x16", "a7": "x17",
	"s2": "x18", "s3": "x19", "s4": "x20", "s5": "x21",
	"s6": "x22", "s7": "x23", "s8": "x24", "s9": "x25",
	"s10": "x26", "s11": "x27",
	"t3": "x28", "t4": "x29", "t5": "x30", "t6": "x31",
}

var FloatRegisterAlias = map[string]string{
	"ft0": "f0", "ft1": "f1", "ft2": "f2", "ft3": "f3",
	"ft4": "f4", "ft5": "f5", "ft6": "f6", "ft7": "f7",
	"fs0": "f8", "fs1": "f9",
	"fa0": "f10", "fa1": "f11", "fa2": "f12", "fa3": "f13",
	"fa4": "f14", "fa5": "f15", "fa6": "f16", "fa7": "f17",
	"fs2": "f18", "fs3": "f19", "fs4": "f20", "fs5": "f21",
	"fs6": "f22", "fs7": "f23", "fs8": "f24", "fs9": "f25",
	"fs10": "f26", "fs11": "f27",
	"ft8": "f28", "ft9": "f29", "ft10": "f30", "ft11": "f31",
}

// CanonicalZero is the canonical name of the hardwired-zero integer register.
const CanonicalZero = "x0"

// NormalizeRegister strips whitespace, extracts a memory-operand base
// register from parens, and resolves ABI aliases to canonical form. A token
// that matches neither alias map is returned unchanged (already canonical,
// or not a register at all).
func NormalizeRegister(token string) string {
	token = strings.TrimSpace(token)
	if i := strings.IndexByte(token, '('); i >= 0 {
		if j := strings.IndexByte(token, ')'); j > i {
			token = token[i+1 : j]
		}
	}
	if canon, ok := IntRegisterAlias[token]; ok {
		return canon
	}
	if canon, ok := FloatRegisterAlias[token]; ok {
		return canon
	}
	return token
}
