package depgraph

import (
	"testing"

	"github.com/rvcore/vliw-repack/riscv/inst"
)

func alu(addr uint32, rd, rs1, rs2 string) inst.Instruction {
	in := inst.Decode(addr, "00000033", "add", rs1+", "+rs2)
	in.Rd, in.Rs1, in.Rs2 = inst.Register(rd), inst.Register(rs1), inst.Register(rs2)
	in.Category = inst.ALU
	in.IsSingleCycle = true
	return in
}

func load(addr uint32, rd, rs1 string) inst.Instruction {
	in := inst.Decode(addr, "00000003", "lw", rs1)
	in.Rd, in.Rs1 = inst.Register(rd), inst.Register(rs1)
	in.Category = inst.LOAD
	in.IsSingleCycle = false
	return in
}

func branch(addr uint32, rs1, rs2 string) inst.Instruction {
	in := inst.Decode(addr, "00000063", "beq", rs1+", "+rs2)
	in.Rs1, in.Rs2 = inst.Register(rs1), inst.Register(rs2)
	in.Category = inst.BRANCH
	in.IsSingleCycle = false
	return in
}

// (a) Independent ALU instructions: no RAW edges at all.
func TestIndependentInstructionsHaveNoDeps(t *testing.T) {
	valid := []inst.Instruction{
		alu(0, "x5", "x1", "x2"),
		alu(4, "x6", "x3", "x4"),
		alu(8, "x7", "x1", "x2"),
		alu(12, "x8", "x3", "x4"),
	}
	g := Build(valid)
	for i := range valid {
		if n := g.DepsLen(i); n != 0 {
			t.Errorf("instruction %d: expected 0 deps, got %d", i, n)
		}
	}
	if pairs := g.OneLevelPairs(); len(pairs) != 0 {
		t.Errorf("expected 0 forwardable pairs, got %d", len(pairs))
	}
}

// (b) A forwardable ALU chain: each instruction consumes the previous one's
// result, and every producer/consumer pair is single-cycle ALU.
func TestALUChainIsFullyForwardable(t *testing.T) {
	valid := []inst.Instruction{
		alu(0, "x5", "x1", "x2"),
		alu(4, "x6", "x5", "x2"),
		alu(8, "x7", "x6", "x2"),
		alu(12, "x8", "x7", "x2"),
	}
	g := Build(valid)
	for i := 1; i < len(valid); i++ {
		if deps := g.Deps(i); len(deps) != 1 || deps[0] != i-1 {
			t.Fatalf("instruction %d: deps = %v, want [%d]", i, deps, i-1)
		}
		if !CanForward(valid[i-1], valid[i]) {
			t.Errorf("expected CanForward(%d,%d)", i-1, i)
		}
	}
	if pairs := g.OneLevelPairs(); len(pairs) != 3 {
		t.Errorf("expected 3 forwardable pairs, got %d", len(pairs))
	}
}

// (c) Load-then-use: RAW edge exists but the producer is multi-cycle, so it
// can never forward.
func TestLoadThenUseIsNotForwardable(t *testing.T) {
	valid := []inst.Instruction{
		load(0, "x5", "x1"),
		alu(4, "x6", "x5", "x2"),
	}
	g := Build(valid)
	if deps := g.Deps(1); len(deps) != 1 || deps[0] != 0 {
		t.Fatalf("deps = %v, want [0]", deps)
	}
	if CanForward(valid[0], valid[1]) {
		t.Error("load producer must never be forwardable")
	}
	if pairs := g.OneLevelPairs(); len(pairs) != 0 {
		t.Errorf("expected 0 forwardable pairs for load-then-use, got %d", len(pairs))
	}
}

// (d) ALU feeding a branch: the redesigned rule allows a single-cycle ALU
// producer to forward into a branch/jump consumer, not just another ALU.
func TestALUFeedsBranchIsForwardable(t *testing.T) {
	valid := []inst.Instruction{
		alu(0, "x5", "x1", "x2"),
		branch(4, "x5", "x2"),
	}
	g := Build(valid)
	if deps := g.Deps(1); len(deps) != 1 || deps[0] != 0 {
		t.Fatalf("deps = %v, want [0]", deps)
	}
	if !CanForward(valid[0], valid[1]) {
		t.Error("expected ALU-to-branch forwarding to be eligible")
	}
	if pairs := g.OneLevelPairs(); len(pairs) != 1 {
		t.Errorf("expected 1 forwardable pair, got %d", len(pairs))
	}
}

// (e) Writes to x0 are nullified and never become producers.
func TestZeroRegisterWriteIsNotAProducer(t *testing.T) {
	valid := []inst.Instruction{
		alu(0, "x0", "x1", "x2"),
		alu(4, "x6", "x0", "x2"),
	}
	g := Build(valid)
	if n := g.DepsLen(1); n != 0 {
		t.Errorf("expected consumer reading x0 to have 0 deps, got %d", n)
	}
	if pairs := g.OneLevelPairs(); len(pairs) != 0 {
		t.Errorf("expected 0 forwardable pairs, got %d", len(pairs))
	}
}

// (f) A shadowed producer: the nearest writer of a register is the only
// recorded producer, not any earlier write of the same register.
func TestShadowedProducerKeepsOnlyNearestWriter(t *testing.T) {
	valid := []inst.Instruction{
		alu(0, "x5", "x1", "x2"), // shadowed
		alu(4, "x5", "x3", "x4"), // nearest producer of x5
		alu(8, "x6", "x5", "x2"), // consumer
	}
	g := Build(valid)
	deps := g.Deps(2)
	if len(deps) != 1 {
		t.Fatalf("expected exactly 1 producer, got %v", deps)
	}
	if deps[0] != 1 {
		t.Errorf("expected nearest producer index 1, got %d", deps[0])
	}
	if g.Deps(2)[0] == 0 {
		t.Error("consumer must not depend on the shadowed earlier write")
	}
}

func TestDedupeRepeatedSourceRegister(t *testing.T) {
	valid := []inst.Instruction{
		alu(0, "x5", "x1", "x2"),
		alu(4, "x6", "x5", "x5"),
	}
	g := Build(valid)
	if n := g.DepsLen(1); n != 1 {
		t.Errorf("expected deduped single dep for repeated source register, got %d", n)
	}
}
