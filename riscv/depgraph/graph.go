// Package depgraph builds and queries the RAW dependency graph over a
// linear list of valid (non-padding) instructions, and implements the
// one-level forwarding eligibility test that the repacker's admission
// predicate is built on.
package depgraph

import "github.com/rvcore/vliw-repack/riscv/inst"

// maxSources is the number of source-operand slots a consumer can have
// (rs1, rs2, rs3) — also the maximum number of producers deps[i] can hold,
// since each source resolves to at most one producer.
const maxSources = 3

// depSet is a small inline collection of at most maxSources producer
// indices. Graph storage is a dense []depSet indexed by consumer index
// rather than a map, since deps[i] ⊆ {0..i-1} with at most 3 entries — a
// dense vector matches the single-pass nearest-producer construction and
// the linear admission loop.
type depSet struct {
	indices [maxSources]int
	n       int
}

func (d *depSet) add(i int) {
	if d.n < maxSources {
		d.indices[d.n] = i
		d.n++
	}
}

// Slice returns the producer indices as a plain slice, in the order they
// were discovered by the backward scan (nearest producer first).
func (d depSet) Slice() []int {
	return append([]int(nil), d.indices[:d.n]...)
}

// Contains reports whether i is one of the recorded producer indices.
func (d depSet) Contains(i int) bool {
	for k := 0; k < d.n; k++ {
		if d.indices[k] == i {
			return true
		}
	}
	return false
}

// Len is the number of recorded producers (0..3).
func (d depSet) Len() int {
	return d.n
}

// Graph is the RAW dependency graph over a valid-instruction list V.
// Graph.Deps(i) lists only indices j < i.
type Graph struct {
	valid []inst.Instruction
	deps  []depSet
}

// HasRAW reports whether producer defines a non-nullified destination
// register that consumer reads as one of rs1/rs2/rs3.
func HasRAW(producer, consumer inst.Instruction) bool {
	if !producer.Rd.Defined() || producer.Rd.IsIntegerZero() {
		return false
	}
	return producer.Rd == consumer.Rs1 ||
		producer.Rd == consumer.Rs2 ||
		producer.Rd == consumer.Rs3
}

// isOneLevelEligibleConsumer reports whether a consumer category can ever
// be the target of one-level forwarding: all single-cycle ALU operations
// plus all branch/jump operations (branches close the forwarding network
// from an ALU-produced flag/address computed in the same bundle).
func isOneLevelEligibleConsumer(consumer inst.Instruction) bool {
	return consumer.IsSingleCycle || consumer.Category == inst.BRANCH
}

// CanForward is the one-level forwarding eligibility test: true iff
// HasRAW(producer, consumer), the producer is single-cycle, and the
// consumer is one-level-eligible. Multi-cycle producers (loads, stores,
// FPU, MULDIV) never qualify, regardless of reported latency.
func CanForward(producer, consumer inst.Instruction) bool {
	if !HasRAW(producer, consumer) {
		return false
	}
	if !producer.IsSingleCycle {
		return false
	}
	return isOneLevelEligibleConsumer(consumer)
}

// Build constructs the dependency graph for a valid-instruction list. For
// each consumer, it scans backward from the immediately preceding
// instruction and records, for each of rs1/rs2/rs3 not yet satisfied, the
// index of the nearest preceding writer of that register (skipping writes
// to x0, which are never producers). Scanning for a consumer stops once
// every defined source is satisfied or the scan reaches index 0 — only the
// most recent writer of a register is its producer; earlier writes are
// shadowed.
func Build(valid []inst.Instruction) *Graph {
	g := &Graph{
		valid: valid,
		deps:  make([]depSet, len(valid)),
	}

	for i := range valid {
		consumer := valid[i]
		sources := definedSources(consumer)
		if len(sources) == 0 {
			continue
		}

		satisfied := make(map[Register]bool, len(sources))
		var set depSet

		for j := i - 1; j >= 0 && len(satisfied) < len(sources); j-- {
			producer := valid[j]
			if !producer.Rd.Defined() || producer.Rd.IsIntegerZero() {
				continue
			}
			reg := Register(producer.Rd)
			if !satisfied[reg] && containsSource(sources, reg) {
				satisfied[reg] = true
				set.add(j)
			}
		}

		g.deps[i] = set
	}

	return g
}

// Register is a type alias of inst.Register, used for the source-register
// bookkeeping in Build.
type Register = inst.Register

func definedSources(consumer inst.Instruction) []Register {
	var sources []Register
	if consumer.Rs1.Defined() {
		sources = append(sources, consumer.Rs1)
	}
	if consumer.Rs2.Defined() {
		sources = append(sources, consumer.Rs2)
	}
	if consumer.Rs3.Defined() {
		sources = append(sources, consumer.Rs3)
	}
	return dedupe(sources)
}

// dedupe collapses duplicate source registers (e.g. add x5, x5, x5) so that
// two distinct source slots reading the same register contribute at most
// one entry to deps[i].
func dedupe(sources []Register) []Register {
	if len(sources) < 2 {
		return sources
	}
	out := sources[:0:0]
	seen := make(map[Register]bool, len(sources))
	for _, s := range sources {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

func containsSource(sources []Register, reg Register) bool {
	for _, s := range sources {
		if s == reg {
			return true
		}
	}
	return false
}

// Deps returns the producer indices for consumer i, in discovery order.
func (g *Graph) Deps(i int) []int {
	return g.deps[i].Slice()
}

// DepsLen returns the number of producers for consumer i without
// allocating.
func (g *Graph) DepsLen(i int) int {
	return g.deps[i].n
}

// DepAt returns the k-th recorded producer index for consumer i.
func (g *Graph) DepAt(i, k int) int {
	return g.deps[i].indices[k]
}

// Len is the number of instructions the graph was built over.
func (g *Graph) Len() int {
	return len(g.valid)
}

// Instruction returns the i-th valid instruction the graph was built over.
func (g *Graph) Instruction(i int) inst.Instruction {
	return g.valid[i]
}

// OneLevelPairs returns every (producer, consumer) index pair in the graph
// for which CanForward holds — the "one-level candidate pairs" statistic.
func (g *Graph) OneLevelPairs() [][2]int {
	var pairs [][2]int
	for i := range g.valid {
		consumer := g.valid[i]
		for k := 0; k < g.deps[i].n; k++ {
			j := g.deps[i].indices[k]
			if CanForward(g.valid[j], consumer) {
				pairs = append(pairs, [2]int{j, i})
			}
		}
	}
	return pairs
}
