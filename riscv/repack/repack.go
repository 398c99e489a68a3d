// Package repack implements the greedy, order-preserving VLIW bundle
// packer: it walks the valid-instruction stream once and forms output
// bundles under an admission predicate derived from the dependency graph,
// exploiting one-level forwarding wherever legal.
package repack

import (
	"github.com/rvcore/vliw-repack/riscv/bundle"
	"github.com/rvcore/vliw-repack/riscv/depgraph"
	"github.com/rvcore/vliw-repack/riscv/inst"
)

// Result is the repacker's output: the optimized bundle list and the
// merge-pair count (one per consumer admitted via forwarding, not per
// producer — see admit).
type Result struct {
	Bundles     []*bundle.Bundle
	MergedPairs int
}

// state tracks packing progress across the single linear pass.
type state struct {
	valid         []inst.Instruction
	graph         *depgraph.Graph
	packedBefore  map[int]bool
	current       *bundle.Bundle
	currentIdx    []int
	currentIdxSet map[int]bool
	out           []*bundle.Bundle
	mergedPairs   int
}

// Repack runs the admission-predicate packing loop described in the core
// design: iterate i = 0..n-1; if the current bundle is not full and every
// dependency of v_i is satisfied (already closed, or in the current bundle
// with a forwardable relationship), admit v_i; otherwise close the current
// bundle and start a fresh one containing only v_i. The final non-empty
// bundle is closed after the loop. Empty input yields no output bundles and
// a zero merge count.
func Repack(valid []inst.Instruction, graph *depgraph.Graph) Result {
	if len(valid) == 0 {
		return Result{}
	}

	s := &state{
		valid:         valid,
		graph:         graph,
		packedBefore:  make(map[int]bool),
		currentIdxSet: make(map[int]bool),
	}
	s.startNewBundle(0)

	for i := range valid {
		if i == 0 {
			s.admit(0)
			continue
		}
		if !s.current.Full() && s.canAdd(i) {
			s.admit(i)
		} else {
			s.closeCurrent()
			s.startNewBundle(i)
			s.admit(i)
		}
	}
	s.closeCurrent()

	return Result{Bundles: s.out, MergedPairs: s.mergedPairs}
}

func (s *state) startNewBundle(i int) {
	s.current = bundle.New(s.valid[i].Address)
	s.currentIdx = s.currentIdx[:0]
	s.currentIdxSet = make(map[int]bool)
}

// canAdd is the admission predicate: every dependency of consumer i must be
// satisfied by either residing in an already-closed bundle, or by being
// present in the current bundle with a forwardable relationship. A
// dependency not yet emitted at all fails — impossible during this linear
// scan since producers always precede consumers, but it guards against any
// future reordering extension.
func (s *state) canAdd(i int) bool {
	n := s.graph.DepsLen(i)
	for k := 0; k < n; k++ {
		j := s.graph.DepAt(i, k)
		switch {
		case s.packedBefore[j]:
			continue
		case s.currentIdxSet[j]:
			if !depgraph.CanForward(s.valid[j], s.valid[i]) {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// admit appends v_i to the current bundle and updates the merge counter:
// incremented at most once per consumer, even if multiple producers in the
// current bundle are individually forwardable.
func (s *state) admit(i int) {
	s.current.Add(s.valid[i])
	s.currentIdx = append(s.currentIdx, i)
	s.currentIdxSet[i] = true

	n := s.graph.DepsLen(i)
	for k := 0; k < n; k++ {
		j := s.graph.DepAt(i, k)
		if s.currentIdxSet[j] && depgraph.CanForward(s.valid[j], s.valid[i]) {
			s.mergedPairs++
			break
		}
	}
}

func (s *state) closeCurrent() {
	if s.current == nil || len(s.current.Instructions) == 0 {
		return
	}
	s.out = append(s.out, s.current)
	for _, idx := range s.currentIdx {
		s.packedBefore[idx] = true
	}
}
