// Package analysis coordinates the full parse -> analyze -> pack -> report
// pipeline, the way the teacher's service package wraps the VM for the
// debugger and API layers. It owns no I/O of its own beyond the initial
// parse; everything downstream is pure transformation over immutable
// structures, per the core's single-threaded, batch-oriented design.
package analysis

import (
	"github.com/rvcore/vliw-repack/lineparser"
	"github.com/rvcore/vliw-repack/report"
	"github.com/rvcore/vliw-repack/riscv/bundle"
	"github.com/rvcore/vliw-repack/riscv/depgraph"
	"github.com/rvcore/vliw-repack/riscv/inst"
	"github.com/rvcore/vliw-repack/riscv/repack"
	"github.com/rvcore/vliw-repack/riscv/stats"
)

// Result holds every artifact produced by a single run: the original
// bundle list, the flattened valid-instruction list, its dependency graph,
// the optimized bundle list, and the merge count realized by the repacker.
type Result struct {
	Filename string

	Original  []*bundle.Bundle
	Valid     []inst.Instruction
	Graph     *depgraph.Graph
	Optimized []*bundle.Bundle

	MergedPairs int
}

// ProgressFunc is called once per named pipeline step, for callers (the CLI
// verbose mode, the API's WebSocket broadcaster) that want to narrate
// progress. step is 1-indexed; total is always 6.
type ProgressFunc func(step, total int, message string)

// Run executes the full pipeline over the disassembly file at path. A nil
// onProgress is safe and simply skips narration.
func Run(path string, onProgress ProgressFunc) (*Result, error) {
	notify := onProgress
	if notify == nil {
		notify = func(int, int, string) {}
	}

	notify(1, 6, "parsing disassembly file")
	instructions, err := lineparser.ParseFile(path)
	if err != nil {
		return nil, err
	}
	original := bundle.FromStream(instructions)

	notify(2, 6, "extracting valid instructions")
	valid := bundle.ValidInstructions(original)

	notify(3, 6, "building dependency graph")
	graph := depgraph.Build(valid)

	notify(4, 6, "repacking with one-level forwarding")
	packResult := repack.Repack(valid, graph)

	notify(5, 6, "comparing original and optimized bundles")
	notify(6, 6, "analysis complete")

	return &Result{
		Filename:    path,
		Original:    original,
		Valid:       valid,
		Graph:       graph,
		Optimized:   packResult.Bundles,
		MergedPairs: packResult.MergedPairs,
	}, nil
}

// Report builds the full statistics report from a completed Result.
// verbose additionally includes the per-category instruction histogram.
func (r *Result) Report(verbose bool) report.Report {
	rep := report.Report{
		Filename:   r.Filename,
		Original:   stats.AnalyzeOriginal(r.Original),
		Padding:    stats.AnalyzePadding(r.Original),
		Packing:    stats.ComparePacking(r.Original, r.Optimized),
		Dependency: stats.AnalyzeDependency(r.Valid, r.Graph, r.MergedPairs),
		Verbose:    verbose,
	}
	if verbose {
		rep.Histogram = stats.Histogram(r.Valid)
	}
	return rep
}

// OriginAddresses returns one origin address per original bundle, in
// order — used by the aligned disassembly export to preserve original PC
// placement.
func (r *Result) OriginAddresses() []uint32 {
	addrs := make([]uint32, len(r.Original))
	for i, b := range r.Original {
		addrs[i] = b.OriginAddress
	}
	return addrs
}
