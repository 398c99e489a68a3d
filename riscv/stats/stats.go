// Package stats collects the original-vs-optimized occupancy statistics
// the report and export surfaces render: counts, padding breakdown,
// category histogram, and bundle density.
package stats

import (
	"github.com/rvcore/vliw-repack/riscv/bundle"
	"github.com/rvcore/vliw-repack/riscv/depgraph"
	"github.com/rvcore/vliw-repack/riscv/inst"
)

const bytesPerSlot = 4

// OriginalStats summarizes the original (pre-repack) bundle stream.
type OriginalStats struct {
	TotalBundles      int
	TotalInstructions int
	ValidInstructions int
	ValidPercentage   float64

	NopCount      int
	FeqZeroCount  int
	AvgValidPerBundle float64
}

// PaddingStats summarizes padding location and removability across all
// original bundles.
type PaddingStats struct {
	Leading  int
	Trailing int
	Middle   int
	Total    int

	Removable int

	OriginalSizeBytes  int
	OptimizedSizeBytes int
	SizeReductionBytes int
	ReductionPercentage float64
}

// PackingStats compares the original and optimized bundle counts and
// density.
type PackingStats struct {
	OriginalBundleCount  int
	OptimizedBundleCount int
	BundleReduction      int
	ReductionPercentage  float64

	OriginalValidInstructions  int
	OptimizedValidInstructions int

	OriginalAvgDensity  float64
	OptimizedAvgDensity float64
	DensityImprovement  float64
}

// DependencyStats summarizes the dependency graph: how many single-cycle
// instructions exist, how many valid instructions are independent vs
// dependent, how many one-level-forwardable pairs the graph admits, and how
// many of those were actually realized by the repacker.
type DependencyStats struct {
	SingleCycleCount int
	IndependentCount int
	DependentCount   int
	OneLevelPairs    int
	MergedPairs      int
}

// CategoryHistogram maps each Category to its count among valid
// instructions. All eight categories are always present, even at zero.
type CategoryHistogram map[inst.Category]int

// AnalyzeOriginal computes OriginalStats by scanning the original bundle
// list once.
func AnalyzeOriginal(bundles []*bundle.Bundle) OriginalStats {
	var s OriginalStats
	s.TotalBundles = len(bundles)

	for _, b := range bundles {
		s.TotalInstructions += len(b.Instructions)
		s.ValidInstructions += b.ValidCount()
		for _, in := range b.Instructions {
			if !in.IsPadding {
				continue
			}
			switch in.Encoding {
			case "00000013":
				s.NopCount++
			case "a0002053":
				s.FeqZeroCount++
			default:
				if in.Mnemonic == "nop" {
					s.NopCount++
				}
			}
		}
	}

	if s.TotalInstructions > 0 {
		s.ValidPercentage = float64(s.ValidInstructions) / float64(s.TotalInstructions) * 100
	}
	if s.TotalBundles > 0 {
		s.AvgValidPerBundle = float64(s.ValidInstructions) / float64(s.TotalBundles)
	}
	return s
}

// AnalyzePadding computes PaddingStats by summing each bundle's own
// Padding() classification.
func AnalyzePadding(bundles []*bundle.Bundle) PaddingStats {
	var p PaddingStats
	totalInstructions := 0

	for _, b := range bundles {
		ps := b.Padding()
		p.Leading += ps.Leading
		p.Trailing += ps.Trailing
		p.Middle += ps.Middle
		totalInstructions += len(b.Instructions)
	}

	p.Total = p.Leading + p.Trailing + p.Middle
	p.Removable = p.Leading + p.Trailing

	p.OriginalSizeBytes = totalInstructions * bytesPerSlot
	p.OptimizedSizeBytes = (totalInstructions - p.Removable) * bytesPerSlot
	p.SizeReductionBytes = p.OriginalSizeBytes - p.OptimizedSizeBytes
	if p.OriginalSizeBytes > 0 {
		p.ReductionPercentage = float64(p.SizeReductionBytes) / float64(p.OriginalSizeBytes) * 100
	}
	return p
}

// ComparePacking computes PackingStats from the original and optimized
// bundle lists.
func ComparePacking(original, optimized []*bundle.Bundle) PackingStats {
	var p PackingStats
	p.OriginalBundleCount = len(original)
	p.OptimizedBundleCount = len(optimized)
	p.BundleReduction = p.OriginalBundleCount - p.OptimizedBundleCount
	if p.OriginalBundleCount > 0 {
		p.ReductionPercentage = float64(p.BundleReduction) / float64(p.OriginalBundleCount) * 100
	}

	for _, b := range original {
		p.OriginalValidInstructions += b.ValidCount()
	}
	for _, b := range optimized {
		p.OptimizedValidInstructions += b.ValidCount()
	}

	if p.OriginalBundleCount > 0 {
		p.OriginalAvgDensity = float64(p.OriginalValidInstructions) / float64(p.OriginalBundleCount)
	}
	if p.OptimizedBundleCount > 0 {
		p.OptimizedAvgDensity = float64(p.OptimizedValidInstructions) / float64(p.OptimizedBundleCount)
	}
	if p.OriginalAvgDensity > 0 {
		p.DensityImprovement = (p.OptimizedAvgDensity - p.OriginalAvgDensity) / p.OriginalAvgDensity * 100
	}
	return p
}

// AnalyzeDependency computes DependencyStats from the valid-instruction
// list and its dependency graph. mergedPairs is supplied by the repacker
// since it depends on the packing outcome, not the graph alone.
func AnalyzeDependency(valid []inst.Instruction, g *depgraph.Graph, mergedPairs int) DependencyStats {
	var d DependencyStats
	d.MergedPairs = mergedPairs

	for i, in := range valid {
		if in.IsSingleCycle {
			d.SingleCycleCount++
		}
		if g.DepsLen(i) == 0 {
			d.IndependentCount++
		} else {
			d.DependentCount++
		}
	}

	d.OneLevelPairs = len(g.OneLevelPairs())
	return d
}

// Histogram builds the category distribution over valid instructions,
// always including all eight categories (at zero if unseen).
func Histogram(valid []inst.Instruction) CategoryHistogram {
	h := make(CategoryHistogram, len(inst.Categories))
	for _, c := range inst.Categories {
		h[c] = 0
	}
	for _, in := range valid {
		h[in.Category]++
	}
	return h
}
