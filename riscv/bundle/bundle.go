// Package bundle implements the fixed-capacity VLIW bundle container and
// its padding-position statistics.
package bundle

import "github.com/rvcore/vliw-repack/riscv/inst"

// Size is B, the fixed number of issue slots per VLIW bundle.
const Size = 8

// Bundle is a sequence of at most Size instructions sharing an origin
// address (the first instruction's address).
type Bundle struct {
	OriginAddress uint32
	Instructions  []inst.Instruction
}

// New creates an empty bundle anchored at originAddress.
func New(originAddress uint32) *Bundle {
	return &Bundle{OriginAddress: originAddress, Instructions: make([]inst.Instruction, 0, Size)}
}

// Add appends an instruction, silently ignoring the call once the bundle is
// full — callers are expected to check Full first.
func (b *Bundle) Add(in inst.Instruction) {
	if len(b.Instructions) >= Size {
		return
	}
	b.Instructions = append(b.Instructions, in)
}

// Full reports whether the bundle has exactly Size members.
func (b *Bundle) Full() bool {
	return len(b.Instructions) >= Size
}

// ValidCount returns the number of non-padding members.
func (b *Bundle) ValidCount() int {
	n := 0
	for _, in := range b.Instructions {
		if !in.IsPadding {
			n++
		}
	}
	return n
}

// PaddingStats describes where padding sits relative to valid instructions
// within a bundle: leading (prefix), trailing (suffix), and middle
// (interleaved — not trivially removable without breaking slot alignment).
type PaddingStats struct {
	Leading  int
	Trailing int
	Middle   int
}

// Removable is the padding that can be dropped outright: leading + trailing.
func (p PaddingStats) Removable() int {
	return p.Leading + p.Trailing
}

// Total is every padding slot in the bundle.
func (p PaddingStats) Total() int {
	return p.Leading + p.Trailing + p.Middle
}

// Padding scans the bundle's members once and classifies each padding slot
// as leading, trailing, or middle.
func (b *Bundle) Padding() PaddingStats {
	n := len(b.Instructions)
	if n == 0 {
		return PaddingStats{}
	}

	leading := 0
	for leading < n && b.Instructions[leading].IsPadding {
		leading++
	}

	trailing := 0
	for trailing < n-leading && b.Instructions[n-1-trailing].IsPadding {
		trailing++
	}

	total := 0
	for _, in := range b.Instructions {
		if in.IsPadding {
			total++
		}
	}

	return PaddingStats{
		Leading:  leading,
		Trailing: trailing,
		Middle:   total - leading - trailing,
	}
}

// FromStream groups a flat instruction slice into fixed-Size bundles in
// input order — the external "every group of exactly B consecutive
// instructions forms one input bundle" boundary rule.
func FromStream(instructions []inst.Instruction) []*Bundle {
	if len(instructions) == 0 {
		return nil
	}

	bundles := make([]*Bundle, 0, (len(instructions)+Size-1)/Size)
	var current *Bundle

	for i, in := range instructions {
		if i%Size == 0 {
			current = New(in.Address)
			bundles = append(bundles, current)
		}
		current.Add(in)
	}

	return bundles
}

// ValidInstructions flattens a bundle list into the ordered list of its
// non-padding members — the input to the dependency analyzer and repacker.
func ValidInstructions(bundles []*Bundle) []inst.Instruction {
	var valid []inst.Instruction
	for _, b := range bundles {
		for _, in := range b.Instructions {
			if !in.IsPadding {
				valid = append(valid, in)
			}
		}
	}
	return valid
}
