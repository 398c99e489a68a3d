// Package disasm re-emits a repacked bundle stream as assembly text, in
// the two variants the external export surface specifies: Aligned
// (preserves original addresses, pads each window to 8 slots) and Compact
// (omits padding, addresses recomputed from a configurable base).
package disasm

import (
	"fmt"
	"io"

	"github.com/rvcore/vliw-repack/riscv/bundle"
)

const bytesPerSlot = 4

// WriteAligned preserves original addresses: each optimized bundle's
// instructions occupy the first slots of an 8-slot window, with empty
// slots printed as nop/00000013. origins supplies one origin address per
// window, in order (normally the original bundles' origin addresses).
func WriteAligned(w io.Writer, optimized []*bundle.Bundle, origins []uint32) error {
	for i, b := range optimized {
		origin := b.OriginAddress
		if i < len(origins) {
			origin = origins[i]
		}

		if _, err := fmt.Fprintf(w, "# === bundle %d (valid: %d) ===\n", i, b.ValidCount()); err != nil {
			return err
		}

		addr := origin
		for slot := 0; slot < bundle.Size; slot++ {
			if slot < len(b.Instructions) {
				in := b.Instructions[slot]
				if _, err := fmt.Fprintf(w, "%08x: %s \t%s\t%s\n", addr, in.Encoding, in.Mnemonic, in.OperandText); err != nil {
					return err
				}
			} else {
				if _, err := fmt.Fprintf(w, "%08x: 00000013 \tnop\n", addr); err != nil {
					return err
				}
			}
			addr += bytesPerSlot
		}
	}
	return nil
}

// WriteCompact omits padding entirely: addresses are recomputed from
// baseAddress with a 4-byte stride, preserving inter-bundle gaps equal to
// the unfilled slots times 4 bytes (so a downstream tool still sees where
// a bundle boundary fell, without emitting the nop itself).
func WriteCompact(w io.Writer, optimized []*bundle.Bundle, baseAddress uint32) error {
	addr := baseAddress
	for i, b := range optimized {
		if _, err := fmt.Fprintf(w, "# === bundle %d (valid: %d) ===\n", i, b.ValidCount()); err != nil {
			return err
		}

		for _, in := range b.Instructions {
			if in.IsPadding {
				continue
			}
			if _, err := fmt.Fprintf(w, "%08x: %s \t%s\t%s\n", addr, in.Encoding, in.Mnemonic, in.OperandText); err != nil {
				return err
			}
			addr += bytesPerSlot
		}

		unfilled := bundle.Size - b.ValidCount()
		addr += uint32(unfilled) * bytesPerSlot
	}
	return nil
}
