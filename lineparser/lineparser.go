// Package lineparser is the disassembly-line parser driver: it turns the
// external objdump-style text format into a flat Instruction stream and
// groups it into original VLIW bundles. It is a thin, tolerant I/O layer —
// the hard engineering lives in riscv/inst, riscv/depgraph, and
// riscv/repack.
package lineparser

import (
	"bufio"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/rvcore/vliw-repack/riscv/bundle"
	"github.com/rvcore/vliw-repack/riscv/inst"
	"github.com/rvcore/vliw-repack/rverr"
)

// lineRE matches "HHHHHHHH: EEEEEEEE \tMNEMONIC\tOPERANDS" — address in
// lowercase hex (variable width, no 0x prefix), an 8-hex-digit encoding,
// a whitespace-free mnemonic, and the remainder of the line as operands.
var lineRE = regexp.MustCompile(`^([0-9a-fA-F]+):\s+([0-9a-fA-F]{8})\s+(\S+)(?:\s+(.*))?$`)

// Parse reads a disassembly stream and returns the decoded instructions in
// input order. Non-matching lines (blanks, comments starting with '#',
// section headers, symbol labels ending in ':') are silently skipped — the
// format is external and often carries unknown noise. No
// rverr.UnparseableLine error is raised for them.
func Parse(r io.Reader) ([]inst.Instruction, error) {
	var instructions []inst.Instruction

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n")
		in, ok := parseLine(line)
		if ok {
			instructions = append(instructions, in)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return instructions, nil
}

// ParseFile opens path and parses its contents, wrapping a missing file as
// rverr.InputNotFound.
func ParseFile(path string) ([]inst.Instruction, error) {
	f, err := os.Open(path) // #nosec G304 -- operator-supplied disassembly path
	if err != nil {
		if os.IsNotExist(err) {
			return nil, rverr.New(rverr.Position{Filename: path}, rverr.InputNotFound, "disassembly file does not exist")
		}
		return nil, err
	}
	defer f.Close()

	return Parse(f)
}

// parseLine attempts to decode a single disassembly line, skipping
// anything that isn't an instruction line.
func parseLine(line string) (inst.Instruction, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return inst.Instruction{}, false
	}
	if strings.HasSuffix(trimmed, ":") && !lineRE.MatchString(trimmed) {
		return inst.Instruction{}, false
	}

	m := lineRE.FindStringSubmatch(line)
	if m == nil {
		return inst.Instruction{}, false
	}

	addr, err := strconv.ParseUint(m[1], 16, 32)
	if err != nil {
		return inst.Instruction{}, false
	}

	mnemonic := m[3]
	operands := strings.TrimSpace(m[4])

	return inst.Decode(uint32(addr), m[2], mnemonic, operands), true
}

// ParseBundles is a convenience entry point: parse the file, then group the flat instruction stream into fixed-size input
// bundles per the "every B consecutive instructions form one bundle" rule.
func ParseBundles(path string) ([]*bundle.Bundle, error) {
	instructions, err := ParseFile(path)
	if err != nil {
		return nil, err
	}
	return bundle.FromStream(instructions), nil
}
