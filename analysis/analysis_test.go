package analysis

import (
	"os"
	"strings"
	"testing"
)

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := t.TempDir() + "/program.dis"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed writing fixture: %v", err)
	}
	return path
}

const fixture = `00008000: 00150513 	addi	a0, a0, 1
00008004: 00a50533 	add	a0, a0, a0
00008008: 00000013 	nop
0000800c: 00000013 	nop
00008010: 00012503 	lw	a1, 0(sp)
00008014: 00b50533 	add	a0, a1, a0
00008018: 00000013 	nop
0000801c: 00000013 	nop
`

func TestRunExecutesFullPipeline(t *testing.T) {
	path := writeFixture(t, fixture)

	var steps []string
	result, err := Run(path, func(step, total int, message string) {
		if total != 6 {
			t.Errorf("total = %d, want 6", total)
		}
		steps = append(steps, message)
	})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if len(steps) != 6 {
		t.Errorf("expected 6 progress notifications, got %d", len(steps))
	}

	if len(result.Original) != 1 {
		t.Fatalf("expected 1 original bundle, got %d", len(result.Original))
	}
	if len(result.Valid) != 4 {
		t.Fatalf("expected 4 valid instructions, got %d", len(result.Valid))
	}
	if result.Graph == nil {
		t.Fatal("expected a non-nil dependency graph")
	}
	if len(result.Optimized) == 0 {
		t.Fatal("expected at least one optimized bundle")
	}
}

func TestRunNilProgressIsSafe(t *testing.T) {
	path := writeFixture(t, fixture)
	if _, err := Run(path, nil); err != nil {
		t.Fatalf("Run with nil progress errored: %v", err)
	}
}

func TestRunMissingFileErrors(t *testing.T) {
	if _, err := Run("/nonexistent/program.dis", nil); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestResultReportAndOriginAddresses(t *testing.T) {
	path := writeFixture(t, fixture)
	result, err := Run(path, nil)
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	rep := result.Report(false)
	if rep.Filename != path {
		t.Errorf("report filename = %q, want %q", rep.Filename, path)
	}
	if rep.Histogram != nil {
		t.Error("non-verbose report must not set Histogram")
	}

	verboseRep := result.Report(true)
	if verboseRep.Histogram == nil {
		t.Error("verbose report must set Histogram")
	}

	origins := result.OriginAddresses()
	if len(origins) != len(result.Original) {
		t.Fatalf("expected %d origin addresses, got %d", len(result.Original), len(origins))
	}
	if origins[0] != 0x8000 {
		t.Errorf("origins[0] = %#x, want 0x8000", origins[0])
	}
}

func TestRunSkipsBlankAndCommentLines(t *testing.T) {
	path := writeFixture(t, "; header\n"+fixture+"\n# trailing comment\n")
	result, err := Run(path, nil)
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if !strings.Contains(result.Filename, "program.dis") {
		t.Errorf("unexpected filename: %s", result.Filename)
	}
	if len(result.Original) != 1 {
		t.Errorf("expected 1 original bundle, got %d", len(result.Original))
	}
	if len(result.Valid) != 4 {
		t.Errorf("expected 4 valid instructions, got %d", len(result.Valid))
	}
}
