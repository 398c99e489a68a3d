package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rvcore/vliw-repack/riscv/inst"
	"github.com/rvcore/vliw-repack/riscv/stats"
)

func sampleReport(verbose bool) Report {
	r := Report{
		Filename: "program.dis",
		Original: stats.OriginalStats{
			TotalBundles: 2, TotalInstructions: 16, ValidInstructions: 12,
			ValidPercentage: 75, NopCount: 3, FeqZeroCount: 1, AvgValidPerBundle: 6,
		},
		Padding: stats.PaddingStats{
			Leading: 2, Trailing: 2, Middle: 0, Total: 4, Removable: 4,
			OriginalSizeBytes: 64, OptimizedSizeBytes: 48, SizeReductionBytes: 16, ReductionPercentage: 25,
		},
		Packing: stats.PackingStats{
			OriginalBundleCount: 2, OptimizedBundleCount: 1, BundleReduction: 1, ReductionPercentage: 50,
			OptimizedValidInstructions: 12, OptimizedAvgDensity: 12, DensityImprovement: 100,
		},
		Dependency: stats.DependencyStats{SingleCycleCount: 8, OneLevelPairs: 3, MergedPairs: 3},
		Verbose:    verbose,
	}
	if verbose {
		r.Histogram = stats.Histogram([]inst.Instruction{})
	}
	return r
}

func TestWriteTextIncludesKeyMetrics(t *testing.T) {
	var buf bytes.Buffer
	if err := sampleReport(false).WriteText(&buf); err != nil {
		t.Fatalf("WriteText error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"program.dis", "Total bundles: 2", "Merged pairs realized: 3"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected text output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestWriteTextVerboseIncludesHistogram(t *testing.T) {
	var buf bytes.Buffer
	if err := sampleReport(true).WriteText(&buf); err != nil {
		t.Fatalf("WriteText error: %v", err)
	}
	if !strings.Contains(buf.String(), "Instruction Category Distribution") {
		t.Error("expected verbose output to include category distribution section")
	}
}

func TestWriteJSONRoundTrips(t *testing.T) {
	var buf bytes.Buffer
	if err := sampleReport(false).WriteJSON(&buf); err != nil {
		t.Fatalf("WriteJSON error: %v", err)
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if doc["filename"] != "program.dis" {
		t.Errorf("filename = %v, want program.dis", doc["filename"])
	}
	if doc["merged_pairs"].(float64) != 3 {
		t.Errorf("merged_pairs = %v, want 3", doc["merged_pairs"])
	}
	if _, present := doc["category_histogram"]; present {
		t.Error("non-verbose JSON must not include category_histogram")
	}
}

func TestWriteJSONVerboseIncludesHistogram(t *testing.T) {
	var buf bytes.Buffer
	if err := sampleReport(true).WriteJSON(&buf); err != nil {
		t.Fatalf("WriteJSON error: %v", err)
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if _, present := doc["category_histogram"]; !present {
		t.Error("verbose JSON must include category_histogram")
	}
}

func TestWriteCSVHasHeaderAndMetricRows(t *testing.T) {
	var buf bytes.Buffer
	if err := sampleReport(false).WriteCSV(&buf); err != nil {
		t.Fatalf("WriteCSV error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if lines[0] != "Metric,Value" {
		t.Errorf("expected CSV header, got %q", lines[0])
	}
	if !strings.Contains(buf.String(), "Merged Pairs,3") {
		t.Errorf("expected Merged Pairs row, got:\n%s", buf.String())
	}
}

func TestWriteDispatchesOnFormat(t *testing.T) {
	r := sampleReport(false)

	var jsonBuf bytes.Buffer
	if err := r.Write(&jsonBuf, "json"); err != nil {
		t.Fatalf("Write(json) error: %v", err)
	}
	if !json.Valid(jsonBuf.Bytes()) {
		t.Error("Write(json) did not produce valid JSON")
	}

	var fallbackBuf bytes.Buffer
	if err := r.Write(&fallbackBuf, "unknown-format"); err != nil {
		t.Fatalf("Write(unknown) error: %v", err)
	}
	if !strings.Contains(fallbackBuf.String(), "RISC-V VLIW Repacker Analysis Report") {
		t.Error("expected unknown format to fall back to text")
	}
}
