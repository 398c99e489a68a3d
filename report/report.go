// Package report renders the fixed analysis metric set (spec'd external
// report surface) in three formats — plain text (text/template), JSON, and
// CSV — mirroring the teacher's PerformanceStatistics export trio.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"text/template"

	"github.com/rvcore/vliw-repack/riscv/inst"
	"github.com/rvcore/vliw-repack/riscv/stats"
)

// Report bundles every named metric from the external report surface:
// total bundles, instruction counts, padding breakdown, program size
// before/after, packing comparison, dependency/forwarding counts, and
// (optionally) the category histogram.
type Report struct {
	Filename string

	Original   stats.OriginalStats
	Padding    stats.PaddingStats
	Packing    stats.PackingStats
	Dependency stats.DependencyStats

	Histogram stats.CategoryHistogram // nil unless Verbose
	Verbose   bool
}

const textTemplate = `============================================================
RISC-V VLIW Repacker Analysis Report
============================================================
{{if .Filename}}File: {{.Filename}}
{{end}}
--- Original Bundle Statistics ---
Total bundles: {{.Original.TotalBundles}}
Total instructions: {{.Original.TotalInstructions}} ({{.Original.TotalBundles}} x 8)
Valid instructions: {{.Original.ValidInstructions}} ({{printf "%.1f" .Original.ValidPercentage}}%)
Padding instructions: {{sub .Original.TotalInstructions .Original.ValidInstructions}} ({{printf "%.1f" (sub100 .Original.ValidPercentage)}}%)
  - nop (0x00000013): {{.Original.NopCount}}
  - feq.s zero (0xa0002053): {{.Original.FeqZeroCount}}
Average valid per bundle: {{printf "%.2f" .Original.AvgValidPerBundle}}

--- Padding Analysis ---
Leading padding: {{.Padding.Leading}}
Trailing padding: {{.Padding.Trailing}}
Middle padding: {{.Padding.Middle}}
Removable padding: {{.Padding.Removable}} (leading + trailing)
Program size: {{.Padding.OriginalSizeBytes}} bytes
Optimized size: {{.Padding.OptimizedSizeBytes}} bytes
Size reduction: {{.Padding.SizeReductionBytes}} bytes ({{printf "%.1f" .Padding.ReductionPercentage}}%)
{{if .Verbose}}
--- Instruction Category Distribution ---
{{range $cat, $count := .Histogram}}{{$cat}}: {{$count}}
{{end}}{{end}}
--- One-Level Dependency Repacking ---
Optimized bundle count: {{.Packing.OptimizedBundleCount}}
Bundle reduction: {{.Packing.BundleReduction}} ({{printf "%.1f" .Packing.ReductionPercentage}}%)
Valid instructions: {{.Packing.OptimizedValidInstructions}} (unchanged)
Average valid per bundle: {{printf "%.2f" .Packing.OptimizedAvgDensity}}
Density improvement: {{printf "%.1f" .Packing.DensityImprovement}}%

Single-cycle ALU instructions: {{.Dependency.SingleCycleCount}}
One-level candidate pairs: {{.Dependency.OneLevelPairs}}
Merged pairs realized: {{.Dependency.MergedPairs}}
============================================================
`

var funcMap = template.FuncMap{
	"sub":    func(a, b int) int { return a - b },
	"sub100": func(pct float64) float64 { return 100 - pct },
}

var textTmpl = template.Must(template.New("report").Funcs(funcMap).Parse(textTemplate))

// WriteText renders the report as the plain UTF-8 document described by
// the external report surface contract.
func (r Report) WriteText(w io.Writer) error {
	return textTmpl.Execute(w, r)
}

// jsonHistogramEntry renders one histogram entry with a string category
// name, since encoding/json would key an int-based Category by its number
// rather than by Category.String().
type jsonHistogramEntry struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// WriteJSON renders the report as a single JSON document with every named
// metric from the external report surface.
func (r Report) WriteJSON(w io.Writer) error {
	doc := map[string]interface{}{
		"filename":             r.Filename,
		"total_bundles":        r.Original.TotalBundles,
		"total_instructions":   r.Original.TotalInstructions,
		"valid_instructions":   r.Original.ValidInstructions,
		"valid_percentage":     r.Original.ValidPercentage,
		"nop_count":            r.Original.NopCount,
		"feq_zero_count":       r.Original.FeqZeroCount,
		"avg_valid_per_bundle": r.Original.AvgValidPerBundle,

		"leading_padding":      r.Padding.Leading,
		"trailing_padding":     r.Padding.Trailing,
		"middle_padding":       r.Padding.Middle,
		"removable_padding":    r.Padding.Removable,
		"original_size_bytes":  r.Padding.OriginalSizeBytes,
		"optimized_size_bytes": r.Padding.OptimizedSizeBytes,
		"size_reduction_bytes": r.Padding.SizeReductionBytes,
		"reduction_percentage": r.Padding.ReductionPercentage,

		"optimized_bundle_count": r.Packing.OptimizedBundleCount,
		"bundle_reduction":       r.Packing.BundleReduction,
		"bundle_reduction_pct":   r.Packing.ReductionPercentage,
		"optimized_avg_density":  r.Packing.OptimizedAvgDensity,
		"density_improvement":    r.Packing.DensityImprovement,

		"single_cycle_count": r.Dependency.SingleCycleCount,
		"one_level_pairs":    r.Dependency.OneLevelPairs,
		"merged_pairs":       r.Dependency.MergedPairs,
	}

	if r.Verbose && r.Histogram != nil {
		doc["category_histogram"] = histogramEntries(r.Histogram)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(doc)
}

func histogramEntries(h stats.CategoryHistogram) []jsonHistogramEntry {
	entries := make([]jsonHistogramEntry, 0, len(inst.Categories))
	for _, c := range inst.Categories {
		entries = append(entries, jsonHistogramEntry{Category: c.String(), Count: h[c]})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Category < entries[j].Category })
	return entries
}

// WriteCSV renders the report as a flat "Metric,Value" CSV, matching the
// teacher's PerformanceStatistics.ExportCSV shape.
func (r Report) WriteCSV(w io.Writer) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write([]string{"Metric", "Value"}); err != nil {
		return err
	}

	rows := [][]string{
		{"Total Bundles", fmt.Sprintf("%d", r.Original.TotalBundles)},
		{"Total Instructions", fmt.Sprintf("%d", r.Original.TotalInstructions)},
		{"Valid Instructions", fmt.Sprintf("%d", r.Original.ValidInstructions)},
		{"Valid Percentage", fmt.Sprintf("%.1f", r.Original.ValidPercentage)},
		{"Nop Count", fmt.Sprintf("%d", r.Original.NopCount)},
		{"Feq Zero Count", fmt.Sprintf("%d", r.Original.FeqZeroCount)},
		{"Leading Padding", fmt.Sprintf("%d", r.Padding.Leading)},
		{"Trailing Padding", fmt.Sprintf("%d", r.Padding.Trailing)},
		{"Middle Padding", fmt.Sprintf("%d", r.Padding.Middle)},
		{"Removable Padding", fmt.Sprintf("%d", r.Padding.Removable)},
		{"Original Size Bytes", fmt.Sprintf("%d", r.Padding.OriginalSizeBytes)},
		{"Optimized Size Bytes", fmt.Sprintf("%d", r.Padding.OptimizedSizeBytes)},
		{"Size Reduction Bytes", fmt.Sprintf("%d", r.Padding.SizeReductionBytes)},
		{"Optimized Bundle Count", fmt.Sprintf("%d", r.Packing.OptimizedBundleCount)},
		{"Bundle Reduction", fmt.Sprintf("%d", r.Packing.BundleReduction)},
		{"Bundle Reduction Pct", fmt.Sprintf("%.1f", r.Packing.ReductionPercentage)},
		{"Density Improvement", fmt.Sprintf("%.1f", r.Packing.DensityImprovement)},
		{"Single Cycle Count", fmt.Sprintf("%d", r.Dependency.SingleCycleCount)},
		{"One Level Pairs", fmt.Sprintf("%d", r.Dependency.OneLevelPairs)},
		{"Merged Pairs", fmt.Sprintf("%d", r.Dependency.MergedPairs)},
	}

	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	if r.Verbose && r.Histogram != nil {
		if err := writer.Write([]string{}); err != nil {
			return err
		}
		if err := writer.Write([]string{"Category", "Count"}); err != nil {
			return err
		}
		for _, e := range histogramEntries(r.Histogram) {
			if err := writer.Write([]string{e.Category, fmt.Sprintf("%d", e.Count)}); err != nil {
				return err
			}
		}
	}

	return nil
}

// Write renders the report in the given format: "text", "json", or "csv".
// Unknown formats fall back to text.
func (r Report) Write(w io.Writer, format string) error {
	switch format {
	case "json":
		return r.WriteJSON(w)
	case "csv":
		return r.WriteCSV(w)
	default:
		return r.WriteText(w)
	}
}
