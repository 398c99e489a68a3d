// Package tui is the interactive bundle browser: original and repacked
// bundles side by side, with forwarding edges annotated for the selected
// optimized bundle, in the teacher's tcell/tview debugger idiom.
package tui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/rvcore/vliw-repack/analysis"
	"github.com/rvcore/vliw-repack/riscv/bundle"
	"github.com/rvcore/vliw-repack/riscv/depgraph"
	"github.com/rvcore/vliw-repack/riscv/inst"
)

// TUI is the text user interface over one completed analysis Result.
type TUI struct {
	Result *analysis.Result
	App    *tview.Application
	Pages  *tview.Pages

	OriginalView  *tview.TextView
	OptimizedView *tview.TextView
	DetailView    *tview.TextView
	StatusBar     *tview.TextView

	originalIdx  int
	optimizedIdx int
	focusOptimized bool
}

// Run builds and runs the TUI over result until the operator quits.
func Run(result *analysis.Result) error {
	t := New(result)
	return t.App.Run()
}

// New constructs a TUI for result without starting the event loop.
func New(result *analysis.Result) *TUI {
	t := &TUI{
		Result:         result,
		App:            tview.NewApplication(),
		focusOptimized: true,
	}

	t.initializeViews()
	t.buildLayout()
	t.setupKeyBindings()
	t.RefreshAll()

	return t
}

func (t *TUI) initializeViews() {
	t.OriginalView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWrap(false)
	t.OriginalView.SetBorder(true).SetTitle(" Original Bundles ")

	t.OptimizedView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWrap(false)
	t.OptimizedView.SetBorder(true).SetTitle(" Repacked Bundles ")

	t.DetailView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWrap(false)
	t.DetailView.SetBorder(true).SetTitle(" Forwarding Detail ")

	t.StatusBar = tview.NewTextView().
		SetDynamicColors(true)
}

func (t *TUI) buildLayout() {
	bundlesRow := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(t.OriginalView, 0, 1, false).
		AddItem(t.OptimizedView, 0, 1, true)

	main := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(bundlesRow, 0, 3, true).
		AddItem(t.DetailView, 0, 1, false).
		AddItem(t.StatusBar, 1, 0, false)

	t.Pages = tview.NewPages().AddPage("main", main, true, true)
	t.App.SetRoot(t.Pages, true)
}

func (t *TUI) setupKeyBindings() {
	t.App.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyCtrlC:
			t.App.Stop()
			return nil
		case tcell.KeyTab:
			t.focusOptimized = !t.focusOptimized
			t.RefreshAll()
			return nil
		case tcell.KeyUp:
			t.move(-1)
			return nil
		case tcell.KeyDown:
			t.move(1)
			return nil
		case tcell.KeyRune:
			switch event.Rune() {
			case 'q':
				t.App.Stop()
				return nil
			case 'j':
				t.move(1)
				return nil
			case 'k':
				t.move(-1)
				return nil
			}
		}
		return event
	})
}

func (t *TUI) move(delta int) {
	if t.focusOptimized {
		t.optimizedIdx = clamp(t.optimizedIdx+delta, len(t.Result.Optimized))
	} else {
		t.originalIdx = clamp(t.originalIdx+delta, len(t.Result.Original))
	}
	t.RefreshAll()
}

func clamp(i, n int) int {
	if n == 0 {
		return 0
	}
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// RefreshAll redraws every panel for the current selection.
func (t *TUI) RefreshAll() {
	t.updateBundleView(t.OriginalView, t.Result.Original, t.originalIdx, !t.focusOptimized)
	t.updateBundleView(t.OptimizedView, t.Result.Optimized, t.optimizedIdx, t.focusOptimized)
	t.updateDetailView()
	t.updateStatusBar()
	t.App.Draw()
}

func (t *TUI) updateBundleView(view *tview.TextView, bundles []*bundle.Bundle, selected int, focused bool) {
	view.Clear()
	var b strings.Builder
	for i, bd := range bundles {
		marker := "  "
		if i == selected && focused {
			marker = "->"
		}
		fmt.Fprintf(&b, "%s [%3d] origin=%08x valid=%d/%d\n", marker, i, bd.OriginAddress, bd.ValidCount(), bundle.Size)
		if i == selected {
			for _, in := range bd.Instructions {
				b.WriteString(renderInstructionLine(in))
			}
		}
	}
	view.SetText(b.String())
}

func renderInstructionLine(in inst.Instruction) string {
	if in.IsPadding {
		return fmt.Sprintf("       [gray]%08x: %s\t%s[white]\n", in.Address, in.Encoding, in.Mnemonic)
	}
	return fmt.Sprintf("       %08x: %s\t%s\t%s  [yellow](%s)[white]\n",
		in.Address, in.Encoding, in.Mnemonic, in.OperandText, in.Category.String())
}

// updateDetailView shows forwarding edges within the currently selected
// optimized bundle: every earlier slot for which CanForward holds into a
// later slot. An earlier writer shadowed by a nearer one in the same bundle
// is listed too.
func (t *TUI) updateDetailView() {
	t.DetailView.Clear()
	if t.optimizedIdx >= len(t.Result.Optimized) {
		return
	}

	selected := t.Result.Optimized[t.optimizedIdx]
	var b strings.Builder
	found := false
	for ci, consumer := range selected.Instructions {
		if consumer.IsPadding {
			continue
		}
		for pi := 0; pi < ci; pi++ {
			producer := selected.Instructions[pi]
			if producer.IsPadding {
				continue
			}
			if depgraph.CanForward(producer, consumer) {
				found = true
				fmt.Fprintf(&b, "slot %d (%s) <- slot %d (%s) via %s\n",
					ci, consumer.Mnemonic, pi, producer.Mnemonic, producer.Rd)
			}
		}
	}
	if !found {
		b.WriteString("[gray]no forwarding edges in this bundle[white]\n")
	}
	t.DetailView.SetText(b.String())
}

func (t *TUI) updateStatusBar() {
	rep := t.Result.Report(false)
	t.StatusBar.SetText(fmt.Sprintf(
		" [::b]%s[::-]  bundles %d -> %d (%d merged pairs)   Tab: switch panel  j/k: move  q: quit",
		t.Result.Filename, rep.Packing.OriginalBundleCount, rep.Packing.OptimizedBundleCount, rep.Dependency.MergedPairs,
	))
}
