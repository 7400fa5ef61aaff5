// Package render draws a widget tree as terminal text. Containers apply their
// layout to already rendered children, visiting children in declaration
// order, so the output mirrors the source structure.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/truncate"

	"github.com/zjrosen/wdl/internal/wdl"
)

// NoFocus is the Options.Focused value for no highlighted group.
const NoFocus = -1

// maxSpan caps the grid gaps and text field columns taken from source.
const maxSpan = 256

// Options controls rendering. The zero value renders at natural width with
// the first option of every radio group selected and the first group
// focused.
type Options struct {
	// Width bounds the whole window, borders included. 0 means unbounded.
	Width int
	// Selected holds the selected option per radio group, indexed as Groups
	// returns them. Missing entries select option 0.
	Selected []int
	// Focused is the index of the highlighted radio group, or NoFocus.
	Focused int
	// Mark wraps each radio option for click detection. See OptionID.
	Mark func(id, s string) string
}

// Groups returns the radio groups of w in pre-order. Their indexes are the
// ones Options.Selected and OptionID use.
func Groups(w *wdl.Window) []*wdl.RadioGroup {
	var groups []*wdl.RadioGroup
	wdl.Walk(w, func(n wdl.Node, _ int) bool {
		if g, ok := n.(*wdl.RadioGroup); ok {
			groups = append(groups, g)
		}
		return true
	})
	return groups
}

// OptionID names option opt of radio group group.
func OptionID(group, opt int) string {
	return fmt.Sprintf("wdl-radio-%d-%d", group, opt)
}

type renderer struct {
	opts   Options
	groups map[*wdl.RadioGroup]int
}

// Window renders w inside a rounded border with its title on the first line.
func Window(w *wdl.Window, opts Options) string {
	r := renderer{opts: opts, groups: make(map[*wdl.RadioGroup]int)}
	for i, g := range Groups(w) {
		r.groups[g] = i
	}

	inner := 0
	if opts.Width > 0 {
		inner = max(opts.Width-windowStyle.GetHorizontalFrameSize(), 1)
	}

	title := titleStyle.Render(clip(w.Title, inner))
	body := r.container(w.Layout, w.Children, inner)
	return windowStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, "", body))
}

func (r *renderer) container(layout wdl.Layout, children []wdl.Widget, avail int) string {
	if len(children) == 0 {
		return ""
	}
	if g, ok := layout.(wdl.GridLayout); ok {
		return r.grid(g, children, avail)
	}
	return r.flow(children, avail)
}

// flow places children left to right, one space apart, starting a new row
// when the next child would overflow avail.
func (r *renderer) flow(children []wdl.Widget, avail int) string {
	var (
		rows  []string
		line  []string
		lineW int
	)
	flush := func() {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, line...))
		line, lineW = nil, 0
	}

	for _, child := range children {
		s := r.widget(child, avail)
		w := lipgloss.Width(s)
		if len(line) > 0 && avail > 0 && lineW+1+w > avail {
			flush()
		}
		if len(line) > 0 {
			line = append(line, " ")
			lineW++
		}
		line = append(line, s)
		lineW += w
	}
	flush()
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// GridShape returns the rows and columns a grid uses for n children. A
// positive row count wins and the column count is derived from it; a zero
// row count derives rows from columns.
func GridShape(g wdl.GridLayout, n int) (rows, cols int) {
	switch {
	case g.Rows > 0:
		rows = g.Rows
		cols = ceilDiv(n, rows)
	case g.Cols > 0:
		cols = g.Cols
		rows = ceilDiv(n, cols)
	default:
		rows, cols = 1, n
	}
	return max(rows, 1), max(cols, 1)
}

// ceilDiv is n/d rounded up, without the n+d-1 overflow.
func ceilDiv(n, d int) int {
	if n <= 0 {
		return 0
	}
	return (n-1)/d + 1
}

// span limits a source-supplied extent to [0, maxSpan].
func span(n int) int {
	return min(max(n, 0), maxSpan)
}

// grid places children row-major in equal cells separated by hgap columns
// and vgap lines. hgap shrinks so that every cell keeps at least one column
// of avail.
func (r *renderer) grid(g wdl.GridLayout, children []wdl.Widget, avail int) string {
	_, cols := GridShape(g, len(children))
	hgap, vgap := span(g.Hgap), span(g.Vgap)
	if avail > 0 && cols > 1 {
		hgap = min(hgap, max(avail-cols, 0)/(cols-1))
	}

	cellW := 0
	if avail > 0 {
		cellW = max((avail-hgap*(cols-1))/cols, 1)
	}

	cells := make([]string, len(children))
	for i, child := range children {
		cells[i] = r.widget(child, cellW)
	}
	if cellW == 0 {
		for _, c := range cells {
			cellW = max(cellW, lipgloss.Width(c))
		}
	}

	cellStyle := lipgloss.NewStyle().MaxWidth(cellW)
	gap := strings.Repeat(" ", hgap)

	var rows []string
	for start := 0; start < len(cells); start += cols {
		end := min(start+cols, len(cells))
		var parts []string
		for i := start; i < end; i++ {
			if i > start && gap != "" {
				parts = append(parts, gap)
			}
			cell := lipgloss.PlaceHorizontal(cellW, lipgloss.Left, cellStyle.Render(cells[i]))
			parts = append(parts, cell)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, parts...))
	}
	return strings.Join(rows, strings.Repeat("\n", vgap+1))
}

func (r *renderer) widget(w wdl.Widget, avail int) string {
	switch w := w.(type) {
	case *wdl.Button:
		return buttonStyle.Render("[ " + clip(w.Label, avail-4) + " ]")
	case *wdl.Label:
		return labelStyle.Render(clip(w.Text, avail))
	case *wdl.TextField:
		cols := span(w.Columns)
		if avail > 0 {
			cols = min(cols, max(avail-2, 0))
		}
		return "[" + fieldStyle.Render(strings.Repeat("_", cols)) + "]"
	case *wdl.RadioGroup:
		return r.radioGroup(w)
	case *wdl.Panel:
		inner := 0
		if avail > 0 {
			inner = max(avail-panelStyle.GetHorizontalFrameSize(), 1)
		}
		return panelStyle.Render(r.container(w.Layout, w.Children, inner))
	default:
		return ""
	}
}

func (r *renderer) radioGroup(g *wdl.RadioGroup) string {
	idx := r.groups[g]
	selected := 0
	if idx < len(r.opts.Selected) {
		selected = r.opts.Selected[idx]
	}
	style := radioStyle
	if r.opts.Focused == idx {
		style = radioFocusedStyle
	}

	parts := make([]string, len(g.Options))
	for i, opt := range g.Options {
		dot := "( ) "
		if i == selected {
			dot = "(•) "
		}
		s := style.Render(dot + opt)
		if r.opts.Mark != nil {
			s = r.opts.Mark(OptionID(idx, i), s)
		}
		parts[i] = s
	}
	return strings.Join(parts, "  ")
}

// clip shortens s to width cells with a trailing ellipsis. width <= 0 leaves
// s alone.
func clip(s string, width int) string {
	if width <= 0 || ansi.StringWidth(s) <= width {
		return s
	}
	return truncate.StringWithTail(s, uint(width), "…")
}
