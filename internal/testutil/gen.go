package testutil

import (
	"pgregory.net/rapid"

	"github.com/zjrosen/wdl/internal/wdl"
)

// maxPanelDepth bounds panel nesting in generated trees.
const maxPanelDepth = 3

// Text generates string literal content: anything without a double quote.
func Text() *rapid.Generator[string] {
	return rapid.StringMatching(`[A-Za-z0-9 _!?,.;:()-]{0,12}`)
}

// Layout generates flow and grid layouts.
func Layout() *rapid.Generator[wdl.Layout] {
	return rapid.Custom(func(t *rapid.T) wdl.Layout {
		if rapid.Bool().Draw(t, "flow") {
			return wdl.FlowLayout{}
		}
		g := wdl.GridLayout{
			Rows: rapid.IntRange(0, 12).Draw(t, "rows"),
			Cols: rapid.IntRange(0, 12).Draw(t, "cols"),
		}
		if rapid.Bool().Draw(t, "gaps") {
			g.Hgap = rapid.IntRange(0, 20).Draw(t, "hgap")
			g.Vgap = rapid.IntRange(0, 20).Draw(t, "vgap")
		}
		return g
	})
}

// Window generates a well-formed widget tree.
func Window() *rapid.Generator[*wdl.Window] {
	return rapid.Custom(func(t *rapid.T) *wdl.Window {
		return &wdl.Window{
			Title:    Text().Draw(t, "title"),
			Width:    rapid.IntRange(0, 4000).Draw(t, "width"),
			Height:   rapid.IntRange(0, 4000).Draw(t, "height"),
			Layout:   Layout().Draw(t, "layout"),
			Children: drawWidgets(t, 1, 0),
		}
	})
}

func drawWidgets(t *rapid.T, minCount, depth int) []wdl.Widget {
	n := rapid.IntRange(minCount, 6).Draw(t, "count")
	if n == 0 {
		return nil
	}
	widgets := make([]wdl.Widget, n)
	for i := range widgets {
		widgets[i] = drawWidget(t, depth)
	}
	return widgets
}

func drawWidget(t *rapid.T, depth int) wdl.Widget {
	kinds := []string{"button", "label", "textfield", "group"}
	if depth < maxPanelDepth {
		kinds = append(kinds, "panel")
	}
	switch rapid.SampledFrom(kinds).Draw(t, "kind") {
	case "button":
		return &wdl.Button{Label: Text().Draw(t, "button")}
	case "label":
		return &wdl.Label{Text: Text().Draw(t, "label")}
	case "textfield":
		return &wdl.TextField{Columns: rapid.IntRange(0, 80).Draw(t, "columns")}
	case "group":
		return &wdl.RadioGroup{Options: rapid.SliceOfN(Text(), 1, 5).Draw(t, "options")}
	default:
		return &wdl.Panel{
			Layout:   Layout().Draw(t, "panelLayout"),
			Children: drawWidgets(t, 0, depth+1),
		}
	}
}
