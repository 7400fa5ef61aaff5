package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"

	"github.com/zjrosen/wdl/internal/styles"
	"github.com/zjrosen/wdl/internal/wdl"
)

var (
	outlineKindStyle   = lipgloss.NewStyle().Foreground(styles.SyntaxKeywordColor)
	outlineDetailStyle = lipgloss.NewStyle().Foreground(styles.SyntaxStringColor)
	outlineEnumStyle   = lipgloss.NewStyle().Foreground(styles.TextMutedColor).MarginRight(1)
)

// Outline draws the widget hierarchy as a tree, one node per widget:
//
//	window "Calc" 200x300 grid(2, 1, 5, 5)
//	├── textfield 20
//	└── panel grid(4, 3)
//	    ├── button "7"
//	    ...
func Outline(w *wdl.Window) string {
	root := tree.Root(node("window", fmt.Sprintf("%s %dx%d %s", quote(w.Title), w.Width, w.Height, LayoutString(w.Layout)))).
		Enumerator(tree.DefaultEnumerator).
		EnumeratorStyle(outlineEnumStyle)
	addChildren(root, w.Children)
	return root.String()
}

func addChildren(t *tree.Tree, children []wdl.Widget) {
	for _, child := range children {
		switch c := child.(type) {
		case *wdl.Panel:
			sub := tree.Root(node("panel", LayoutString(c.Layout)))
			addChildren(sub, c.Children)
			t.Child(sub)
		case *wdl.Button:
			t.Child(node("button", quote(c.Label)))
		case *wdl.Label:
			t.Child(node("label", quote(c.Text)))
		case *wdl.TextField:
			t.Child(node("textfield", fmt.Sprint(c.Columns)))
		case *wdl.RadioGroup:
			opts := make([]string, len(c.Options))
			for i, o := range c.Options {
				opts[i] = quote(o)
			}
			t.Child(node("group", strings.Join(opts, " ")))
		}
	}
}

func quote(s string) string {
	return `"` + s + `"`
}

func node(kind, detail string) string {
	return outlineKindStyle.Render(kind) + " " + outlineDetailStyle.Render(detail)
}

// LayoutString formats a layout the way it is written in source, without
// the layout keyword.
func LayoutString(l wdl.Layout) string {
	g, ok := l.(wdl.GridLayout)
	if !ok {
		return "flow"
	}
	if g.Hgap == 0 && g.Vgap == 0 {
		return fmt.Sprintf("grid(%d, %d)", g.Rows, g.Cols)
	}
	return fmt.Sprintf("grid(%d, %d, %d, %d)", g.Rows, g.Cols, g.Hgap, g.Vgap)
}
