// Package markdown renders the describe report for a widget tree: the
// report is built as markdown and styled for the terminal with glamour.
package markdown

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/zjrosen/wdl/internal/render"
	"github.com/zjrosen/wdl/internal/wdl"
)

// Styles accepted by New.
const (
	StyleDark  = "dark"
	StyleLight = "light"
	StylePlain = "notty"
)

const noMarginStyle = `{
	"document": {
		"margin": 0,
		"block_prefix": "",
		"block_suffix": ""
	}
}`

// Renderer styles markdown for the terminal.
type Renderer struct {
	renderer *glamour.TermRenderer
	width    int
}

// New returns a renderer wrapping at width. An empty style means dark. A
// fixed style is used instead of auto detection so no terminal queries are
// sent.
func New(width int, style string) (*Renderer, error) {
	if style == "" {
		style = StyleDark
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithStylesFromJSONBytes([]byte(noMarginStyle)),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, fmt.Errorf("creating markdown renderer: %w", err)
	}
	return &Renderer{renderer: r, width: width}, nil
}

// Width returns the word wrap width.
func (r *Renderer) Width() int {
	return r.width
}

// Render styles md.
func (r *Renderer) Render(md string) (string, error) {
	return r.renderer.Render(md)
}

// Describe builds the markdown report for w. name is shown as the source
// label and src, when non-empty, is appended as a code block.
func Describe(name string, w *wdl.Window, src string) string {
	stats := wdl.Collect(w)

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", heading(w.Title))
	fmt.Fprintf(&b, "`%s` declares a **%d × %d** window with a **%s** layout and %d top-level widgets.\n\n",
		name, w.Width, w.Height, render.LayoutString(w.Layout), len(w.Children))

	b.WriteString("## Widgets\n\n")
	b.WriteString("| Kind | Count |\n|---|---:|\n")
	for _, row := range []struct {
		kind  string
		count int
	}{
		{"panel", stats.Panels},
		{"button", stats.Buttons},
		{"label", stats.Labels},
		{"textfield", stats.TextFields},
		{"group", stats.RadioGroups},
		{"radio", stats.Radios},
	} {
		fmt.Fprintf(&b, "| %s | %d |\n", row.kind, row.count)
	}
	fmt.Fprintf(&b, "\nMaximum panel nesting: %d.\n\n", stats.MaxDepth)

	b.WriteString("## Structure\n\n")
	wdl.Walk(w, func(n wdl.Node, depth int) bool {
		if depth == 0 {
			return true
		}
		fmt.Fprintf(&b, "%s- %s\n", strings.Repeat("  ", depth-1), describeNode(n))
		return true
	})

	if src != "" {
		b.WriteString("\n## Source\n\n```\n")
		b.WriteString(strings.TrimRight(src, "\n"))
		b.WriteString("\n```\n")
	}
	return b.String()
}

func heading(title string) string {
	if strings.TrimSpace(title) == "" {
		return "Untitled window"
	}
	return strings.ReplaceAll(title, "\n", " ")
}

func describeNode(n wdl.Node) string {
	switch n := n.(type) {
	case *wdl.Panel:
		return fmt.Sprintf("**panel** (%s, %d children)", render.LayoutString(n.Layout), len(n.Children))
	case *wdl.Button:
		return fmt.Sprintf("**button** %s", inlineCode(n.Label))
	case *wdl.Label:
		return fmt.Sprintf("**label** %s", inlineCode(n.Text))
	case *wdl.TextField:
		return fmt.Sprintf("**textfield** %d columns", n.Columns)
	case *wdl.RadioGroup:
		opts := make([]string, len(n.Options))
		for i, o := range n.Options {
			opts[i] = inlineCode(o)
		}
		return "**group** " + strings.Join(opts, ", ")
	default:
		return ""
	}
}

func inlineCode(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if s == "" {
		return "(empty)"
	}
	if strings.Contains(s, "`") {
		return "`` " + s + " ``"
	}
	return "`" + s + "`"
}
