package render

import (
	"strings"

	"github.com/zjrosen/wdl/internal/styles"
	"github.com/zjrosen/wdl/internal/wdl"
)

// Diagnostic colors d.Snippet(src): the message line, the line number
// gutter and the caret each get their own style.
func Diagnostic(d *wdl.Diagnostic, src string) string {
	lines := strings.Split(d.Snippet(src), "\n")
	lines[0] = styles.ErrorHeaderStyle.Render(lines[0])
	for i, line := range lines[1:] {
		gutter, text, ok := strings.Cut(line, " | ")
		if !ok {
			continue
		}
		if strings.TrimSpace(gutter) == "" {
			text = styles.CaretStyle.Render(text)
		}
		lines[i+1] = styles.GutterStyle.Render(gutter+" |") + " " + text
	}
	return strings.Join(lines, "\n")
}
