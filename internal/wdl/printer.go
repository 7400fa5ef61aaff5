package wdl

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const indentUnit = "  "

// ErrUnprintable reports a tree value that has no WDL spelling: text
// containing a double quote, or a negative number. Parsed trees never
// contain either.
var ErrUnprintable = errors.New("value cannot be written as WDL")

// Format renders a window as canonical WDL source. Parsing the result yields
// a tree equal to w. Trees built in code may hold values the language cannot
// spell; Format returns ErrUnprintable for the first one.
func Format(w *Window) (string, error) {
	p := &printer{}
	fmt.Fprintf(&p.b, "window %s (%s, %s)\n", p.quote(w.Title), p.num(w.Width), p.num(w.Height))
	p.b.WriteString(p.layout(w.Layout))
	p.b.WriteByte('\n')
	for _, child := range w.Children {
		p.widget(child, 1)
	}
	p.b.WriteString("end.\n")
	if p.err != nil {
		return "", p.err
	}
	return p.b.String(), nil
}

type printer struct {
	b   strings.Builder
	err error
}

func (p *printer) fail(format string, args ...any) {
	if p.err == nil {
		p.err = fmt.Errorf("%w: "+format, append([]any{ErrUnprintable}, args...)...)
	}
}

func (p *printer) layout(l Layout) string {
	switch l := l.(type) {
	case GridLayout:
		if l.Hgap == 0 && l.Vgap == 0 {
			return fmt.Sprintf("layout grid(%s, %s):", p.num(l.Rows), p.num(l.Cols))
		}
		return fmt.Sprintf("layout grid(%s, %s, %s, %s):", p.num(l.Rows), p.num(l.Cols), p.num(l.Hgap), p.num(l.Vgap))
	default:
		return "layout flow:"
	}
}

func (p *printer) widget(w Widget, depth int) {
	indent := strings.Repeat(indentUnit, depth)
	switch w := w.(type) {
	case *Button:
		fmt.Fprintf(&p.b, "%sbutton %s;\n", indent, p.quote(w.Label))
	case *Label:
		fmt.Fprintf(&p.b, "%slabel %s;\n", indent, p.quote(w.Text))
	case *TextField:
		fmt.Fprintf(&p.b, "%stextfield %s;\n", indent, p.num(w.Columns))
	case *RadioGroup:
		fmt.Fprintf(&p.b, "%sgroup\n", indent)
		for _, opt := range w.Options {
			fmt.Fprintf(&p.b, "%s%sradio %s;\n", indent, indentUnit, p.quote(opt))
		}
		fmt.Fprintf(&p.b, "%send;\n", indent)
	case *Panel:
		fmt.Fprintf(&p.b, "%spanel %s\n", indent, p.layout(w.Layout))
		for _, child := range w.Children {
			p.widget(child, depth+1)
		}
		fmt.Fprintf(&p.b, "%send;\n", indent)
	}
}

// quote wraps s in double quotes verbatim. String literals have no escapes,
// so %q cannot be used for content containing backslashes or newlines.
func (p *printer) quote(s string) string {
	if strings.ContainsRune(s, '"') {
		p.fail("string %q contains a double quote", s)
	}
	return `"` + s + `"`
}

func (p *printer) num(n int) string {
	if n < 0 {
		p.fail("negative number %d", n)
	}
	return strconv.Itoa(n)
}
