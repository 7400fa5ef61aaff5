package testutil

import (
	"fmt"
	"strings"
)

// Builder accumulates WDL source for a single program. It writes the source
// by hand rather than through wdl.Format so that parser tests do not depend
// on the printer.
type Builder struct {
	title  string
	width  int
	height int
	layout string
	body   Body
}

// Body collects the widgets of a window or panel.
type Body struct {
	lines []string
}

// NewProgram starts a program with the given window header and a flow layout.
func NewProgram(title string, width, height int) *Builder {
	return &Builder{title: title, width: width, height: height, layout: Flow()}
}

// WithLayout replaces the window layout. Use Flow, Grid or GridGaps.
func (b *Builder) WithLayout(layout string) *Builder {
	b.layout = layout
	return b
}

// Button adds a button to the window.
func (b *Builder) Button(label string) *Builder {
	b.body.Button(label)
	return b
}

// Label adds a label to the window.
func (b *Builder) Label(text string) *Builder {
	b.body.Label(text)
	return b
}

// TextField adds a text field to the window.
func (b *Builder) TextField(columns int) *Builder {
	b.body.TextField(columns)
	return b
}

// Group adds a radio group to the window.
func (b *Builder) Group(options ...string) *Builder {
	b.body.Group(options...)
	return b
}

// Panel adds a panel to the window; fill adds the panel's children.
func (b *Builder) Panel(layout string, fill func(p *Body)) *Builder {
	b.body.Panel(layout, fill)
	return b
}

// String returns the program source.
func (b *Builder) String() string {
	var s strings.Builder
	fmt.Fprintf(&s, "window \"%s\" (%d, %d)\n", b.title, b.width, b.height)
	s.WriteString(b.layout)
	s.WriteByte('\n')
	for _, line := range b.body.lines {
		s.WriteString(line)
		s.WriteByte('\n')
	}
	s.WriteString("end.\n")
	return s.String()
}

// Button adds a button.
func (p *Body) Button(label string) {
	p.lines = append(p.lines, fmt.Sprintf("button \"%s\";", label))
}

// Label adds a label.
func (p *Body) Label(text string) {
	p.lines = append(p.lines, fmt.Sprintf("label \"%s\";", text))
}

// TextField adds a text field.
func (p *Body) TextField(columns int) {
	p.lines = append(p.lines, fmt.Sprintf("textfield %d;", columns))
}

// Group adds a radio group with one radio per option.
func (p *Body) Group(options ...string) {
	p.lines = append(p.lines, "group")
	for _, opt := range options {
		p.lines = append(p.lines, fmt.Sprintf("  radio \"%s\";", opt))
	}
	p.lines = append(p.lines, "end;")
}

// Panel adds a nested panel.
func (p *Body) Panel(layout string, fill func(p *Body)) {
	var inner Body
	if fill != nil {
		fill(&inner)
	}
	p.lines = append(p.lines, "panel "+layout)
	for _, line := range inner.lines {
		p.lines = append(p.lines, "  "+line)
	}
	p.lines = append(p.lines, "end;")
}

// Flow returns a flow layout declaration.
func Flow() string {
	return "layout flow:"
}

// Grid returns a two argument grid layout declaration.
func Grid(rows, cols int) string {
	return fmt.Sprintf("layout grid(%d, %d):", rows, cols)
}

// GridGaps returns a four argument grid layout declaration.
func GridGaps(rows, cols, hgap, vgap int) string {
	return fmt.Sprintf("layout grid(%d, %d, %d, %d):", rows, cols, hgap, vgap)
}
