package wdl

// Node is the interface for all widget tree nodes.
type Node interface {
	node()
}

// Widget is any element that can appear as a child of a container.
type Widget interface {
	Node
	widget()
}

// Container is a node holding an ordered list of children under a layout.
type Container interface {
	Node
	ContainerLayout() Layout
	ContainerChildren() []Widget
}

// Layout is the layout manager attached to a container.
type Layout interface {
	layout()
}

// FlowLayout places children left to right, wrapping as needed.
type FlowLayout struct{}

func (FlowLayout) layout() {}

// GridLayout places children row-major in a Rows x Cols grid. Hgap and Vgap
// are 0 when the two-argument form is written.
type GridLayout struct {
	Rows int
	Cols int
	Hgap int
	Vgap int
}

func (GridLayout) layout() {}

// Window is the tree root; exactly one per program.
type Window struct {
	Title    string
	Width    int
	Height   int
	Layout   Layout
	Children []Widget
}

func (w *Window) node() {}

func (w *Window) ContainerLayout() Layout     { return w.Layout }
func (w *Window) ContainerChildren() []Widget { return w.Children }

// Panel is a nested container.
type Panel struct {
	Layout   Layout
	Children []Widget
}

func (p *Panel) node()   {}
func (p *Panel) widget() {}

func (p *Panel) ContainerLayout() Layout     { return p.Layout }
func (p *Panel) ContainerChildren() []Widget { return p.Children }

// Button is a push button with a caption.
type Button struct {
	Label string
}

func (b *Button) node()   {}
func (b *Button) widget() {}

// Label is a static text label.
type Label struct {
	Text string
}

func (l *Label) node()   {}
func (l *Label) widget() {}

// TextField is a single-line text input Columns characters wide.
type TextField struct {
	Columns int
}

func (t *TextField) node()   {}
func (t *TextField) widget() {}

// RadioGroup is a set of mutually exclusive options in display order.
type RadioGroup struct {
	Options []string
}

func (r *RadioGroup) node()   {}
func (r *RadioGroup) widget() {}

// Walk traverses the tree rooted at n in pre-order, calling fn with each node
// and its depth (the root is depth 0). If fn returns false the children of
// that node are skipped.
func Walk(n Node, fn func(n Node, depth int) bool) {
	walk(n, 0, fn)
}

func walk(n Node, depth int, fn func(Node, int) bool) {
	if !fn(n, depth) {
		return
	}
	if c, ok := n.(Container); ok {
		for _, child := range c.ContainerChildren() {
			walk(child, depth+1, fn)
		}
	}
}

// Stats summarizes a widget tree.
type Stats struct {
	Panels      int
	Buttons     int
	Labels      int
	TextFields  int
	RadioGroups int
	Radios      int
	MaxDepth    int // deepest panel nesting; 0 when the window has no panels
}

// Widgets returns the total number of widgets, not counting the window.
func (s Stats) Widgets() int {
	return s.Panels + s.Buttons + s.Labels + s.TextFields + s.RadioGroups
}

// Collect computes Stats for the tree rooted at w.
func Collect(w *Window) Stats {
	var s Stats
	Walk(w, func(n Node, depth int) bool {
		switch n := n.(type) {
		case *Panel:
			s.Panels++
			s.MaxDepth = max(s.MaxDepth, depth)
		case *Button:
			s.Buttons++
		case *Label:
			s.Labels++
		case *TextField:
			s.TextFields++
		case *RadioGroup:
			s.RadioGroups++
			s.Radios += len(n.Options)
		}
		return true
	})
	return s
}
