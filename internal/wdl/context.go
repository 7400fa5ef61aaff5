package wdl

// frame is one open container while its body is being parsed.
type frame struct {
	layout   Layout
	children []Widget
}

// containerStack tracks where completed widgets attach. The bottom frame is
// the window and is never popped; each open panel adds a frame above it.
type containerStack struct {
	frames []*frame
}

func newContainerStack() *containerStack {
	return &containerStack{frames: []*frame{{}}}
}

// top returns the current insertion target.
func (s *containerStack) top() *frame {
	return s.frames[len(s.frames)-1]
}

// depth returns the number of open panels.
func (s *containerStack) depth() int {
	return len(s.frames) - 1
}

// attach appends a completed widget to the current insertion target.
func (s *containerStack) attach(w Widget) {
	t := s.top()
	t.children = append(t.children, w)
}

// push opens a new panel frame.
func (s *containerStack) push() {
	s.frames = append(s.frames, &frame{})
}

// pop seals the innermost panel and attaches it to its parent. It returns
// nil if only the window frame is open.
func (s *containerStack) pop() *Panel {
	if s.depth() == 0 {
		return nil
	}
	f := s.top()
	s.frames[len(s.frames)-1] = nil
	s.frames = s.frames[:len(s.frames)-1]

	panel := &Panel{Layout: f.layout, Children: f.children}
	s.attach(panel)
	return panel
}

// root returns the window frame.
func (s *containerStack) root() *frame {
	return s.frames[0]
}
