package wdl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWalk_PreOrderWithDepth(t *testing.T) {
	w := mustParse(t, `window "W" (1,1) layout flow:
  label "a";
  panel layout flow:
    button "b";
    panel layout flow: textfield 3; end;
  end;
  group radio "r"; end;
end.`)

	type visit struct {
		kind  string
		depth int
	}
	var visits []visit
	Walk(w, func(n Node, depth int) bool {
		var kind string
		switch n.(type) {
		case *Window:
			kind = "window"
		case *Panel:
			kind = "panel"
		case *Button:
			kind = "button"
		case *Label:
			kind = "label"
		case *TextField:
			kind = "textfield"
		case *RadioGroup:
			kind = "group"
		}
		visits = append(visits, visit{kind, depth})
		return true
	})

	assert.Equal(t, []visit{
		{"window", 0},
		{"label", 1},
		{"panel", 1},
		{"button", 2},
		{"panel", 2},
		{"textfield", 3},
		{"group", 1},
	}, visits)
}

func TestWalk_SkipChildren(t *testing.T) {
	w := mustParse(t, `window "W" (1,1) layout flow: panel layout flow: button "hidden"; end; label "seen"; end.`)

	var labels []string
	Walk(w, func(n Node, _ int) bool {
		switch n := n.(type) {
		case *Panel:
			return false
		case *Button:
			labels = append(labels, n.Label)
		case *Label:
			labels = append(labels, n.Text)
		}
		return true
	})
	assert.Equal(t, []string{"seen"}, labels)
}

func TestCollect(t *testing.T) {
	w := mustParse(t, `window "W" (1,1) layout flow:
  label "a"; label "b";
  panel layout flow:
    button "b";
    panel layout grid(1,1): group radio "x"; radio "y"; end; end;
  end;
  textfield 4;
end.`)

	s := Collect(w)
	assert.Equal(t, Stats{
		Panels:      2,
		Buttons:     1,
		Labels:      2,
		TextFields:  1,
		RadioGroups: 1,
		Radios:      2,
		MaxDepth:    2,
	}, s)
	assert.Equal(t, 7, s.Widgets())
}

func TestContainerInterface(t *testing.T) {
	var c Container = &Window{Layout: FlowLayout{}}
	assert.Equal(t, FlowLayout{}, c.ContainerLayout())

	c = &Panel{Layout: GridLayout{Rows: 1}, Children: []Widget{&Button{}}}
	assert.Len(t, c.ContainerChildren(), 1)
}
