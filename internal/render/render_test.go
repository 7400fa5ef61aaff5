package render

import (
	"os"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/wdl/internal/testutil"
	"github.com/zjrosen/wdl/internal/wdl"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

func mustParse(t *testing.T, src string) *wdl.Window {
	t.Helper()
	w, err := wdl.Parse(src)
	require.NoError(t, err)
	return w
}

func newRenderer(w *wdl.Window, opts Options) *renderer {
	r := &renderer{opts: opts, groups: make(map[*wdl.RadioGroup]int)}
	for i, g := range Groups(w) {
		r.groups[g] = i
	}
	return r
}

func TestWindow_Flow(t *testing.T) {
	w := mustParse(t, `window "Hi" (1,1) layout flow: button "OK"; label "x"; end.`)

	expected := strings.Join([]string{
		"╭──────────╮",
		"│ Hi       │",
		"│          │",
		"│ [ OK ] x │",
		"╰──────────╯",
	}, "\n")
	require.Equal(t, expected, ansi.Strip(Window(w, Options{Focused: NoFocus})))
}

func TestFlow_Wraps(t *testing.T) {
	w := mustParse(t, `window "" (1,1) layout flow: button "a"; button "b"; button "c"; end.`)
	r := newRenderer(w, Options{})

	require.Equal(t, "[ a ] [ b ] [ c ]", ansi.Strip(r.flow(w.Children, 0)))
	require.Equal(t, "[ a ] [ b ]\n[ c ]      ", ansi.Strip(r.flow(w.Children, 11)))
	require.Equal(t, "[ a ]\n[ b ]\n[ c ]", ansi.Strip(r.flow(w.Children, 10)))
}

func TestGrid_CellsGapsAndOrder(t *testing.T) {
	w := mustParse(t, `window "" (1,1) layout grid(2, 0, 1, 1): button "a"; button "bb"; label "c"; end.`)
	r := newRenderer(w, Options{})

	got := r.container(w.Layout, w.Children, 0)
	require.Equal(t, "[ a ]  [ bb ]\n\nc     ", ansi.Strip(got))
}

func TestGrid_NoGaps(t *testing.T) {
	w := mustParse(t, `window "" (1,1) layout grid(0, 3): label "1"; label "2"; label "3"; label "4"; end.`)
	r := newRenderer(w, Options{})

	require.Equal(t, "123\n4", ansi.Strip(r.container(w.Layout, w.Children, 0)))
}

func TestGridShape(t *testing.T) {
	tests := []struct {
		name       string
		grid       wdl.GridLayout
		n          int
		rows, cols int
	}{
		{"rows win over cols", wdl.GridLayout{Rows: 2, Cols: 10}, 6, 2, 3},
		{"cols derive rows", wdl.GridLayout{Cols: 4}, 6, 2, 4},
		{"exact fit", wdl.GridLayout{Rows: 4, Cols: 3}, 12, 4, 3},
		{"both zero is one row", wdl.GridLayout{}, 5, 1, 5},
		{"more rows than children", wdl.GridLayout{Rows: 5}, 2, 5, 1},
		{"no children", wdl.GridLayout{Rows: 2, Cols: 2}, 0, 2, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, cols := GridShape(tt.grid, tt.n)
			require.Equal(t, tt.rows, rows)
			require.Equal(t, tt.cols, cols)
		})
	}
}

func TestWindow_HugeExtentsAreCapped(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		lines int // unbounded body height
		width int // unbounded body width
	}{
		{
			name:  "vgap",
			src:   `window "T" (10,10) layout grid(2,1,0,9223372036854775807): button "a"; button "b"; end.`,
			lines: maxSpan + 2,
			width: 5,
		},
		{
			name:  "hgap",
			src:   `window "T" (10,10) layout grid(1,2,9223372036854775807,0): button "a"; button "b"; end.`,
			lines: 1,
			width: 5 + maxSpan + 5,
		},
		{
			name:  "textfield columns",
			src:   `window "T" (10,10) layout flow: textfield 9223372036854775807; end.`,
			lines: 1,
			width: maxSpan + 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := mustParse(t, tt.src)

			body := newRenderer(w, Options{}).container(w.Layout, w.Children, 0)
			require.Len(t, strings.Split(body, "\n"), tt.lines)
			require.Equal(t, tt.width, lipgloss.Width(body))

			require.NotEmpty(t, Window(w, Options{}))
			for _, width := range []int{12, 40} {
				out := Window(w, Options{Width: width})
				for _, line := range strings.Split(out, "\n") {
					require.LessOrEqual(t, lipgloss.Width(line), width, "width %d line %q", width, ansi.Strip(line))
				}
			}
		})
	}
}

func TestGridShape_LargeCounts(t *testing.T) {
	rows, cols := GridShape(wdl.GridLayout{Rows: 9223372036854775807}, 3)
	require.Equal(t, 9223372036854775807, rows)
	require.Equal(t, 1, cols)

	rows, cols = GridShape(wdl.GridLayout{Cols: 9223372036854775807}, 3)
	require.Equal(t, 1, rows)
	require.Equal(t, 9223372036854775807, cols)
}

func TestWidgets(t *testing.T) {
	w := mustParse(t, `window "" (1,1) layout flow: textfield 5; group radio "A"; radio "B"; end; end.`)

	r := newRenderer(w, Options{Selected: []int{1}, Focused: NoFocus})
	require.Equal(t, "[_____]", ansi.Strip(r.widget(w.Children[0], 0)))
	require.Equal(t, "[__]", ansi.Strip(r.widget(w.Children[0], 4)))
	require.Equal(t, "( ) A  (•) B", ansi.Strip(r.widget(w.Children[1], 0)))

	r = newRenderer(w, Options{})
	require.Equal(t, "(•) A  ( ) B", ansi.Strip(r.widget(w.Children[1], 0)))
}

func TestPanel_Bordered(t *testing.T) {
	w := mustParse(t, `window "" (1,1) layout flow: panel layout flow: label "in"; end; panel layout flow: end; end.`)
	r := newRenderer(w, Options{})

	require.Equal(t, "┌──┐\n│in│\n└──┘", ansi.Strip(r.widget(w.Children[0], 0)))
	require.Equal(t, "┌┐\n││\n└┘", ansi.Strip(r.widget(w.Children[1], 0)))
}

func TestRadioOptionsAreMarked(t *testing.T) {
	w := mustParse(t, `window "" (1,1) layout flow:
  group radio "x"; end;
  panel layout flow: group radio "A"; radio "B"; end; end;
end.`)

	var ids []string
	Window(w, Options{Mark: func(id, s string) string {
		ids = append(ids, id)
		return s
	}})
	require.Equal(t, []string{OptionID(0, 0), OptionID(1, 0), OptionID(1, 1)}, ids)
}

func TestWindow_RespectsWidth(t *testing.T) {
	w := mustParse(t, testutil.Calculator())

	for _, width := range []int{20, 30, 60} {
		out := Window(w, Options{Width: width})
		for _, line := range strings.Split(out, "\n") {
			require.LessOrEqual(t, lipgloss.Width(line), width, "width %d line %q", width, ansi.Strip(line))
		}
	}
}

func TestWindow_ChildrenInDeclarationOrder(t *testing.T) {
	out := ansi.Strip(Window(mustParse(t, testutil.Survey()), Options{}))

	last := -1
	for _, want := range []string{"Name", "[_________________________]", "Size", "Small", "[ OK ]", "[ Cancel ]"} {
		i := strings.Index(out, want)
		require.Greater(t, i, last, "%q out of order in\n%s", want, out)
		last = i
	}
}

func TestClip(t *testing.T) {
	require.Equal(t, "abcdefgh", clip("abcdefgh", 0))
	require.Equal(t, "abcdefgh", clip("abcdefgh", 8))
	require.Equal(t, "abcd…", clip("abcdefgh", 5))
}

func TestGroups(t *testing.T) {
	w := mustParse(t, testutil.Survey())
	groups := Groups(w)
	require.Len(t, groups, 1)
	require.Equal(t, []string{"Small", "Medium", "Large"}, groups[0].Options)
}
