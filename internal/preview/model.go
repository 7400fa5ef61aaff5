// Package preview is the live preview TUI: it shows a rendered window, swaps
// in a new tree each time the compiler publishes one, and keeps the last good
// tree on screen while the source has an error.
package preview

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/wdl/internal/compiler"
	"github.com/zjrosen/wdl/internal/keys"
	"github.com/zjrosen/wdl/internal/log"
	"github.com/zjrosen/wdl/internal/pubsub"
	"github.com/zjrosen/wdl/internal/render"
	"github.com/zjrosen/wdl/internal/wdl"
)

// Options configures a Model.
type Options struct {
	// Name labels the source in the header, usually its path.
	Name string
	// Width bounds the rendered window. 0 follows the terminal width.
	Width int
	// Results delivers compile results. Required.
	Results *pubsub.Listener[compiler.Result]
	// Logs delivers log lines for the footer. Optional.
	Logs *log.Listener
	// Reload asks for a recompile. Its result arrives through Results.
	Reload func()
}

// Model is the preview state.
type Model struct {
	opts Options
	keys keys.KeyMap
	help help.Model

	viewport viewport.Model
	width    int
	height   int

	window   *wdl.Window
	groups   []*wdl.RadioGroup
	selected []int
	focused  int

	source  string
	diag    *wdl.Diagnostic
	failure error
	lastLog string

	showSource bool
	showHelp   bool
}

// New returns a preview model. Subscriptions in opts must already be live so
// no result published before the program starts is missed.
func New(opts Options) Model {
	k := keys.DefaultKeyMap()
	vp := viewport.New(0, 0)
	vp.KeyMap = viewport.KeyMap{Up: k.Up, Down: k.Down, PageUp: k.PageUp, PageDown: k.PageDown}
	return Model{
		opts:     opts,
		keys:     k,
		help:     help.New(),
		viewport: vp,
		focused:  render.NoFocus,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.opts.Results.Listen()}
	if m.opts.Logs != nil {
		cmds = append(cmds, m.opts.Logs.Listen())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resize()
		return m, nil

	case pubsub.Event[compiler.Result]:
		m.apply(msg.Payload)
		return m, m.opts.Results.Listen()

	case log.Event:
		m.lastLog = strings.TrimSpace(msg.Payload)
		m.resize()
		if m.opts.Logs == nil {
			return m, nil
		}
		return m, m.opts.Logs.Listen()

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionRelease {
			m.handleClick(msg)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.NextGroup):
		m.cycleGroup(1)
	case key.Matches(msg, m.keys.PrevGroup):
		m.cycleGroup(-1)
	case key.Matches(msg, m.keys.PrevOption):
		m.moveOption(-1)
	case key.Matches(msg, m.keys.NextOption):
		m.moveOption(1)
	case key.Matches(msg, m.keys.ToggleView):
		m.showSource = !m.showSource
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.resize()
		return m, nil
	case key.Matches(msg, m.keys.Reload):
		if m.opts.Reload != nil {
			reload := m.opts.Reload
			return m, func() tea.Msg {
				reload()
				return nil
			}
		}
		return m, nil
	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	m.refresh()
	return m, nil
}

func (m *Model) handleClick(msg tea.MouseMsg) {
	for g, group := range m.groups {
		for o := range group.Options {
			if z := zone.Get(render.OptionID(g, o)); z != nil && z.InBounds(msg) {
				m.focused = g
				m.selected[g] = o
				log.Debug(log.CatPreview, "option clicked", "group", g, "option", o)
				m.refresh()
				return
			}
		}
	}
}

// apply installs a compile result. A failed result keeps the previous tree.
func (m *Model) apply(res compiler.Result) {
	m.source = res.Source
	if res.Err != nil {
		var d *wdl.Diagnostic
		if errors.As(res.Err, &d) {
			m.diag, m.failure = d, nil
		} else {
			m.diag, m.failure = nil, res.Err
		}
		m.refresh()
		return
	}

	m.diag, m.failure = nil, nil
	m.window = res.Window
	groups := render.Groups(res.Window)
	m.selected = carrySelection(m.groups, m.selected, groups)
	m.groups = groups
	switch {
	case len(groups) == 0:
		m.focused = render.NoFocus
	case m.focused < 0 || m.focused >= len(groups):
		m.focused = 0
	}
	m.refresh()
}

// carrySelection keeps a group's selection across reloads when the group at
// the same index still offers the same options.
func carrySelection(prev []*wdl.RadioGroup, sel []int, next []*wdl.RadioGroup) []int {
	out := make([]int, len(next))
	for i, g := range next {
		if i < len(prev) && i < len(sel) && sameOptions(prev[i], g) {
			out[i] = sel[i]
		}
	}
	return out
}

func sameOptions(a, b *wdl.RadioGroup) bool {
	if len(a.Options) != len(b.Options) {
		return false
	}
	for i := range a.Options {
		if a.Options[i] != b.Options[i] {
			return false
		}
	}
	return true
}

func (m *Model) cycleGroup(delta int) {
	n := len(m.groups)
	if n == 0 {
		return
	}
	m.focused = ((m.focused+delta)%n + n) % n
}

func (m *Model) moveOption(delta int) {
	if m.focused < 0 || m.focused >= len(m.groups) {
		return
	}
	n := len(m.groups[m.focused].Options)
	m.selected[m.focused] = ((m.selected[m.focused]+delta)%n + n) % n
}

// Selected returns the selected option of every radio group.
func (m Model) Selected() []int {
	return append([]int(nil), m.selected...)
}

// Focused returns the focused radio group, or render.NoFocus.
func (m Model) Focused() int {
	return m.focused
}

// Window returns the tree on screen, nil until the first good compile.
func (m Model) Window() *wdl.Window {
	return m.window
}

// Diagnostic returns the error of the latest compile, if it failed to parse.
func (m Model) Diagnostic() *wdl.Diagnostic {
	return m.diag
}

func (m *Model) resize() {
	m.viewport.Width = m.width
	m.viewport.Height = max(m.height-lipgloss.Height(m.header())-lipgloss.Height(m.footer()), 1)
	m.refresh()
}

func (m *Model) refresh() {
	m.viewport.SetContent(m.content())
}

func (m Model) content() string {
	var parts []string
	switch {
	case m.diag != nil:
		parts = append(parts, render.Diagnostic(m.diag, m.source), "")
	case m.failure != nil:
		parts = append(parts, errorStyle.Render(m.failure.Error()), "")
	}

	switch {
	case m.showSource:
		parts = append(parts, wdl.Highlight(m.source))
	case m.window != nil:
		width := m.opts.Width
		if width == 0 {
			width = m.width
		}
		parts = append(parts, render.Window(m.window, render.Options{
			Width:    width,
			Selected: m.selected,
			Focused:  m.focused,
			Mark:     zone.Mark,
		}))
	case m.diag == nil && m.failure == nil:
		parts = append(parts, mutedStyle.Render("compiling…"))
	}
	return strings.Join(parts, "\n")
}

func (m Model) header() string {
	status := okStyle.Render("ok")
	if m.diag != nil || m.failure != nil {
		status = errorStyle.Render("error")
	}
	title := titleStyle.Render(m.opts.Name)
	if m.showSource {
		title += mutedStyle.Render(" (source)")
	}
	return fmt.Sprintf("%s %s", title, status)
}

func (m Model) footer() string {
	var lines []string
	if m.lastLog != "" {
		line := m.lastLog
		if m.width > 0 {
			line = ansi.Truncate(line, m.width, "…")
		}
		lines = append(lines, mutedStyle.Render(line))
	}
	if m.showHelp {
		lines = append(lines, m.help.FullHelpView(m.keys.FullHelp()))
	} else {
		lines = append(lines, m.help.ShortHelpView(m.keys.ShortHelp()))
	}
	return strings.Join(lines, "\n")
}

// View implements tea.Model.
func (m Model) View() string {
	return zone.Scan(lipgloss.JoinVertical(lipgloss.Left, m.header(), m.viewport.View(), m.footer()))
}
