package preview

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/exp/teatest"
	zone "github.com/lrstanley/bubblezone"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/wdl/internal/compiler"
	"github.com/zjrosen/wdl/internal/pubsub"
	"github.com/zjrosen/wdl/internal/render"
	"github.com/zjrosen/wdl/internal/testutil"
)

const twoGroups = `window "Order" (300,200) layout flow:
  group radio "Tea"; radio "Coffee"; end;
  group radio "Small"; radio "Medium"; radio "Large"; end;
end.`

const broken = `window "Order" (300,200) layout flow: button 5; end.`

type harness struct {
	broker   *pubsub.Broker[compiler.Result]
	compiler *compiler.Compiler
	model    Model
}

func newHarness(t *testing.T, opts Options) *harness {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	broker := pubsub.NewBroker[compiler.Result]()
	t.Cleanup(func() {
		cancel()
		broker.Close()
	})

	opts.Results = pubsub.NewListener[compiler.Result](ctx, broker)
	if opts.Name == "" {
		opts.Name = "order.wdl"
	}
	return &harness{
		broker:   broker,
		compiler: compiler.New(compiler.Options{Broker: broker}),
		model:    New(opts),
	}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

func compiled(t *testing.T, src string) pubsub.Event[compiler.Result] {
	t.Helper()
	res, _ := compiler.New(compiler.Options{}).Compile(context.Background(), "order.wdl", src)
	typ := pubsub.CompiledEvent
	if res.Err != nil {
		typ = pubsub.FailedEvent
	}
	return pubsub.Event[compiler.Result]{Type: typ, Payload: res, Timestamp: time.Now()}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_AppliesCompiledTree(t *testing.T) {
	h := newHarness(t, Options{})
	m := update(t, h.model, compiled(t, twoGroups))

	require.NotNil(t, m.Window())
	require.Equal(t, "Order", m.Window().Title)
	require.Equal(t, []int{0, 0}, m.Selected())
	require.Equal(t, 0, m.Focused())
	require.Nil(t, m.Diagnostic())
}

func TestModel_NoGroups(t *testing.T) {
	h := newHarness(t, Options{})
	m := update(t, h.model, compiled(t, testutil.Demo))

	require.Equal(t, render.NoFocus, m.Focused())
	require.Empty(t, m.Selected())

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	require.Equal(t, render.NoFocus, m.Focused())
}

func TestModel_CyclesGroupsAndOptions(t *testing.T) {
	h := newHarness(t, Options{})
	m := update(t, h.model, compiled(t, twoGroups))

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, 1, m.Focused())
	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, 0, m.Focused(), "tab wraps around")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	require.Equal(t, 1, m.Focused())

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	require.Equal(t, []int{0, 2}, m.Selected())
	m = update(t, m, keyRunes("l"))
	require.Equal(t, []int{0, 0}, m.Selected(), "right wraps around")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	require.Equal(t, []int{0, 2}, m.Selected(), "left wraps around")
}

func TestModel_FailureKeepsLastGoodTree(t *testing.T) {
	h := newHarness(t, Options{})
	m := update(t, h.model, tea.WindowSizeMsg{Width: 80, Height: 30})
	m = update(t, m, compiled(t, twoGroups))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	good := m.Window()

	m = update(t, m, compiled(t, broken))
	require.Same(t, good, m.Window())
	require.NotNil(t, m.Diagnostic())
	require.Equal(t, []int{1, 0}, m.Selected())

	view := ansi.Strip(m.View())
	require.Contains(t, view, "1:46: syntax error: unexpected number 5, expected string literal")
	require.Contains(t, view, "order.wdl error")
	require.Contains(t, view, "Coffee")

	m = update(t, m, compiled(t, twoGroups))
	require.Nil(t, m.Diagnostic())
	require.NotContains(t, ansi.Strip(m.View()), "syntax error")
}

func TestModel_ReadFailure(t *testing.T) {
	h := newHarness(t, Options{})
	m := update(t, h.model, tea.WindowSizeMsg{Width: 80, Height: 30})

	res := h.compiler.Fail("order.wdl", errors.New("reading order.wdl: no such file"))
	m = update(t, m, pubsub.Event[compiler.Result]{Type: pubsub.FailedEvent, Payload: res})

	require.Nil(t, m.Diagnostic())
	require.Contains(t, ansi.Strip(m.View()), "reading order.wdl: no such file")
}

func TestModel_SelectionSurvivesCompatibleReload(t *testing.T) {
	h := newHarness(t, Options{})
	m := update(t, h.model, compiled(t, twoGroups))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	require.Equal(t, []int{0, 1}, m.Selected())

	// Same groups, different title.
	m = update(t, m, compiled(t, strings.Replace(twoGroups, `"Order"`, `"Order form"`, 1)))
	require.Equal(t, []int{0, 1}, m.Selected())
	require.Equal(t, 1, m.Focused())

	// The second group changed, so it resets; the group count shrank, so
	// focus moves back into range.
	m = update(t, m, compiled(t, `window "Order" (1,1) layout flow: group radio "Tea"; radio "Coffee"; end; end.`))
	require.Equal(t, []int{0}, m.Selected())
	require.Equal(t, 0, m.Focused())
}

func TestModel_ToggleSource(t *testing.T) {
	h := newHarness(t, Options{})
	m := update(t, h.model, tea.WindowSizeMsg{Width: 80, Height: 30})
	m = update(t, m, compiled(t, twoGroups))

	m = update(t, m, keyRunes("s"))
	view := ansi.Strip(m.View())
	require.Contains(t, view, `group radio "Tea";`)
	require.Contains(t, view, "(source)")

	m = update(t, m, keyRunes("s"))
	require.NotContains(t, ansi.Strip(m.View()), `group radio "Tea";`)
}

func TestModel_Reload(t *testing.T) {
	calls := 0
	h := newHarness(t, Options{Reload: func() { calls++ }})

	_, cmd := h.model.Update(keyRunes("r"))
	require.NotNil(t, cmd)
	require.Nil(t, cmd())
	require.Equal(t, 1, calls)
}

func TestModel_HelpToggle(t *testing.T) {
	h := newHarness(t, Options{})
	m := update(t, h.model, tea.WindowSizeMsg{Width: 120, Height: 30})

	require.NotContains(t, ansi.Strip(m.View()), "page down")
	m = update(t, m, keyRunes("?"))
	require.Contains(t, ansi.Strip(m.View()), "page down")
}

func TestModel_LogFooter(t *testing.T) {
	h := newHarness(t, Options{})
	m := update(t, h.model, tea.WindowSizeMsg{Width: 80, Height: 30})

	next, _ := m.Update(pubsub.Event[string]{Type: pubsub.LoggedEvent, Payload: "12:00:00 [INFO] [watcher] source changed\n"})
	m = next.(Model)
	require.Contains(t, ansi.Strip(m.View()), "[watcher] source changed")
}

func TestModel_ClickSelectsOption(t *testing.T) {
	h := newHarness(t, Options{})
	m := update(t, h.model, tea.WindowSizeMsg{Width: 100, Height: 30})
	m = update(t, m, compiled(t, twoGroups))

	id := render.OptionID(1, 2)
	var z *zone.ZoneInfo
	for retries := 0; retries < 10; retries++ {
		_ = m.View()
		z = zone.Get(id)
		if z != nil && !z.IsZero() {
			break
		}
		time.Sleep(time.Millisecond)
	}
	require.NotNil(t, z, "zone should be registered after View()")
	require.False(t, z.IsZero())

	m = update(t, m, tea.MouseMsg{
		X:      z.StartX + (z.EndX-z.StartX)/2,
		Y:      z.StartY,
		Button: tea.MouseButtonLeft,
		Action: tea.MouseActionRelease,
	})
	require.Equal(t, []int{0, 2}, m.Selected())
	require.Equal(t, 1, m.Focused())
}

func TestModel_LivePreview(t *testing.T) {
	h := newHarness(t, Options{})
	tm := teatest.NewTestModel(t, h.model, teatest.WithInitialTermSize(100, 30))

	_, _ = h.compiler.Compile(context.Background(), "order.wdl", twoGroups)
	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("Coffee"))
	}, teatest.WithDuration(3*time.Second))

	tm.Send(tea.KeyMsg{Type: tea.KeyTab})
	tm.Send(tea.KeyMsg{Type: tea.KeyRight})

	_, _ = h.compiler.Compile(context.Background(), "order.wdl", broken)
	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("syntax error"))
	}, teatest.WithDuration(3*time.Second))

	tm.Send(keyRunes("q"))
	tm.WaitFinished(t, teatest.WithFinalTimeout(3*time.Second))

	final := tm.FinalModel(t).(Model)
	require.Equal(t, []int{0, 1}, final.Selected())
	require.Equal(t, "Order", final.Window().Title)
	require.NotNil(t, final.Diagnostic())
}
