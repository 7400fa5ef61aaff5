package render

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/wdl/internal/wdl"
)

func TestDiagnostic_MatchesPlainSnippet(t *testing.T) {
	src := "window \"T\" (1,1)\nlayout flow:\n  button 5;\nend."
	_, err := wdl.Parse(src)
	require.Error(t, err)

	d := err.(*wdl.Diagnostic)
	require.Equal(t, d.Snippet(src), ansi.Strip(Diagnostic(d, src)))
}

func TestDiagnostic_FirstLine(t *testing.T) {
	src := `window "T" (1,1) layout flow: @`
	_, err := wdl.Parse(src)
	require.Error(t, err)

	out := ansi.Strip(Diagnostic(err.(*wdl.Diagnostic), src))
	require.Contains(t, out, "1:31: lexical error: invalid token \"@\"\n\n  1 | ")
}
