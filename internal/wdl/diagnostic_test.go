package wdl

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnostic_Error(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "unknown word",
			input:    `window "T" (1,1) layout table:`,
			expected: `1:25: lexical error: invalid token "table"`,
		},
		{
			name:     "single expectation",
			input:    `window "T" (1,1) layout flow: button 5; end.`,
			expected: `1:38: syntax error: unexpected number 5, expected string literal`,
		},
		{
			name:     "several expectations",
			input:    `window "T" (1,1) layout grid(1, 2;`,
			expected: `1:34: syntax error: unexpected ";", expected ',' or ')'`,
		},
		{
			name:     "end of input",
			input:    `window "T" (1,1) layout flow: button`,
			expected: `1:37: unexpected end of input: expected string literal`,
		},
		{
			name:     "unterminated string",
			input:    `window "T`,
			expected: `1:8: lexical error: unterminated string literal`,
		},
		{
			name:     "widget alternatives",
			input:    `window "T" (1,1) layout flow: "x"`,
			expected: `1:31: syntax error: unexpected string "x", expected button, group, label, panel or textfield`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			require.Error(t, err)
			assert.Equal(t, tt.expected, err.Error())
		})
	}
}

func TestDiagnostic_Snippet(t *testing.T) {
	src := "window \"T\" (1,1)\nlayout flow:\n  button 5;\nend."
	_, err := Parse(src)
	require.Error(t, err)

	diag, ok := err.(*Diagnostic)
	require.True(t, ok)

	expected := "3:10: syntax error: unexpected number 5, expected string literal\n" +
		"\n" +
		"  2 | layout flow:\n" +
		"  3 |   button 5;\n" +
		"    |          ^\n" +
		"  4 | end."
	assert.Equal(t, expected, diag.Snippet(src))
}

func TestDiagnostic_SnippetAtEndOfInput(t *testing.T) {
	src := `window "T" (1,1) layout flow: button`
	_, err := Parse(src)
	require.Error(t, err)

	diag := err.(*Diagnostic)
	snippet := diag.Snippet(src)
	assert.Contains(t, snippet, "  1 | "+src+"\n")
	assert.Contains(t, snippet, "    | "+strings.Repeat(" ", 36)+"^")
}

func TestDiagnostic_SnippetWideRunes(t *testing.T) {
	src := `window "世界" (1,1) layout flow: @`
	_, err := Parse(src)
	require.Error(t, err)

	// The caret sits under "@" when the wide runes are rendered two cells wide.
	diag := err.(*Diagnostic)
	assert.Equal(t, Position{1, 32}, diag.Pos())
	assert.Contains(t, diag.Snippet(src), "    | "+strings.Repeat(" ", 33)+"^")
}

func TestDiagnosticKind_String(t *testing.T) {
	assert.Equal(t, "syntax error", SyntaxError.String())
	assert.Equal(t, "lexical error", LexicalError.String())
	assert.Equal(t, "unexpected end of input", UnexpectedEOF.String())
}
