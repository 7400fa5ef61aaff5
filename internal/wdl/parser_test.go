package wdl

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, input string) *Window {
	t.Helper()
	w, err := Parse(input)
	require.NoError(t, err)
	require.NotNil(t, w)
	return w
}

func mustFail(t *testing.T, input string) *Diagnostic {
	t.Helper()
	w, err := Parse(input)
	require.Error(t, err)
	require.Nil(t, w, "no partial tree on failure")

	var diag *Diagnostic
	require.True(t, errors.As(err, &diag), "expected *Diagnostic, got %T", err)
	return diag
}

func TestParser_RoundTripScenario(t *testing.T) {
	w := mustParse(t, `window "Demo" (300,200) layout flow: label "Hi"; textfield 10; end.`)

	assert.Equal(t, &Window{
		Title:  "Demo",
		Width:  300,
		Height: 200,
		Layout: FlowLayout{},
		Children: []Widget{
			&Label{Text: "Hi"},
			&TextField{Columns: 10},
		},
	}, w)
}

func TestParser_EveryWidgetKind(t *testing.T) {
	w := mustParse(t, `
window "All" (640, 480)
layout flow:
  button "OK";
  label "Name";
  textfield 25;
  group
    radio "Yes";
    radio "No";
  end;
  panel layout flow:
  end;
end.`)

	require.Len(t, w.Children, 5)
	assert.Equal(t, &Button{Label: "OK"}, w.Children[0])
	assert.Equal(t, &Label{Text: "Name"}, w.Children[1])
	assert.Equal(t, &TextField{Columns: 25}, w.Children[2])
	assert.Equal(t, &RadioGroup{Options: []string{"Yes", "No"}}, w.Children[3])
	assert.Equal(t, &Panel{Layout: FlowLayout{}}, w.Children[4])
}

func TestParser_GridForms(t *testing.T) {
	tests := []struct {
		name     string
		layout   string
		expected GridLayout
	}{
		{"two arguments", "grid(3, 4):", GridLayout{Rows: 3, Cols: 4}},
		{"four arguments", "grid(3, 4, 5, 6):", GridLayout{Rows: 3, Cols: 4, Hgap: 5, Vgap: 6}},
		{"zeros", "grid(0,0,0,0):", GridLayout{}},
		{"no spaces", "grid(1,2):", GridLayout{Rows: 1, Cols: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := mustParse(t, `window "G" (1, 1) layout `+tt.layout+` button "b"; end.`)
			assert.Equal(t, tt.expected, w.Layout)

			p := mustParse(t, `window "G" (1, 1) layout flow: panel layout `+tt.layout+` end; end.`)
			panel, ok := p.Children[0].(*Panel)
			require.True(t, ok, "expected *Panel")
			assert.Equal(t, tt.expected, panel.Layout)
		})
	}
}

func TestParser_GridErrors(t *testing.T) {
	tests := []struct {
		name     string
		layout   string
		found    TokenType
		expected []TokenType
	}{
		{"three arguments", "grid(1, 2, 3):", TokenRParen, []TokenType{TokenComma}},
		{"five arguments", "grid(1, 2, 3, 4, 5):", TokenComma, []TokenType{TokenRParen}},
		{"one argument", "grid(1):", TokenRParen, []TokenType{TokenComma}},
		{"missing colon", "grid(1, 2) button", TokenButton, []TokenType{TokenColon}},
		{"bad continuation", "grid(1, 2;", TokenSemicolon, []TokenType{TokenComma, TokenRParen}},
		{"missing paren", "grid 1, 2):", TokenNumber, []TokenType{TokenLParen}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diag := mustFail(t, `window "G" (1, 1) layout `+tt.layout+` button "b"; end.`)
			assert.Equal(t, tt.found, diag.Found.Type)
			assert.Equal(t, tt.expected, diag.Expected)
		})
	}
}

func TestParser_NestedPanels(t *testing.T) {
	w := mustParse(t, `
window "Nest" (10, 10)
layout grid(2, 1):
  label "top";
  panel layout flow:
    button "a";
    panel layout grid(1, 2, 3, 4):
      button "b";
      panel layout flow:
        label "deep";
      end;
      button "c";
    end;
    button "d";
  end;
  label "bottom";
end.`)

	expected := &Window{
		Title:  "Nest",
		Width:  10,
		Height: 10,
		Layout: GridLayout{Rows: 2, Cols: 1},
		Children: []Widget{
			&Label{Text: "top"},
			&Panel{
				Layout: FlowLayout{},
				Children: []Widget{
					&Button{Label: "a"},
					&Panel{
						Layout: GridLayout{Rows: 1, Cols: 2, Hgap: 3, Vgap: 4},
						Children: []Widget{
							&Button{Label: "b"},
							&Panel{
								Layout:   FlowLayout{},
								Children: []Widget{&Label{Text: "deep"}},
							},
							&Button{Label: "c"},
						},
					},
					&Button{Label: "d"},
				},
			},
			&Label{Text: "bottom"},
		},
	}
	assert.Equal(t, expected, w)
}

func TestParser_RadioGroupOrderAndDuplicates(t *testing.T) {
	w := mustParse(t, `window "R" (1,1) layout flow: group radio "B"; radio "A"; radio "B"; end; end.`)
	require.Len(t, w.Children, 1)
	assert.Equal(t, &RadioGroup{Options: []string{"B", "A", "B"}}, w.Children[0])
}

func TestParser_RadioGroupSpecExample(t *testing.T) {
	w := mustParse(t, `window "R" (1,1) layout flow: group radio "A"; radio "B"; end; end.`)
	assert.Equal(t, &RadioGroup{Options: []string{"A", "B"}}, w.Children[0])
}

func TestParser_TopLevelChildCount(t *testing.T) {
	w := mustParse(t, `window "C" (1,1) layout flow:
  button "1";
  panel layout flow: button "nested"; button "nested"; end;
  label "3";
  group radio "x"; end;
end.`)
	assert.Len(t, w.Children, 4)
}

func TestParser_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		kind     DiagnosticKind
		found    TokenType
		literal  string
		pos      Position
		expected []TokenType
	}{
		{
			name:     "missing window keyword",
			input:    `"T" (1,1) layout flow: button "x"; end.`,
			kind:     SyntaxError,
			found:    TokenString,
			literal:  "T",
			pos:      Position{1, 1},
			expected: []TokenType{TokenWindow},
		},
		{
			name:     "no widgets",
			input:    `window "T" (1,1) layout flow: end.`,
			kind:     SyntaxError,
			found:    TokenEnd,
			literal:  "end",
			pos:      Position{1, 31},
			expected: widgetStarts,
		},
		{
			name:     "missing layout",
			input:    `window "T" (1,1) button "x"; end.`,
			kind:     SyntaxError,
			found:    TokenButton,
			literal:  "button",
			pos:      Position{1, 18},
			expected: []TokenType{TokenLayout},
		},
		{
			name:     "unknown layout",
			input:    `window "T" (1,1) layout border: button "x"; end.`,
			kind:     LexicalError,
			found:    TokenInvalid,
			literal:  "border",
			pos:      Position{1, 25},
			expected: []TokenType{TokenFlow, TokenGrid},
		},
		{
			name:     "program closed with semicolon",
			input:    `window "T" (1,1) layout flow: button "x"; end;`,
			kind:     SyntaxError,
			found:    TokenSemicolon,
			literal:  ";",
			pos:      Position{1, 46},
			expected: []TokenType{TokenPeriod},
		},
		{
			name:     "panel closed with period",
			input:    `window "T" (1,1) layout flow: panel layout flow: button "x"; end. end.`,
			kind:     SyntaxError,
			found:    TokenPeriod,
			literal:  ".",
			pos:      Position{1, 65},
			expected: []TokenType{TokenSemicolon},
		},
		{
			name:     "group without radios",
			input:    `window "T" (1,1) layout flow: group end; end.`,
			kind:     SyntaxError,
			found:    TokenEnd,
			literal:  "end",
			pos:      Position{1, 37},
			expected: []TokenType{TokenRadio},
		},
		{
			name:     "widget inside group",
			input:    `window "T" (1,1) layout flow: group radio "a"; button "b"; end; end.`,
			kind:     SyntaxError,
			found:    TokenButton,
			literal:  "button",
			pos:      Position{1, 48},
			expected: []TokenType{TokenRadio, TokenEnd},
		},
		{
			name:     "button without label",
			input:    `window "T" (1,1) layout flow: button 5; end.`,
			kind:     SyntaxError,
			found:    TokenNumber,
			literal:  "5",
			pos:      Position{1, 38},
			expected: []TokenType{TokenString},
		},
		{
			name:     "textfield with string",
			input:    `window "T" (1,1) layout flow: textfield "5"; end.`,
			kind:     SyntaxError,
			found:    TokenString,
			literal:  "5",
			pos:      Position{1, 41},
			expected: []TokenType{TokenNumber},
		},
		{
			name:     "missing semicolon",
			input:    `window "T" (1,1) layout flow: label "a" end.`,
			kind:     SyntaxError,
			found:    TokenEnd,
			literal:  "end",
			pos:      Position{1, 41},
			expected: []TokenType{TokenSemicolon},
		},
		{
			name:     "radio outside group",
			input:    `window "T" (1,1) layout flow: button "a"; radio "b"; end.`,
			kind:     SyntaxError,
			found:    TokenRadio,
			literal:  "radio",
			pos:      Position{1, 43},
			expected: widgetOrEnd,
		},
		{
			name:     "trailing tokens",
			input:    `window "T" (1,1) layout flow: button "a"; end. button`,
			kind:     SyntaxError,
			found:    TokenButton,
			literal:  "button",
			pos:      Position{1, 48},
			expected: []TokenType{TokenEOF},
		},
		{
			name:     "invalid character",
			input:    `window "T" (1,1) layout flow: button "a" @ end.`,
			kind:     LexicalError,
			found:    TokenInvalid,
			literal:  "@",
			pos:      Position{1, 42},
			expected: []TokenType{TokenSemicolon},
		},
		{
			name:     "unterminated string",
			input:    "window \"T\" (1,1) layout flow:\nlabel \"never closed;\nend.",
			kind:     LexicalError,
			found:    TokenInvalid,
			literal:  "\"never closed;\nend.",
			pos:      Position{2, 7},
			expected: []TokenType{TokenString},
		},
		{
			name:     "empty input",
			input:    "",
			kind:     UnexpectedEOF,
			found:    TokenEOF,
			pos:      Position{1, 1},
			expected: []TokenType{TokenWindow},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diag := mustFail(t, tt.input)
			assert.Equal(t, tt.kind, diag.Kind)
			assert.Equal(t, tt.found, diag.Found.Type)
			assert.Equal(t, tt.literal, diag.Found.Literal)
			assert.Equal(t, tt.pos, diag.Pos())
			assert.Equal(t, tt.expected, diag.Expected)
		})
	}
}

func TestParser_TruncatedAtButtonReportsFollowingToken(t *testing.T) {
	diag := mustFail(t, `window "T" (10,10) layout flow: button`)

	assert.Equal(t, UnexpectedEOF, diag.Kind)
	assert.Equal(t, TokenEOF, diag.Found.Type)
	assert.Equal(t, Position{1, 39}, diag.Pos())
	assert.Equal(t, []TokenType{TokenString}, diag.Expected)
}

func TestParser_TruncatedInsideGrid(t *testing.T) {
	diag := mustFail(t, "window \"T\" (1,1) layout grid(2, ")

	assert.Equal(t, UnexpectedEOF, diag.Kind)
	assert.Equal(t, []TokenType{TokenNumber}, diag.Expected)
}

func TestParser_TruncatedInsidePanel(t *testing.T) {
	diag := mustFail(t, `window "T" (1,1) layout flow: panel layout flow: button "a";`)

	assert.Equal(t, UnexpectedEOF, diag.Kind)
	assert.Equal(t, widgetOrEnd, diag.Expected)
}

func TestParser_ReportsFirstErrorOnly(t *testing.T) {
	diag := mustFail(t, `window "T" (1,1) layout flow: button 1; label 2; end.`)
	assert.Equal(t, Position{1, 38}, diag.Pos())
}

func TestParser_Idempotent(t *testing.T) {
	src := `window "I" (5,5) layout grid(1,2): panel layout flow: group radio "a"; end; end; button "b"; end.`
	first := mustParse(t, src)
	second := mustParse(t, src)
	assert.Equal(t, first, second)
	assert.NotSame(t, first, second)
}
