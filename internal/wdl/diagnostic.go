package wdl

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// DiagnosticKind classifies a parse failure.
type DiagnosticKind int

const (
	// SyntaxError is a well-formed token that the grammar does not allow here.
	SyntaxError DiagnosticKind = iota
	// LexicalError is input that matches no token category.
	LexicalError
	// UnexpectedEOF is input that ends before the program is complete.
	UnexpectedEOF
)

func (k DiagnosticKind) String() string {
	switch k {
	case LexicalError:
		return "lexical error"
	case UnexpectedEOF:
		return "unexpected end of input"
	default:
		return "syntax error"
	}
}

// Diagnostic describes the first error found in a program. Parsing stops at
// the first error, so there is never more than one.
type Diagnostic struct {
	Kind     DiagnosticKind
	Found    Token
	Expected []TokenType // may be empty
}

func newDiagnostic(found Token, expected ...TokenType) *Diagnostic {
	kind := SyntaxError
	switch found.Type {
	case TokenInvalid:
		kind = LexicalError
	case TokenEOF:
		kind = UnexpectedEOF
	}
	return &Diagnostic{Kind: kind, Found: found, Expected: expected}
}

// Pos returns the position of the offending token.
func (d *Diagnostic) Pos() Position {
	return d.Found.Pos
}

// Message returns the diagnostic without its position prefix.
func (d *Diagnostic) Message() string {
	var b strings.Builder
	switch d.Kind {
	case LexicalError:
		if strings.HasPrefix(d.Found.Literal, `"`) {
			b.WriteString("unterminated string literal")
		} else {
			fmt.Fprintf(&b, "invalid token %q", d.Found.Literal)
		}
		return b.String()
	case UnexpectedEOF:
		if len(d.Expected) == 0 {
			return "incomplete program"
		}
		return "expected " + joinExpected(d.Expected)
	default:
		fmt.Fprintf(&b, "unexpected %s", d.Found.Describe())
	}
	if len(d.Expected) > 0 {
		b.WriteString(", expected ")
		b.WriteString(joinExpected(d.Expected))
	}
	return b.String()
}

// Error implements error.
func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s: %s", d.Found.Pos, d.Kind, d.Message())
}

// Snippet renders the diagnostic with up to one line of context on either
// side and a caret under the offending column. Output is plain text.
//
//	2:5: syntax error: unexpected "foo", expected ...
//
//	   1 | window "T" (1, 1)
//	   2 | foo
//	     | ^
func (d *Diagnostic) Snippet(src string) string {
	var b strings.Builder
	b.WriteString(d.Error())
	b.WriteString("\n\n")

	lines := strings.Split(src, "\n")
	line := min(max(d.Found.Pos.Line, 1), len(lines))
	numWidth := len(fmt.Sprint(min(line+1, len(lines))))

	for n := max(line-1, 1); n <= min(line+1, len(lines)); n++ {
		text := strings.TrimRight(lines[n-1], "\r")
		fmt.Fprintf(&b, "  %*d | %s\n", numWidth, n, text)
		if n == line {
			fmt.Fprintf(&b, "  %*s | %s^\n", numWidth, "", caretPad(text, d.Found.Pos.Column))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// caretPad returns the whitespace that places a caret under the given 1-based
// column, accounting for tabs and wide runes.
func caretPad(line string, col int) string {
	var pad strings.Builder
	i := 1
	for _, r := range line {
		if i >= col {
			break
		}
		if r == '\t' {
			pad.WriteByte('\t')
		} else {
			pad.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
		}
		i++
	}
	if i < col {
		pad.WriteString(strings.Repeat(" ", col-i))
	}
	return pad.String()
}

// joinExpected formats a list of token types as "a, b or c".
func joinExpected(types []TokenType) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}
	if len(names) == 1 {
		return names[0]
	}
	return strings.Join(names[:len(names)-1], ", ") + " or " + names[len(names)-1]
}
