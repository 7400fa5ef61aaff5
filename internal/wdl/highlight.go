package wdl

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Highlight applies syntax highlighting to WDL source. Whitespace between
// tokens is preserved verbatim, and invalid input is highlighted rather than
// rejected, so partial programs render too.
func Highlight(src string) string {
	if src == "" {
		return ""
	}

	lexer := NewLexer(src)
	var result strings.Builder
	lastPos := 0

	for {
		tok := lexer.NextToken()
		if tok.Type == TokenEOF {
			break
		}

		if tok.Offset > lastPos {
			result.WriteString(src[lastPos:tok.Offset])
		}
		// Slice the source so string tokens keep their quotes.
		result.WriteString(renderLines(tokenStyle(tok.Type), src[tok.Offset:tok.End]))
		lastPos = tok.End
	}

	if lastPos < len(src) {
		result.WriteString(src[lastPos:])
	}
	return result.String()
}

// renderLines styles each line of text separately. Rendering a multi-line
// string in one call would pad every line to the widest one.
func renderLines(style lipgloss.Style, text string) string {
	if !strings.Contains(text, "\n") {
		return style.Render(text)
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = style.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

// tokenStyle returns the appropriate style for a token type.
func tokenStyle(t TokenType) lipgloss.Style {
	if t.IsKeyword() {
		return KeywordStyle
	}

	switch t {
	case TokenString:
		return StringStyle
	case TokenNumber:
		return NumberStyle
	case TokenLParen, TokenRParen:
		return ParenStyle
	case TokenComma, TokenColon, TokenSemicolon, TokenPeriod:
		return PunctuationStyle
	case TokenInvalid:
		return InvalidStyle
	default:
		return DefaultStyle
	}
}
