package wdl

import (
	"strconv"
	"unicode/utf8"
)

// eof is the sentinel held in Lexer.ch once the input is exhausted.
const eof = -1

// Lexer tokenizes WDL input. Tokens are produced on demand by NextToken.
type Lexer struct {
	input   string
	offset  int  // byte offset of ch
	next    int  // byte offset of the character after ch
	ch      rune // current character under examination, eof at end
	line    int  // 1-based line of ch
	col     int  // 1-based column of ch, in code points
	started bool
}

// NewLexer creates a new lexer for the input string.
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input, line: 1, col: 1}
	l.readChar()
	return l
}

// NextToken returns the next token from the input. Once the end of input is
// reached every further call returns a TokenEOF token at the same position.
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	tok := Token{Pos: Position{Line: l.line, Column: l.col}, Offset: l.offset}

	switch l.ch {
	case eof:
		tok.Type = TokenEOF
		tok.End = l.offset
		return tok
	case '(':
		tok.Type = TokenLParen
	case ')':
		tok.Type = TokenRParen
	case ',':
		tok.Type = TokenComma
	case ':':
		tok.Type = TokenColon
	case ';':
		tok.Type = TokenSemicolon
	case '.':
		tok.Type = TokenPeriod
	case '"':
		return l.readString(tok)
	default:
		switch {
		case isLetter(l.ch):
			return l.readWord(tok)
		case isDigit(l.ch):
			return l.readNumber(tok)
		default:
			tok.Type = TokenInvalid
		}
	}

	tok.Literal = string(l.ch)
	l.readChar()
	tok.End = l.offset
	return tok
}

// Tokenize lexes the whole input. The returned slice always ends with the
// first TokenEOF; lexing continues past invalid tokens.
func Tokenize(input string) []Token {
	l := NewLexer(input)
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens
		}
	}
}

// readChar advances to the next code point, keeping line and column in step.
func (l *Lexer) readChar() {
	if l.ch == eof {
		return
	}
	if l.started {
		if l.ch == '\n' {
			l.line++
			l.col = 1
		} else {
			l.col++
		}
	}
	l.started = true

	l.offset = l.next
	if l.next >= len(l.input) {
		l.ch = eof
		return
	}
	r, width := utf8.DecodeRuneInString(l.input[l.next:])
	l.ch = r
	l.next += width
}

// skipWhitespace advances past whitespace characters.
func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

// readWord reads a run of letters, digits and underscores starting with a
// letter. Words that are not keywords are invalid in this language.
func (l *Lexer) readWord(tok Token) Token {
	start := l.offset
	for isLetter(l.ch) || isDigit(l.ch) || l.ch == '_' {
		l.readChar()
	}
	tok.Literal = l.input[start:l.offset]
	tok.End = l.offset
	if kw, ok := LookupKeyword(tok.Literal); ok {
		tok.Type = kw
	} else {
		tok.Type = TokenInvalid
	}
	return tok
}

// readString reads a double-quoted literal. The literal ends at the next quote;
// there are no escape sequences and the literal may span lines.
func (l *Lexer) readString(tok Token) Token {
	l.readChar() // skip opening quote
	start := l.offset
	for l.ch != '"' && l.ch != eof {
		l.readChar()
	}
	if l.ch == eof {
		// Unterminated: report the opening quote and everything after it.
		tok.Type = TokenInvalid
		tok.Literal = l.input[tok.Offset:]
		tok.End = l.offset
		return tok
	}
	tok.Type = TokenString
	tok.Literal = l.input[start:l.offset]
	l.readChar() // skip closing quote
	tok.End = l.offset
	return tok
}

// readNumber reads a maximal run of decimal digits.
func (l *Lexer) readNumber(tok Token) Token {
	start := l.offset
	for isDigit(l.ch) {
		l.readChar()
	}
	tok.Literal = l.input[start:l.offset]
	tok.End = l.offset

	n, err := strconv.Atoi(tok.Literal)
	if err != nil {
		// Out of range for int.
		tok.Type = TokenInvalid
		return tok
	}
	tok.Type = TokenNumber
	tok.Value = n
	return tok
}

// isLetter returns true if c is an ASCII letter.
func isLetter(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// isDigit returns true if c is a decimal digit.
func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}
