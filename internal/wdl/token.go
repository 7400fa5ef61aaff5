// Package wdl implements the lexer and parser for the Window Description
// Language, a small declarative language describing a titled window built
// from nested panels, layouts, and a fixed set of widgets.
package wdl

import "fmt"

// TokenType represents the type of lexical token.
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenInvalid

	// Literals
	TokenString // "quoted", quotes stripped
	TokenNumber // non-negative decimal integer

	// Punctuation
	TokenLParen    // (
	TokenRParen    // )
	TokenComma     // ,
	TokenColon     // :
	TokenSemicolon // ;
	TokenPeriod    // .

	// Keywords
	TokenWindow    // window
	TokenEnd       // end
	TokenLayout    // layout
	TokenFlow      // flow
	TokenGrid      // grid
	TokenButton    // button
	TokenGroup     // group
	TokenRadio     // radio
	TokenLabel     // label
	TokenPanel     // panel
	TokenTextfield // textfield
)

// String returns the string representation of the token type.
func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "end of input"
	case TokenInvalid:
		return "invalid token"
	case TokenString:
		return "string literal"
	case TokenNumber:
		return "number"
	case TokenLParen:
		return "'('"
	case TokenRParen:
		return "')'"
	case TokenComma:
		return "','"
	case TokenColon:
		return "':'"
	case TokenSemicolon:
		return "';'"
	case TokenPeriod:
		return "'.'"
	case TokenWindow:
		return "window"
	case TokenEnd:
		return "end"
	case TokenLayout:
		return "layout"
	case TokenFlow:
		return "flow"
	case TokenGrid:
		return "grid"
	case TokenButton:
		return "button"
	case TokenGroup:
		return "group"
	case TokenRadio:
		return "radio"
	case TokenLabel:
		return "label"
	case TokenPanel:
		return "panel"
	case TokenTextfield:
		return "textfield"
	default:
		return "UNKNOWN"
	}
}

// IsKeyword reports whether the token type is a reserved word.
func (t TokenType) IsKeyword() bool {
	return t >= TokenWindow && t <= TokenTextfield
}

// StartsWidget reports whether a token of this type begins a Widget production.
func (t TokenType) StartsWidget() bool {
	switch t {
	case TokenButton, TokenGroup, TokenLabel, TokenPanel, TokenTextfield:
		return true
	}
	return false
}

// Position is a 1-based line and column in the source. Columns count code
// points, not bytes.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token represents a lexical token.
type Token struct {
	Type    TokenType
	Literal string // lexeme; quotes stripped for TokenString
	Value   int    // integer value for TokenNumber
	Pos     Position
	Offset  int // byte offset of the first character
	End     int // byte offset just past the last character
}

// Describe returns a short human readable form of the token for messages.
func (t Token) Describe() string {
	switch t.Type {
	case TokenEOF:
		return "end of input"
	case TokenString:
		return fmt.Sprintf("string %q", t.Literal)
	case TokenNumber:
		return fmt.Sprintf("number %d", t.Value)
	default:
		return fmt.Sprintf("%q", t.Literal)
	}
}

// keywords maps reserved words to their token types. Matching is case-sensitive.
var keywords = map[string]TokenType{
	"window":    TokenWindow,
	"end":       TokenEnd,
	"layout":    TokenLayout,
	"flow":      TokenFlow,
	"grid":      TokenGrid,
	"button":    TokenButton,
	"group":     TokenGroup,
	"radio":     TokenRadio,
	"label":     TokenLabel,
	"panel":     TokenPanel,
	"textfield": TokenTextfield,
}

// LookupKeyword returns the keyword token type for word. The second result is
// false when word is not a reserved word.
func LookupKeyword(word string) (TokenType, bool) {
	tok, ok := keywords[word]
	return tok, ok
}
