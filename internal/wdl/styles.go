package wdl

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/wdl/internal/styles"
)

// Token highlight styles for WDL syntax highlighting.
var (
	// KeywordStyle for reserved words: window, layout, panel, button, end, ...
	KeywordStyle = lipgloss.NewStyle().
			Foreground(styles.SyntaxKeywordColor).
			Bold(true)

	// StringStyle for quoted literals, quotes included
	StringStyle = lipgloss.NewStyle().
			Foreground(styles.SyntaxStringColor)

	// NumberStyle for integer literals
	NumberStyle = lipgloss.NewStyle().
			Foreground(styles.SyntaxNumberColor)

	// ParenStyle for parentheses
	ParenStyle = lipgloss.NewStyle().
			Foreground(styles.SyntaxParenColor).
			Bold(true)

	// PunctuationStyle for , : ; .
	PunctuationStyle = lipgloss.NewStyle().
				Foreground(styles.SyntaxPunctuationColor)

	// InvalidStyle for input that matches no token
	InvalidStyle = lipgloss.NewStyle().
			Foreground(styles.SyntaxInvalidColor).
			Underline(true)

	// DefaultStyle for anything else
	DefaultStyle = lipgloss.NewStyle()
)
