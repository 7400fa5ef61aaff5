// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Semantic color names - Text hierarchy
	TextPrimaryColor = lipgloss.AdaptiveColor{Light: "#333333", Dark: "#CCCCCC"} // Main/primary text
	TextMutedColor   = lipgloss.AdaptiveColor{Light: "#9CA0B0", Dark: "#696969"} // Hints, gutters, footers

	// Semantic color names - Border
	BorderDefaultColor = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"} // Panel and window borders
	BorderFocusColor   = lipgloss.AdaptiveColor{Light: "#1E66F5", Dark: "#89B4FA"} // Focused radio group

	// Semantic color names - Status
	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}

	// WDL syntax highlighting colors (Catppuccin Mocha)
	SyntaxKeywordColor     = lipgloss.AdaptiveColor{Light: "#8839EF", Dark: "#CBA6F7"} // mauve
	SyntaxStringColor      = lipgloss.AdaptiveColor{Light: "#DF8E1D", Dark: "#F9E2AF"} // yellow
	SyntaxNumberColor      = lipgloss.AdaptiveColor{Light: "#FE640B", Dark: "#FAB387"} // peach
	SyntaxParenColor       = lipgloss.AdaptiveColor{Light: "#1E66F5", Dark: "#89B4FA"} // blue
	SyntaxPunctuationColor = lipgloss.AdaptiveColor{Light: "#9CA0B0", Dark: "#6C7086"} // overlay0
	SyntaxInvalidColor     = lipgloss.AdaptiveColor{Light: "#D20F39", Dark: "#F38BA8"} // red

	// Widget rendering colors
	ButtonTextColor = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}
	ButtonBgColor   = lipgloss.AdaptiveColor{Light: "#1A5276", Dark: "#1A5276"}
	FieldBgColor    = lipgloss.AdaptiveColor{Light: "#E6E9EF", Dark: "#313244"}
	TitleBarColor   = lipgloss.AdaptiveColor{Light: "#1E66F5", Dark: "#89B4FA"}

	// Diagnostic styles
	ErrorHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(StatusErrorColor)
	GutterStyle      = lipgloss.NewStyle().Foreground(TextMutedColor)
	CaretStyle       = lipgloss.NewStyle().Bold(true).Foreground(StatusErrorColor)
	SuccessStyle     = lipgloss.NewStyle().Foreground(StatusSuccessColor)
	MutedStyle       = lipgloss.NewStyle().Foreground(TextMutedColor)

	// Diff styles
	DiffAddedStyle   = lipgloss.NewStyle().Foreground(StatusSuccessColor)
	DiffRemovedStyle = lipgloss.NewStyle().Foreground(StatusErrorColor)
)
