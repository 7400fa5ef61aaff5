package render

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/wdl/internal/styles"
)

var (
	windowStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(styles.BorderDefaultColor).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(styles.TitleBarColor)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(styles.BorderDefaultColor)

	buttonStyle = lipgloss.NewStyle().Foreground(styles.ButtonTextColor).Background(styles.ButtonBgColor)
	labelStyle  = lipgloss.NewStyle().Foreground(styles.TextPrimaryColor)
	fieldStyle  = lipgloss.NewStyle().Foreground(styles.TextMutedColor).Background(styles.FieldBgColor)

	radioStyle        = lipgloss.NewStyle().Foreground(styles.TextPrimaryColor)
	radioFocusedStyle = lipgloss.NewStyle().Foreground(styles.BorderFocusColor).Bold(true)
)
