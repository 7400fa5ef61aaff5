package preview

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/wdl/internal/styles"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(styles.TitleBarColor)
	okStyle    = styles.SuccessStyle
	errorStyle = styles.ErrorHeaderStyle
	mutedStyle = styles.MutedStyle
)
