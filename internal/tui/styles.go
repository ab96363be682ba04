package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/studydesk/studydesk/internal/core/notify"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			Padding(0, 1)

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	focusedPaneStyle = paneStyle.
				BorderForeground(lipgloss.Color("205"))

	paneTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99"))

	rosterOnlineStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	rosterOfflineStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	chatAuthorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("75"))

	statusBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	mutedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203"))

	toastBase = lipgloss.NewStyle().Bold(true).Padding(0, 1)

	toastSuccessStyle = toastBase.Foreground(lipgloss.Color("42"))
	toastErrorStyle   = toastBase.Foreground(lipgloss.Color("203"))
	toastWarningStyle = toastBase.Foreground(lipgloss.Color("214"))
	toastInfoStyle    = toastBase.Foreground(lipgloss.Color("75"))
)

func toastStyle(kind notify.Kind) lipgloss.Style {
	switch kind {
	case notify.KindSuccess:
		return toastSuccessStyle
	case notify.KindError:
		return toastErrorStyle
	case notify.KindWarning:
		return toastWarningStyle
	default:
		return toastInfoStyle
	}
}
