package usecase

import "github.com/charmbracelet/lipgloss"

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00A86B")).
			Bold(true)

	menuKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#22D3EE"))

	answerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E5E7EB"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9CA3AF"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F43F5E")).
			Bold(true)
)
