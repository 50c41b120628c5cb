package ui

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent = lipgloss.Color("69")
	colorMuted  = lipgloss.Color("241")
	colorError  = lipgloss.Color("203")
	colorDone   = lipgloss.Color("78")

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	countStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	sectionStyle = lipgloss.NewStyle().Bold(true).MarginTop(1)
	cursorStyle  = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	doneStyle    = lipgloss.NewStyle().Foreground(colorDone).Strikethrough(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	bannerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(colorError).Padding(0, 1)
	alertStyle   = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	formStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorAccent).Padding(0, 1).MarginTop(1)
	helpStyle    = lipgloss.NewStyle().Foreground(colorMuted).MarginTop(1)
)
