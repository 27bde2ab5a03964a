package tui

import "github.com/charmbracelet/lipgloss"

// Theme defines the colors of the console. All colors use ANSI 256-color
// codes.
type Theme struct {
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color

	ErrorText     lipgloss.Color
	WarningText   lipgloss.Color
	NoticeText    lipgloss.Color
	HighlightText lipgloss.Color
}

// DefaultTheme is the built-in dark-terminal color scheme
var DefaultTheme = Theme{
	NormalText:         lipgloss.Color("252"),
	FaintText:          lipgloss.Color("243"),
	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),
	HeaderForeground:   lipgloss.Color("75"),
	BorderColor:        lipgloss.Color("240"),
	HelpText:           lipgloss.Color("241"),
	ErrorText:          lipgloss.Color("196"),
	WarningText:        lipgloss.Color("214"),
	NoticeText:         lipgloss.Color("78"),
	HighlightText:      lipgloss.Color("220"),
}

type styles struct {
	header    lipgloss.Style
	section   lipgloss.Style
	selected  lipgloss.Style
	normal    lipgloss.Style
	faint     lipgloss.Style
	help      lipgloss.Style
	errText   lipgloss.Style
	warnText  lipgloss.Style
	notice    lipgloss.Style
	highlight lipgloss.Style
	prompt    lipgloss.Style
}

func newStyles(theme Theme) styles {
	return styles{
		header:    lipgloss.NewStyle().Bold(true).Foreground(theme.HeaderForeground),
		section:   lipgloss.NewStyle().Bold(true).Foreground(theme.NormalText),
		selected:  lipgloss.NewStyle().Background(theme.SelectedBackground).Foreground(theme.SelectedForeground),
		normal:    lipgloss.NewStyle().Foreground(theme.NormalText),
		faint:     lipgloss.NewStyle().Foreground(theme.FaintText),
		help:      lipgloss.NewStyle().Foreground(theme.HelpText),
		errText:   lipgloss.NewStyle().Foreground(theme.ErrorText),
		warnText:  lipgloss.NewStyle().Foreground(theme.WarningText),
		notice:    lipgloss.NewStyle().Foreground(theme.NoticeText),
		highlight: lipgloss.NewStyle().Bold(true).Foreground(theme.HighlightText),
		prompt: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.WarningText).
			Padding(0, 1),
	}
}
