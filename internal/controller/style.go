package controller

import (
	"github.com/charmbracelet/lipgloss"
	m "loctool.dev/pkg/loctool/internal/model"
)

type palette struct {
	enabled bool
	styles  map[m.Outcome]lipgloss.Style
	path    lipgloss.Style
}

func newPalette(enabled bool) palette {
	return palette{
		enabled: enabled,
		styles: map[m.Outcome]lipgloss.Style{
			m.OutcomeUpdated:        lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
			m.OutcomeAlreadyApplied: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			m.OutcomeSkipped:        lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
			m.OutcomeNotFound:       lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
			m.OutcomeFailed:         lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		},
		path: lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
	}
}

func (p palette) outcome(outcome m.Outcome, text string) string {
	if !p.enabled {
		return text
	}

	style, ok := p.styles[outcome]
	if !ok {
		return text
	}

	return style.Render(text)
}

func (p palette) file(path m.Path) string {
	if !p.enabled {
		return string(path)
	}

	return p.path.Render(string(path))
}
