package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Dim           lipgloss.Style
	Help          lipgloss.Style
	Main          lipgloss.Style
	Scroll        lipgloss.Style
	SearchBox     lipgloss.Style
	ResultCount   lipgloss.Style
	Card          lipgloss.Style
	CardSelected  lipgloss.Style
	Avatar        lipgloss.Style
	Name          lipgloss.Style
	Email         lipgloss.Style
	Company       lipgloss.Style
	Skeleton      lipgloss.Style
	StatusError   lipgloss.Style
	StatusLoading lipgloss.Style
	StatusEmpty   lipgloss.Style
	Notice        lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Subtitle:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Dim:       lipgloss.NewStyle().Faint(true),
		Help:      lipgloss.NewStyle().Faint(true),
		Main:      lipgloss.NewStyle().Padding(1, 2),
		Scroll:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		SearchBox: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		ResultCount: lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")), // yellow
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1),
		CardSelected: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(0, 1),
		Avatar: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("99")).
			Padding(0, 1),
		Name:          lipgloss.NewStyle().Bold(true),
		Email:         lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		Company:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Skeleton:      lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusLoading: lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
		StatusEmpty:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Notice:        lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
	}
}
