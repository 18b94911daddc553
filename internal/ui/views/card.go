package views

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"userexplorer/internal/domain"
)

// CardRenderer draws one user card
type CardRenderer struct {
	styles      *Styles
	showCompany bool
}

// NewCardRenderer creates a card renderer
func NewCardRenderer(styles *Styles, showCompany bool) *CardRenderer {
	return &CardRenderer{styles: styles, showCompany: showCompany}
}

// Height is the number of terminal lines a card occupies
func (r *CardRenderer) Height() int {
	// Border top and bottom plus the name and email lines
	if r.showCompany {
		return 5
	}
	return 4
}

// RenderCard renders record at the given outer width
func (r *CardRenderer) RenderCard(record domain.Record, selected bool, width int) string {
	style := r.styles.Card
	if selected {
		style = r.styles.CardSelected
	}

	avatar := r.styles.Avatar.Render(Initial(record.Name))
	lines := []string{
		avatar + " " + r.styles.Name.Render(record.Name),
		strings.Repeat(" ", lipgloss.Width(avatar)+1) + r.styles.Email.Render(strings.ToLower(record.Email)),
	}
	if r.showCompany {
		lines = append(lines, strings.Repeat(" ", lipgloss.Width(avatar)+1)+r.styles.Company.Render(record.Company.Name))
	}

	// Width excludes the border
	if width > 2 {
		style = style.Width(width - 2)
	}
	return style.Render(strings.Join(lines, "\n"))
}

// Initial returns the upper-cased first letter of name, or "?"
func Initial(name string) string {
	first, _ := utf8.DecodeRuneInString(name)
	if first == utf8.RuneError {
		return "?"
	}
	return string(unicode.ToUpper(first))
}
