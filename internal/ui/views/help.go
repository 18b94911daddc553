package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"userexplorer/internal/domain"
)

// RenderHelpContent renders the full key reference shown in the pager
func RenderHelpContent() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	row := func(keys, desc string) string {
		return fmt.Sprintf("  %-12s %s\n", keyStyle.Render(keys), descStyle.Render(desc))
	}

	var help strings.Builder

	help.WriteString(titleStyle.Render(Title + " Help"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Navigation"))
	help.WriteString("\n")
	help.WriteString(row("↑/↓, j/k", "Move between users"))
	help.WriteString(row("PgUp/PgDn", "Page up/down"))
	help.WriteString(row("gg/G", "Go to top/bottom"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Search"))
	help.WriteString("\n")
	help.WriteString(row("/", "Search by name or email"))
	help.WriteString(row("Enter", "Keep the query and return to the list"))
	help.WriteString(row("Esc", "Clear the query"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Other"))
	help.WriteString("\n")
	help.WriteString(row("r", "Retry after a failed load"))
	help.WriteString(row("p", "Page through the current results"))
	help.WriteString(row("?", "Show this help"))
	help.WriteString(row("q", "Quit"))

	return help.String()
}

// RenderRecordsPlain renders records as plain text for the pager
func RenderRecordsPlain(records []domain.Record, query string) string {
	var b strings.Builder
	if query != "" {
		fmt.Fprintf(&b, "%s matching %q\n\n", ResultCountText(len(records)), query)
	} else {
		fmt.Fprintf(&b, "%d users\n\n", len(records))
	}
	for _, record := range records {
		fmt.Fprintf(&b, "%-4d %-28s %-32s %s\n",
			record.ID, record.Name, strings.ToLower(record.Email), record.Company.Name)
	}
	return b.String()
}
