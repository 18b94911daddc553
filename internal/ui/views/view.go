package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"userexplorer/internal/domain"
)

// Title and subtitle shown above the search box
const (
	Title    = "User Explorer"
	Subtitle = "Browse and search through the user directory"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width           int
	Height          int
	Status          domain.FetchStatus
	Message         string
	Spinner         string
	SearchBox       string
	Records         []domain.Record
	ResultCount     int
	FilteringActive bool
	Revision        uint64
	Cursor          int
	Offset          int
	SkeletonCards   int
	HelpLine        string
	Notice          string
}

// listKey identifies a rendered card list
type listKey struct {
	revision uint64
	width    int
	height   int
	cursor   int
	offset   int
}

// Renderer handles all view rendering
type Renderer struct {
	styles    *Styles
	cards     *CardRenderer
	listKey   listKey
	listValid bool
	list      string
	listHits  int
}

// NewRenderer creates a new renderer
func NewRenderer(showCompany bool) *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles: styles,
		cards:  NewCardRenderer(styles, showCompany),
	}
}

// chromeLines counts the lines around the card list: container padding,
// title, subtitle, search box, blank line, scroll hint and help line.
func chromeLines(filteringActive bool) int {
	n := 9
	if filteringActive {
		n++
	}
	return n
}

// VisibleCards returns how many cards fit in a terminal of height lines
func (r *Renderer) VisibleCards(height int, filteringActive bool) int {
	if height <= 0 {
		height = 24
	}
	n := (height - chromeLines(filteringActive)) / r.cards.Height()
	if n < 1 {
		n = 1
	}
	return n
}

// CacheHits reports how often the card list was served from cache
func (r *Renderer) CacheHits() int { return r.listHits }

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	width := state.Width
	if width <= 0 {
		width = 80
	}
	innerWidth := width - 4 // Account for main container padding

	content := &strings.Builder{}

	// Title line with the spinner right-aligned while loading
	title := r.styles.Title.Render(Title)
	if state.Status == domain.StatusPending && state.Spinner != "" {
		padding := innerWidth - lipgloss.Width(title) - lipgloss.Width(state.Spinner)
		if padding < 2 {
			padding = 2
		}
		title = title + strings.Repeat(" ", padding) + state.Spinner
	}
	content.WriteString(title)
	content.WriteString("\n")

	if state.Status == domain.StatusFailed {
		// The failed state replaces the whole page
		content.WriteString("\n")
		content.WriteString(r.RenderStatus(StatusError, state.Message))
		content.WriteString("\n")
		return r.finish(content, state)
	}

	content.WriteString(r.styles.Subtitle.Render(Subtitle))
	content.WriteString("\n")

	switch state.Status {
	case domain.StatusPending:
		content.WriteString(r.RenderSearchSkeleton(innerWidth))
		content.WriteString("\n\n")
		content.WriteString(r.RenderStatus(StatusLoading, ""))
		content.WriteString("\n")
		content.WriteString(r.renderSkeletons(state, innerWidth))

	case domain.StatusReady:
		content.WriteString(r.styles.SearchBox.Render(state.SearchBox))
		content.WriteString("\n")
		if state.FilteringActive {
			content.WriteString(r.styles.ResultCount.Render(ResultCountText(state.ResultCount)))
			content.WriteString("\n")
		}
		content.WriteString("\n")
		if len(state.Records) == 0 {
			content.WriteString(r.RenderStatus(StatusEmpty, ""))
		} else {
			content.WriteString(r.renderList(state, innerWidth))
		}
	}

	return r.finish(content, state)
}

// finish pins the help line to the bottom and applies the container style
func (r *Renderer) finish(content *strings.Builder, state ViewState) string {
	footer := state.HelpLine
	if state.Notice != "" {
		footer = r.styles.Notice.Render(state.Notice)
	}

	if footer != "" {
		currentLines := strings.Count(content.String(), "\n") + 1

		// Container padding takes 2 lines, the footer 1
		availableLines := state.Height - 2
		if availableLines <= 0 {
			availableLines = 22
		}
		if paddingNeeded := availableLines - currentLines - 1; paddingNeeded > 0 {
			content.WriteString(strings.Repeat("\n", paddingNeeded))
		}
		content.WriteString("\n")
		content.WriteString(r.styles.Help.Render(footer))
	}

	mainStyle := r.styles.Main
	if state.Height > 0 {
		mainStyle = mainStyle.MaxHeight(state.Height)
	}
	return mainStyle.Render(content.String())
}

func (r *Renderer) renderSkeletons(state ViewState, width int) string {
	n := state.SkeletonCards
	if fit := r.VisibleCards(state.Height, false); n > fit {
		n = fit
	}
	cards := make([]string, 0, n)
	for i := 0; i < n; i++ {
		cards = append(cards, r.cards.RenderSkeletonCard(width))
	}
	return strings.Join(cards, "\n")
}

// renderList draws the visible window of cards. The result is reused
// until the filtered records, the geometry or the cursor change.
func (r *Renderer) renderList(state ViewState, width int) string {
	key := listKey{
		revision: state.Revision,
		width:    width,
		height:   state.Height,
		cursor:   state.Cursor,
		offset:   state.Offset,
	}
	if r.listValid && r.listKey == key {
		r.listHits++
		return r.list
	}

	visible := r.VisibleCards(state.Height, state.FilteringActive)
	start := state.Offset
	if start < 0 || start >= len(state.Records) {
		start = 0
	}
	end := start + visible
	if end > len(state.Records) {
		end = len(state.Records)
	}

	lines := make([]string, 0, end-start+1)
	for i := start; i < end; i++ {
		lines = append(lines, r.cards.RenderCard(state.Records[i], i == state.Cursor, width))
	}

	var hint []string
	if start > 0 {
		hint = append(hint, fmt.Sprintf("↑ %d more", start))
	}
	if rest := len(state.Records) - end; rest > 0 {
		hint = append(hint, fmt.Sprintf("↓ %d more", rest))
	}
	if len(hint) > 0 {
		lines = append(lines, r.styles.Scroll.Render(strings.Join(hint, "  ")))
	}

	r.list = strings.Join(lines, "\n")
	r.listKey = key
	r.listValid = true
	return r.list
}
