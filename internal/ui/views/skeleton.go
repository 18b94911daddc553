package views

import (
	"strings"
)

// RenderSkeletonCard draws a card-shaped placeholder
func (r *CardRenderer) RenderSkeletonCard(width int) string {
	inner := width - 4
	if inner < 12 {
		inner = 12
	}
	bar := func(n int) string {
		if n > inner {
			n = inner
		}
		return r.styles.Skeleton.Render(strings.Repeat("░", n))
	}

	lines := []string{bar(inner * 2 / 3), bar(inner / 2)}
	if r.showCompany {
		lines = append(lines, bar(inner/3))
	}

	style := r.styles.Card
	if width > 2 {
		style = style.Width(width - 2)
	}
	return style.Render(strings.Join(lines, "\n"))
}

// RenderSearchSkeleton draws the placeholder for the search box
func (r *Renderer) RenderSearchSkeleton(width int) string {
	n := width - 4
	if n < 10 {
		n = 10
	}
	return r.styles.Skeleton.Render(strings.Repeat("▒", n))
}
