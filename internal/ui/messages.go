package ui

import (
	"userexplorer/internal/cache"
	"userexplorer/internal/query"
)

// fetchDoneMsg carries a finished load attempt back to the loop
type fetchDoneMsg struct {
	completion cache.Completion
}

// queryFiredMsg carries a debounce fire back to the loop
type queryFiredMsg struct {
	fired query.Fired
}

// pagerMsg contains the result of a pager session
type pagerMsg struct {
	err error
}

// clearNoticeMsg clears a transient footer notice
type clearNoticeMsg struct{}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}
