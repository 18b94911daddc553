package views

import "fmt"

// StatusKind selects the icon and default text of a status message
type StatusKind int

const (
	StatusLoading StatusKind = iota
	StatusError
	StatusEmpty
)

// DefaultMessage returns the text shown when no message is given
func DefaultMessage(kind StatusKind) string {
	switch kind {
	case StatusLoading:
		return "Loading users..."
	case StatusError:
		return "Something went wrong. Please try again later."
	default:
		return "No users found matching your search."
	}
}

func statusIcon(kind StatusKind) string {
	switch kind {
	case StatusLoading:
		return "⏳"
	case StatusError:
		return "⚠"
	default:
		return "🔍"
	}
}

// RenderStatus renders a loading, error or empty state line
func (r *Renderer) RenderStatus(kind StatusKind, message string) string {
	if message == "" {
		message = DefaultMessage(kind)
	}

	style := r.styles.StatusEmpty
	switch kind {
	case StatusLoading:
		style = r.styles.StatusLoading
	case StatusError:
		style = r.styles.StatusError
	}
	return style.Render(fmt.Sprintf("%s %s", statusIcon(kind), message))
}

// ResultCountText returns "1 user found" or "N users found"
func ResultCountText(n int) string {
	if n == 1 {
		return "1 user found"
	}
	return fmt.Sprintf("%d users found", n)
}
