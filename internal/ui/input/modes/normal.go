package modes

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"userexplorer/internal/ui/input/types"
)

// ggWindow is how quickly the second g must follow the first
const ggWindow = 500 * time.Millisecond

// normalMoves adds vim keys and jumps to the shared list keys
var normalMoves = map[string]string{
	"j":    "down",
	"k":    "up",
	"home": "home",
	"end":  "end",
	"G":    "end",
}

// NormalMode browses the list. Every key is consumed so nothing leaks
// into the search box.
type NormalMode struct {
	pendingG time.Time
}

func NewNormalMode() *NormalMode {
	return &NormalMode{}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	key := msg.String()

	if key == "g" {
		if !m.pendingG.IsZero() && time.Since(m.pendingG) < ggWindow {
			m.pendingG = time.Time{}
			return navigate("home"), true
		}
		m.pendingG = time.Now()
		return nil, true
	}
	m.pendingG = time.Time{}

	if direction, ok := listKeys[key]; ok {
		return navigate(direction), true
	}
	if direction, ok := normalMoves[key]; ok {
		return navigate(direction), true
	}

	switch key {
	case "ctrl+c", "q":
		return []types.Action{types.QuitAction{}}, true
	case "/":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeSearch}}, true
	case "?":
		return []types.Action{types.ToggleHelpAction{}}, true
	case "esc":
		// Clears a query left in place with enter
		if ctx.RawQuery() != "" {
			return []types.Action{types.CancelTextAction{}}, true
		}
	case "r":
		if ctx.CanRetry() {
			return []types.Action{types.RetryAction{}}, true
		}
	case "p":
		if ctx.TotalItems() > 0 {
			return []types.Action{types.OpenPagerAction{}}, true
		}
	}
	return nil, true
}
