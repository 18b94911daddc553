package modes

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"userexplorer/internal/ui/input/types"
)

// SearchMode edits the live query. The list stays navigable with the
// arrow keys while typing.
type SearchMode struct {
	textInput *textinput.Model
}

func NewSearchMode(ti *textinput.Model) *SearchMode {
	return &SearchMode{textInput: ti}
}

func (m *SearchMode) Name() string {
	return "search"
}

func (m *SearchMode) Enter(ctx types.Context) []types.Action {
	m.textInput.Focus()
	return nil
}

func (m *SearchMode) Exit(ctx types.Context) []types.Action {
	m.textInput.Blur()
	return nil
}

// HandleKey claims control keys only. Unclaimed keys are typed into the
// search box by the handler.
func (m *SearchMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	key := msg.String()
	if direction, ok := listKeys[key]; ok {
		return navigate(direction), true
	}

	switch key {
	case "ctrl+c":
		return []types.Action{types.QuitAction{}}, true
	case "esc":
		return []types.Action{
			types.CancelTextAction{},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true
	case "enter":
		return []types.Action{
			types.SubmitTextAction{Text: m.textInput.Value()},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true
	}
	return nil, false
}
