package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"userexplorer/internal/ui/input/modes"
	"userexplorer/internal/ui/input/types"
)

// Placeholder is shown in the empty search box
const Placeholder = "Search by name or email..."

type Handler struct {
	currentMode types.Mode
	modes       map[types.Mode]types.ModeHandler
	textInput   *textinput.Model // Shared text input for text modes
}

func New() *Handler {
	ti := textinput.New()
	ti.Placeholder = Placeholder
	ti.Prompt = "/ "

	h := &Handler{
		currentMode: types.ModeNormal,
		textInput:   &ti,
		modes:       make(map[types.Mode]types.ModeHandler),
	}

	h.modes[types.ModeNormal] = modes.NewNormalMode()
	h.modes[types.ModeSearch] = modes.NewSearchMode(h.textInput)

	return h
}

func (h *Handler) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, tea.Cmd) {
	handler := h.modes[h.currentMode]
	if handler == nil {
		return nil, nil
	}

	actions, consumed := handler.HandleKey(msg, ctx)

	if !consumed && !h.isTextMode(h.currentMode) {
		return nil, nil
	}

	var cmd tea.Cmd
	var allActions []types.Action

	for _, action := range actions {
		switch a := action.(type) {
		case types.ChangeModeAction:
			if current := h.modes[h.currentMode]; current != nil {
				allActions = append(allActions, current.Exit(ctx)...)
			}

			h.currentMode = a.Mode

			if next := h.modes[h.currentMode]; next != nil {
				allActions = append(allActions, next.Enter(ctx)...)
			}

			if h.isTextMode(h.currentMode) {
				// Resume editing the live query rather than starting over
				h.textInput.SetValue(ctx.RawQuery())
				h.textInput.CursorEnd()
				cmd = h.textInput.Focus()
			} else {
				h.textInput.Blur()
			}
		case types.CancelTextAction:
			h.textInput.Reset()
			allActions = append(allActions, action)
		default:
			allActions = append(allActions, action)
		}
	}

	// Keys the text mode did not claim edit the query
	if h.isTextMode(h.currentMode) && !consumed {
		before := h.textInput.Value()
		var textCmd tea.Cmd
		*h.textInput, textCmd = h.textInput.Update(msg)
		cmd = textCmd
		if after := h.textInput.Value(); after != before {
			allActions = append(allActions, types.UpdateTextAction{Text: after})
		}
	}

	return allActions, cmd
}

func (h *Handler) CurrentMode() types.Mode {
	return h.currentMode
}

// TextInput returns the search box
func (h *Handler) TextInput() *textinput.Model {
	return h.textInput
}

func (h *Handler) isTextMode(mode types.Mode) bool {
	return mode == types.ModeSearch
}

// Reset returns to normal mode with an empty search box
func (h *Handler) Reset() {
	h.currentMode = types.ModeNormal
	h.textInput.Reset()
	h.textInput.Blur()
}

// Update handles non-keyboard messages for text input
func (h *Handler) Update(msg tea.Msg) tea.Cmd {
	if h.isTextMode(h.currentMode) {
		var cmd tea.Cmd
		*h.textInput, cmd = h.textInput.Update(msg)
		return cmd
	}
	return nil
}

// SetWidth fits the search box to the terminal
func (h *Handler) SetWidth(width int) {
	if width > 4 {
		h.textInput.Width = width - 4
	}
}
