package types

// Navigation actions
type NavigateAction struct {
	Direction string // "up", "down", "pageup", "pagedown", "home", "end"
}

func (a NavigateAction) Type() string { return "navigate" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Text input actions
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

// SubmitTextAction keeps the typed query and leaves search mode
type SubmitTextAction struct {
	Text string
}

func (a SubmitTextAction) Type() string { return "submit_text" }

// CancelTextAction clears the query
type CancelTextAction struct{}

func (a CancelTextAction) Type() string { return "cancel_text" }

// Directory actions
type RetryAction struct{}

func (a RetryAction) Type() string { return "retry" }

type OpenPagerAction struct{}

func (a OpenPagerAction) Type() string { return "open_pager" }

// UI actions
type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type QuitAction struct{}

func (a QuitAction) Type() string { return "quit" }
