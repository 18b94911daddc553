package modes

import "userexplorer/internal/ui/input/types"

// listKeys move the cursor in every mode
var listKeys = map[string]string{
	"up":     "up",
	"down":   "down",
	"pgup":   "pageup",
	"pgdown": "pagedown",
}

func navigate(direction string) []types.Action {
	return []types.Action{types.NavigateAction{Direction: direction}}
}
