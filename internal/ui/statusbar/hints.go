package statusbar

import "github.com/riordanpawley/workouttimer/internal/types"

// GetHints returns the keybinding hints for the given view
func GetHints(view types.View) string {
	switch view {
	case types.ViewDashboard:
		return "j/k: select  enter: start  n: new  e: edit  d: delete  ?: help  q: quit"
	case types.ViewEditor:
		return "tab: next field  ctrl+n: add exercise  ctrl+t: type  ctrl+s: save  esc: cancel"
	case types.ViewSession:
		return "enter: start/complete set  p: pause  s: skip  esc: exit"
	default:
		return ""
	}
}
