package ui

// DismissModalMsg closes the top overlay.
type DismissModalMsg struct{}

// FSChangedMsg reports that the contents of Dir changed on disk.
type FSChangedMsg struct{ Dir string }

// focusCycleMsg moves focus through the tab order; Dir is 1 or -1.
type focusCycleMsg struct{ Dir int }

// focusLocationMsg focuses the active pane's location bar.
type focusLocationMsg struct{}

// splitterMsg moves the boundary after column Index by Delta steps.
type splitterMsg struct {
	Index int
	Delta int
}

// terminalDoneMsg is sent when the shell opened by the Terminal action
// returns or the tmux split fails.
type terminalDoneMsg struct {
	Err error
}
