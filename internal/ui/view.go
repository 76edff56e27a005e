package ui

import tea "github.com/charmbracelet/bubbletea"

// View is a region or modal with its own update loop. Panes, the tree and
// every overlay implement it.
type View interface {
	Init() tea.Cmd
	Update(tea.Msg) (View, tea.Cmd)
	View() string
}

// Sizer is implemented by views laid out by the window.
type Sizer interface {
	SetSize(width, height int)
}
