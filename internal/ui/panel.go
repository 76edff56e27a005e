package ui

// Panel is one framed column of the main area.
type Panel struct {
	ID    FocusID // focus target of the column body
	View  View
	X     int // first column, frame included
	Width int // frame included
}

// Contains reports whether screen column x falls inside the panel.
func (p Panel) Contains(x int) bool {
	return x >= p.X && x < p.X+p.Width
}

// panelAt returns the panel under screen column x.
func panelAt(panels []Panel, x int) (Panel, bool) {
	for _, p := range panels {
		if p.Contains(x) {
			return p, true
		}
	}
	return Panel{}, false
}
