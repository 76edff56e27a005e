package ui

import "strings"

// FocusID names a focusable region.
type FocusID string

const (
	FocusTree      FocusID = "tree"
	FocusLeftPath  FocusID = "left.path"
	FocusLeftView  FocusID = "left.view"
	FocusRightPath FocusID = "right.path"
	FocusRightView FocusID = "right.view"
)

// Region is the part of the ID before the dot: "tree", "left" or "right".
func (id FocusID) Region() string {
	s := string(id)
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return s[:i]
	}
	return s
}

// IsPathInput reports whether id is a pane's location bar.
func (id FocusID) IsPathInput() bool {
	return strings.HasSuffix(string(id), ".path")
}

// FocusManager tracks and rotates keyboard focus. Order is the tab cycle;
// Extra holds targets reachable only by SetFocus (the location bars).
type FocusManager struct {
	Current FocusID
	Order   []FocusID
	Extra   []FocusID

	listeners []func(from, to FocusID)
}

// NewFocusManager starts focused on the first entry of order.
func NewFocusManager(order []FocusID, extra ...FocusID) *FocusManager {
	f := &FocusManager{Order: order, Extra: extra}
	if len(order) > 0 {
		f.Current = order[0]
	}
	return f
}

// Subscribe registers fn to run after every focus change.
func (f *FocusManager) Subscribe(fn func(from, to FocusID)) {
	f.listeners = append(f.listeners, fn)
}

// Next advances focus to the next entry in Order and returns it. From a
// target outside Order it moves to the entry of the same region when one
// exists.
func (f *FocusManager) Next() FocusID {
	return f.step(1)
}

// Prev moves focus backwards through Order.
func (f *FocusManager) Prev() FocusID {
	return f.step(-1)
}

func (f *FocusManager) step(dir int) FocusID {
	if len(f.Order) == 0 {
		return ""
	}
	idx := f.index(f.Current)
	if idx < 0 {
		for i, id := range f.Order {
			if id.Region() == f.Current.Region() {
				idx = i
				break
			}
		}
	}
	var next int
	switch {
	case idx < 0 && dir > 0:
		next = 0
	case idx < 0:
		next = len(f.Order) - 1
	default:
		next = (idx + dir + len(f.Order)) % len(f.Order)
	}
	f.change(f.Order[next])
	return f.Current
}

// SetFocus focuses id. Returns false if id is not a known target.
func (f *FocusManager) SetFocus(id FocusID) bool {
	if f.index(id) < 0 && !f.isExtra(id) {
		return false
	}
	f.change(id)
	return true
}

func (f *FocusManager) change(to FocusID) {
	from := f.Current
	f.Current = to
	if from == to {
		return
	}
	for _, fn := range f.listeners {
		fn(from, to)
	}
}

func (f *FocusManager) index(id FocusID) int {
	for i, o := range f.Order {
		if o == id {
			return i
		}
	}
	return -1
}

func (f *FocusManager) isExtra(id FocusID) bool {
	for _, o := range f.Extra {
		if o == id {
			return true
		}
	}
	return false
}
