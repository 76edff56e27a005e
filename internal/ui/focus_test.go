package ui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"filemanager/internal/fsmodel"
)

func newTestFocus() *FocusManager {
	return NewFocusManager(
		[]FocusID{FocusTree, FocusLeftView, FocusRightView},
		FocusLeftPath, FocusRightPath,
	)
}

func TestFocusManager_Cycle(t *testing.T) {
	f := newTestFocus()
	if f.Current != FocusTree {
		t.Fatalf("Current = %q, want tree", f.Current)
	}
	for _, want := range []FocusID{FocusLeftView, FocusRightView, FocusTree} {
		if got := f.Next(); got != want {
			t.Errorf("Next = %q, want %q", got, want)
		}
	}
	if got := f.Prev(); got != FocusRightView {
		t.Errorf("Prev = %q, want right.view", got)
	}
}

func TestFocusManager_ExtraTargets(t *testing.T) {
	f := newTestFocus()
	if !f.SetFocus(FocusLeftPath) {
		t.Fatal("left.path should be focusable")
	}
	if f.SetFocus("bogus") {
		t.Error("unknown target accepted")
	}
	if f.Current != FocusLeftPath {
		t.Errorf("Current = %q after rejected SetFocus", f.Current)
	}
	// From a location bar, tab continues after the same region's listing.
	if got := f.Next(); got != FocusRightView {
		t.Errorf("Next from left.path = %q, want right.view", got)
	}
	f.SetFocus(FocusRightPath)
	if got := f.Prev(); got != FocusLeftView {
		t.Errorf("Prev from right.path = %q, want left.view", got)
	}
}

func TestFocusManager_ListenersOnlyOnChange(t *testing.T) {
	f := newTestFocus()
	var calls []FocusID
	f.Subscribe(func(_, to FocusID) { calls = append(calls, to) })
	f.SetFocus(FocusTree)
	f.SetFocus(FocusLeftView)
	f.SetFocus(FocusLeftView)
	if len(calls) != 1 || calls[0] != FocusLeftView {
		t.Errorf("calls = %v, want [left.view]", calls)
	}
}

func TestFocusID_Region(t *testing.T) {
	tests := []struct {
		id     FocusID
		region string
		path   bool
	}{
		{FocusTree, "tree", false},
		{FocusLeftPath, "left", true},
		{FocusLeftView, "left", false},
		{FocusRightPath, "right", true},
	}
	for _, tt := range tests {
		if got := tt.id.Region(); got != tt.region {
			t.Errorf("%q.Region() = %q, want %q", tt.id, got, tt.region)
		}
		if got := tt.id.IsPathInput(); got != tt.path {
			t.Errorf("%q.IsPathInput() = %v, want %v", tt.id, got, tt.path)
		}
	}
}

func TestCoordinator_ActivePaneFollowsFocus(t *testing.T) {
	m := fsmodel.New()
	left, right := NewPane(LeftSide, m), NewPane(RightSide, m)
	f := newTestFocus()
	c := NewCoordinator(left, right, f)

	var activated []PaneSide
	c.OnActivate(func(p *Pane) { activated = append(activated, p.Side) })

	if c.Active() != left || !left.Active() || right.Active() {
		t.Fatal("left pane should start active")
	}
	f.SetFocus(FocusRightPath)
	if c.Active() != right || left.Active() {
		t.Error("focusing the right location bar should activate the right pane")
	}
	f.SetFocus(FocusTree)
	if c.Active() != right {
		t.Error("focusing the tree should keep the right pane active")
	}
	f.SetFocus(FocusRightView)
	if len(activated) != 2 {
		t.Errorf("activations = %v, want one per pane focus", activated)
	}
	if c.Owner(FocusTree) != nil || c.Owner(FocusLeftPath) != left {
		t.Error("Owner mismatch")
	}
	if c.Other(left) != right || c.Pane(RightSide) != right {
		t.Error("Other/Pane mismatch")
	}
}

func TestPanelAt(t *testing.T) {
	panels := []Panel{
		{ID: FocusTree, X: 0, Width: 20},
		{ID: FocusLeftView, X: 20, Width: 30},
		{ID: FocusRightView, X: 50, Width: 30},
	}
	tests := []struct {
		x    int
		want FocusID
		ok   bool
	}{
		{0, FocusTree, true},
		{19, FocusTree, true},
		{20, FocusLeftView, true},
		{79, FocusRightView, true},
		{80, "", false},
	}
	for _, tt := range tests {
		p, ok := panelAt(panels, tt.x)
		if ok != tt.ok || p.ID != tt.want {
			t.Errorf("panelAt(%d) = %q,%v want %q,%v", tt.x, p.ID, ok, tt.want, tt.ok)
		}
	}
}

func TestAppModel_MouseFocusesRegion(t *testing.T) {
	root := t.TempDir()
	ta := openTestApp(t, nil, Options{TreeRoot: root, Left: root, Right: filepath.Dir(root)})
	ta.send(mouseClick(5, 5))
	if ta.app.Focus.Current != FocusTree {
		t.Errorf("click on tree: focus = %q", ta.app.Focus.Current)
	}
	widths := ta.app.Splitter.Widths(defaultWidth)
	x := widths[0] + widths[1] + 2
	ta.send(mouseClick(x, 2))
	if ta.app.Focus.Current != FocusRightPath {
		t.Errorf("click on right location bar: focus = %q", ta.app.Focus.Current)
	}
	if ta.app.Panes.Active().Side != RightSide {
		t.Error("click should activate the right pane")
	}
}

func mouseClick(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}
