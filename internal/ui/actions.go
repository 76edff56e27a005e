package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"filemanager/internal/ui/textutil"
)

// ActionID names a user command.
type ActionID string

const (
	ActionDelete      ActionID = "delete"
	ActionNewFolder   ActionID = "new-folder"
	ActionRename      ActionID = "rename"
	ActionProperties  ActionID = "properties"
	ActionTerminal    ActionID = "terminal"
	ActionPreferences ActionID = "preferences"
	ActionExit        ActionID = "exit"
	ActionCut         ActionID = "cut"
	ActionCopy        ActionID = "copy"
	ActionPaste       ActionID = "paste"
	ActionDetailView  ActionID = "detail-view"
	ActionIconView    ActionID = "icon-view"
	ActionHidden      ActionID = "hidden"
	ActionRefresh     ActionID = "refresh"
	ActionToolBar     ActionID = "toolbar"
	ActionStatusBar   ActionID = "statusbar"
	ActionAbout       ActionID = "about"
)

// Action is a command with its presentation. Invoking a disabled action
// does nothing.
type Action struct {
	ID        ActionID
	Label     string
	StatusTip string
	Keys      []string // direct shortcuts
	Leader    string   // leader sequence, e.g. "SPC e x"
	Checkable bool
	Checked   bool
	Enabled   bool
	Toolbar   bool
}

// Shortcut is the first direct key, for display.
func (a *Action) Shortcut() string {
	if len(a.Keys) == 0 {
		return a.Leader
	}
	return a.Keys[0]
}

// ActionMsg asks the window to run an action.
type ActionMsg struct{ ID ActionID }

// ActionSet is the ordered collection of window actions.
type ActionSet struct {
	order []ActionID
	byID  map[ActionID]*Action
}

// DefaultActions builds the window's actions. Paste starts disabled until
// something is cut or copied.
func DefaultActions() *ActionSet {
	s := &ActionSet{byID: make(map[ActionID]*Action)}
	for _, a := range []Action{
		{ID: ActionDetailView, Label: "Detail", StatusTip: "Show the detail view", Leader: "SPC v d", Checkable: true, Checked: true, Toolbar: true},
		{ID: ActionIconView, Label: "Icons", StatusTip: "Show the icon view", Leader: "SPC v i", Checkable: true, Toolbar: true},
		{ID: ActionCut, Label: "Cut", StatusTip: "Cut the selection", Keys: []string{"ctrl+x"}, Leader: "SPC e x", Toolbar: true},
		{ID: ActionCopy, Label: "Copy", StatusTip: "Copy the selection", Keys: []string{"ctrl+c"}, Leader: "SPC e c", Toolbar: true},
		{ID: ActionPaste, Label: "Paste", StatusTip: "Paste into the current folder", Keys: []string{"ctrl+v"}, Leader: "SPC e v", Toolbar: true},
		{ID: ActionDelete, Label: "Delete", StatusTip: "Delete the selection", Keys: []string{"delete"}, Leader: "SPC f d", Toolbar: true},
		{ID: ActionNewFolder, Label: "New Folder", StatusTip: "Create a folder in the active pane", Keys: []string{"ctrl+n"}, Leader: "SPC f n", Toolbar: true},
		{ID: ActionRename, Label: "Rename", StatusTip: "Rename the entry under the cursor", Keys: []string{"f2"}, Leader: "SPC f r"},
		{ID: ActionProperties, Label: "Properties", StatusTip: "Show entry properties", Keys: []string{"ctrl+r"}, Leader: "SPC f i"},
		{ID: ActionTerminal, Label: "Terminal", StatusTip: "Open a shell in the active pane's folder", Keys: []string{"ctrl+t"}, Leader: "SPC f t"},
		{ID: ActionPreferences, Label: "Preferences", StatusTip: "Show preferences", Leader: "SPC f p"},
		{ID: ActionExit, Label: "Exit", StatusTip: "Save the window state and quit", Keys: []string{"ctrl+q"}, Leader: "SPC q"},
		{ID: ActionHidden, Label: "Hidden", StatusTip: "Show hidden files", Keys: []string{"."}, Leader: "SPC v h", Checkable: true, Toolbar: true},
		{ID: ActionRefresh, Label: "Refresh", StatusTip: "Reload listings", Keys: []string{"f5"}, Leader: "SPC v r"},
		{ID: ActionToolBar, Label: "Tool Bar", StatusTip: "Toggle the tool bar", Leader: "SPC v t", Checkable: true, Checked: true},
		{ID: ActionStatusBar, Label: "Status Bar", StatusTip: "Toggle the status bar", Leader: "SPC v s", Checkable: true},
		{ID: ActionAbout, Label: "About", StatusTip: "About this program", Leader: "SPC h a"},
	} {
		a.Enabled = a.ID != ActionPaste
		s.order = append(s.order, a.ID)
		s.byID[a.ID] = &a
	}
	return s
}

// Get returns the action or nil.
func (s *ActionSet) Get(id ActionID) *Action {
	return s.byID[id]
}

// All returns actions in declaration order.
func (s *ActionSet) All() []*Action {
	out := make([]*Action, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}

func (s *ActionSet) Enabled(id ActionID) bool {
	a := s.byID[id]
	return a != nil && a.Enabled
}

func (s *ActionSet) SetEnabled(id ActionID, on bool) {
	if a := s.byID[id]; a != nil {
		a.Enabled = on
	}
}

func (s *ActionSet) Checked(id ActionID) bool {
	a := s.byID[id]
	return a != nil && a.Checked
}

func (s *ActionSet) SetChecked(id ActionID, on bool) {
	if a := s.byID[id]; a != nil && a.Checkable {
		a.Checked = on
	}
}

// Bind registers every shortcut and leader sequence as an ActionMsg.
func (s *ActionSet) Bind(reg *KeybindRegistry) {
	for _, a := range s.All() {
		id := a.ID
		cmd := func() tea.Msg { return ActionMsg{ID: id} }
		for _, k := range a.Keys {
			reg.BindWithDesc(k, cmd, a.Label)
		}
		if a.Leader != "" {
			reg.BindWithDesc(a.Leader, cmd, a.Label)
		}
	}
}

// RenderToolbar draws the toolbar actions in one line: checked ones
// highlighted, disabled ones dimmed.
func (s *ActionSet) RenderToolbar(width int) string {
	var parts []string
	for _, a := range s.All() {
		if !a.Toolbar {
			continue
		}
		label := a.Label
		if k := a.Shortcut(); k != "" && !strings.HasPrefix(k, "SPC") {
			label += " " + Styles.Hint.Render(k)
		}
		var st lipgloss.Style
		switch {
		case !a.Enabled:
			st = Styles.ToolDisabled
		case a.Checkable && a.Checked:
			st = Styles.ToolChecked
			label = "[" + a.Label + "]"
		default:
			st = Styles.ToolEnabled
		}
		parts = append(parts, st.Render(label))
	}
	line := strings.Join(parts, Styles.Muted.Render(" │ ")) + "  " + Styles.Hint.Render("SPC menu")
	if textutil.StyledWidth(line) > width {
		return lipgloss.NewStyle().MaxWidth(width).Render(line)
	}
	return line
}
