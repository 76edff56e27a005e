package ui

import (
	"context"
	"errors"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mitchellh/go-homedir"
	log "github.com/sirupsen/logrus"

	"filemanager/internal/clipboard"
	"filemanager/internal/config"
	"filemanager/internal/fileops"
	"filemanager/internal/fsmodel"
	"filemanager/internal/settings"
)

const (
	defaultWidth  = 100
	defaultHeight = 30
)

// Options configures NewAppModel. Zero values are usable: no state store,
// no watcher, a process-only clipboard and the default configuration.
type Options struct {
	Context   context.Context
	Config    *config.Config
	Model     *fsmodel.Model
	Store     *settings.Store
	StateDir  string
	Clipboard *clipboard.Board
	Watcher   *fsmodel.Watcher
	Version   string

	// TreeRoot is the directory tree root; "/" when empty.
	TreeRoot string
	// Left and Right override the restored pane paths.
	Left, Right string
	// ShowHidden overrides the restored hidden-files flag when set.
	ShowHidden *bool
}

// AppModel is the main window: toolbar, directory tree, two panes and
// status bar, with modal overlays on top.
type AppModel struct {
	Config     *config.Config
	Model      *fsmodel.Model
	Tree       *DirTree
	Panes      *Coordinator
	Focus      *FocusManager
	Actions    *ActionSet
	KeyHandler *KeyHandler
	Overlays   OverlayStack
	Clipboard  *clipboard.Board
	Store      *settings.Store
	Watcher    *fsmodel.Watcher
	Splitter   *Splitter
	Version    string

	ShowToolBar   bool
	ShowStatusBar bool

	ctx      context.Context
	stateDir string
	width    int
	height   int
	status   string
	deleting *fileops.DeleteBatch
}

// Ensure AppModel can be used as tea.Model via adapter.
var _ tea.Model = (*appModelAdapter)(nil)

// appModelAdapter wraps AppModel to implement tea.Model.
type appModelAdapter struct {
	*AppModel
}

// NewAppModel builds the window and restores the saved window state, so
// the first frame already shows the restored layout.
func NewAppModel(opts Options) *AppModel {
	a := &AppModel{
		Config:    opts.Config,
		Model:     opts.Model,
		Clipboard: opts.Clipboard,
		Store:     opts.Store,
		Watcher:   opts.Watcher,
		Version:   opts.Version,
		ctx:       opts.Context,
		stateDir:  opts.StateDir,
		width:     defaultWidth,
		height:    defaultHeight,
	}
	if a.Config == nil {
		a.Config = config.Default()
	}
	if a.Model == nil {
		a.Model = fsmodel.New()
	}
	if a.Clipboard == nil {
		a.Clipboard = clipboard.New(nil)
	}
	if a.ctx == nil {
		a.ctx = context.Background()
	}
	if a.Version == "" {
		a.Version = "dev"
	}
	root := opts.TreeRoot
	if root == "" {
		root = string(os.PathSeparator)
	}

	left := NewPane(LeftSide, a.Model)
	right := NewPane(RightSide, a.Model)
	a.Tree = NewDirTree(fsmodel.NewDirFilter(a.Model), root)
	a.Focus = NewFocusManager(
		[]FocusID{FocusTree, FocusLeftView, FocusRightView},
		FocusLeftPath, FocusRightPath,
	)
	a.Panes = NewCoordinator(left, right, a.Focus)
	a.Focus.Subscribe(a.focusChanged)
	a.Panes.OnActivate(a.updateViewActions)

	a.Actions = DefaultActions()
	reg := NewKeybindRegistry()
	a.Actions.Bind(reg)
	reg.BindWithDesc("tab", func() tea.Msg { return focusCycleMsg{Dir: 1} }, "Next region")
	reg.BindWithDesc("shift+tab", func() tea.Msg { return focusCycleMsg{Dir: -1} }, "Previous region")
	reg.BindWithDesc("ctrl+l", func() tea.Msg { return focusLocationMsg{} }, "Location bar")
	reg.BindWithDesc("SPC g", func() tea.Msg { return focusLocationMsg{} }, "Go to path")
	reg.Bind("[", func() tea.Msg { return splitterMsg{Index: 0, Delta: -1} })
	reg.Bind("]", func() tea.Msg { return splitterMsg{Index: 0, Delta: 1} })
	reg.Bind("{", func() tea.Msg { return splitterMsg{Index: 1, Delta: -1} })
	reg.Bind("}", func() tea.Msg { return splitterMsg{Index: 1, Delta: 1} })
	a.KeyHandler = NewKeyHandler(reg)

	a.Clipboard.Subscribe(a.clipboardChanged)
	a.Actions.SetEnabled(ActionPaste, a.Clipboard.HasPaths())

	a.restoreState(opts)
	return a
}

// AsTeaModel returns a tea.Model adapter for use with tea.NewProgram.
func (a *AppModel) AsTeaModel() tea.Model {
	return &appModelAdapter{AppModel: a}
}

// focusChanged hands keyboard focus to the widget behind the new target.
func (a *AppModel) focusChanged(_, to FocusID) {
	for _, p := range a.Panes.Panes() {
		switch to {
		case p.Side.PathFocus():
			p.FocusPath()
		case p.Side.ViewFocus():
			p.FocusView()
		default:
			p.Blur()
		}
	}
	a.Tree.SetFocused(to == FocusTree)
}

// updateViewActions mirrors the active pane's view mode in the checked
// state of the view actions.
func (a *AppModel) updateViewActions(p *Pane) {
	a.Actions.SetChecked(ActionDetailView, p.ViewMode() == settings.DetailView)
	a.Actions.SetChecked(ActionIconView, p.ViewMode() == settings.ListView)
}

func (a *AppModel) clipboardChanged(p clipboard.Payload, ok bool) {
	a.Actions.SetEnabled(ActionPaste, ok && len(p.Paths) > 0)
}

// ActivePane is the pane that receives new folders and terminal commands.
func (a *AppModel) ActivePane() *Pane {
	return a.Panes.Active()
}

// Status is the last status bar message.
func (a *AppModel) Status() string { return a.status }

// restoreState applies the saved window state, then command line
// overrides, and opens both panes.
func (a *AppModel) restoreState(opts Options) {
	w := settings.DefaultWindowState()
	if a.Store != nil {
		w = settings.Restore(a.Store)
	}
	if opts.ShowHidden != nil {
		w.ShowHidden = *opts.ShowHidden
	}
	a.Model.SetShowHidden(w.ShowHidden)
	a.Actions.SetChecked(ActionHidden, w.ShowHidden)
	a.ShowToolBar = w.ShowToolBar
	a.Actions.SetChecked(ActionToolBar, w.ShowToolBar)
	a.ShowStatusBar = w.ShowStatusBar
	a.Actions.SetChecked(ActionStatusBar, w.ShowStatusBar)
	a.Splitter = NewSplitter(w.SplitterSizes)
	if w.Geometry.Width > 0 && w.Geometry.Height > 0 {
		a.width, a.height = w.Geometry.Width, w.Geometry.Height
	}

	cwd, _ := os.Getwd()
	home, _ := homedir.Dir()
	a.Tree.RefreshAll()
	for _, side := range []struct {
		pane             *Pane
		state            settings.PaneState
		override, config string
	}{
		{a.Panes.Pane(LeftSide), w.Left, opts.Left, a.Config.Start.Left},
		{a.Panes.Pane(RightSide), w.Right, opts.Right, a.Config.Start.Right},
	} {
		p := side.pane
		p.SetViewMode(side.state.ViewMode)
		p.SetHeaderState(side.state.Header)
		a.openFirst(p, side.override, side.state.Path, side.config, cwd, home, a.Tree.root.path)
	}

	active := a.Panes.Pane(LeftSide)
	if !w.LeftPaneActive {
		active = a.Panes.Pane(RightSide)
	}
	a.Focus.SetFocus(active.Side.ViewFocus())
	a.Tree.Reveal(active.Path())
	log.WithFields(log.Fields{
		"left":   a.Panes.Pane(LeftSide).Path(),
		"right":  a.Panes.Pane(RightSide).Path(),
		"hidden": w.ShowHidden,
	}).Info("window state restored")
}

// openFirst moves p to the first candidate that opens.
func (a *AppModel) openFirst(p *Pane, candidates ...string) {
	for _, c := range candidates {
		if c == "" {
			continue
		}
		if err := p.MoveTo(c); err != nil {
			log.WithFields(log.Fields{"pane": p.Side.String(), "path": c}).WithError(err).Debug("start path skipped")
			continue
		}
		a.rewatch("", p.Path())
		return
	}
}

// SaveState writes the window state to the store, if there is one.
func (a *AppModel) SaveState() error {
	if a.Store == nil {
		return nil
	}
	left, right := a.Panes.Pane(LeftSide), a.Panes.Pane(RightSide)
	w := settings.WindowState{
		Geometry:       settings.Geometry{Width: a.width, Height: a.height},
		ShowStatusBar:  a.ShowStatusBar,
		ShowToolBar:    a.ShowToolBar,
		SplitterSizes:  append([]int(nil), a.Splitter.Sizes...),
		LeftPaneActive: a.Panes.Active() == left,
		Left:           left.State(),
		Right:          right.State(),
		ShowHidden:     a.Model.ShowHidden(),
	}
	return w.Save(a.Store)
}

// Finish takes the error returned by the program run. A run stopped by
// its context (SIGTERM) never saw the Exit action, so the window state is
// saved here and the stop is not an error. A panic is returned unchanged.
func (a *AppModel) Finish(runErr error) error {
	if !errors.Is(runErr, tea.ErrProgramKilled) || errors.Is(runErr, tea.ErrProgramPanic) {
		return runErr
	}
	log.WithError(runErr).Info("terminated, saving window state")
	if err := a.SaveState(); err != nil {
		log.WithError(err).Warn("save window state")
	}
	return nil
}

// Init implements tea.Model.
func (a *appModelAdapter) Init() tea.Cmd {
	return tea.Batch(tea.SetWindowTitle(a.Config.Application), a.waitForChange())
}

// Update implements tea.Model.
func (a *appModelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		return a, nil
	case tea.FocusMsg:
		if a.Clipboard.Sync() {
			a.status = "Clipboard updated from the system"
		}
		return a, nil
	case tea.MouseMsg:
		return a.handleMouse(msg)
	case tea.KeyMsg:
		return a.handleKey(msg)
	case ActionMsg:
		return a.handleAction(msg.ID)
	case NavigateMsg:
		return a.handleNavigate(a.Panes.Pane(msg.Side), msg.Path)
	case TreeSelectMsg:
		return a.handleTreeSelect(msg.Path)
	case RenameMsg:
		return a.handleRename(msg)
	case FocusRequestMsg:
		a.Focus.SetFocus(msg.ID)
		return a, nil
	case focusCycleMsg:
		if msg.Dir < 0 {
			a.Focus.Prev()
		} else {
			a.Focus.Next()
		}
		return a, nil
	case focusLocationMsg:
		a.Focus.SetFocus(a.Panes.Active().Side.PathFocus())
		return a, nil
	case splitterMsg:
		a.Splitter.Resize(msg.Index, msg.Delta)
		return a, nil
	case DeleteAnswerMsg:
		return a.handleDeleteAnswer(msg.Answer)
	case DismissModalMsg:
		a.Overlays.Pop()
		return a, nil
	case FSChangedMsg:
		a.handleFSChange(msg.Dir)
		return a, a.waitForChange()
	case terminalDoneMsg:
		return a.handleTerminalDone(msg)
	}
	return a, nil
}

// handleKey routes a key: overlays first, then open text fields, then the
// keybind registry, then the focused region.
func (a *appModelAdapter) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := msg.String()
	if top, ok := a.Overlays.Peek(); ok {
		if top.IsDismissKey(s) {
			a.Overlays.Pop()
			return a, nil
		}
		cmd, _ := a.Overlays.UpdateTop(msg)
		return a, cmd
	}

	focused := a.Focus.Current
	pane := a.Panes.Owner(focused)
	if pane != nil && pane.Editing() {
		cycling := focused.IsPathInput() && (s == "tab" || s == "shift+tab")
		if !cycling {
			_, cmd := pane.Update(msg)
			return a, cmd
		}
	}

	if consumed, cmd := a.KeyHandler.Handle(msg); consumed {
		return a, cmd
	}

	if pane != nil {
		_, cmd := pane.Update(msg)
		return a, cmd
	}
	_, cmd := a.Tree.Update(msg)
	return a, cmd
}

// handleMouse focuses the region under a left click.
func (a *appModelAdapter) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if a.Overlays.Len() > 0 || msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return a, nil
	}
	top := 0
	if a.ShowToolBar {
		top = 1
	}
	p, ok := panelAt(a.panels(), msg.X)
	if !ok || msg.Y < top {
		return a, nil
	}
	id := p.ID
	// Row top+1 is the first row inside the frame: a pane's location bar.
	if pane := a.Panes.Owner(id); pane != nil && msg.Y == top+1 {
		id = pane.Side.PathFocus()
	}
	a.Focus.SetFocus(id)
	return a, nil
}

// panels lays out the tree and both panes across the window width.
func (a *AppModel) panels() []Panel {
	widths := a.Splitter.Widths(a.width)
	views := []Panel{
		{ID: FocusTree, View: a.Tree},
		{ID: FocusLeftView, View: a.Panes.Pane(LeftSide)},
		{ID: FocusRightView, View: a.Panes.Pane(RightSide)},
	}
	x := 0
	for i := range views {
		views[i].X = x
		views[i].Width = widths[i]
		x += widths[i]
	}
	return views
}

// View implements tea.Model.
func (a *appModelAdapter) View() string {
	if top, ok := a.Overlays.Peek(); ok {
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, top.View.View())
	}

	var sections []string
	if a.ShowToolBar {
		sections = append(sections, a.Actions.RenderToolbar(a.width))
	}
	help := RenderKeybindHelp(a.KeyHandler, a.width)
	status := ""
	if a.ShowStatusBar {
		status = a.renderStatusBar()
	}
	mainHeight := a.height - len(sections)
	if help != "" {
		mainHeight -= lipgloss.Height(help)
	}
	if status != "" {
		mainHeight--
	}
	sections = append(sections, a.renderMain(max(3, mainHeight)))
	if help != "" {
		sections = append(sections, help)
	}
	if status != "" {
		sections = append(sections, status)
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (a *AppModel) renderMain(height int) string {
	inner := max(1, height-2)
	var cols []string
	for _, p := range a.panels() {
		w := max(1, p.Width-2)
		if s, ok := p.View.(Sizer); ok {
			s.SetSize(w, inner)
		}
		frame := Styles.Frame
		switch {
		case p.ID.Region() == a.Focus.Current.Region():
			frame = Styles.FrameFocused
		case a.Panes.Owner(p.ID) == a.Panes.Active():
			frame = Styles.FrameActive
		}
		cols = append(cols, frame.Width(w).Height(inner).Render(p.View.View()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func (a *AppModel) renderStatusBar() string {
	var parts []string
	if a.status != "" {
		parts = append(parts, a.status)
	}
	if p, ok := a.Clipboard.Payload(); ok {
		parts = append(parts, "clipboard: "+pluralItems(len(p.Paths))+" ("+p.Mode.String()+")")
	}
	if a.Model.ShowHidden() {
		parts = append(parts, "hidden shown")
	}
	active := a.Panes.Active()
	parts = append(parts, active.Side.String()+": "+active.Path())
	return Styles.StatusBar.Width(a.width).MaxWidth(a.width).Render(strings.Join(parts, "  │  "))
}
