package ui

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mitchellh/go-homedir"
	"github.com/sahilm/fuzzy"
	log "github.com/sirupsen/logrus"

	"filemanager/internal/fsmodel"
	"filemanager/internal/settings"
)

// PaneSide identifies one of the two panes.
type PaneSide int

const (
	LeftSide PaneSide = iota
	RightSide
)

func (s PaneSide) String() string {
	if s == RightSide {
		return "right"
	}
	return "left"
}

// PathFocus is the focus target of the side's location bar.
func (s PaneSide) PathFocus() FocusID {
	return FocusID(s.String() + ".path")
}

// ViewFocus is the focus target of the side's listing.
func (s PaneSide) ViewFocus() FocusID {
	return FocusID(s.String() + ".view")
}

type paneFocus int

const (
	paneBlurred paneFocus = iota
	panePathFocused
	paneViewFocused
)

// paneEdit is an inline editor that owns the keyboard while open.
type paneEdit int

const (
	editNone paneEdit = iota
	editRename
	editSearch
)

// NavigateMsg asks the window to move a pane to Path.
type NavigateMsg struct {
	Side PaneSide
	Path string
}

// RenameMsg asks the window to rename Path to NewName.
type RenameMsg struct {
	Side    PaneSide
	Path    string
	NewName string
}

// FocusRequestMsg asks the window to move keyboard focus.
type FocusRequestMsg struct{ ID FocusID }

// Pane is one file pane: a location bar above a detail or icon listing of
// a single directory.
type Pane struct {
	Side PaneSide

	lister   fsmodel.Lister
	path     string
	entries  []fsmodel.Entry
	cursor   int
	offset   int // first visible row of the icon grid
	marks    map[string]bool
	mode     settings.ViewMode
	sortKey  fsmodel.SortKey
	sortDesc bool
	loadErr  error

	active bool
	focus  paneFocus
	edit   paneEdit

	pathInput textinput.Model
	editInput textinput.Model
	renaming  string

	width, height int
}

var _ View = (*Pane)(nil)

// NewPane creates an empty pane listing through lister.
func NewPane(side PaneSide, lister fsmodel.Lister) *Pane {
	pi := textinput.New()
	pi.Prompt = ""
	pi.Placeholder = "path"
	ei := textinput.New()
	return &Pane{
		Side:      side,
		lister:    lister,
		marks:     make(map[string]bool),
		pathInput: pi,
		editInput: ei,
		width:     40,
		height:    12,
	}
}

func (p *Pane) Init() tea.Cmd { return nil }

// SetSize sets the inner size of the pane, borders excluded.
func (p *Pane) SetSize(width, height int) {
	p.width, p.height = width, height
	p.pathInput.Width = max(1, width-1)
	p.editInput.Width = max(1, width-12)
	p.scroll()
}

func (p *Pane) Path() string             { return p.path }
func (p *Pane) Entries() []fsmodel.Entry { return p.entries }
func (p *Pane) Cursor() int              { return p.cursor }
func (p *Pane) Active() bool             { return p.active }
func (p *Pane) SetActive(on bool)        { p.active = on }
func (p *Pane) Err() error               { return p.loadErr }

func (p *Pane) ViewMode() settings.ViewMode { return p.mode }

// SetViewMode switches between the detail table and the icon grid.
func (p *Pane) SetViewMode(m settings.ViewMode) {
	p.mode = m
	p.scroll()
}

// Current returns the entry under the cursor.
func (p *Pane) Current() (fsmodel.Entry, bool) {
	if p.cursor < 0 || p.cursor >= len(p.entries) {
		return fsmodel.Entry{}, false
	}
	return p.entries[p.cursor], true
}

// MoveTo lists dir and makes it the pane's directory. "~" is expanded and
// relative paths resolve against the process working directory. On error
// the pane is unchanged. Going up selects the directory just left.
func (p *Pane) MoveTo(dir string) error {
	expanded, err := homedir.Expand(dir)
	if err != nil {
		return err
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s: not a directory", abs)
	}
	entries, err := p.lister.List(abs)
	if err != nil {
		return err
	}

	prev := p.path
	p.path = abs
	p.setEntries(entries)
	p.marks = make(map[string]bool)
	p.cursor, p.offset = 0, 0
	if prev != "" && filepath.Dir(prev) == abs {
		p.Select(prev)
	}
	p.pathInput.SetValue(abs)
	p.pathInput.CursorEnd()
	p.loadErr = nil
	log.WithFields(log.Fields{"pane": p.Side.String(), "path": abs, "entries": len(entries)}).Debug("pane moved")
	return nil
}

// Reload lists the current directory again, keeping the cursor on the same
// name and dropping marks whose entries are gone.
func (p *Pane) Reload() error {
	if p.path == "" {
		return nil
	}
	entries, err := p.lister.List(p.path)
	if err != nil {
		p.loadErr = err
		p.entries = nil
		p.cursor = 0
		return err
	}
	var current string
	if e, ok := p.Current(); ok {
		current = e.Path
	}
	p.setEntries(entries)
	p.loadErr = nil
	present := make(map[string]bool, len(p.entries))
	for _, e := range p.entries {
		present[e.Path] = true
	}
	for path := range p.marks {
		if !present[path] {
			delete(p.marks, path)
		}
	}
	if current == "" || !p.Select(current) {
		p.cursor = min(p.cursor, max(0, len(p.entries)-1))
	}
	p.scroll()
	return nil
}

func (p *Pane) setEntries(entries []fsmodel.Entry) {
	fsmodel.Sort(entries, p.sortKey, p.sortDesc)
	p.entries = entries
}

// Select moves the cursor to the entry at path.
func (p *Pane) Select(path string) bool {
	for i, e := range p.entries {
		if e.Path == path && !e.IsParent {
			p.cursor = i
			p.scroll()
			return true
		}
	}
	return false
}

// Selection returns the marked entries, or the entry under the cursor when
// nothing is marked. The parent link is never part of a selection.
func (p *Pane) Selection() []string {
	var out []string
	for _, e := range p.entries {
		if p.marks[e.Path] {
			out = append(out, e.Path)
		}
	}
	if len(out) > 0 {
		return out
	}
	if e, ok := p.Current(); ok && !e.IsParent {
		return []string{e.Path}
	}
	return nil
}

// Marked reports whether path is marked.
func (p *Pane) Marked(path string) bool { return p.marks[path] }

// ClearSelection drops every mark.
func (p *Pane) ClearSelection() {
	p.marks = make(map[string]bool)
}

func (p *Pane) toggleMark() {
	e, ok := p.Current()
	if !ok || e.IsParent {
		return
	}
	if p.marks[e.Path] {
		delete(p.marks, e.Path)
	} else {
		p.marks[e.Path] = true
	}
}

func (p *Pane) markAll() {
	for _, e := range p.entries {
		if !e.IsParent {
			p.marks[e.Path] = true
		}
	}
}

// HeaderState returns the detail view sort column and order.
func (p *Pane) HeaderState() settings.HeaderState {
	return settings.HeaderState{SortColumn: p.sortKey.String(), Descending: p.sortDesc}
}

// SetHeaderState restores the sort column and order and re-sorts.
func (p *Pane) SetHeaderState(h settings.HeaderState) {
	p.SetSort(fsmodel.ParseSortKey(h.SortColumn), h.Descending)
}

// SetSort orders the listing by key, keeping the cursor on its entry.
func (p *Pane) SetSort(key fsmodel.SortKey, desc bool) {
	var current string
	if e, ok := p.Current(); ok {
		current = e.Path
	}
	p.sortKey, p.sortDesc = key, desc
	fsmodel.Sort(p.entries, key, desc)
	if current != "" {
		p.Select(current)
	}
}

func (p *Pane) cycleSort() {
	next := fsmodel.SortKeys[(int(p.sortKey)+1)%len(fsmodel.SortKeys)]
	p.SetSort(next, p.sortDesc)
}

// State is what the window persists for this pane.
func (p *Pane) State() settings.PaneState {
	return settings.PaneState{Path: p.path, ViewMode: p.mode, Header: p.HeaderState()}
}

// FocusPath gives the location bar the keyboard.
func (p *Pane) FocusPath() {
	p.cancelEdit()
	p.focus = panePathFocused
	p.pathInput.SetValue(p.path)
	p.pathInput.CursorEnd()
	p.pathInput.Focus()
}

// FocusView gives the listing the keyboard.
func (p *Pane) FocusView() {
	p.focus = paneViewFocused
	p.pathInput.Blur()
	p.pathInput.SetValue(p.path)
}

// Blur removes keyboard focus from the pane. An open inline editor is
// cancelled.
func (p *Pane) Blur() {
	p.cancelEdit()
	p.focus = paneBlurred
	p.pathInput.Blur()
	p.pathInput.SetValue(p.path)
}

// Editing reports whether a text field in the pane owns the keyboard.
func (p *Pane) Editing() bool {
	return p.focus == panePathFocused || p.edit != editNone
}

// Renaming returns the path being renamed, or "".
func (p *Pane) Renaming() string { return p.renaming }

// BeginRename opens the inline editor on the entry at path.
func (p *Pane) BeginRename(path string) bool {
	if !p.Select(path) {
		return false
	}
	e, _ := p.Current()
	p.edit = editRename
	p.renaming = e.Path
	p.editInput.Prompt = "Rename: "
	p.editInput.SetValue(e.Name)
	p.editInput.CursorEnd()
	p.editInput.Focus()
	return true
}

func (p *Pane) beginSearch() {
	p.edit = editSearch
	p.editInput.Prompt = "/"
	p.editInput.SetValue("")
	p.editInput.Focus()
}

func (p *Pane) cancelEdit() {
	p.edit = editNone
	p.renaming = ""
	p.editInput.Blur()
}

// Update handles keys for whichever part of the pane has focus.
func (p *Pane) Update(msg tea.Msg) (View, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	switch {
	case p.edit == editRename:
		return p, p.updateRename(km)
	case p.edit == editSearch:
		return p, p.updateSearch(km)
	case p.focus == panePathFocused:
		return p, p.updatePath(km)
	case p.focus == paneViewFocused:
		return p, p.updateView(km)
	}
	return p, nil
}

func (p *Pane) updatePath(km tea.KeyMsg) tea.Cmd {
	switch km.String() {
	case "enter":
		side, target := p.Side, p.pathInput.Value()
		return func() tea.Msg { return NavigateMsg{Side: side, Path: target} }
	case "esc":
		p.pathInput.SetValue(p.path)
		id := p.Side.ViewFocus()
		return func() tea.Msg { return FocusRequestMsg{ID: id} }
	}
	var cmd tea.Cmd
	p.pathInput, cmd = p.pathInput.Update(km)
	return cmd
}

func (p *Pane) updateRename(km tea.KeyMsg) tea.Cmd {
	switch km.String() {
	case "enter":
		side, path, name := p.Side, p.renaming, p.editInput.Value()
		p.cancelEdit()
		if name == filepath.Base(path) {
			return nil
		}
		return func() tea.Msg { return RenameMsg{Side: side, Path: path, NewName: name} }
	case "esc":
		p.cancelEdit()
		return nil
	}
	var cmd tea.Cmd
	p.editInput, cmd = p.editInput.Update(km)
	return cmd
}

func (p *Pane) updateSearch(km tea.KeyMsg) tea.Cmd {
	switch km.String() {
	case "enter", "esc":
		p.cancelEdit()
		return nil
	}
	var cmd tea.Cmd
	p.editInput, cmd = p.editInput.Update(km)
	p.jumpTo(p.editInput.Value())
	return cmd
}

// jumpTo moves the cursor to the best fuzzy match for query.
func (p *Pane) jumpTo(query string) {
	if query == "" {
		return
	}
	names := make([]string, len(p.entries))
	for i, e := range p.entries {
		names[i] = e.Name
	}
	if matches := fuzzy.Find(query, names); len(matches) > 0 {
		p.cursor = matches[0].Index
		p.scroll()
	}
}

func (p *Pane) updateView(km tea.KeyMsg) tea.Cmd {
	step := 1
	if p.mode == settings.ListView {
		step = p.columns()
	}
	page := max(1, p.bodyHeight()-1)
	if p.mode == settings.ListView {
		page *= p.columns()
	}

	switch km.String() {
	case "up", "k":
		p.moveCursor(-step)
	case "down", "j":
		p.moveCursor(step)
	case "left", "h":
		if p.mode == settings.ListView {
			p.moveCursor(-1)
		}
	case "right", "l":
		if p.mode == settings.ListView {
			p.moveCursor(1)
		}
	case "pgup":
		p.moveCursor(-page)
	case "pgdown":
		p.moveCursor(page)
	case "home", "g":
		p.moveCursor(-len(p.entries))
	case "end", "G":
		p.moveCursor(len(p.entries))
	case "enter":
		if e, ok := p.Current(); ok && e.IsDir {
			side, target := p.Side, e.Path
			return func() tea.Msg { return NavigateMsg{Side: side, Path: target} }
		}
	case "backspace":
		if parent := filepath.Dir(p.path); parent != p.path {
			side := p.Side
			return func() tea.Msg { return NavigateMsg{Side: side, Path: parent} }
		}
	case "insert", "m":
		p.toggleMark()
		p.moveCursor(1)
	case "ctrl+a":
		p.markAll()
	case "esc":
		p.ClearSelection()
	case "/":
		p.beginSearch()
	case "s":
		p.cycleSort()
	case "S":
		p.SetSort(p.sortKey, !p.sortDesc)
	}
	return nil
}

func (p *Pane) moveCursor(delta int) {
	if len(p.entries) == 0 {
		p.cursor = 0
		return
	}
	p.cursor = max(0, min(len(p.entries)-1, p.cursor+delta))
	p.scroll()
}

// bodyHeight is the number of listing rows between the location bar and
// the footer.
func (p *Pane) bodyHeight() int {
	return max(1, p.height-2)
}

// scroll keeps the cursor's grid row on screen in the icon view.
func (p *Pane) scroll() {
	if p.mode != settings.ListView {
		return
	}
	rows := p.bodyHeight()
	row := p.cursor / p.columns()
	if row < p.offset {
		p.offset = row
	}
	if row >= p.offset+rows {
		p.offset = row - rows + 1
	}
}

// View renders the location bar, the listing and the footer.
func (p *Pane) View() string {
	return p.render()
}
