package ui

import (
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	log "github.com/sirupsen/logrus"

	"filemanager/internal/fsmodel"
	"filemanager/internal/ui/textutil"
)

// TreeSelectMsg reports that the tree cursor moved to Path.
type TreeSelectMsg struct{ Path string }

type treeNode struct {
	name     string
	path     string
	depth    int
	parent   *treeNode
	children []*treeNode
	loaded   bool
	expanded bool
}

// DirTree is the directory-only tree on the left of the window. Children
// are listed lazily when a node is first expanded.
type DirTree struct {
	lister  fsmodel.Lister
	root    *treeNode
	visible []*treeNode
	cursor  int
	offset  int
	focused bool

	width, height int
}

var _ View = (*DirTree)(nil)

// NewDirTree roots a tree at root, listing through lister (normally a
// fsmodel.NewDirFilter over the shared model).
func NewDirTree(lister fsmodel.Lister, root string) *DirTree {
	t := &DirTree{
		lister: lister,
		root:   &treeNode{name: root, path: filepath.Clean(root)},
		width:  20,
		height: 10,
	}
	t.expand(t.root)
	t.rebuild()
	return t
}

func (t *DirTree) Init() tea.Cmd { return nil }

func (t *DirTree) SetSize(width, height int) {
	t.width, t.height = width, height
	t.scroll()
}

func (t *DirTree) SetFocused(on bool) { t.focused = on }

// Selected returns the path under the cursor.
func (t *DirTree) Selected() string {
	if n := t.current(); n != nil {
		return n.path
	}
	return ""
}

func (t *DirTree) current() *treeNode {
	if t.cursor < 0 || t.cursor >= len(t.visible) {
		return nil
	}
	return t.visible[t.cursor]
}

func (t *DirTree) load(n *treeNode) {
	entries, err := t.lister.List(n.path)
	if err != nil {
		log.WithError(err).WithField("dir", n.path).Debug("tree list failed")
		n.children, n.loaded = nil, true
		return
	}
	old := make(map[string]*treeNode, len(n.children))
	for _, c := range n.children {
		old[c.path] = c
	}
	fsmodel.Sort(entries, fsmodel.SortName, false)
	children := make([]*treeNode, 0, len(entries))
	for _, e := range entries {
		if c, ok := old[e.Path]; ok {
			children = append(children, c)
			continue
		}
		children = append(children, &treeNode{name: e.Name, path: e.Path, depth: n.depth + 1, parent: n})
	}
	n.children, n.loaded = children, true
}

func (t *DirTree) expand(n *treeNode) {
	if !n.loaded {
		t.load(n)
	}
	n.expanded = true
}

func (t *DirTree) rebuild() {
	var selected string
	if n := t.current(); n != nil {
		selected = n.path
	}
	t.visible = t.visible[:0]
	var walk func(n *treeNode)
	walk = func(n *treeNode) {
		t.visible = append(t.visible, n)
		if !n.expanded {
			return
		}
		for _, c := range n.children {
			walk(c)
		}
	}
	walk(t.root)
	if selected != "" {
		t.selectPath(selected)
	}
	t.cursor = max(0, min(t.cursor, len(t.visible)-1))
	t.scroll()
}

func (t *DirTree) selectPath(path string) bool {
	for i, n := range t.visible {
		if n.path == path {
			t.cursor = i
			return true
		}
	}
	return false
}

// Reveal expands the ancestors of path and puts the cursor on it, or on
// the deepest ancestor shown. It does not emit TreeSelectMsg.
func (t *DirTree) Reveal(path string) bool {
	rel, err := filepath.Rel(t.root.path, filepath.Clean(path))
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false
	}
	n := t.root
	found := true
	if rel != "." {
		for _, part := range strings.Split(rel, string(filepath.Separator)) {
			t.expand(n)
			var next *treeNode
			for _, c := range n.children {
				if c.name == part {
					next = c
					break
				}
			}
			if next == nil {
				found = false
				break
			}
			n = next
		}
	}
	t.rebuild()
	t.selectPath(n.path)
	t.scroll()
	return found
}

// Refresh relists dir if the tree has loaded it.
func (t *DirTree) Refresh(dir string) {
	if n := t.find(t.root, filepath.Clean(dir)); n != nil && n.loaded {
		t.load(n)
		t.rebuild()
	}
}

// RefreshAll relists every expanded node and forgets collapsed ones, so a
// changed filter applies everywhere.
func (t *DirTree) RefreshAll() {
	var walk func(n *treeNode)
	walk = func(n *treeNode) {
		if !n.expanded {
			n.loaded, n.children = false, nil
			return
		}
		t.load(n)
		for _, c := range n.children {
			walk(c)
		}
	}
	walk(t.root)
	t.rebuild()
}

func (t *DirTree) find(n *treeNode, path string) *treeNode {
	if n.path == path {
		return n
	}
	if !strings.HasPrefix(path, n.path) {
		return nil
	}
	for _, c := range n.children {
		if found := t.find(c, path); found != nil {
			return found
		}
	}
	return nil
}

func (t *DirTree) Update(msg tea.Msg) (View, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return t, nil
	}
	before := t.Selected()
	switch km.String() {
	case "up", "k":
		t.cursor--
	case "down", "j":
		t.cursor++
	case "pgup":
		t.cursor -= max(1, t.height-1)
	case "pgdown":
		t.cursor += max(1, t.height-1)
	case "home", "g":
		t.cursor = 0
	case "end", "G":
		t.cursor = len(t.visible) - 1
	case "right", "l":
		if n := t.current(); n != nil {
			if !n.expanded {
				t.expand(n)
				t.rebuild()
			} else if len(n.children) > 0 {
				t.cursor++
			}
		}
	case "left", "h":
		if n := t.current(); n != nil {
			if n.expanded && n != t.root {
				n.expanded = false
				t.rebuild()
			} else if n.parent != nil {
				t.selectPath(n.parent.path)
			}
		}
	case "enter":
		if n := t.current(); n != nil {
			switch {
			case !n.expanded:
				t.expand(n)
			case n != t.root:
				n.expanded = false
			}
			t.rebuild()
		}
	default:
		return t, nil
	}
	t.cursor = max(0, min(t.cursor, len(t.visible)-1))
	t.scroll()
	if after := t.Selected(); after != before && after != "" {
		return t, func() tea.Msg { return TreeSelectMsg{Path: after} }
	}
	return t, nil
}

func (t *DirTree) scroll() {
	rows := max(1, t.height)
	if t.cursor < t.offset {
		t.offset = t.cursor
	}
	if t.cursor >= t.offset+rows {
		t.offset = t.cursor - rows + 1
	}
}

func (t *DirTree) View() string {
	rows := max(1, t.height)
	var lines []string
	for i := t.offset; i < len(t.visible) && i < t.offset+rows; i++ {
		n := t.visible[i]
		marker := "▸ "
		switch {
		case n.expanded:
			marker = "▾ "
		case n.loaded && len(n.children) == 0:
			marker = "  "
		}
		line := textutil.Fit(strings.Repeat("  ", n.depth)+marker+n.name, t.width)
		style := Styles.Normal
		if i == t.cursor {
			if t.focused {
				style = Styles.Cursor
			} else {
				style = Styles.CursorDim
			}
		}
		lines = append(lines, style.Render(line))
	}
	return lipgloss.NewStyle().Width(t.width).Height(rows).MaxHeight(rows).Render(strings.Join(lines, "\n"))
}
