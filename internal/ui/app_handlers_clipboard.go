package ui

import (
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"filemanager/internal/clipboard"
	"filemanager/internal/fileops"
	"filemanager/internal/fsmodel"
)

// focusedSelection returns what Cut, Copy, Delete and Properties act on:
// the selection of the focused pane listing, or the tree's current folder.
// Location bars have no selection. The tree root is never selectable.
func (a *AppModel) focusedSelection() (paths []string, from *Pane) {
	switch id := a.Focus.Current; {
	case id == FocusTree:
		if sel := a.Tree.Selected(); sel != "" && sel != a.Tree.root.path {
			return []string{sel}, nil
		}
	case !id.IsPathInput():
		if p := a.Panes.Owner(id); p != nil {
			return p.Selection(), p
		}
	}
	return nil, nil
}

// pasteTarget is the focused pane's folder, or the folder selected in the
// tree when the tree has focus.
func (a *AppModel) pasteTarget() string {
	switch id := a.Focus.Current; {
	case id == FocusTree:
		return a.Tree.Selected()
	case !id.IsPathInput():
		if p := a.Panes.Owner(id); p != nil {
			return p.Path()
		}
	}
	return ""
}

// handleCut puts the focused selection on the clipboard for a move and
// clears the selection it came from.
func (a *appModelAdapter) handleCut() (tea.Model, tea.Cmd) {
	paths, from := a.focusedSelection()
	if len(paths) == 0 {
		return a, nil
	}
	a.Clipboard.Set(clipboard.Payload{Paths: paths, Mode: fsmodel.Move})
	if from != nil {
		from.ClearSelection()
	}
	a.status = pluralItems(len(paths)) + " cut"
	return a, nil
}

// handleCopy puts the focused selection on the clipboard for a copy. The
// selection stays.
func (a *appModelAdapter) handleCopy() (tea.Model, tea.Cmd) {
	paths, _ := a.focusedSelection()
	if len(paths) == 0 {
		return a, nil
	}
	a.Clipboard.Set(clipboard.Payload{Paths: paths, Mode: fsmodel.Copy})
	a.status = pluralItems(len(paths)) + " copied"
	return a, nil
}

// handlePaste transfers the clipboard into the paste target. Failures are
// reported once for the whole batch.
func (a *appModelAdapter) handlePaste() (tea.Model, tea.Cmd) {
	dest := a.pasteTarget()
	payload, ok := a.Clipboard.Payload()
	if dest == "" || !ok {
		return a, nil
	}
	done, err := fileops.Paste(a.ctx, a.Model, payload, dest)

	dirs := []string{dest}
	if payload.Mode == fsmodel.Move {
		for _, p := range payload.Paths {
			dirs = append(dirs, filepath.Dir(p))
		}
	}
	a.refreshDirs(dirs...)
	if p := a.Panes.Owner(a.Focus.Current); p != nil && len(done) > 0 {
		p.Select(done[0])
	}

	a.status = fmt.Sprintf("%s pasted (%s)", pluralItems(len(done)), payload.Mode)
	if err != nil {
		a.Overlays.Push(Overlay{
			View:    NewFailureModal("Not pasted", "Some files could not be pasted.", err),
			Dismiss: "esc",
		})
	}
	return a, nil
}

func pluralItems(n int) string {
	if n == 1 {
		return "1 item"
	}
	return fmt.Sprintf("%d items", n)
}
