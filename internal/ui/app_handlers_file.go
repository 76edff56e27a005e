package ui

import (
	"fmt"
	"os/exec"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"

	"filemanager/internal/fileops"
	"filemanager/internal/settings"
	"filemanager/internal/tmux"
)

// handleAction runs an action if it is enabled.
func (a *appModelAdapter) handleAction(id ActionID) (tea.Model, tea.Cmd) {
	act := a.Actions.Get(id)
	if act == nil {
		return a, nil
	}
	if !act.Enabled {
		a.status = act.Label + " is not available"
		return a, nil
	}
	log.WithField("action", string(id)).Debug("action")

	switch id {
	case ActionCut:
		return a.handleCut()
	case ActionCopy:
		return a.handleCopy()
	case ActionPaste:
		return a.handlePaste()
	case ActionDelete:
		return a.handleDelete()
	case ActionNewFolder:
		return a.handleNewFolder()
	case ActionRename:
		return a.handleBeginRename()
	case ActionProperties:
		return a.handleProperties()
	case ActionTerminal:
		return a.handleTerminal()
	case ActionDetailView:
		a.setViewMode(settings.DetailView)
	case ActionIconView:
		a.setViewMode(settings.ListView)
	case ActionHidden:
		a.toggleHidden()
	case ActionRefresh:
		a.refreshAll()
		a.status = "Refreshed"
	case ActionToolBar:
		a.ShowToolBar = !a.ShowToolBar
		a.Actions.SetChecked(ActionToolBar, a.ShowToolBar)
	case ActionStatusBar:
		a.ShowStatusBar = !a.ShowStatusBar
		a.Actions.SetChecked(ActionStatusBar, a.ShowStatusBar)
	case ActionPreferences:
		a.Overlays.Push(Overlay{View: NewPreferencesModal(a.Config, a.stateDir), Dismiss: "esc"})
	case ActionAbout:
		a.Overlays.Push(Overlay{View: NewAboutModal(a.Version), Dismiss: "esc"})
	case ActionExit:
		if err := a.SaveState(); err != nil {
			log.WithError(err).Error("save window state")
		}
		return a, tea.Quit
	}
	return a, nil
}

// setViewMode switches the active pane and keeps the view actions in step.
func (a *AppModel) setViewMode(m settings.ViewMode) {
	p := a.Panes.Active()
	p.SetViewMode(m)
	a.updateViewActions(p)
}

// toggleHidden flips the hidden-files filter and relists everything.
func (a *AppModel) toggleHidden() {
	show := !a.Model.ShowHidden()
	a.Model.SetShowHidden(show)
	a.Actions.SetChecked(ActionHidden, show)
	a.refreshAll()
}

// refreshAll relists both panes and the whole tree.
func (a *AppModel) refreshAll() {
	for _, p := range a.Panes.Panes() {
		if err := p.Reload(); err != nil {
			log.WithField("pane", p.Side.String()).WithError(err).Warn("reload failed")
		}
	}
	a.Tree.RefreshAll()
}

// refreshDirs relists panes showing one of dirs and the matching tree
// nodes.
func (a *AppModel) refreshDirs(dirs ...string) {
	seen := make(map[string]bool, len(dirs))
	for _, d := range dirs {
		d = filepath.Clean(d)
		if seen[d] {
			continue
		}
		seen[d] = true
		for _, p := range a.Panes.Panes() {
			if p.Path() == d {
				_ = p.Reload()
			}
		}
		a.Tree.Refresh(d)
	}
}

// handleDelete starts a delete batch over the focused selection.
func (a *appModelAdapter) handleDelete() (tea.Model, tea.Cmd) {
	if a.deleting != nil {
		return a, nil
	}
	paths, _ := a.focusedSelection()
	if len(paths) == 0 {
		return a, nil
	}
	a.deleting = fileops.NewDeleteBatch(a.ctx, a.Model, paths, a.Config.ConfirmDelete)
	return a.advanceDelete()
}

// handleDeleteAnswer closes the prompt and continues the batch.
func (a *appModelAdapter) handleDeleteAnswer(ans fileops.Answer) (tea.Model, tea.Cmd) {
	if top, ok := a.Overlays.Peek(); ok {
		if _, isConfirm := top.View.(*ConfirmModal); isConfirm {
			a.Overlays.Pop()
		}
	}
	if a.deleting == nil {
		return a, nil
	}
	a.deleting.Answer(ans)
	return a.advanceDelete()
}

// advanceDelete runs the batch until the next prompt or the end. At the end
// the affected folders are relisted and failures are reported once.
func (a *appModelAdapter) advanceDelete() (tea.Model, tea.Cmd) {
	prompt, done := a.deleting.Advance()
	if !done {
		a.Overlays.Push(Overlay{View: NewDeleteConfirmModal(prompt)})
		return a, nil
	}
	b := a.deleting
	a.deleting = nil

	var dirs []string
	for _, p := range b.Removed() {
		dirs = append(dirs, filepath.Dir(p))
	}
	a.refreshDirs(dirs...)
	a.status = pluralItems(len(b.Removed())) + " deleted"
	if err := b.Err(); err != nil {
		a.Overlays.Push(Overlay{
			View:    NewFailureModal("Not deleted", "Some files could not be deleted.", err),
			Dismiss: "esc",
		})
	}
	return a, nil
}

// handleNewFolder creates a folder in the active pane, selects it and
// opens the rename editor on it.
func (a *appModelAdapter) handleNewFolder() (tea.Model, tea.Cmd) {
	p := a.Panes.Active()
	path, err := fileops.NewFolder(a.ctx, a.Model, p.Path(), a.Config.NewFolderName)
	if err != nil {
		a.Overlays.Push(Overlay{
			View:    NewFailureModal("Folder not created", "The folder could not be created.", err),
			Dismiss: "esc",
		})
		return a, nil
	}
	a.refreshDirs(p.Path())
	a.Focus.SetFocus(p.Side.ViewFocus())
	p.BeginRename(path)
	a.status = "Created " + filepath.Base(path)
	return a, nil
}

// handleBeginRename opens the rename editor on the focused pane's cursor.
func (a *appModelAdapter) handleBeginRename() (tea.Model, tea.Cmd) {
	if a.Focus.Current.IsPathInput() {
		return a, nil
	}
	p := a.Panes.Owner(a.Focus.Current)
	if p == nil {
		return a, nil
	}
	if e, ok := p.Current(); ok && !e.IsParent {
		p.BeginRename(e.Path)
	}
	return a, nil
}

func (a *appModelAdapter) handleRename(msg RenameMsg) (tea.Model, tea.Cmd) {
	p := a.Panes.Pane(msg.Side)
	newPath, err := a.Model.Rename(msg.Path, msg.NewName)
	if err != nil {
		log.WithFields(log.Fields{"op": "rename", "path": msg.Path}).WithError(err).Warn("rename failed")
		a.Overlays.Push(Overlay{
			View:    NewFailureModal("Not renamed", fmt.Sprintf("%q could not be renamed.", filepath.Base(msg.Path)), err),
			Dismiss: "esc",
		})
		return a, nil
	}
	log.WithFields(log.Fields{"op": "rename", "path": msg.Path, "dest": newPath}).Info("renamed")
	a.refreshDirs(filepath.Dir(newPath))
	p.Select(newPath)
	return a, nil
}

// handleProperties describes the focused entry, or the active pane's
// folder when nothing is selected.
func (a *appModelAdapter) handleProperties() (tea.Model, tea.Cmd) {
	target := a.Panes.Active().Path()
	if paths, _ := a.focusedSelection(); len(paths) > 0 {
		target = paths[0]
	}
	modal, err := NewPropertiesModal(target)
	if err != nil {
		a.Overlays.Push(Overlay{View: NewFailureModal("Properties", target, err), Dismiss: "esc"})
		return a, nil
	}
	a.Overlays.Push(Overlay{View: modal, Dismiss: "esc"})
	return a, nil
}

// handleTerminal opens a shell in the active pane's folder: a tmux split
// when running inside tmux, otherwise the UI suspends until the shell
// exits.
func (a *appModelAdapter) handleTerminal() (tea.Model, tea.Cmd) {
	dir := a.Panes.Active().Path()
	if tmux.Inside() {
		return a, func() tea.Msg {
			_, err := tmux.SplitPane(dir)
			return terminalDoneMsg{Err: err}
		}
	}
	c := exec.Command(tmux.Shell())
	c.Dir = dir
	return a, tea.ExecProcess(c, func(err error) tea.Msg { return terminalDoneMsg{Err: err} })
}

func (a *appModelAdapter) handleTerminalDone(msg terminalDoneMsg) (tea.Model, tea.Cmd) {
	a.refreshAll()
	if msg.Err != nil {
		log.WithError(msg.Err).Warn("terminal failed")
		a.Overlays.Push(Overlay{View: NewFailureModal("Terminal", "The shell could not be started.", msg.Err), Dismiss: "esc"})
	}
	return a, nil
}
