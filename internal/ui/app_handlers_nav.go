package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"
)

// handleNavigate moves p to path. An invalid path leaves the pane where it
// was and shows a notice. After a location bar entry the listing takes
// focus.
func (a *appModelAdapter) handleNavigate(p *Pane, path string) (tea.Model, tea.Cmd) {
	old := p.Path()
	if err := p.MoveTo(path); err != nil {
		log.WithFields(log.Fields{"pane": p.Side.String(), "path": path}).WithError(err).Info("navigate failed")
		a.Overlays.Push(Overlay{
			View:    NewFailureModal("Cannot open folder", fmt.Sprintf("%q is not an accessible folder.", path), err),
			Dismiss: "esc",
		})
		return a, nil
	}
	a.rewatch(old, p.Path())
	if a.Focus.Current == p.Side.PathFocus() {
		a.Focus.SetFocus(p.Side.ViewFocus())
	}
	if p == a.Panes.Active() {
		a.Tree.Reveal(p.Path())
	}
	return a, nil
}

// handleTreeSelect navigates the active pane only. Folders that cannot be
// opened are reported in the status bar so the cursor can pass over them.
func (a *appModelAdapter) handleTreeSelect(path string) (tea.Model, tea.Cmd) {
	p := a.Panes.Active()
	old := p.Path()
	if err := p.MoveTo(path); err != nil {
		a.status = err.Error()
		return a, nil
	}
	a.rewatch(old, p.Path())
	return a, nil
}

// rewatch moves change notification from old to dir.
func (a *AppModel) rewatch(old, dir string) {
	if a.Watcher == nil || old == dir {
		return
	}
	if old != "" {
		a.Watcher.Unwatch(old)
	}
	if err := a.Watcher.Watch(dir); err != nil {
		log.WithField("dir", dir).WithError(err).Warn("watch failed")
	}
}

// waitForChange delivers the next watcher event as an FSChangedMsg.
func (a *AppModel) waitForChange() tea.Cmd {
	if a.Watcher == nil {
		return nil
	}
	events := a.Watcher.Events()
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return FSChangedMsg{Dir: ev.Dir}
	}
}

func (a *AppModel) handleFSChange(dir string) {
	log.WithField("dir", dir).Debug("folder changed on disk")
	a.refreshDirs(dir)
}
