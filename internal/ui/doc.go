// Package ui is the Bubble Tea front end of the file manager.
//
// The window is an AppModel: a directory tree and two file panes laid out
// by a Splitter, a toolbar of Actions, and modal overlays. Keyboard focus
// moves between regions through a FocusManager; the Coordinator keeps
// track of which pane is active. Keys go to the top overlay first, then to
// an open text field, then to the KeybindRegistry (shortcuts and SPC
// leader sequences), then to the focused region.
package ui
