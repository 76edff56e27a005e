package ui

import "github.com/charmbracelet/bubbles/help"

// RenderKeybindHelp produces the transient bar shown after SPC, listing
// the keys that continue the current sequence.
func RenderKeybindHelp(keyHandler *KeyHandler, width int) string {
	if keyHandler == nil || !keyHandler.LeaderWaiting {
		return ""
	}
	bindings := NewKeyMap(keyHandler.Registry, keyHandler).ShortHelp()
	if len(bindings) == 0 {
		return ""
	}

	helpModel := help.New()
	helpModel.Styles.ShortKey = Styles.Selected
	helpModel.Styles.ShortDesc = Styles.Muted
	helpModel.Styles.ShortSeparator = Styles.Muted
	if width > 4 {
		helpModel.Width = width - 4
	}

	return Styles.BoxCompact.Render(Styles.Muted.Render(keyHandler.Pending()) + " " + helpModel.ShortHelpView(bindings))
}
