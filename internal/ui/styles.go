package ui

import "github.com/charmbracelet/lipgloss"

// Theme colors used throughout the UI
const (
	ColorAccent    = "86"  // Cyan/green - titles, directories
	ColorHighlight = "205" // Magenta - cursor, focused borders
	ColorDanger    = "196" // Red - delete prompts, failures
	ColorMuted     = "241" // Gray - hints, inactive borders
	ColorText      = "252" // Light gray - normal text
	ColorDim       = "243" // Darker gray - disabled toolbar entries
	ColorWarning   = "208" // Orange - failure details
	ColorLink      = "75"  // Blue - symlinks
	ColorMark      = "220" // Yellow - marked entries
)

// Styles contains shared style definitions used across panes and modals.
var Styles = struct {
	Title        lipgloss.Style
	TitleWarning lipgloss.Style

	Box        lipgloss.Style // modal frame
	BoxDanger  lipgloss.Style // delete/failure modal frame
	BoxCompact lipgloss.Style // leader help bar

	// Region frames. Focused is the keyboard focus, Active the pane that
	// receives paste and new folder when focus is elsewhere.
	Frame        lipgloss.Style
	FrameActive  lipgloss.Style
	FrameFocused lipgloss.Style

	Selected lipgloss.Style
	Muted    lipgloss.Style
	Normal   lipgloss.Style
	Hint     lipgloss.Style
	Status   lipgloss.Style
	Section  lipgloss.Style
	Empty    lipgloss.Style
	Label    lipgloss.Style
	Details  lipgloss.Style

	Dir       lipgloss.Style
	Link      lipgloss.Style
	Marked    lipgloss.Style
	Cursor    lipgloss.Style // cursor row in a focused view
	CursorDim lipgloss.Style // cursor row in an unfocused view

	ToolChecked  lipgloss.Style
	ToolEnabled  lipgloss.Style
	ToolDisabled lipgloss.Style
	StatusBar    lipgloss.Style
}{
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccent)),
	TitleWarning: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorDanger)),
	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorHighlight)).
		Padding(1, 2),
	BoxDanger: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorDanger)).
		Padding(1, 2),
	BoxCompact: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccent)).
		Padding(0, 1),
	Frame: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorMuted)),
	FrameActive: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccent)),
	FrameFocused: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorHighlight)),
	Selected: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHighlight)).
		Bold(true),
	Muted: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Normal: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorText)),
	Hint: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Status: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccent)),
	Section: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHighlight)),
	Empty: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)).
		Italic(true),
	Label: lipgloss.NewStyle(),
	Details: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorWarning)),
	Dir: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccent)).
		Bold(true),
	Link: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorLink)),
	Marked: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMark)).
		Bold(true),
	Cursor: lipgloss.NewStyle().
		Reverse(true),
	CursorDim: lipgloss.NewStyle().
		Underline(true),
	ToolChecked: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHighlight)).
		Bold(true),
	ToolEnabled: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorText)),
	ToolDisabled: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorDim)).
		Faint(true),
	StatusBar: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
}

// entryStyle picks the foreground for an entry name.
func entryStyle(isDir, isLink, marked bool) lipgloss.Style {
	switch {
	case marked:
		return Styles.Marked
	case isLink:
		return Styles.Link
	case isDir:
		return Styles.Dir
	default:
		return Styles.Normal
	}
}
