package ui

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"filemanager/internal/config"
	"filemanager/internal/fsmodel"
)

// InfoRow is one label/value line of an InfoModal.
type InfoRow struct {
	Label string
	Value string
}

// InfoModal shows a titled table of facts. Esc, Enter or q closes it.
type InfoModal struct {
	Title string
	Intro string
	Rows  []InfoRow
}

var _ View = (*InfoModal)(nil)

func (m *InfoModal) Init() tea.Cmd { return nil }

func (m *InfoModal) Update(msg tea.Msg) (View, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "enter", "esc", "q":
			return m, func() tea.Msg { return DismissModalMsg{} }
		}
	}
	return m, nil
}

func (m *InfoModal) View() string {
	labelWidth := 0
	for _, r := range m.Rows {
		labelWidth = max(labelWidth, lipgloss.Width(r.Label))
	}
	var b strings.Builder
	b.WriteString(Styles.Title.Render(m.Title))
	if m.Intro != "" {
		b.WriteString("\n\n" + Styles.Section.Render(m.Intro))
	}
	if len(m.Rows) > 0 {
		b.WriteString("\n")
	}
	label := Styles.Muted.Width(labelWidth + 2)
	for _, r := range m.Rows {
		b.WriteString("\n" + label.Render(r.Label) + Styles.Normal.Render(r.Value))
	}
	b.WriteString("\n\n" + Styles.Hint.Render("esc: close"))
	return Styles.Box.Render(b.String())
}

// maxSizeWalk bounds how many entries Properties visits to size a folder.
const maxSizeWalk = 10000

// NewPropertiesModal describes path.
func NewPropertiesModal(path string) (*InfoModal, error) {
	e, err := fsmodel.Stat(path)
	if err != nil {
		return nil, err
	}
	size := fsmodel.HumanSize(e.Size)
	if e.IsDir && !e.IsSymlink {
		total, files, complete := dirSize(path, maxSizeWalk)
		size = fmt.Sprintf("%s in %d files", fsmodel.HumanSize(total), files)
		if !complete {
			size = "at least " + size
		}
	}
	rows := []InfoRow{
		{"Name", e.Name},
		{"Location", filepath.Dir(path)},
		{"Type", e.Type()},
		{"Size", size},
		{"Permissions", e.Mode.Perm().String()},
		{"Modified", e.ModTime.Format("2006-01-02 15:04:05")},
		{"Writable", writableLabel(path)},
	}
	if e.IsSymlink {
		rows = append(rows, InfoRow{"Target", e.LinkTarget})
	}
	return &InfoModal{Title: "Properties", Rows: rows}, nil
}

// writableLabel spells out that a delete batch skips entries whose mode
// bits deny writing, for root too.
func writableLabel(path string) string {
	switch {
	case fsmodel.Writable(path):
		return "yes"
	case os.Geteuid() == 0:
		return "no, by permission bits even for root; Delete skips it"
	default:
		return "no; Delete skips it"
	}
}

// dirSize sums regular file sizes under root, stopping after limit entries.
func dirSize(root string, limit int) (total int64, files int, complete bool) {
	seen := 0
	complete = true
	_ = filepath.WalkDir(root, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if seen++; seen > limit {
			complete = false
			return filepath.SkipAll
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if info, err := d.Info(); err == nil {
			total += info.Size()
			files++
		}
		return nil
	})
	return total, files, complete
}

// NewAboutModal shows the program name and version.
func NewAboutModal(version string) *InfoModal {
	return &InfoModal{
		Title: "About File Manager",
		Intro: "A two-pane file manager for the terminal.",
		Rows:  []InfoRow{{"Version", version}},
	}
}

// NewPreferencesModal shows the effective configuration and where it
// came from.
func NewPreferencesModal(cfg *config.Config, stateDir string) *InfoModal {
	source := cfg.Source
	if source == "" {
		source = "(defaults)"
	}
	logFile := cfg.Log.File
	if logFile == "" {
		logFile = "(default)"
	}
	return &InfoModal{
		Title: "Preferences",
		Intro: Styles.Hint.Render("Edit config.yaml or set " + config.EnvPrefix + "_* to change these."),
		Rows: []InfoRow{
			{"Config file", source},
			{"New folder name", cfg.NewFolderName},
			{"Confirm delete", strconv.FormatBool(cfg.ConfirmDelete)},
			{"System clipboard", strconv.FormatBool(cfg.MirrorSystemClipboard)},
			{"Watch folders", strconv.FormatBool(cfg.Watch)},
			{"State directory", stateDir},
			{"Log file", logFile},
			{"Log level", cfg.Log.Level},
		},
	}
}
