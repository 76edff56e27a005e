package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"filemanager/internal/fsmodel"
	"filemanager/internal/settings"
	"filemanager/internal/ui/textutil"
)

const (
	iconCellWidth  = 18
	sizeColWidth   = 9
	typeColWidth   = 11
	modColWidth    = 16
	tableCellPad   = 2 // table.DefaultStyles pads each cell by one column per side
	modifiedLayout = "2006-01-02 15:04"
)

func (p *Pane) render() string {
	var b strings.Builder
	b.WriteString(p.renderLocation())
	b.WriteByte('\n')
	switch {
	case p.loadErr != nil:
		b.WriteString(lipgloss.NewStyle().Height(p.bodyHeight()).Render(
			Styles.Details.Render(textutil.Truncate(p.loadErr.Error(), p.width))))
	case p.mode == settings.ListView:
		b.WriteString(p.renderGrid())
	default:
		b.WriteString(p.renderTable())
	}
	b.WriteByte('\n')
	b.WriteString(p.renderFooter())
	return lipgloss.NewStyle().Width(p.width).MaxWidth(p.width).Height(p.height).MaxHeight(p.height).Render(b.String())
}

func (p *Pane) renderLocation() string {
	if p.focus == panePathFocused {
		return p.pathInput.View()
	}
	style := Styles.Muted
	if p.active {
		style = Styles.Status
	}
	return style.Render(textutil.TruncateLeft(p.path, p.width))
}

func (p *Pane) renderFooter() string {
	if p.edit != editNone {
		return p.editInput.View()
	}
	n := len(p.entries)
	if n > 0 && p.entries[0].IsParent {
		n--
	}
	s := fmt.Sprintf("%d items", n)
	if len(p.marks) > 0 {
		s += fmt.Sprintf(", %d marked", len(p.marks))
	}
	if e, ok := p.Current(); ok && e.IsSymlink && e.LinkTarget != "" {
		s += "  → " + e.LinkTarget
	}
	return Styles.Hint.Render(textutil.Truncate(s, p.width))
}

// displayName is the entry name with a mark and a directory suffix.
func (p *Pane) displayName(e fsmodel.Entry) string {
	name := e.Name
	if e.IsDir && !e.IsParent {
		name += "/"
	}
	if p.marks[e.Path] {
		return "* " + name
	}
	return "  " + name
}

func (p *Pane) tableColumns() []table.Column {
	nameWidth := p.width - sizeColWidth - typeColWidth - modColWidth - 4*tableCellPad
	nameWidth = max(8, nameWidth)
	titles := []string{"Name", "Size", "Type", "Modified"}
	widths := []int{nameWidth, sizeColWidth, typeColWidth, modColWidth}
	cols := make([]table.Column, len(titles))
	for i, t := range titles {
		if fsmodel.SortKeys[i] == p.sortKey {
			if p.sortDesc {
				t += " ▼"
			} else {
				t += " ▲"
			}
		}
		cols[i] = table.Column{Title: t, Width: widths[i]}
	}
	return cols
}

func (p *Pane) tableRows() []table.Row {
	rows := make([]table.Row, len(p.entries))
	for i, e := range p.entries {
		mod := ""
		if !e.IsParent && !e.ModTime.IsZero() {
			mod = e.ModTime.Format(modifiedLayout)
		}
		typ := e.Type()
		if e.IsParent {
			typ = ""
		}
		rows[i] = table.Row{p.displayName(e), e.SizeString(), typ, mod}
	}
	return rows
}

// renderTable draws the detail view through bubbles/table; the table only
// renders, cursor movement stays in the pane so both views share it.
func (p *Pane) renderTable() string {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(ColorMuted)).
		BorderBottom(true).
		Bold(true)
	styles.Selected = Styles.CursorDim
	if p.focus == paneViewFocused {
		styles.Selected = Styles.Cursor
	}
	// WithHeight subtracts the header as styled at that point, so the
	// bordered styles go first.
	t := table.New(
		table.WithStyles(styles),
		table.WithColumns(p.tableColumns()),
		table.WithRows(p.tableRows()),
		table.WithHeight(p.bodyHeight()),
		table.WithWidth(p.width),
	)
	if len(p.entries) > 0 {
		t.SetCursor(p.cursor)
	}
	rows := p.bodyHeight()
	return lipgloss.NewStyle().Height(rows).MaxHeight(rows).Render(t.View())
}

func (p *Pane) columns() int {
	return max(1, p.width/iconCellWidth)
}

// renderGrid draws the icon view: names flowing left to right in fixed
// width cells.
func (p *Pane) renderGrid() string {
	rows := p.bodyHeight()
	if len(p.entries) == 0 {
		return lipgloss.NewStyle().Height(rows).Render(Styles.Empty.Render("empty"))
	}
	cols := p.columns()
	var lines []string
	for r := p.offset; r < p.offset+rows; r++ {
		var cells []string
		for c := 0; c < cols; c++ {
			i := r*cols + c
			if i >= len(p.entries) {
				break
			}
			cells = append(cells, p.renderCell(i))
		}
		if len(cells) == 0 {
			break
		}
		lines = append(lines, strings.Join(cells, ""))
	}
	return lipgloss.NewStyle().Height(rows).Render(strings.Join(lines, "\n"))
}

func (p *Pane) renderCell(i int) string {
	e := p.entries[i]
	icon := "· "
	switch {
	case e.IsParent:
		icon = "↑ "
	case e.IsDir:
		icon = "▸ "
	case e.IsSymlink:
		icon = "↪ "
	}
	name := e.Name
	if p.marks[e.Path] {
		name = "*" + name
	}
	text := textutil.Fit(icon+name, iconCellWidth-1) + " "
	style := entryStyle(e.IsDir, e.IsSymlink, p.marks[e.Path])
	if i == p.cursor {
		if p.focus == paneViewFocused {
			style = style.Inherit(Styles.Cursor)
		} else {
			style = style.Inherit(Styles.CursorDim)
		}
	}
	return style.Render(text)
}
