package ui

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"filemanager/internal/fileops"
)

// ConfirmChoice is one answer of a ConfirmModal.
type ConfirmChoice struct {
	Keys  []string
	Label string
	Msg   tea.Msg
}

// ConfirmModal asks a question and emits the Msg of the chosen answer.
type ConfirmModal struct {
	Title   string
	Label   string
	Details string
	Choices []ConfirmChoice
}

var _ View = (*ConfirmModal)(nil)

// NewConfirmModal creates a modal with the given answers.
func NewConfirmModal(title, label string, choices ...ConfirmChoice) *ConfirmModal {
	return &ConfirmModal{Title: title, Label: label, Choices: choices}
}

// DeleteAnswerMsg carries the answer to a delete prompt.
type DeleteAnswerMsg struct{ Answer fileops.Answer }

// NewDeleteConfirmModal asks whether to delete path. Esc answers No, which
// cancels the rest of the batch.
func NewDeleteConfirmModal(path string) *ConfirmModal {
	return NewConfirmModal(
		"Delete file",
		fmt.Sprintf("Are you sure you want to delete %q?", path),
		ConfirmChoice{Keys: []string{"y", "enter"}, Label: "yes", Msg: DeleteAnswerMsg{Answer: fileops.AnswerYes}},
		ConfirmChoice{Keys: []string{"n", "esc"}, Label: "no", Msg: DeleteAnswerMsg{Answer: fileops.AnswerNo}},
		ConfirmChoice{Keys: []string{"a"}, Label: "yes to all", Msg: DeleteAnswerMsg{Answer: fileops.AnswerYesToAll}},
	)
}

func (m *ConfirmModal) Init() tea.Cmd { return nil }

func (m *ConfirmModal) Update(msg tea.Msg) (View, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	for _, c := range m.Choices {
		if slices.Contains(c.Keys, km.String()) {
			out := c.Msg
			return m, func() tea.Msg { return out }
		}
	}
	return m, nil
}

func (m *ConfirmModal) View() string {
	content := Styles.TitleWarning.Render(m.Title) + "\n\n" + Styles.Label.Render(m.Label)
	if m.Details != "" {
		content += "\n" + Styles.Details.Render(m.Details)
	}
	hints := make([]string, 0, len(m.Choices))
	for _, c := range m.Choices {
		hints = append(hints, c.Keys[0]+": "+c.Label)
	}
	content += "\n\n" + Styles.Hint.Render(strings.Join(hints, "  "))
	return Styles.BoxDanger.Render(content)
}

// MessageModal is an informational notice closed with Enter or Esc.
type MessageModal struct {
	Title   string
	Text    string
	Details []string
	warning bool
}

var _ View = (*MessageModal)(nil)

// NewMessageModal creates a plain notice.
func NewMessageModal(title, text string) *MessageModal {
	return &MessageModal{Title: title, Text: text}
}

// NewFailureModal creates the single notice shown after a batch operation
// with failures. Details lists the individual errors.
func NewFailureModal(title, text string, err error) *MessageModal {
	m := NewMessageModal(title, text)
	m.warning = true
	var be *fileops.BatchError
	switch {
	case errors.As(err, &be):
		for _, e := range be.Errs {
			m.Details = append(m.Details, e.Error())
		}
	case err != nil:
		m.Details = []string{err.Error()}
	}
	return m
}

const maxModalDetails = 8

func (m *MessageModal) Init() tea.Cmd { return nil }

func (m *MessageModal) Update(msg tea.Msg) (View, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "enter", "esc", "q":
			return m, func() tea.Msg { return DismissModalMsg{} }
		}
	}
	return m, nil
}

func (m *MessageModal) View() string {
	title, box := Styles.Title, Styles.Box
	if m.warning {
		title, box = Styles.TitleWarning, Styles.BoxDanger
	}
	content := title.Render(m.Title) + "\n\n" + Styles.Label.Render(m.Text)
	details := m.Details
	if len(details) > maxModalDetails {
		details = append(details[:maxModalDetails:maxModalDetails], fmt.Sprintf("… and %d more", len(m.Details)-maxModalDetails))
	}
	for _, d := range details {
		content += "\n" + Styles.Details.Render(d)
	}
	content += "\n\n" + Styles.Hint.Render("enter: close")
	return box.Render(content)
}
