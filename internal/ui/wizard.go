package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/gxpassess/internal/models"
	"github.com/Veraticus/gxpassess/internal/wizard"
)

const barWidth = 30

// WizardModel renders the assessment wizard and forwards key presses to it.
type WizardModel struct {
	ctx        context.Context
	backend    Backend
	wiz        *wizard.Wizard
	message    string
	saveStatus string
	cursor     int
	width      int
	height     int
	submitting bool
}

// NewWizardModel wraps w.
func NewWizardModel(ctx context.Context, backend Backend, w *wizard.Wizard) *WizardModel {
	return &WizardModel{ctx: ctx, backend: backend, wiz: w}
}

// Init implements tea.Model.
func (m *WizardModel) Init() tea.Cmd { return nil }

// Wizard returns the underlying state machine.
func (m *WizardModel) Wizard() *wizard.Wizard { return m.wiz }

// Cursor is the selected question of the current area.
func (m *WizardModel) Cursor() int { return m.cursor }

// Message is the transient error shown under the questions.
func (m *WizardModel) Message() string { return m.message }

// SetMessage shows msg until the next key press.
func (m *WizardModel) SetMessage(msg string) {
	m.message = msg
	m.submitting = false
}

// SetSize updates the model dimensions.
func (m *WizardModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles wizard input.
func (m *WizardModel) Update(msg tea.Msg) (*WizardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case SavedMsg:
		if msg.Err != nil {
			m.saveStatus = "Autosave failed: " + msg.Err.Error()
		} else {
			m.saveStatus = "Draft saved"
		}
		return m, nil

	case tea.KeyMsg:
		m.message = ""
		return m, m.handleKey(msg.String())
	}
	return m, nil
}

func (m *WizardModel) handleKey(key string) tea.Cmd {
	area, inArea := m.wiz.Current()

	switch key {
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "j", "down":
		if inArea && m.cursor < len(area.Questions)-1 {
			m.cursor++
		}
	case "n", "right", "tab":
		if err := m.wiz.Next(); err != nil {
			m.message = err.Error()
			return nil
		}
		m.cursor = 0
		return m.autosave()
	case "p", "left", "shift+tab":
		if err := m.wiz.Previous(); err != nil {
			m.message = err.Error()
			return nil
		}
		m.cursor = 0
		return m.autosave()
	case "enter":
		if m.wiz.IsComplete() {
			return m.complete()
		}
		if err := m.wiz.Next(); err != nil {
			m.message = err.Error()
			return nil
		}
		m.cursor = 0
		return m.autosave()
	case "0", "1", "2", "3", "4", "5":
		if !inArea || len(area.Questions) == 0 {
			return nil
		}
		v := models.ResponseValue(key[0] - '0')
		if err := m.wiz.Answer(area.Questions[m.cursor].ID, v); err != nil {
			m.message = err.Error()
			return nil
		}
		if m.cursor < len(area.Questions)-1 {
			m.cursor++
		}
		return m.autosave()
	}
	return nil
}

func (m *WizardModel) autosave() tea.Cmd {
	ctx, backend, draft := m.ctx, m.backend, m.wiz.Draft()
	return func() tea.Msg {
		return SavedMsg{Err: backend.SaveDraft(ctx, draft)}
	}
}

func (m *WizardModel) complete() tea.Cmd {
	if m.submitting {
		return nil
	}
	m.submitting = true
	ctx, backend := m.ctx, m.backend
	responses, editOf := m.wiz.Responses(), m.wiz.EditOf()
	return func() tea.Msg {
		rec, err := backend.Complete(ctx, responses, editOf)
		return CompletedMsg{Record: rec, Err: err}
	}
}

// View renders the current area or the completion summary.
func (m *WizardModel) View() string {
	var b strings.Builder
	c := m.wiz.Catalog()

	area, ok := m.wiz.Current()
	if !ok {
		b.WriteString(TitleStyle.Render("All areas answered"))
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("Overall completion %s\n", ProgressBar(m.wiz.OverallCompletion(), barWidth)))
		if m.submitting {
			b.WriteString("\nFinalizing assessment...\n")
		}
		m.writeFooter(&b, "Finish: Enter • Back: p • Quit: Ctrl+C")
		return BaseStyle.Render(b.String())
	}

	title := fmt.Sprintf("Area %d of %d: %s", m.wiz.Index()+1, len(c.Areas), area.Name)
	if m.wiz.EditOf() != "" {
		title += fmt.Sprintf(" (editing %s)", m.wiz.EditOf())
	}
	b.WriteString(TitleStyle.Render(title))
	b.WriteString("\n")
	if area.Description != "" {
		b.WriteString(HelpStyle.UnsetMarginTop().Render(area.Description))
		b.WriteString("\n")
	}
	b.WriteString(fmt.Sprintf("Area    %s\n", ProgressBar(m.wiz.AreaCompletion(), barWidth)))
	b.WriteString(fmt.Sprintf("Overall %s\n\n", ProgressBar(m.wiz.OverallCompletion(), barWidth)))

	answers := m.wiz.Responses().Area(area.ID)
	for i, q := range area.Questions {
		cursor, style := "  ", NormalItemStyle
		if i == m.cursor {
			cursor, style = "▸ ", SelectedItemStyle
		}
		b.WriteString(style.Render(fmt.Sprintf("%s%d. %s", cursor, i+1, q.Text)))
		b.WriteString("\n")

		b.WriteString("     ")
		for _, level := range models.MaturityLevels() {
			cell := fmt.Sprintf(" %d ", int(level))
			if v, answered := answers[q.ID]; answered && v == level {
				cell = lipgloss.NewStyle().Reverse(true).Render(cell)
			}
			b.WriteString(cell)
		}
		if v, answered := answers[q.ID]; answered {
			b.WriteString("  " + v.Label())
		}
		b.WriteString("\n")
	}

	m.writeFooter(&b, "Answer: 0-5 • Move: ↑/↓ • Next: n • Previous: p • Quit: Ctrl+C")
	return BaseStyle.Render(b.String())
}

func (m *WizardModel) writeFooter(b *strings.Builder, help string) {
	if m.message != "" {
		b.WriteString("\n")
		b.WriteString(ErrorStyle.Render(m.message))
		b.WriteString("\n")
	}
	if m.saveStatus != "" {
		b.WriteString("\n")
		b.WriteString(HelpStyle.UnsetMarginTop().Render(m.saveStatus))
		b.WriteString("\n")
	}
	b.WriteString(HelpStyle.Render(help))
}
