package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/gxpassess/internal/models"
)

// Field order of the registration form.
const (
	fieldName = iota
	fieldSegment
	fieldCountry
	fieldContactName
	fieldContactEmail
	fieldEmployees
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Company name",
	"Segment",
	"Country",
	"Contact name",
	"Contact email",
	"Employees",
}

// RegistrationForm collects the company profile.
type RegistrationForm struct {
	ctx     context.Context
	backend Backend
	message string
	inputs  []textinput.Model
	focus   int
	width   int
	busy    bool
}

// NewRegistrationForm creates the form, prefilled from profile.
func NewRegistrationForm(ctx context.Context, backend Backend, profile models.CompanyProfile) *RegistrationForm {
	f := &RegistrationForm{ctx: ctx, backend: backend, inputs: make([]textinput.Model, fieldCount)}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 120
		f.inputs[i] = ti
	}
	f.inputs[fieldSegment].Placeholder = strings.Join(models.Segments(), " | ")
	f.inputs[fieldContactEmail].Placeholder = "qa@example.com"
	f.inputs[fieldEmployees].Placeholder = "optional"
	f.inputs[fieldEmployees].CharLimit = 9

	f.inputs[fieldName].SetValue(profile.Name)
	f.inputs[fieldSegment].SetValue(profile.Segment)
	f.inputs[fieldCountry].SetValue(profile.Country)
	f.inputs[fieldContactName].SetValue(profile.ContactName)
	f.inputs[fieldContactEmail].SetValue(profile.ContactEmail)
	if profile.Employees > 0 {
		f.inputs[fieldEmployees].SetValue(strconv.Itoa(profile.Employees))
	}

	f.inputs[fieldName].Focus()
	return f
}

// Init implements tea.Model.
func (f *RegistrationForm) Init() tea.Cmd {
	return textinput.Blink
}

// Focused is the index of the focused field.
func (f *RegistrationForm) Focused() int { return f.focus }

// Message is the last validation or save error.
func (f *RegistrationForm) Message() string { return f.message }

// SetSize updates the form width.
func (f *RegistrationForm) SetSize(width, _ int) { f.width = width }

// Update handles form input.
func (f *RegistrationForm) Update(msg tea.Msg) (*RegistrationForm, tea.Cmd) {
	switch msg := msg.(type) {
	case RegisteredMsg:
		f.busy = false
		if msg.Err != nil {
			f.message = msg.Err.Error()
		} else {
			f.message = ""
		}
		return f, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down":
			f.setFocus(f.focus + 1)
			return f, nil
		case "shift+tab", "up":
			f.setFocus(f.focus - 1)
			return f, nil
		case "enter":
			if f.focus < fieldCount-1 {
				f.setFocus(f.focus + 1)
				return f, nil
			}
			return f, f.submit()
		case "ctrl+s":
			return f, f.submit()
		}
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

// Profile builds the profile from the field values.
func (f *RegistrationForm) Profile() (models.CompanyProfile, error) {
	p := models.CompanyProfile{
		Name:         strings.TrimSpace(f.inputs[fieldName].Value()),
		Segment:      strings.TrimSpace(f.inputs[fieldSegment].Value()),
		Country:      strings.TrimSpace(f.inputs[fieldCountry].Value()),
		ContactName:  strings.TrimSpace(f.inputs[fieldContactName].Value()),
		ContactEmail: strings.TrimSpace(f.inputs[fieldContactEmail].Value()),
	}
	if raw := strings.TrimSpace(f.inputs[fieldEmployees].Value()); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return p, fmt.Errorf("employees must be a number")
		}
		p.Employees = n
	}
	return p, nil
}

func (f *RegistrationForm) submit() tea.Cmd {
	if f.busy {
		return nil
	}
	profile, err := f.Profile()
	if err != nil {
		f.message = err.Error()
		return nil
	}
	f.busy = true
	ctx, backend := f.ctx, f.backend
	return func() tea.Msg {
		saved, err := backend.Register(ctx, profile)
		return RegisteredMsg{Profile: saved, Err: err}
	}
}

func (f *RegistrationForm) setFocus(i int) {
	i = (i + fieldCount) % fieldCount
	f.inputs[f.focus].Blur()
	f.focus = i
	f.inputs[f.focus].Focus()
}

// View renders the form.
func (f *RegistrationForm) View() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Company Registration"))
	b.WriteString("\n")

	for i, in := range f.inputs {
		label := fmt.Sprintf("%-14s", fieldLabels[i])
		if i == f.focus {
			b.WriteString(SelectedItemStyle.Render("▸ " + label))
		} else {
			b.WriteString(NormalItemStyle.Render("  " + label))
		}
		b.WriteString(" ")
		b.WriteString(in.View())
		b.WriteString("\n")
	}

	if f.message != "" {
		b.WriteString("\n")
		b.WriteString(ErrorStyle.Render(f.message))
		b.WriteString("\n")
	}
	if f.busy {
		b.WriteString("\nSaving...\n")
	}

	b.WriteString(HelpStyle.Render("Navigate: Tab/Shift+Tab • Next/Submit: Enter • Save: Ctrl+S • Quit: Ctrl+C"))
	return BaseStyle.Render(b.String())
}
