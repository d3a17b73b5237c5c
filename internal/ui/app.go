// Package ui provides the terminal user interface of the assessment wizard.
package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/gxpassess/internal/models"
	"github.com/Veraticus/gxpassess/internal/wizard"
)

// App is the root model routing between registration, the wizard and the
// result screen.
type App struct {
	registration *RegistrationForm
	wizard       *WizardModel
	record       *models.AssessmentRecord
	page         Page
	width        int
	height       int
	quitting     bool
}

// NewApp creates the app. The registration form is shown first when no
// company is registered yet.
func NewApp(ctx context.Context, backend Backend, w *wizard.Wizard) *App {
	profile, registered := backend.Company(ctx)
	app := &App{
		registration: NewRegistrationForm(ctx, backend, profile),
		wizard:       NewWizardModel(ctx, backend, w),
		page:         WizardPage,
	}
	if !registered {
		app.page = RegistrationPage
	}
	return app
}

// Run starts the app and returns the finalized record, or nil when the user
// quit before finishing.
func Run(ctx context.Context, app *App) (*models.AssessmentRecord, error) {
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return nil, err
	}
	return app.record, nil
}

// Page is the screen being shown.
func (a *App) Page() Page { return a.page }

// Record is the finalized assessment, once completed.
func (a *App) Record() *models.AssessmentRecord { return a.record }

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	if a.page == RegistrationPage {
		return a.registration.Init()
	}
	return a.wizard.Init()
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.registration.SetSize(msg.Width, msg.Height)
		a.wizard.SetSize(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "ctrl+q":
			a.quitting = true
			return a, tea.Quit
		}
		if a.page == ResultPage {
			switch msg.String() {
			case "q", "enter", "esc":
				a.quitting = true
				return a, tea.Quit
			}
			return a, nil
		}

	case RegisteredMsg:
		var cmd tea.Cmd
		a.registration, cmd = a.registration.Update(msg)
		if msg.Err == nil {
			a.page = WizardPage
		}
		return a, cmd

	case CompletedMsg:
		if msg.Err != nil {
			a.wizard.SetMessage(msg.Err.Error())
			return a, nil
		}
		a.record = msg.Record
		a.page = ResultPage
		return a, nil
	}

	var cmd tea.Cmd
	switch a.page {
	case RegistrationPage:
		a.registration, cmd = a.registration.Update(msg)
	case WizardPage:
		a.wizard, cmd = a.wizard.Update(msg)
	}
	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if a.quitting {
		return ""
	}
	switch a.page {
	case RegistrationPage:
		return a.registration.View()
	case ResultPage:
		return a.resultView()
	default:
		return a.wizard.View()
	}
}

func (a *App) resultView() string {
	var b strings.Builder
	rec := a.record
	b.WriteString(TitleStyle.Render("Assessment completed"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s · overall score %s\n\n", rec.CompanyName, SuccessStyle.Render(fmt.Sprintf("%d%%", rec.OverallScore))))
	for _, s := range rec.AreaScores {
		b.WriteString(fmt.Sprintf("  %-40s %3d%%  %s\n", s.Name, s.Score, StatusStyle(s.Status).Render(s.Status.Label())))
	}
	b.WriteString(fmt.Sprintf("\nAssessment id: %s\n", rec.ID))
	b.WriteString(HelpStyle.Render("Generate a report with: gxpassess report --assessment " + rec.ID + " • Quit: q"))
	return BaseStyle.Render(b.String())
}
