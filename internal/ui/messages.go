package ui

import "github.com/Veraticus/gxpassess/internal/models"

// Page identifies a screen of the terminal app.
type Page int

const (
	// RegistrationPage collects the company profile.
	RegistrationPage Page = iota
	// WizardPage walks the assessment areas.
	WizardPage
	// ResultPage shows the finalized assessment.
	ResultPage
)

// RegisteredMsg reports the outcome of submitting the registration form.
type RegisteredMsg struct {
	Err     error
	Profile models.CompanyProfile
}

// SavedMsg reports the outcome of a draft autosave.
type SavedMsg struct {
	Err error
}

// CompletedMsg reports the outcome of finalizing the assessment.
type CompletedMsg struct {
	Err    error
	Record *models.AssessmentRecord
}
